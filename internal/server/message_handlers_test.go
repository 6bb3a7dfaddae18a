package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageAndGetConversation(t *testing.T) {
	s := newTestServer()
	alice := registerUser(t, s, "alice@example.com", "alice")
	bob := registerUser(t, s, "bob@example.com", "bob")

	app := fiber.New()
	app.Post("/messages/:userId", asUser(alice.ID), s.SendMessage)
	app.Get("/messages/:userId", asUser(alice.ID), s.GetConversation)

	resp := performJSON(t, app, http.MethodPost, "/messages/"+bob.ID,
		map[string]string{"content": "привет"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	message := decodeBody(t, resp)
	assert.Equal(t, alice.ID, message["sender_id"])
	assert.Equal(t, bob.ID, message["receiver_id"])
	assert.Equal(t, false, message["read"])

	resp = performJSON(t, app, http.MethodPost, "/messages/"+bob.ID,
		map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = performJSON(t, app, http.MethodPost, "/messages/ghost",
		map[string]string{"content": "эй"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet, "/messages/"+bob.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var thread []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&thread))
	require.Len(t, thread, 1)
	assert.Equal(t, "привет", thread[0]["content"])

	resp = performJSON(t, app, http.MethodGet, "/messages/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMarkConversationReadEndpoint(t *testing.T) {
	s := newTestServer()
	alice := registerUser(t, s, "alice@example.com", "alice")
	bob := registerUser(t, s, "bob@example.com", "bob")
	ctx := context.Background()
	s.store.SendMessage(ctx, bob.ID, alice.ID, "раз")
	s.store.SendMessage(ctx, bob.ID, alice.ID, "два")

	app := fiber.New()
	app.Post("/messages/:userId/read", asUser(alice.ID), s.MarkConversationRead)

	resp := performJSON(t, app, http.MethodPost, "/messages/"+bob.ID+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["marked_read"])

	resp = performJSON(t, app, http.MethodPost, "/messages/"+bob.ID+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 0, body["marked_read"])
}

func TestGetConversationsPreviews(t *testing.T) {
	s := newTestServer()
	alice := registerUser(t, s, "alice@example.com", "alice")
	bob := registerUser(t, s, "bob@example.com", "bob")
	ctx := context.Background()

	request, err := s.store.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = s.store.SetFriendRequestStatus(ctx, bob.ID, request.ID, "accepted")
	require.NoError(t, err)
	s.store.SendMessage(ctx, bob.ID, alice.ID, "ты тут?")

	app := fiber.New()
	app.Get("/conversations", asUser(alice.ID), s.GetConversations)

	resp := performJSON(t, app, http.MethodGet, "/conversations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var previews []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&previews))
	require.Len(t, previews, 1)

	friend := previews[0]["friend"].(map[string]any)
	assert.Equal(t, bob.ID, friend["id"])
	last := previews[0]["last_message"].(map[string]any)
	assert.Equal(t, "ты тут?", last["content"])
	assert.EqualValues(t, 1, previews[0]["unread_count"])
}
