package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"squad/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	s := newTestServer()
	user := registerUser(t, s, "kira@example.com", "kira")

	app := fiber.New()
	app.Get("/me", asUser(user.ID), s.GetMyProfile)

	resp := performJSON(t, app, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeBody(t, resp)
	assert.Equal(t, "kira", profile["username"])
	assert.Equal(t, models.DefaultProfileColor, profile["profile_color"])
	_, hasPassword := profile["password"]
	assert.False(t, hasPassword, "password must never serialize")
}

func TestUpdateMyProfile(t *testing.T) {
	s := newTestServer()
	user := registerUser(t, s, "kira@example.com", "kira")

	app := fiber.New()
	app.Put("/me", asUser(user.ID), s.UpdateMyProfile)

	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"display_name":  "Кира",
				"bio":           "живу норм",
				"profile_color": "#FF8800",
				"interests":     []string{"музыка", "игры"},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Bad Color",
			body:           map[string]any{"profile_color": "orange"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Username",
			body:           map[string]any{"username": "x"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performJSON(t, app, http.MethodPut, "/me", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				updated := decodeBody(t, resp)
				assert.Equal(t, "Кира", updated["display_name"])
				assert.Equal(t, "#FF8800", updated["profile_color"])
			}
		})
	}
}

func TestNowStatusEndpoints(t *testing.T) {
	s := newTestServer()
	user := registerUser(t, s, "kira@example.com", "kira")

	app := fiber.New()
	app.Put("/me/now-status", asUser(user.ID), s.SetNowStatus)
	app.Delete("/me/now-status", asUser(user.ID), s.ClearNowStatus)

	resp := performJSON(t, app, http.MethodPut, "/me/now-status",
		map[string]string{"type": "listening", "value": "кавабанга"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	status := updated["now_status"].(map[string]any)
	assert.Equal(t, "кавабанга", status["value"])

	resp = performJSON(t, app, http.MethodPut, "/me/now-status",
		map[string]string{"type": "listening"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "value is required")

	resp = performJSON(t, app, http.MethodPut, "/me/now-status",
		map[string]string{"type": "sleeping", "value": "zzz"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown type")

	resp = performJSON(t, app, http.MethodDelete, "/me/now-status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decodeBody(t, resp)
	_, has := cleared["now_status"]
	assert.False(t, has)
}

func TestSearchUsersExcludesViewer(t *testing.T) {
	s := newTestServer()
	kira := registerUser(t, s, "kira@example.com", "kira")
	registerUser(t, s, "kira2@example.com", "kirill")

	app := fiber.New()
	app.Get("/search", asUser(kira.ID), s.SearchUsers)

	resp := performJSON(t, app, http.MethodGet, "/search?q=kir", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var results []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, "kirill", results[0]["username"])

	resp = performJSON(t, app, http.MethodGet, "/search", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	assert.Empty(t, results)
}

func TestGetUserProfileCarriesFriendStatus(t *testing.T) {
	s := newTestServer()
	viewer := registerUser(t, s, "viewer@example.com", "viewer")
	subject := registerUser(t, s, "subject@example.com", "subject")
	_, err := s.store.SendFriendRequest(context.Background(), viewer.ID, subject.ID)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/users/:id", asUser(viewer.ID), s.GetUserProfile)

	resp := performJSON(t, app, http.MethodGet, "/users/"+subject.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, string(models.FriendStatusPending), body["friend_status"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "subject", user["username"])

	resp = performJSON(t, app, http.MethodGet, "/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
