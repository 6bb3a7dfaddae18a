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

func TestCreatePost(t *testing.T) {
	s := newTestServer()
	author := registerUser(t, s, "author@example.com", "author")
	app := fiber.New()
	app.Post("/posts", asUser(author.ID), s.CreatePost)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           map[string]string{"content": "привет всем", "hashtag": "знакомство"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Without Hashtag",
			body:           map[string]string{"content": "просто пост"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty Content",
			body:           map[string]string{"content": "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Hashtag With Leading Hash",
			body:           map[string]string{"content": "пост", "hashtag": "#тег"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performJSON(t, app, http.MethodPost, "/posts", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				post := decodeBody(t, resp)
				assert.Equal(t, author.ID, post["author_id"])
				assert.Equal(t, tt.body["content"], post["content"])
			}
		})
	}
}

func TestGetFeedTabs(t *testing.T) {
	s := newTestServer()
	viewer := registerUser(t, s, "viewer@example.com", "viewer")
	ctx := context.Background()
	_, err := s.store.CreatePost(ctx, viewer.ID, "мой пост", "")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/feed", asUser(viewer.ID), s.GetFeed)

	t.Run("Friends Tab Default", func(t *testing.T) {
		resp := performJSON(t, app, http.MethodGet, "/feed", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
		assert.Len(t, posts, 1)
	})

	t.Run("Popular Tab", func(t *testing.T) {
		resp := performJSON(t, app, http.MethodGet, "/feed?tab=popular", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Unknown Tab", func(t *testing.T) {
		resp := performJSON(t, app, http.MethodGet, "/feed?tab=spicy", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestToggleLikeRoundTrip(t *testing.T) {
	s := newTestServer()
	author := registerUser(t, s, "author@example.com", "author")
	fan := registerUser(t, s, "fan@example.com", "fan")
	post, err := s.store.CreatePost(context.Background(), author.ID, "лайкни", "")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/posts/:id/like", asUser(fan.ID), s.ToggleLike)

	resp := performJSON(t, app, http.MethodPost, "/posts/"+post.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	liked := decodeBody(t, resp)
	assert.Len(t, liked["likes"], 1)

	resp = performJSON(t, app, http.MethodPost, "/posts/"+post.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unliked := decodeBody(t, resp)
	assert.Empty(t, unliked["likes"])

	resp = performJSON(t, app, http.MethodPost, "/posts/ghost/like", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateComment(t *testing.T) {
	s := newTestServer()
	author := registerUser(t, s, "author@example.com", "author")
	post, err := s.store.CreatePost(context.Background(), author.ID, "обсуждаем", "")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/posts/:id/comments", asUser(author.ID), s.CreateComment)

	resp := performJSON(t, app, http.MethodPost, "/posts/"+post.ID+"/comments",
		map[string]string{"content": "первый"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["comments"], 1)

	resp = performJSON(t, app, http.MethodPost, "/posts/"+post.ID+"/comments",
		map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeletePostAuthorOnly(t *testing.T) {
	s := newTestServer()
	author := registerUser(t, s, "author@example.com", "author")
	stranger := registerUser(t, s, "stranger@example.com", "stranger")
	post, err := s.store.CreatePost(context.Background(), author.ID, "удаляемый", "")
	require.NoError(t, err)

	app := fiber.New()
	app.Delete("/mine/:id", asUser(author.ID), s.DeletePost)
	app.Delete("/theirs/:id", asUser(stranger.ID), s.DeletePost)

	resp := performJSON(t, app, http.MethodDelete, "/theirs/"+post.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = performJSON(t, app, http.MethodDelete, "/mine/"+post.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = s.store.GetPost(post.ID)
	assert.Error(t, err)
}

func TestGetTrendingAndHashtagPosts(t *testing.T) {
	s := newTestServer()
	author := registerUser(t, s, "author@example.com", "author")
	ctx := context.Background()
	s.store.CreatePost(ctx, author.ID, "катка", "игры")
	s.store.CreatePost(ctx, author.ID, "ещё катка", "игры")
	s.store.CreatePost(ctx, author.ID, "альбом", "музыка")

	app := fiber.New()
	app.Get("/trending", s.GetTrending)
	app.Get("/posts/hashtag/:tag", s.GetPostsByHashtag)

	resp := performJSON(t, app, http.MethodGet, "/trending?limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trending []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trending))
	require.Len(t, trending, 1)
	assert.Equal(t, "игры", trending[0]["hashtag"])
	assert.EqualValues(t, 2, trending[0]["count"])

	resp = performJSON(t, app, http.MethodGet, "/posts/hashtag/игры", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	assert.Len(t, posts, 2)
}
