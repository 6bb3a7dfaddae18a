package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer()
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	resp := performJSON(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "up", body["status"])

	resp = performJSON(t, app, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "disabled", checks["snapshot"], "no snapshot backend configured")
}

func TestAuthRequiredGuardsRoutes(t *testing.T) {
	s := newTestServer()
	user := registerUser(t, s, "kira@example.com", "kira")
	token, err := s.tokens.Issue(user.ID, user.Username)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", s.AuthRequired(), s.GetMyProfile)

	t.Run("Missing Token", func(t *testing.T) {
		resp := performJSON(t, app, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		req := newAuthedRequest(http.MethodGet, "/me", "not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Token", func(t *testing.T) {
		req := newAuthedRequest(http.MethodGet, "/me", token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func newAuthedRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
