package server

import (
	"strings"

	"squad/internal/models"
	"squad/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user id stored by AuthRequired.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// respondStoreError maps a store error onto its HTTP status.
func respondStoreError(c *fiber.Ctx, err error) error {
	observability.RecordErrorInContext(c.UserContext(), err)
	return models.RespondWithError(c, models.StatusForError(err), err)
}
