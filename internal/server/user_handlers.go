package server

import (
	"squad/internal/models"
	"squad/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.store.GetUser(currentUserID(c))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req models.UserUpdate
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}
	if req.Bio != nil {
		if err := validation.ValidateBio(*req.Bio); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}
	if req.ProfileColor != nil {
		if err := validation.ValidateProfileColor(*req.ProfileColor); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	user, err := s.store.UpdateUser(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(user)
}

// SetNowStatus handles PUT /api/users/me/now-status
func (s *Server) SetNowStatus(c *fiber.Ctx) error {
	var req models.NowStatus
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Value == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Now status value is required"))
	}

	user, err := s.store.SetNowStatus(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(user)
}

// ClearNowStatus handles DELETE /api/users/me/now-status
func (s *Server) ClearNowStatus(c *fiber.Ctx) error {
	user, err := s.store.ClearNowStatus(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?q=. The viewer is excluded
// from their own results.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.JSON([]models.User{})
	}

	viewerID := currentUserID(c)
	matches := s.store.SearchUsers(query)
	results := make([]models.User, 0, len(matches))
	for _, u := range matches {
		if u.ID == viewerID {
			continue
		}
		results = append(results, u)
	}
	return c.JSON(results)
}

// GetUserProfile handles GET /api/users/:id. The response carries the
// viewer's relationship to the profile so clients can render the right
// friend button state.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.store.GetUser(c.Params("id"))
	if err != nil {
		return respondStoreError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":          user,
		"friend_status": s.store.FriendStatusBetween(currentUserID(c), user.ID),
	})
}
