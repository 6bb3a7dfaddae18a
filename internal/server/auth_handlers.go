package server

import (
	"squad/internal/auth"
	"squad/internal/models"
	"squad/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Validate input
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	// Validate username format
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Validate email format
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Validate password strength
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	user, err := s.store.Register(c.UserContext(), req.Email, req.Password, req.Username)
	if err != nil {
		return respondStoreError(c, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login. Credential verification is the
// provider's job; the store only resolves the email to a known member.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	user, err := s.store.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		// A miss is reported as bad credentials, not as a missing resource.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. Collections survive; only the
// session pointer clears.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.store.Logout(c.UserContext())
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// BeginCallback handles POST /api/auth/callback/begin. It opens a pending
// provider round trip and tells the client where to send the user.
func (s *Server) BeginCallback(c *fiber.Ctx) error {
	var req struct {
		Transport string `json:"transport"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	cb := s.callbacks.Begin(auth.Transport(req.Transport))
	return c.Status(fiber.StatusCreated).JSON(cb)
}

// CompleteCallback handles POST /api/auth/callback: the provider's return
// leg. A successful callback reconciles the identity into the store and
// issues a session token; a failed one records the reason. Either way the
// response carries the redirect target for the client.
func (s *Server) CompleteCallback(c *fiber.Ctx) error {
	var req struct {
		CallbackID string         `json:"callback_id"`
		Identity   *auth.Identity `json:"identity"`
		Error      string         `json:"error"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CallbackID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("callback_id is required"))
	}

	if req.Error != "" || req.Identity == nil {
		reason := req.Error
		if reason == "" {
			reason = "provider returned no identity"
		}
		cb, err := s.callbacks.Fail(req.CallbackID, reason)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError(err.Error()))
		}
		return c.JSON(fiber.Map{
			"callback": cb,
			"redirect": cb.RedirectTarget(),
		})
	}

	if req.Identity.ID == "" || req.Identity.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Identity id and email are required"))
	}

	user, err := s.store.ReconcileIdentity(c.UserContext(),
		req.Identity.ID, req.Identity.Email, req.Identity.Metadata)
	if err != nil {
		// The provider round trip fails as a unit when reconciliation does.
		if cb, failErr := s.callbacks.Fail(req.CallbackID, err.Error()); failErr == nil {
			return c.Status(models.StatusForError(err)).JSON(fiber.Map{
				"callback": cb,
				"redirect": cb.RedirectTarget(),
			})
		}
		return respondStoreError(c, err)
	}

	cb, err := s.callbacks.Succeed(req.CallbackID, *req.Identity)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError(err.Error()))
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"callback": cb,
		"redirect": cb.RedirectTarget(),
		"token":    token,
		"user":     user,
	})
}

// GetCallback handles GET /api/auth/callback/:id. Popup transports poll
// this until the phase settles.
func (s *Server) GetCallback(c *fiber.Ctx) error {
	cb, ok := s.callbacks.Get(c.Params("id"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("callback", c.Params("id")))
	}
	return c.JSON(fiber.Map{
		"callback": cb,
		"redirect": cb.RedirectTarget(),
	})
}
