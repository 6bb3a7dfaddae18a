package server

import (
	"squad/internal/models"
	"squad/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetConversation handles GET /api/messages/:userId: the full thread with
// one other user, oldest first.
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID := c.Params("userId")
	if _, err := s.store.GetUser(otherID); err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(s.store.ConversationBetween(currentUserID(c), otherID))
}

// SendMessage handles POST /api/messages/:userId
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateMessageContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	message, err := s.store.SendMessage(c.UserContext(),
		currentUserID(c), c.Params("userId"), req.Content)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkConversationRead handles POST /api/messages/:userId/read: marks
// everything the other user sent to the viewer as read.
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	count, err := s.store.MarkConversationRead(c.UserContext(),
		currentUserID(c), c.Params("userId"))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(fiber.Map{
		"marked_read": count,
	})
}

// GetConversations handles GET /api/conversations: one preview per friend
// with message history, with last message and unread count.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	return c.JSON(s.store.ConversationPreviews(currentUserID(c)))
}
