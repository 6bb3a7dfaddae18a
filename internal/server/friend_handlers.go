package server

import (
	"errors"

	"squad/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	return c.JSON(s.store.Friends(currentUserID(c)))
}

// GetFollowers handles GET /api/friends/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	return c.JSON(s.store.Followers(currentUserID(c)))
}

// SendFriendRequest handles POST /api/friends/requests/:userId. Any
// existing request for the pair, rejected ones included, blocks a new one;
// the conflict response carries the existing record so clients can tell
// which state they are in.
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	request, err := s.store.SendFriendRequest(c.UserContext(), currentUserID(c), c.Params("userId"))
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   appErr.Message,
				"code":    appErr.Code,
				"request": request,
			})
		}
		return respondStoreError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	return s.decideFriendRequest(c, models.FriendRequestAccepted)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	return s.decideFriendRequest(c, models.FriendRequestRejected)
}

func (s *Server) decideFriendRequest(c *fiber.Ctx, status models.FriendRequestStatus) error {
	request, err := s.store.SetFriendRequestStatus(c.UserContext(),
		currentUserID(c), c.Params("requestId"), status)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(request)
}

// GetFriendStatus handles GET /api/friends/status/:userId
func (s *Server) GetFriendStatus(c *fiber.Ctx) error {
	subjectID := c.Params("userId")
	if _, err := s.store.GetUser(subjectID); err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": s.store.FriendStatusBetween(currentUserID(c), subjectID),
	})
}
