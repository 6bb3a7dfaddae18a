package server

import (
	"squad/internal/models"
	"squad/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?tab=friends|popular
func (s *Server) GetFeed(c *fiber.Ctx) error {
	tab := c.Query("tab", "friends")
	switch tab {
	case "friends":
		return c.JSON(s.store.FriendsFeed(currentUserID(c)))
	case "popular":
		return c.JSON(s.store.PopularFeed())
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown feed tab"))
	}
}

// GetTrending handles GET /api/trending?limit=N
func (s *Server) GetTrending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	return c.JSON(s.store.TrendingHashtags(limit))
}

// GetPostsByHashtag handles GET /api/posts/hashtag/:tag
func (s *Server) GetPostsByHashtag(c *fiber.Ctx) error {
	return c.JSON(s.store.PostsByHashtag(c.Params("tag")))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.store.GetPost(c.Params("id"))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		Hashtag string `json:"hashtag"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidatePostContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateHashtag(req.Hashtag); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post, err := s.store.CreatePost(c.UserContext(), currentUserID(c), req.Content, req.Hashtag)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ToggleLike handles POST /api/posts/:id/like. The same call likes and
// unlikes; the response is the updated post.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	post, err := s.store.ToggleLike(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(post)
}

// Repost handles POST /api/posts/:id/repost. Reposting twice is a no-op.
func (s *Server) Repost(c *fiber.Ctx) error {
	post, err := s.store.AddRepost(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(post)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post, err := s.store.AddComment(c.UserContext(), currentUserID(c), c.Params("id"), req.Content)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete;
// likes, reposts, and comments go with the post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.store.DeletePost(c.UserContext(), currentUserID(c), c.Params("id")); err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}
