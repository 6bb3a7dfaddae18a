package store

import (
	"context"

	"squad/internal/models"
)

// GetPost returns the post with the given id.
func (s *Store) GetPost(id string) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.postIndex(id)
	if i < 0 {
		return models.Post{}, models.NewNotFoundError("post", id)
	}
	return clonePost(s.state.Posts[i]), nil
}

// CreatePost creates a post authored by authorID and prepends it to the
// collection, keeping most-recent-first ordering.
func (s *Store) CreatePost(ctx context.Context, authorID, content, hashtag string) (models.Post, error) {
	if authorID == "" {
		return models.Post{}, models.NewUnauthenticatedError("createPost")
	}
	if content == "" {
		return models.Post{}, models.NewValidationError("Content is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndex(authorID) < 0 {
		return models.Post{}, models.NewNotFoundError("user", authorID)
	}

	post := models.Post{
		ID:        s.newID(),
		AuthorID:  authorID,
		Content:   content,
		Hashtag:   hashtag,
		Likes:     []string{},
		Reposts:   []string{},
		Comments:  []models.Comment{},
		CreatedAt: s.now(),
	}
	s.state.Posts = append([]models.Post{post}, s.state.Posts...)

	s.persist(ctx, "create_post")
	s.recordPost(ctx, post)
	return clonePost(post), nil
}

// ToggleLike flips userID's membership in the post's like set.
func (s *Store) ToggleLike(ctx context.Context, userID, postID string) (models.Post, error) {
	if userID == "" {
		return models.Post{}, models.NewUnauthenticatedError("toggleLike")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return models.Post{}, models.NewNotFoundError("post", postID)
	}

	p := &s.state.Posts[i]
	if p.Liked(userID) {
		likes := p.Likes[:0]
		for _, id := range p.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		p.Likes = likes
	} else {
		p.Likes = append(p.Likes, userID)
	}

	post := clonePost(*p)
	s.persist(ctx, "toggle_like")
	s.recordPost(ctx, post)
	return post, nil
}

// AddComment appends a comment to the post.
func (s *Store) AddComment(ctx context.Context, userID, postID, content string) (models.Post, error) {
	if userID == "" {
		return models.Post{}, models.NewUnauthenticatedError("addComment")
	}
	if content == "" {
		return models.Post{}, models.NewValidationError("Content is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return models.Post{}, models.NewNotFoundError("post", postID)
	}

	comment := models.Comment{
		ID:        s.newID(),
		PostID:    postID,
		AuthorID:  userID,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.state.Posts[i].Comments = append(s.state.Posts[i].Comments, comment)

	post := clonePost(s.state.Posts[i])
	s.persist(ctx, "add_comment")
	s.recordPost(ctx, post)
	return post, nil
}

// AddRepost adds userID to the post's repost set. Reposts are add-only;
// repeated calls are no-ops.
func (s *Store) AddRepost(ctx context.Context, userID, postID string) (models.Post, error) {
	if userID == "" {
		return models.Post{}, models.NewUnauthenticatedError("addRepost")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return models.Post{}, models.NewNotFoundError("post", postID)
	}

	p := &s.state.Posts[i]
	if p.Reposted(userID) {
		return clonePost(*p), nil
	}
	p.Reposts = append(p.Reposts, userID)

	post := clonePost(*p)
	s.persist(ctx, "add_repost")
	s.recordPost(ctx, post)
	return post, nil
}

// DeletePost removes the post entirely. Only the author may delete;
// engagement data is discarded with the post.
func (s *Store) DeletePost(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return models.NewUnauthenticatedError("deletePost")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return models.NewNotFoundError("post", postID)
	}
	if s.state.Posts[i].AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	s.state.Posts = append(s.state.Posts[:i], s.state.Posts[i+1:]...)

	s.persist(ctx, "delete_post")
	s.recordPostDeleted(ctx, postID)
	return nil
}
