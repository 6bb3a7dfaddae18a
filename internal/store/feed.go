package store

import (
	"sort"

	"squad/internal/models"
)

// FriendsFeed returns posts authored by userID or its friends, most
// recent first.
func (s *Store) FriendsFeed(userID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends := s.friendIDSetLocked(userID)

	var out []models.Post
	for _, p := range s.state.Posts {
		if p.AuthorID == userID || friends[p.AuthorID] {
			out = append(out, clonePost(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// PopularFeed returns all posts ordered by engagement score descending.
// The sort is stable so posts with equal scores keep the collection's
// original order.
func (s *Store) PopularFeed() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, len(s.state.Posts))
	for i, p := range s.state.Posts {
		out[i] = clonePost(p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// PostsByHashtag returns posts carrying exactly the given hashtag, in the
// collection's most-recent-first order.
func (s *Store) PostsByHashtag(tag string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Post
	for _, p := range s.state.Posts {
		if p.Hashtag == tag {
			out = append(out, clonePost(p))
		}
	}
	return out
}
