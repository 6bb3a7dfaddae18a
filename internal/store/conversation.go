package store

import (
	"sort"

	"squad/internal/models"
)

// ConversationBetween returns the pairwise thread between viewerID and
// otherID in ascending timestamp order, regardless of how messages were
// inserted into the collection.
func (s *Store) ConversationBetween(viewerID, otherID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Message
	for _, m := range s.state.Messages {
		if m.Between(viewerID, otherID) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ConversationPreviews returns, for each of the viewer's friends that has a
// message thread, the most recent message in either direction and the count
// of the friend's messages the viewer has not read. Friends without
// messages have no entry.
func (s *Store) ConversationPreviews(viewerID string) []models.ConversationPreview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ConversationPreview
	for _, friend := range s.friendsLocked(viewerID) {
		var last *models.Message
		unread := 0
		for i, m := range s.state.Messages {
			if !m.Between(viewerID, friend.ID) {
				continue
			}
			if last == nil || m.CreatedAt.After(last.CreatedAt) {
				last = &s.state.Messages[i]
			}
			if m.SenderID == friend.ID && !m.Read {
				unread++
			}
		}
		if last == nil {
			continue
		}
		out = append(out, models.ConversationPreview{
			Friend:      friend,
			LastMessage: *last,
			UnreadCount: unread,
		})
	}
	return out
}
