package store

import (
	"context"

	"squad/internal/models"
)

// SendMessage appends an unread message from senderID to receiverID.
func (s *Store) SendMessage(ctx context.Context, senderID, receiverID, content string) (models.Message, error) {
	if senderID == "" {
		return models.Message{}, models.NewUnauthenticatedError("sendMessage")
	}
	if senderID == receiverID {
		return models.Message{}, models.NewValidationError("Cannot message yourself")
	}
	if content == "" {
		return models.Message{}, models.NewValidationError("Content is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndex(receiverID) < 0 {
		return models.Message{}, models.NewNotFoundError("user", receiverID)
	}

	message := models.Message{
		ID:         s.newID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
		CreatedAt:  s.now(),
	}
	s.state.Messages = append(s.state.Messages, message)

	s.persist(ctx, "send_message")
	s.recordMessage(ctx, message)
	return message, nil
}

// MarkConversationRead marks every message sent by otherID to viewerID as
// read. It returns the number of messages flipped.
func (s *Store) MarkConversationRead(ctx context.Context, viewerID, otherID string) (int, error) {
	if viewerID == "" {
		return 0, models.NewUnauthenticatedError("markConversationRead")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flipped := 0
	for i := range s.state.Messages {
		m := &s.state.Messages[i]
		if m.SenderID == otherID && m.ReceiverID == viewerID && !m.Read {
			m.Read = true
			flipped++
			s.recordMessage(ctx, *m)
		}
	}
	if flipped > 0 {
		s.persist(ctx, "mark_conversation_read")
	}
	return flipped, nil
}
