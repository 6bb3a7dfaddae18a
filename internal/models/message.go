package models

import (
	"time"
)

// Message is a direct message between two users. Content is immutable
// after creation; only the read flag may change.
type Message struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SenderID   string    `gorm:"not null;index" json:"sender_id"`
	ReceiverID string    `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Between reports whether the message belongs to the pairwise thread {a, b}.
func (m *Message) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// ConversationPreview summarizes the thread with one friend for the
// conversation list: the friend, the most recent message in either
// direction, and how many of their messages the viewer has not read.
type ConversationPreview struct {
	Friend      User    `json:"friend"`
	LastMessage Message `json:"last_message"`
	UnreadCount int     `json:"unread_count"`
}

// HashtagCount is one entry in the trending ranking.
type HashtagCount struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}
