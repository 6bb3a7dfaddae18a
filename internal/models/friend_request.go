package models

import (
	"time"
)

// FriendRequestStatus represents the status of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestPending indicates a request awaiting a decision.
	FriendRequestPending FriendRequestStatus = "pending"
	// FriendRequestAccepted indicates an accepted request (symmetric friendship).
	FriendRequestAccepted FriendRequestStatus = "accepted"
	// FriendRequestRejected indicates a rejected request. The record is kept.
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directed proposal between two users. At most one
// request exists for an unordered pair at a time; accepted and rejected
// are both terminal.
type FriendRequest struct {
	ID         string              `gorm:"primaryKey" json:"id"`
	FromUserID string              `gorm:"not null;index" json:"from_user_id"`
	ToUserID   string              `gorm:"not null;index" json:"to_user_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Involves reports whether the request connects the unordered pair {a, b}.
func (r *FriendRequest) Involves(a, b string) bool {
	return (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a)
}

// OtherParty returns the counterpart of userID in the request pair.
func (r *FriendRequest) OtherParty(userID string) string {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}

// FriendStatus is the derived relationship between a viewer and a subject.
type FriendStatus string

const (
	// FriendStatusNone means no effective record exists between the pair.
	FriendStatusNone FriendStatus = "none"
	// FriendStatusFriend means an accepted request connects the pair.
	FriendStatusFriend FriendStatus = "friend"
	// FriendStatusPending means the viewer sent a request still awaiting a decision.
	FriendStatusPending FriendStatus = "pending"
	// FriendStatusFollower means the subject sent a request the viewer has not decided.
	FriendStatusFollower FriendStatus = "follower"
)
