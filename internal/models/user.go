// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NowStatusType enumerates the kinds of "now status" a user can set.
type NowStatusType string

const (
	// NowStatusListening indicates the user is listening to something.
	NowStatusListening NowStatusType = "listening"
	// NowStatusWatching indicates the user is watching something.
	NowStatusWatching NowStatusType = "watching"
	// NowStatusPlaying indicates the user is playing something.
	NowStatusPlaying NowStatusType = "playing"
	// NowStatusMood indicates a free-form mood.
	NowStatusMood NowStatusType = "mood"
)

// ValidNowStatusType reports whether t is one of the known now-status kinds.
func ValidNowStatusType(t NowStatusType) bool {
	switch t {
	case NowStatusListening, NowStatusWatching, NowStatusPlaying, NowStatusMood:
		return true
	}
	return false
}

// NowStatus is a short-lived activity annotation on a user profile.
type NowStatus struct {
	Type  NowStatusType `json:"type"`
	Value string        `json:"value"`
}

// DefaultProfileColor is assigned to users created at registration.
const DefaultProfileColor = "#6366F1"

// DefaultDisplayName is assigned when reconciling a provider identity
// that has no local record and no usable metadata.
const DefaultDisplayName = "НоуНейм"

// User represents a member of the network.
type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Username     string     `gorm:"unique;not null" json:"username"`
	DisplayName  string     `json:"display_name"`
	Password     string     `gorm:"not null" json:"-"`
	Avatar       string     `json:"avatar,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	ProfileColor string     `json:"profile_color"`
	Interests    []string   `gorm:"serializer:json" json:"interests"`
	IsOnline     bool       `json:"is_online"`
	NowStatus    *NowStatus `gorm:"embedded;embeddedPrefix:now_status_" json:"now_status,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserUpdate carries the mutable profile fields for a partial update.
// Nil fields are left untouched.
type UserUpdate struct {
	Username     *string    `json:"username,omitempty"`
	DisplayName  *string    `json:"display_name,omitempty"`
	Avatar       *string    `json:"avatar,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	ProfileColor *string    `json:"profile_color,omitempty"`
	Interests    *[]string  `json:"interests,omitempty"`
	NowStatus    *NowStatus `json:"now_status,omitempty"`
}
