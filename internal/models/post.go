package models

import (
	"time"
)

// Post represents a feed post with its engagement sets.
// Likes and Reposts hold user IDs; Comments are append-only.
type Post struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	AuthorID  string    `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Hashtag   string    `gorm:"index" json:"hashtag,omitempty"`
	Likes     []string  `gorm:"serializer:json" json:"likes"`
	Reposts   []string  `gorm:"serializer:json" json:"reposts"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// Score is the popularity ranking value: likes, comments, and reposts
// weighted equally.
func (p *Post) Score() int {
	return len(p.Likes) + len(p.Comments) + len(p.Reposts)
}

// Liked reports whether userID is in the post's like set.
func (p *Post) Liked(userID string) bool {
	return containsID(p.Likes, userID)
}

// Reposted reports whether userID is in the post's repost set.
func (p *Post) Reposted(userID string) bool {
	return containsID(p.Reposts, userID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Comment represents a comment on a post.
type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	PostID    string    `gorm:"not null;index" json:"post_id"`
	AuthorID  string    `gorm:"not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
