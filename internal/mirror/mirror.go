package mirror

import (
	"context"

	"squad/internal/models"
	"squad/internal/observability"
	"squad/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mirror implements store.ChangeRecorder over a GORM connection. Every
// event is a single upsert or delete; failures are counted and logged,
// never surfaced, because the in-memory store stays authoritative.
type Mirror struct {
	db *gorm.DB
}

// New returns a Mirror over the given connection.
func New(db *gorm.DB) *Mirror {
	return &Mirror{db: db}
}

var _ store.ChangeRecorder = (*Mirror)(nil)

func (m *Mirror) upsert(ctx context.Context, table string, value interface{}) {
	ctx, span := observability.TraceMirrorOperation(ctx, "upsert", table)
	defer span.End()

	err := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(value).Error
	if err != nil {
		span.RecordError(err)
		observability.MirrorWriteErrors.WithLabelValues(table).Inc()
		observability.GlobalLogger.ErrorContext(ctx, "mirror write failed",
			"table", table, "error", err.Error())
	}
}

// UserSaved upserts a user row.
func (m *Mirror) UserSaved(ctx context.Context, user models.User) {
	m.upsert(ctx, "users", &user)
}

// PostSaved upserts the post row and its comment rows. Comments are
// append-only so stale rows never need removal.
func (m *Mirror) PostSaved(ctx context.Context, post models.Post) {
	comments := post.Comments
	post.Comments = nil
	m.upsert(ctx, "posts", &post)
	for i := range comments {
		m.upsert(ctx, "comments", &comments[i])
	}
}

// PostDeleted removes the post row and its comments.
func (m *Mirror) PostDeleted(ctx context.Context, postID string) {
	ctx, span := observability.TraceMirrorOperation(ctx, "delete", "posts")
	defer span.End()

	if err := m.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		span.RecordError(err)
		observability.MirrorWriteErrors.WithLabelValues("comments").Inc()
	}
	if err := m.db.WithContext(ctx).Delete(&models.Post{ID: postID}).Error; err != nil {
		span.RecordError(err)
		observability.MirrorWriteErrors.WithLabelValues("posts").Inc()
	}
}

// FriendRequestSaved upserts a friend request row.
func (m *Mirror) FriendRequestSaved(ctx context.Context, request models.FriendRequest) {
	m.upsert(ctx, "friend_requests", &request)
}

// MessageSaved upserts a message row.
func (m *Mirror) MessageSaved(ctx context.Context, message models.Message) {
	m.upsert(ctx, "messages", &message)
}
