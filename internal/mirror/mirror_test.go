package mirror

import (
	"context"
	"testing"
	"time"

	"squad/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestMirror(t *testing.T) (*Mirror, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.FriendRequest{},
		&models.Message{},
	))
	return New(db), db
}

func TestUserSavedUpserts(t *testing.T) {
	m, db := newTestMirror(t)
	ctx := context.Background()

	user := models.User{ID: "u1", Email: "kira@example.com", Username: "kira"}
	m.UserSaved(ctx, user)

	user.Bio = "обновлено"
	m.UserSaved(ctx, user)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", "u1").Error)
	assert.Equal(t, "обновлено", stored.Bio)
}

func TestPostSavedWritesComments(t *testing.T) {
	m, db := newTestMirror(t)
	ctx := context.Background()

	post := models.Post{
		ID:        "p1",
		AuthorID:  "u1",
		Content:   "привет",
		Likes:     []string{"u2"},
		CreatedAt: time.Now(),
		Comments: []models.Comment{
			{ID: "c1", PostID: "p1", AuthorID: "u2", Content: "огонь"},
		},
	}
	m.PostSaved(ctx, post)

	var storedPost models.Post
	require.NoError(t, db.First(&storedPost, "id = ?", "p1").Error)
	assert.Equal(t, []string{"u2"}, storedPost.Likes)

	var commentCount int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.EqualValues(t, 1, commentCount)
}

func TestPostDeletedRemovesPostAndComments(t *testing.T) {
	m, db := newTestMirror(t)
	ctx := context.Background()

	m.PostSaved(ctx, models.Post{
		ID:       "p1",
		AuthorID: "u1",
		Content:  "привет",
		Comments: []models.Comment{
			{ID: "c1", PostID: "p1", AuthorID: "u2", Content: "раз"},
			{ID: "c2", PostID: "p1", AuthorID: "u2", Content: "два"},
		},
	})

	m.PostDeleted(ctx, "p1")

	var postCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, commentCount)
}

func TestFriendRequestAndMessageSaved(t *testing.T) {
	m, db := newTestMirror(t)
	ctx := context.Background()

	request := models.FriendRequest{
		ID: "r1", FromUserID: "u1", ToUserID: "u2",
		Status: models.FriendRequestPending, CreatedAt: time.Now(),
	}
	m.FriendRequestSaved(ctx, request)

	request.Status = models.FriendRequestAccepted
	m.FriendRequestSaved(ctx, request)

	var stored models.FriendRequest
	require.NoError(t, db.First(&stored, "id = ?", "r1").Error)
	assert.Equal(t, models.FriendRequestAccepted, stored.Status)

	m.MessageSaved(ctx, models.Message{
		ID: "m1", SenderID: "u1", ReceiverID: "u2", Content: "привет",
	})
	var messageCount int64
	require.NoError(t, db.Model(&models.Message{}).Count(&messageCount).Error)
	assert.EqualValues(t, 1, messageCount)
}

func TestWriteFailureDoesNotPanic(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// No migrations: every write hits a missing table.
	m := New(db)

	assert.NotPanics(t, func() {
		m.UserSaved(context.Background(), models.User{ID: "u1"})
		m.PostDeleted(context.Background(), "p1")
	})
}
