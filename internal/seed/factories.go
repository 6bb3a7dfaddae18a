// Package seed provides helpers to create test and demo data for the
// application state. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"squad/internal/models"
	"squad/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds domain entities through the store so every seeded
// mutation flows through the same snapshot and mirror path as real
// traffic. It is a thin helper used by seed presets and tests.
type Factory struct {
	store *store.Store
	opts  Options
	rand  *rand.Rand
}

// Options tunes what the factory generates.
type Options struct {
	// MaxDays caps how far back generated timestamps are spread.
	MaxDays int
}

// NewFactory creates a new Factory bound to the provided store.
func NewFactory(s *store.Store, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	// #nosec G404: acceptable for seeding
	return &Factory{store: s, opts: opts, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var seedInterests = []string{
	"музыка", "игры", "кино", "аниме", "спорт", "код", "книги", "арт",
}

var seedHashtags = []string{
	"музыка", "игры", "кино", "мемы", "аниме", "код",
}

// CreateUser registers a sample user through the store. Optional override
// functions may modify the generated profile before it is applied.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.UserUpdate)) (models.User, error) {
	email := gofakeit.Email()
	username := gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999))

	user, err := f.store.Register(ctx, email, "password123", username)
	if err != nil {
		return models.User{}, err
	}

	interests := make([]string, 0, 3)
	for _, idx := range f.rand.Perm(len(seedInterests))[:3] {
		interests = append(interests, seedInterests[idx])
	}
	displayName := gofakeit.FirstName()
	bio := gofakeit.Sentence(10)
	update := models.UserUpdate{
		DisplayName: &displayName,
		Bio:         &bio,
		Interests:   &interests,
	}
	if f.rand.Intn(3) == 0 {
		avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
		update.Avatar = &avatar
	}
	for _, override := range overrides {
		override(&update)
	}
	return f.store.UpdateUser(ctx, user.ID, update)
}

// CreatePost creates a post for the given user, hashtagged half the time.
func (f *Factory) CreatePost(ctx context.Context, author models.User, overrides ...func(*models.Post)) (models.Post, error) {
	content := gofakeit.Sentence(f.rand.Intn(12) + 4)
	hashtag := ""
	if f.rand.Intn(2) == 0 {
		hashtag = seedHashtags[f.rand.Intn(len(seedHashtags))]
	}

	post, err := f.store.CreatePost(ctx, author.ID, content, hashtag)
	if err != nil {
		return models.Post{}, err
	}
	for _, override := range overrides {
		override(&post)
	}
	return post, nil
}

// CreateComment adds a generated comment from user on post.
func (f *Factory) CreateComment(ctx context.Context, user models.User, post models.Post) (models.Post, error) {
	return f.store.AddComment(ctx, user.ID, post.ID, gofakeit.Sentence(8))
}

// CreateLike toggles a like from user on post.
func (f *Factory) CreateLike(ctx context.Context, user models.User, post models.Post) (models.Post, error) {
	return f.store.ToggleLike(ctx, user.ID, post.ID)
}

// CreateFriendRequest sends a request and optionally settles it.
func (f *Factory) CreateFriendRequest(ctx context.Context, from, to models.User, status models.FriendRequestStatus) (models.FriendRequest, error) {
	request, err := f.store.SendFriendRequest(ctx, from.ID, to.ID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if status == models.FriendRequestPending {
		return request, nil
	}
	return f.store.SetFriendRequestStatus(ctx, to.ID, request.ID, status)
}

// CreateMessage sends a generated direct message between two users.
func (f *Factory) CreateMessage(ctx context.Context, sender, receiver models.User) (models.Message, error) {
	return f.store.SendMessage(ctx, sender.ID, receiver.ID, gofakeit.Sentence(10))
}
