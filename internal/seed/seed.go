package seed

import (
	"context"
	"fmt"

	"squad/internal/models"
	"squad/internal/observability"
	"squad/internal/store"

	"go.opentelemetry.io/otel/attribute"
)

// Plan controls the size of the generated demo graph.
type Plan struct {
	Users           int
	PostsPerUser    int
	MessagesPerPair int
	CommentsPerPost int
}

// DefaultPlan is the preset used by the seed command.
var DefaultPlan = Plan{
	Users:           8,
	PostsPerUser:    3,
	MessagesPerPair: 4,
	CommentsPerPost: 2,
}

// Run populates the store with a connected demo graph: users with
// interests and now-statuses, hashtagged posts with likes and comments,
// friend requests in every state, and a few message threads. The session
// is logged out afterwards so seeding leaves no current user behind.
func Run(ctx context.Context, s *store.Store, plan Plan, opts Options) (err error) {
	if plan.Users < 4 {
		return fmt.Errorf("seed plan needs at least 4 users, got %d", plan.Users)
	}

	span, ctx := observability.NewSpan(ctx, "seed.run")
	span.AddAttributes(
		attribute.Int("seed.users", plan.Users),
		attribute.Int("seed.posts_per_user", plan.PostsPerUser),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	f := NewFactory(s, opts)

	users := make([]models.User, 0, plan.Users)
	for i := 0; i < plan.Users; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}

	// A few users advertise what they are up to right now.
	nowStatuses := []models.NowStatus{
		{Type: models.NowStatusListening, Value: "кавабанга"},
		{Type: models.NowStatusPlaying, Value: "доту"},
		{Type: models.NowStatusMood, Value: "в потоке"},
	}
	for i, status := range nowStatuses {
		if i >= len(users) {
			break
		}
		if _, err := s.SetNowStatus(ctx, users[i].ID, status); err != nil {
			return fmt.Errorf("seed now status: %w", err)
		}
	}

	posts := make([]models.Post, 0, plan.Users*plan.PostsPerUser)
	for _, user := range users {
		for i := 0; i < plan.PostsPerUser; i++ {
			post, err := f.CreatePost(ctx, user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	// Engagement: each user likes roughly a third of the posts and
	// comments on a couple of them.
	for _, user := range users {
		for _, post := range posts {
			if post.AuthorID == user.ID {
				continue
			}
			if f.rand.Intn(3) == 0 {
				if _, err := f.CreateLike(ctx, user, post); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}
	for i, post := range posts {
		for c := 0; c < plan.CommentsPerPost; c++ {
			commenter := users[(i+c+1)%len(users)]
			if commenter.ID == post.AuthorID {
				continue
			}
			if _, err := f.CreateComment(ctx, commenter, post); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}
	// A couple of reposts so the popular feed has every signal.
	for i := 0; i < 2 && i < len(posts); i++ {
		reposter := users[(i+3)%len(users)]
		if reposter.ID == posts[i].AuthorID {
			continue
		}
		if _, err := s.AddRepost(ctx, reposter.ID, posts[i].ID); err != nil {
			return fmt.Errorf("seed repost: %w", err)
		}
	}

	// Friend graph with every request state represented: a chain of
	// accepted friendships, one pending request, one rejected.
	for i := 0; i+1 < len(users); i += 2 {
		if _, err := f.CreateFriendRequest(ctx, users[i], users[i+1], models.FriendRequestAccepted); err != nil {
			return fmt.Errorf("seed friendship: %w", err)
		}
	}
	if _, err := f.CreateFriendRequest(ctx, users[0], users[2], models.FriendRequestPending); err != nil {
		return fmt.Errorf("seed pending request: %w", err)
	}
	if _, err := f.CreateFriendRequest(ctx, users[1], users[3], models.FriendRequestRejected); err != nil {
		return fmt.Errorf("seed rejected request: %w", err)
	}

	// Message threads between the accepted pairs.
	for i := 0; i+1 < len(users); i += 2 {
		a, b := users[i], users[i+1]
		for m := 0; m < plan.MessagesPerPair; m++ {
			sender, receiver := a, b
			if m%2 == 1 {
				sender, receiver = b, a
			}
			if _, err := f.CreateMessage(ctx, sender, receiver); err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
		}
	}

	s.Logout(ctx)
	return nil
}
