// Package store holds the in-memory entity collections that are the
// authoritative session state, and the derived views computed from them.
// Mutations are serialized through a single lock; derivations only ever
// observe fully applied state.
package store

import (
	"context"
	"sync"
	"time"

	"squad/internal/models"
	"squad/internal/observability"

	"github.com/google/uuid"
)

// State is the complete serializable contents of the store. CurrentUserID
// is the only per-session pointer; the live user record always lives in
// Users and is dereferenced on demand.
type State struct {
	Users          []models.User          `json:"users"`
	Posts          []models.Post          `json:"posts"`
	FriendRequests []models.FriendRequest `json:"friend_requests"`
	Messages       []models.Message       `json:"messages"`
	CurrentUserID  string                 `json:"current_user_id"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Users:          make([]models.User, len(s.Users)),
		Posts:          make([]models.Post, len(s.Posts)),
		FriendRequests: append([]models.FriendRequest(nil), s.FriendRequests...),
		Messages:       append([]models.Message(nil), s.Messages...),
		CurrentUserID:  s.CurrentUserID,
	}
	for i, u := range s.Users {
		out.Users[i] = cloneUser(u)
	}
	for i, p := range s.Posts {
		out.Posts[i] = clonePost(p)
	}
	return out
}

func cloneUser(u models.User) models.User {
	u.Interests = append([]string(nil), u.Interests...)
	if u.NowStatus != nil {
		ns := *u.NowStatus
		u.NowStatus = &ns
	}
	return u
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]string(nil), p.Likes...)
	p.Reposts = append([]string(nil), p.Reposts...)
	p.Comments = append([]models.Comment(nil), p.Comments...)
	return p
}

// SnapshotWriter persists the whole state. Implementations must treat the
// write as a full overwrite of the previous snapshot.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, state State) error
}

// ChangeRecorder receives entity-level mutation events for write-through
// mirroring. Recording is best-effort; the store never fails a mutation
// because a recorder did.
type ChangeRecorder interface {
	UserSaved(ctx context.Context, user models.User)
	PostSaved(ctx context.Context, post models.Post)
	PostDeleted(ctx context.Context, postID string)
	FriendRequestSaved(ctx context.Context, request models.FriendRequest)
	MessageSaved(ctx context.Context, message models.Message)
}

// Store owns the entity collections for the lifetime of the process.
type Store struct {
	mu    sync.RWMutex
	state State

	now      func() time.Time
	newID    func() string
	snapshot SnapshotWriter
	recorder ChangeRecorder
	log      *observability.StoreLogger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source (used by tests and the seeder).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the entity id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithSnapshot attaches a snapshot writer, invoked after every mutation.
func WithSnapshot(w SnapshotWriter) Option {
	return func(s *Store) { s.snapshot = w }
}

// WithRecorder attaches a change recorder for relational write-through.
func WithRecorder(r ChangeRecorder) Option {
	return func(s *Store) { s.recorder = r }
}

// New returns a Store initialized with the given state.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state: initial.Clone(),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
		log:   observability.NewStoreLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// persist writes the full snapshot after a mutation. Failures are counted
// and logged but never surfaced to the caller; the in-memory state is the
// source of truth and the snapshot is a session-continuity side effect.
func (s *Store) persist(ctx context.Context, op string) {
	observability.StoreMutations.WithLabelValues(op).Inc()
	s.log.LogMutation(ctx, op, map[string]interface{}{
		"users": len(s.state.Users),
		"posts": len(s.state.Posts),
	})
	if s.snapshot == nil {
		return
	}
	if err := s.snapshot.WriteSnapshot(ctx, s.state.Clone()); err != nil {
		observability.SnapshotWriteErrors.Inc()
		s.log.LogError(ctx, op, err)
	}
}

func (s *Store) recordUser(ctx context.Context, u models.User) {
	if s.recorder != nil {
		s.recorder.UserSaved(ctx, cloneUser(u))
	}
}

func (s *Store) recordPost(ctx context.Context, p models.Post) {
	if s.recorder != nil {
		s.recorder.PostSaved(ctx, clonePost(p))
	}
}

func (s *Store) recordPostDeleted(ctx context.Context, id string) {
	if s.recorder != nil {
		s.recorder.PostDeleted(ctx, id)
	}
}

func (s *Store) recordFriendRequest(ctx context.Context, r models.FriendRequest) {
	if s.recorder != nil {
		s.recorder.FriendRequestSaved(ctx, r)
	}
}

func (s *Store) recordMessage(ctx context.Context, m models.Message) {
	if s.recorder != nil {
		s.recorder.MessageSaved(ctx, m)
	}
}

// userIndex returns the index of the user with the given id, or -1.
// Callers must hold the lock.
func (s *Store) userIndex(id string) int {
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// postIndex returns the index of the post with the given id, or -1.
// Callers must hold the lock.
func (s *Store) postIndex(id string) int {
	for i := range s.state.Posts {
		if s.state.Posts[i].ID == id {
			return i
		}
	}
	return -1
}
