package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"squad/internal/observability"
	"squad/internal/store"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace matches the storage key the original client used.
const DefaultNamespace = "squad-storage"

// Store writes and reads whole-state snapshots under one namespaced key.
// A nil Redis client makes every method a no-op, so the service degrades
// to in-memory-only operation instead of failing.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore returns a snapshot store for the given namespace.
func NewStore(client *redis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{
		client: client,
		key:    fmt.Sprintf("snapshot:%s", namespace),
	}
}

// WriteSnapshot overwrites the previous snapshot with the given state.
func (s *Store) WriteSnapshot(ctx context.Context, state store.State) error {
	if s.client == nil {
		return nil
	}
	ctx, span := observability.TraceSnapshotOperation(ctx, "write")
	defer span.End()

	start := time.Now()
	b, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	observability.ObserveSnapshotWrite(start)
	return nil
}

// Load reads the snapshot written by a previous session. The second return
// value is false when no snapshot exists or no Redis client is configured.
func (s *Store) Load(ctx context.Context) (store.State, bool, error) {
	if s.client == nil {
		return store.State{}, false, nil
	}
	ctx, span := observability.TraceSnapshotOperation(ctx, "load")
	defer span.End()

	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.State{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		return store.State{}, false, err
	}

	var state store.State
	if err := json.Unmarshal(raw, &state); err != nil {
		span.RecordError(err)
		return store.State{}, false, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return state, true, nil
}

// Clear removes the snapshot entirely.
func (s *Store) Clear(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.key).Err()
}
