package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transport is how the provider returns the user to the application.
type Transport string

const (
	TransportRedirect Transport = "redirect"
	TransportPopup    Transport = "popup"
)

// CallbackPhase is the lifecycle of one provider callback.
type CallbackPhase string

const (
	PhasePending   CallbackPhase = "pending"
	PhaseSucceeded CallbackPhase = "succeeded"
	PhaseFailed    CallbackPhase = "failed"
)

const (
	// HomePath is where a completed callback sends the user.
	HomePath = "/"
	// LoginPath is where a failed callback sends the user.
	LoginPath = "/login"

	callbackTTL = 10 * time.Minute
)

// Callback is one in-flight provider round trip. Transitions are one way:
// pending may move to succeeded or failed exactly once.
type Callback struct {
	ID        string        `json:"id"`
	Transport Transport     `json:"transport"`
	Phase     CallbackPhase `json:"phase"`
	Identity  *Identity     `json:"identity,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// RedirectTarget returns the path the client should navigate to for the
// callback's current phase. Pending callbacks have no target yet.
func (c *Callback) RedirectTarget() string {
	switch c.Phase {
	case PhaseSucceeded:
		return HomePath
	case PhaseFailed:
		return LoginPath
	default:
		return ""
	}
}

// CallbackTracker holds in-flight provider callbacks keyed by id. Entries
// are short-lived; Begin prunes anything older than the TTL.
type CallbackTracker struct {
	mu        sync.Mutex
	callbacks map[string]*Callback
	now       func() time.Time
}

// NewCallbackTracker returns an empty tracker.
func NewCallbackTracker() *CallbackTracker {
	return &CallbackTracker{
		callbacks: make(map[string]*Callback),
		now:       time.Now,
	}
}

// Begin registers a new pending callback and returns it.
func (t *CallbackTracker) Begin(transport Transport) *Callback {
	if transport != TransportPopup {
		transport = TransportRedirect
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()

	cb := &Callback{
		ID:        uuid.New().String(),
		Transport: transport,
		Phase:     PhasePending,
		CreatedAt: t.now(),
	}
	t.callbacks[cb.ID] = cb
	return cb
}

// Get returns the callback with the given id.
func (t *CallbackTracker) Get(id string) (*Callback, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cb, ok := t.callbacks[id]
	if !ok {
		return nil, false
	}
	snapshot := *cb
	return &snapshot, true
}

// Succeed moves a pending callback to succeeded and attaches the identity
// the provider returned.
func (t *CallbackTracker) Succeed(id string, identity Identity) (*Callback, error) {
	return t.transition(id, func(cb *Callback) {
		cb.Phase = PhaseSucceeded
		cb.Identity = &identity
	})
}

// Fail moves a pending callback to failed with the provider's reason.
func (t *CallbackTracker) Fail(id, reason string) (*Callback, error) {
	return t.transition(id, func(cb *Callback) {
		cb.Phase = PhaseFailed
		cb.Reason = reason
	})
}

func (t *CallbackTracker) transition(id string, apply func(*Callback)) (*Callback, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cb, ok := t.callbacks[id]
	if !ok {
		return nil, fmt.Errorf("unknown callback %q", id)
	}
	if cb.Phase != PhasePending {
		return nil, fmt.Errorf("callback %q already %s", id, cb.Phase)
	}
	apply(cb)
	snapshot := *cb
	return &snapshot, nil
}

func (t *CallbackTracker) pruneLocked() {
	cutoff := t.now().Add(-callbackTTL)
	for id, cb := range t.callbacks {
		if cb.CreatedAt.Before(cutoff) {
			delete(t.callbacks, id)
		}
	}
}
