package navigation

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-client/internal/clock"
	"storefront-client/internal/session"

	"go.uber.org/zap"
)

// expirer is implemented by stores that hold their own entries in process.
type expirer interface {
	Expire(now time.Time) int
}

// Registry keeps the live State of every browser session. Live states hold what cannot be
// serialized (rendered bindings, the in-flight fetch). The serializable part is mirrored to the
// session store so another replica can restore pagination and selection.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
	store  session.Store
	ttl    time.Duration
	clock  clock.Clock
	logger *zap.Logger
}

func NewRegistry(store session.Store, ttl time.Duration, clk clock.Clock, logger *zap.Logger) *Registry {
	return &Registry{
		states: make(map[string]*State),
		store:  store,
		ttl:    ttl,
		clock:  clk,
		logger: logger,
	}
}

// Get returns the live state for id, restoring it from the session store or creating it.
// Every access restarts the session's TTL in the store.
func (r *Registry) Get(ctx context.Context, id string) *State {
	r.mu.Lock()
	st, exists := r.states[id]
	r.mu.Unlock()

	now := r.clock.Now()
	if exists {
		st.touch(now)
		if err := r.store.Touch(ctx, id); err != nil {
			r.logger.Warn("Failed to refresh session TTL", zap.String("session_id", id), zap.Error(err))
		}
		return st
	}

	restored := newState(id, now)
	snapshot, err := r.store.Load(ctx, id)
	switch {
	case err == nil:
		restored = stateFromSnapshot(snapshot, now)
		r.logger.Debug("Session state restored", zap.String("session_id", id), zap.String("view", snapshot.View))
	case !errors.Is(err, session.ErrSessionNotFound):
		r.logger.Warn("Failed to load session snapshot", zap.String("session_id", id), zap.Error(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have created it meanwhile.
	if st, exists := r.states[id]; exists {
		return st
	}
	r.states[id] = restored
	return restored
}

// Save mirrors the serializable part of st to the session store. Failures are logged only.
func (r *Registry) Save(ctx context.Context, st *State) {
	snapshot := st.snapshot(r.clock.Now())
	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.Warn("Failed to save session snapshot",
			zap.String("session_id", snapshot.ID),
			zap.Error(err),
		)
	}
}

// Release drops the session everywhere when the page showing renderID goes away. It is a
// no-op once a newer render exists or a newer fetch has started, so a late leave from a
// previous page cannot discard the next one.
func (r *Registry) Release(ctx context.Context, id, renderID string, generation uint64) bool {
	r.mu.Lock()
	st, exists := r.states[id]
	if exists && !st.showing(renderID, generation) {
		r.mu.Unlock()
		return false
	}
	delete(r.states, id)
	r.mu.Unlock()

	if exists {
		st.abort()
	} else {
		snapshot, err := r.store.Load(ctx, id)
		if err != nil || snapshot.RenderID != renderID {
			return false
		}
	}

	if err := r.store.Delete(ctx, id); err != nil {
		r.logger.Warn("Failed to delete session", zap.String("session_id", id), zap.Error(err))
	}
	return true
}

// Len reports the number of live states.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Sweep drops live states idle for longer than the TTL, cancelling their in-flight fetches,
// and expires in-process store entries.
func (r *Registry) Sweep(now time.Time) int {
	var idle []*State
	r.mu.Lock()
	for id, st := range r.states {
		if now.Sub(st.idleSince()) > r.ttl {
			delete(r.states, id)
			idle = append(idle, st)
		}
	}
	r.mu.Unlock()

	for _, st := range idle {
		st.abort()
	}

	if e, ok := r.store.(expirer); ok {
		e.Expire(now)
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(r.clock.Now()); removed > 0 {
				r.logger.Debug("Expired idle sessions", zap.Int("removed", removed))
			}
		}
	}
}
