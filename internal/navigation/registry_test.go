package navigation

import (
	"context"
	"testing"
	"time"

	"storefront-client/internal/clock"
	"storefront-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry_GetReturnsSameState(t *testing.T) {
	registry := NewRegistry(session.NewMemoryStore(time.Minute), time.Minute, clock.NewRealClock(), zap.NewNop())
	ctx := context.Background()

	first := registry.Get(ctx, "s1")
	second := registry.Get(ctx, "s1")
	assert.Same(t, first, second)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_RestoresSnapshot(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &session.Snapshot{
		ID:        "s1",
		View:      string(ViewListing),
		Page:      4,
		UID:       "U1",
		LastCount: 16,
	}))

	registry := NewRegistry(store, time.Minute, clock.NewRealClock(), zap.NewNop())
	view, page, lastCount, uid := registry.Get(ctx, "s1").paging()

	assert.Equal(t, ViewListing, view)
	assert.Equal(t, 4, page)
	assert.Equal(t, 16, lastCount)
	assert.Equal(t, "U1", uid)
}

func TestRegistry_SweepDropsIdleStates(t *testing.T) {
	start := time.Date(2024, 3, 9, 19, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	registry := NewRegistry(session.NewMemoryStore(time.Minute), 10*time.Minute, clk, zap.NewNop())
	ctx := context.Background()

	registry.Get(ctx, "idle")
	clk.Advance(8 * time.Minute)
	registry.Get(ctx, "active")

	assert.Equal(t, 1, registry.Sweep(start.Add(11*time.Minute)))
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ReleaseKeepsNewerWork(t *testing.T) {
	registry := NewRegistry(session.NewMemoryStore(time.Minute), time.Minute, clock.NewRealClock(), zap.NewNop())
	ctx := context.Background()

	st := registry.Get(ctx, "s1")
	_, generation := st.begin(ctx, time.Now())
	require.True(t, st.commit(generation, func(s *State) { s.enter(ViewListing, Request{Page: 1}) }))
	first := st.current()

	fetchCtx, next := st.begin(ctx, time.Now())
	assert.False(t, registry.Release(ctx, "s1", first.ID, first.Generation), "a fetch started after the render")
	assert.NoError(t, fetchCtx.Err())

	require.True(t, st.commit(next, func(s *State) { s.enter(ViewListing, Request{Page: 2}) }))
	st.end(next)
	assert.False(t, registry.Release(ctx, "s1", first.ID, first.Generation), "a newer render is shown")
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ReleaseDropsSessionEverywhere(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	registry := NewRegistry(store, time.Minute, clock.NewRealClock(), zap.NewNop())
	ctx := context.Background()

	st := registry.Get(ctx, "s1")
	_, generation := st.begin(ctx, time.Now())
	require.True(t, st.commit(generation, func(s *State) { s.enter(ViewListing, Request{Page: 1}) }))
	rendered := st.current()
	registry.Save(ctx, st)

	assert.True(t, registry.Release(ctx, "s1", rendered.ID, rendered.Generation))
	assert.Equal(t, 0, registry.Len())
	assert.False(t, st.commit(generation, func(*State) {}), "released state accepts no more commits")

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRegistry_ReleaseOnAnotherReplica(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &session.Snapshot{ID: "s1", View: string(ViewListing), Page: 1, RenderID: "r-2", Generation: 2}))

	registry := NewRegistry(store, time.Minute, clock.NewRealClock(), zap.NewNop())
	assert.False(t, registry.Release(ctx, "s1", "r-1", 1), "snapshot is from a newer render")
	assert.True(t, registry.Release(ctx, "s1", "r-2", 2))

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRegistry_SweepCancelsInFlightFetch(t *testing.T) {
	start := time.Date(2024, 3, 9, 19, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	registry := NewRegistry(session.NewMemoryStore(time.Hour), 10*time.Minute, clk, zap.NewNop())
	ctx := context.Background()

	st := registry.Get(ctx, "stuck")
	fetchCtx, generation := st.begin(ctx, start)

	assert.Equal(t, 1, registry.Sweep(start.Add(11*time.Minute)))
	assert.ErrorIs(t, fetchCtx.Err(), context.Canceled)
	assert.False(t, st.commit(generation, func(*State) {}))
}

type touchRecorder struct {
	*session.MemoryStore
	touched []string
}

func (r *touchRecorder) Touch(ctx context.Context, id string) error {
	r.touched = append(r.touched, id)
	return r.MemoryStore.Touch(ctx, id)
}

func TestRegistry_GetRefreshesStoreTTL(t *testing.T) {
	store := &touchRecorder{MemoryStore: session.NewMemoryStore(time.Minute)}
	registry := NewRegistry(store, time.Minute, clock.NewRealClock(), zap.NewNop())
	ctx := context.Background()

	registry.Get(ctx, "s1")
	assert.Empty(t, store.touched, "a new state has nothing stored yet")

	registry.Get(ctx, "s1")
	registry.Get(ctx, "s1")
	assert.Equal(t, []string{"s1", "s1"}, store.touched)
}

func TestState_GenerationGuard(t *testing.T) {
	st := newState("s1", time.Now())
	ctx := context.Background()

	firstCtx, first := st.begin(ctx, time.Now())
	_, second := st.begin(ctx, time.Now())

	assert.Greater(t, second, first)
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled, "starting a fetch cancels the superseded one")
	assert.False(t, st.commit(first, func(*State) {}))
	assert.True(t, st.commit(second, func(*State) {}))

	st.end(first)
	assert.Equal(t, second, st.Generation())
	st.end(second)
}
