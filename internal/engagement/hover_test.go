package engagement

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-client/internal/clock"
	"storefront-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordedDwell struct {
	pid      string
	duration time.Duration
}

type recordingReporter struct {
	reports []recordedDwell
}

func (r *recordingReporter) ReportHoverDwell(pid string, duration time.Duration) bool {
	r.reports = append(r.reports, recordedDwell{pid: pid, duration: duration})
	return true
}

type failingHoverStore struct{}

func (failingHoverStore) StartHover(ctx context.Context, id, pid string, at time.Time) error {
	return errors.New("redis unavailable")
}

func (failingHoverStore) EndHover(ctx context.Context, id, pid string) (time.Time, bool, error) {
	return time.Time{}, false, errors.New("redis unavailable")
}

func TestHoverTracker_ReportsElapsedTime(t *testing.T) {
	t0 := time.Date(2024, 3, 9, 19, 5, 7, 0, time.UTC)
	clk := clock.NewMockClock(t0)
	reporter := &recordingReporter{}
	tracker := NewHoverTracker(session.NewMemoryStore(time.Minute), reporter, clk, zap.NewNop())
	ctx := context.Background()

	tracker.Enter(ctx, "s1", "P1")
	clk.Advance(1250 * time.Millisecond)

	duration, ok := tracker.Leave(ctx, "s1", "P1")
	require.True(t, ok)
	assert.Equal(t, 1250*time.Millisecond, duration)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, recordedDwell{pid: "P1", duration: 1250 * time.Millisecond}, reporter.reports[0])
}

func TestHoverTracker_MeasuresEachProductSeparately(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	reporter := &recordingReporter{}
	tracker := NewHoverTracker(session.NewMemoryStore(time.Minute), reporter, clk, zap.NewNop())
	ctx := context.Background()

	tracker.Enter(ctx, "s1", "P1")
	clk.Advance(time.Second)
	tracker.Enter(ctx, "s1", "P2")
	clk.Advance(500 * time.Millisecond)

	d2, ok := tracker.Leave(ctx, "s1", "P2")
	require.True(t, ok)
	d1, ok := tracker.Leave(ctx, "s1", "P1")
	require.True(t, ok)

	assert.Equal(t, 500*time.Millisecond, d2)
	assert.Equal(t, 1500*time.Millisecond, d1)
}

func TestHoverTracker_LeaveWithoutEnterIsSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reporter := &recordingReporter{}
	tracker := NewHoverTracker(session.NewMemoryStore(time.Minute), reporter, clock.NewRealClock(), zap.New(core))

	_, ok := tracker.Leave(context.Background(), "s1", "P1")
	assert.False(t, ok)
	assert.Empty(t, reporter.reports)
	assert.Equal(t, 1, logs.FilterMessage("Hover leave without enter, skipping dwell report").Len())
}

func TestHoverTracker_SecondLeaveIsSkipped(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewHoverTracker(session.NewMemoryStore(time.Minute), reporter, clock.NewRealClock(), zap.NewNop())
	ctx := context.Background()

	tracker.Enter(ctx, "s1", "P1")
	_, first := tracker.Leave(ctx, "s1", "P1")
	_, second := tracker.Leave(ctx, "s1", "P1")

	assert.True(t, first)
	assert.False(t, second)
	assert.Len(t, reporter.reports, 1)
}

func TestHoverTracker_ClockGoingBackwardsClampsToZero(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	clk := clock.NewMockClock(t0)
	reporter := &recordingReporter{}
	tracker := NewHoverTracker(session.NewMemoryStore(time.Minute), reporter, clk, zap.NewNop())
	ctx := context.Background()

	tracker.Enter(ctx, "s1", "P1")
	clk.Set(t0.Add(-time.Second))

	duration, ok := tracker.Leave(ctx, "s1", "P1")
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), duration)
}

func TestHoverTracker_StoreFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	reporter := &recordingReporter{}
	tracker := NewHoverTracker(failingHoverStore{}, reporter, clock.NewRealClock(), zap.New(core))
	ctx := context.Background()

	tracker.Enter(ctx, "s1", "P1")
	_, ok := tracker.Leave(ctx, "s1", "P1")

	assert.False(t, ok)
	assert.Empty(t, reporter.reports)
	assert.Equal(t, 1, logs.FilterMessage("Failed to record hover start").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to read hover start").Len())
}
