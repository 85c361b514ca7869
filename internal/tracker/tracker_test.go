package tracker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/storage"
	"github.com/Tiliavir/work-hours-logger/internal/timer"
	"github.com/Tiliavir/work-hours-logger/internal/tracker"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

// clock is a controllable time source.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	tracker *tracker.Tracker
	editor  *worklog.Editor
	timers  *storage.TimerStore
	clock   *clock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	backend := storage.NewFileBackend(t.TempDir())
	editor := worklog.New(storage.NewLogStore(backend, nil), "alice", nil)
	timers := storage.NewTimerStore(backend)
	clk := &clock{now: time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)}
	return fixture{
		tracker: tracker.New(editor, timers, tracker.Options{Now: clk.Now}),
		editor:  editor,
		timers:  timers,
		clock:   clk,
	}
}

func TestStartPersistsTimerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ch, err := f.tracker.Start(ctx, model.KindWork)
	require.NoError(t, err)
	assert.Equal(t, timer.RunningWork, ch.Timer.State())
	assert.Nil(t, ch.Saved)

	snap, err := f.timers.Load(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, model.KindWork, snap.Kind)

	c, err := f.editor.Collection(ctx)
	require.NoError(t, err)
	assert.Empty(t, c, "starting never writes an interval")
}

func TestTimerSurvivesAcrossTrackers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tracker.Start(ctx, model.KindBreak)
	require.NoError(t, err)

	again := tracker.New(f.editor, f.timers, tracker.Options{Now: f.clock.Now})
	tm, err := again.Timer(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.RunningBreak, tm.State())
	assert.True(t, tm.StartedAt().Equal(f.clock.Now()))
}

func TestStopShortSessionStoresNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tracker.Start(ctx, model.KindWork)
	require.NoError(t, err)
	f.clock.Advance(45 * time.Second)

	ch, err := f.tracker.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.OutcomeDiscarded, ch.Stop.Outcome)
	assert.Nil(t, ch.Saved)

	c, err := f.editor.Collection(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)

	tm, err := f.tracker.Timer(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.Idle, tm.State())
}

func TestStopStoresOneRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tracker.Start(ctx, model.KindWork)
	require.NoError(t, err)
	f.clock.Advance(90 * time.Second)

	ch, err := f.tracker.Stop(ctx)
	require.NoError(t, err)
	require.NotNil(t, ch.Saved)
	assert.Equal(t, worklog.OutcomeCreated, ch.Saved.Outcome)

	c, err := f.editor.Collection(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "09:00", c[0].StartTime)
	assert.Equal(t, "09:01", c[0].End())
}

func TestPivotWorkToBreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tracker.Start(ctx, model.KindWork)
	require.NoError(t, err)
	f.clock.Advance(3 * time.Hour)
	t1 := f.clock.Now()

	ch, err := f.tracker.Pivot(ctx, model.KindBreak)
	require.NoError(t, err)
	assert.Equal(t, timer.RunningBreak, ch.Timer.State())
	assert.True(t, ch.Timer.StartedAt().Equal(t1))

	c, err := f.editor.Collection(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, model.KindWork, c[0].Kind)
	assert.Equal(t, "09:00", c[0].StartTime)
	assert.Equal(t, "12:00", c[0].End())

	tm, err := f.tracker.Timer(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.RunningBreak, tm.State())
	assert.True(t, tm.StartedAt().Equal(t1))
}

func TestStopWhenIdle(t *testing.T) {
	f := newFixture(t)
	ch, err := f.tracker.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, timer.OutcomeNotRunning, ch.Stop.Outcome)
}
