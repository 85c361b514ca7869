// Package tracker drives the live timer for one user: it restores the
// running session from storage, applies a transition and hands any closed
// session to the worklog editor.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/storage"
	"github.com/Tiliavir/work-hours-logger/internal/timer"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

// TimerStore keeps the running timer between processes.
type TimerStore interface {
	Load(ctx context.Context, username string) (*storage.TimerSnapshot, error)
	Save(ctx context.Context, username string, snap storage.TimerSnapshot) error
	Clear(ctx context.Context, username string) error
}

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	MinSession time.Duration
	Now        func() time.Time
}

// Tracker owns the timer of the editor's user.
type Tracker struct {
	editor     *worklog.Editor
	timers     TimerStore
	minSession time.Duration
	now        func() time.Time
}

// New returns a Tracker storing closed sessions through editor.
func New(editor *worklog.Editor, timers TimerStore, opts Options) *Tracker {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{editor: editor, timers: timers, minSession: opts.MinSession, now: now}
}

// Change is the result of a timer transition.
type Change struct {
	Timer timer.Timer
	Stop  timer.StopResult
	// Saved is set when the transition stored intervals.
	Saved *worklog.Result
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time { return t.now() }

// Timer returns the user's current timer.
func (t *Tracker) Timer(ctx context.Context) (timer.Timer, error) {
	snap, err := t.timers.Load(ctx, t.editor.User())
	if err != nil {
		return timer.Timer{}, fmt.Errorf("loading timer: %w", err)
	}
	if snap == nil {
		return timer.New(t.minSession), nil
	}
	return timer.Resume(t.minSession, snap.Kind, snap.Start, snap.Session), nil
}

// Start starts a session of kind, pivoting if another kind is running.
func (t *Tracker) Start(ctx context.Context, kind model.Kind) (Change, error) {
	return t.apply(ctx, func(tm timer.Timer, now time.Time) (timer.Timer, timer.StopResult) {
		return tm.Start(kind, now)
	})
}

// Stop closes the running session.
func (t *Tracker) Stop(ctx context.Context) (Change, error) {
	return t.apply(ctx, func(tm timer.Timer, now time.Time) (timer.Timer, timer.StopResult) {
		return tm.Stop(now)
	})
}

// Pivot closes the running session and opens one of kind at the same instant.
func (t *Tracker) Pivot(ctx context.Context, kind model.Kind) (Change, error) {
	return t.apply(ctx, func(tm timer.Timer, now time.Time) (timer.Timer, timer.StopResult) {
		return tm.Pivot(kind, now)
	})
}

type transition func(timer.Timer, time.Time) (timer.Timer, timer.StopResult)

// apply persists closed sessions before the new timer state, so a failed
// save leaves the old session running and the action can be retried.
func (t *Tracker) apply(ctx context.Context, fn transition) (Change, error) {
	cur, err := t.Timer(ctx)
	if err != nil {
		return Change{}, err
	}
	next, res := fn(cur, t.now())
	ch := Change{Timer: next, Stop: res}

	if res.Outcome == timer.OutcomeRecorded {
		saved, err := t.editor.Append(ctx, res.Records...)
		if err != nil {
			return Change{}, fmt.Errorf("saving session: %w", err)
		}
		ch.Saved = &saved
	}

	user := t.editor.User()
	if next.Running() {
		snap := storage.TimerSnapshot{Kind: next.Kind(), Start: next.StartedAt(), Session: next.Session()}
		if err := t.timers.Save(ctx, user, snap); err != nil {
			return Change{}, fmt.Errorf("saving timer: %w", err)
		}
	} else if err := t.timers.Clear(ctx, user); err != nil {
		return Change{}, fmt.Errorf("clearing timer: %w", err)
	}
	return ch, nil
}
