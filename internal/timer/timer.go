// Package timer implements the live work/break timer as a value-typed state
// machine. Methods never mutate the receiver; they return the next state and,
// when a session closes, the intervals it produced.
package timer

import (
	"time"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// DefaultMinSession is the shortest session that is recorded on stop.
const DefaultMinSession = time.Minute

// State is the timer's position in the state machine.
type State int

const (
	Idle State = iota
	RunningWork
	RunningBreak
)

func (s State) String() string {
	switch s {
	case RunningWork:
		return "running work"
	case RunningBreak:
		return "running break"
	default:
		return "idle"
	}
}

// Outcome describes what a stop did with the closed session.
type Outcome int

const (
	// OutcomeNotRunning: there was no session to stop.
	OutcomeNotRunning Outcome = iota
	// OutcomeDiscarded: the session was shorter than the minimum and dropped.
	OutcomeDiscarded
	// OutcomeRecorded: the session produced one or more intervals.
	OutcomeRecorded
)

// StopResult is returned by every transition that may close a session.
type StopResult struct {
	Outcome  Outcome
	Kind     model.Kind
	Duration time.Duration
	Records  []model.TimeInterval
}

// Timer is the live timer state. The zero value is an idle timer with the
// default minimum session length.
type Timer struct {
	running    bool
	kind       model.Kind
	start      time.Time
	session    string
	minSession time.Duration
}

// New returns an idle timer recording sessions of at least minSession.
// minSession <= 0 selects DefaultMinSession.
func New(minSession time.Duration) Timer {
	return Timer{minSession: minSession}
}

// Resume rebuilds a running timer from a persisted start instant.
func Resume(minSession time.Duration, kind model.Kind, start time.Time, session string) Timer {
	if session == "" {
		session = timecalc.GenerateID()
	}
	return Timer{running: true, kind: kind, start: start, session: session, minSession: minSession}
}

func (t Timer) State() State {
	switch {
	case !t.running:
		return Idle
	case t.kind == model.KindBreak:
		return RunningBreak
	default:
		return RunningWork
	}
}

// Running reports whether a session is open.
func (t Timer) Running() bool { return t.running }

// Kind is the kind of the running session.
func (t Timer) Kind() model.Kind { return t.kind }

// StartedAt is the start instant of the running session.
func (t Timer) StartedAt() time.Time { return t.start }

// Session identifies the running session. It changes on every start and pivot.
func (t Timer) Session() string { return t.session }

// MinSession is the shortest session Stop records.
func (t Timer) MinSession() time.Duration {
	if t.minSession <= 0 {
		return DefaultMinSession
	}
	return t.minSession
}

// Elapsed returns the running session's length at now, or 0 when idle.
func (t Timer) Elapsed(now time.Time) time.Duration {
	if !t.running || now.Before(t.start) {
		return 0
	}
	return now.Sub(t.start)
}

// Start begins a session of kind at now. On a running timer it pivots.
func (t Timer) Start(kind model.Kind, now time.Time) (Timer, StopResult) {
	if t.running {
		return t.Pivot(kind, now)
	}
	return t.begin(kind, now), StopResult{Outcome: OutcomeNotRunning}
}

// Stop closes the running session at now and returns to idle. Sessions
// shorter than the minimum, including zero or negative ones, are discarded,
// as are sessions that never leave their starting clock minute.
func (t Timer) Stop(now time.Time) (Timer, StopResult) {
	if !t.running {
		return t, StopResult{Outcome: OutcomeNotRunning}
	}
	idle := Timer{minSession: t.minSession}
	d := now.Sub(t.start)
	res := StopResult{Kind: t.kind, Duration: d}
	if d <= 0 || d < t.MinSession() {
		res.Outcome = OutcomeDiscarded
		return idle, res
	}
	res.Records = materialize(t.kind, t.start, now)
	res.Outcome = OutcomeRecorded
	if len(res.Records) == 0 {
		res.Outcome = OutcomeDiscarded
	}
	return idle, res
}

// Pivot closes the running session exactly like Stop and starts a session
// of kind at the same instant. Pivoting to the kind already running changes
// nothing; pivoting an idle timer just starts it.
func (t Timer) Pivot(kind model.Kind, now time.Time) (Timer, StopResult) {
	if !t.running {
		return t.Start(kind, now)
	}
	if t.kind == kind {
		return t, StopResult{Outcome: OutcomeNotRunning}
	}
	idle, res := t.Stop(now)
	return idle.begin(kind, now), res
}

func (t Timer) begin(kind model.Kind, now time.Time) Timer {
	return Timer{
		running:    true,
		kind:       kind,
		start:      now,
		session:    timecalc.GenerateID(),
		minSession: t.minSession,
	}
}

// materialize turns [start, end) into intervals, one per calendar day. A
// segment that runs up to midnight ends at 24:00; the next starts at 00:00.
func materialize(kind model.Kind, start, end time.Time) []model.TimeInterval {
	var out []model.TimeInterval
	seg := start
	for {
		next := timecalc.Midnight(seg)
		endClock := end.Format(timecalc.ClockLayout)
		last := !end.After(next)
		if !last || end.Equal(next) {
			endClock = timecalc.EndOfDayClock
		}
		startClock := seg.Format(timecalc.ClockLayout)
		if startClock != endClock {
			out = append(out, model.TimeInterval{
				ID:        timecalc.GenerateID(),
				Date:      seg.Format(timecalc.DateLayout),
				StartTime: startClock,
				EndTime:   model.Clock(endClock),
				Kind:      kind,
			})
		}
		if last {
			return out
		}
		seg = next
	}
}
