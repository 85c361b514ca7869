// Package tui implements the interactive dashboard: a live timer with the
// recent log and rolling summary underneath.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/work-hours-logger/internal/formatter"
	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
	"github.com/Tiliavir/work-hours-logger/internal/timer"
	"github.com/Tiliavir/work-hours-logger/internal/tracker"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

const recentEntries = 5

// Options configures the dashboard. Zero values select defaults.
type Options struct {
	Summary     summary.Options
	RollingDays int
	Tick        time.Duration
}

// ── messages ─────────────────────────────────────────────────────────────────

// tickMsg refreshes the elapsed time of the session it was scheduled for.
type tickMsg struct {
	session string
}

// loadedMsg carries the timer and log read on startup or reload.
type loadedMsg struct {
	timer timer.Timer
	logs  model.Collection
	err   error
}

// changedMsg carries the result of a timer action.
type changedMsg struct {
	change tracker.Change
	logs   model.Collection
	err    error
}

// ── model ────────────────────────────────────────────────────────────────────

// Model is the dashboard's bubbletea model.
type Model struct {
	tracker *tracker.Tracker
	editor  *worklog.Editor
	opts    Options

	timer  timer.Timer
	logs   model.Collection
	now    time.Time
	status string
	err    error
	ready  bool

	keys keyMap
	help help.Model
}

// New returns a dashboard for the tracker's user.
func New(t *tracker.Tracker, editor *worklog.Editor, opts Options) Model {
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	return Model{
		tracker: t,
		editor:  editor,
		opts:    opts,
		now:     t.Now(),
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		tm, err := m.tracker.Timer(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		logs, err := m.editor.Collection(ctx)
		return loadedMsg{timer: tm, logs: logs, err: err}
	}
}

type action func(ctx context.Context) (tracker.Change, error)

func (m Model) run(do action) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		ch, err := do(ctx)
		if err != nil {
			return changedMsg{err: err}
		}
		logs, err := m.editor.Collection(ctx)
		return changedMsg{change: ch, logs: logs, err: err}
	}
}

// tick schedules a refresh for the running session. Ticks for a session
// that has since stopped or pivoted are dropped without rescheduling.
func (m Model) tick() tea.Cmd {
	if !m.timer.Running() {
		return nil
	}
	session := m.timer.Session()
	return tea.Tick(m.opts.Tick, func(time.Time) tea.Msg {
		return tickMsg{session: session}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		prev := m.timer.Session()
		m.timer, m.logs, m.ready = msg.timer, msg.logs, true
		m.now = m.tracker.Now()
		if m.timer.Session() != prev {
			return m, m.tick()
		}
		return m, nil

	case tickMsg:
		if !m.timer.Running() || msg.session != m.timer.Session() {
			return m, nil
		}
		m.now = m.tracker.Now()
		return m, m.tick()

	case changedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		prev := m.timer.Session()
		m.timer, m.logs = msg.change.Timer, msg.logs
		m.now = m.tracker.Now()
		m.status = describe(msg.change)
		if m.timer.Session() != prev {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Start):
		return m, m.run(func(ctx context.Context) (tracker.Change, error) {
			return m.tracker.Start(ctx, model.KindWork)
		})
	case key.Matches(msg, m.keys.Break):
		return m, m.run(func(ctx context.Context) (tracker.Change, error) {
			return m.tracker.Pivot(ctx, model.KindBreak)
		})
	case key.Matches(msg, m.keys.Resume):
		return m, m.run(func(ctx context.Context) (tracker.Change, error) {
			return m.tracker.Pivot(ctx, model.KindWork)
		})
	case key.Matches(msg, m.keys.Toggle):
		next := model.KindWork
		if m.timer.Running() {
			next = m.timer.Kind().Other()
		}
		return m, m.run(func(ctx context.Context) (tracker.Change, error) {
			return m.tracker.Pivot(ctx, next)
		})
	case key.Matches(msg, m.keys.Stop):
		return m, m.run(m.tracker.Stop)
	}
	return m, nil
}

// describe turns a timer action into the dashboard's status line.
func describe(ch tracker.Change) string {
	res := ch.Stop
	switch res.Outcome {
	case timer.OutcomeRecorded:
		return fmt.Sprintf("Logged %s of %s.", timecalc.FormatDuration(int64(res.Duration.Seconds())), strings.ToLower(res.Kind.Label()))
	case timer.OutcomeDiscarded:
		return fmt.Sprintf("Discarded %s session shorter than %s.", strings.ToLower(res.Kind.Label()), ch.Timer.MinSession())
	}
	if ch.Timer.Running() {
		return fmt.Sprintf("%s started.", ch.Timer.Kind().Label())
	}
	return "No active timer."
}

func (m Model) View() string {
	if m.err != nil {
		return formatter.Alert("Error: "+m.err.Error()) + "\n\n" + m.help.View(m.keys) + "\n"
	}
	if !m.ready {
		return formatter.Dim("Loading…") + "\n"
	}

	var b strings.Builder
	today := summary.HoursOn(m.logs, m.opts.Summary, m.now.Format(timecalc.DateLayout))
	timerBox := formatter.FormatStatus(m.timer, m.now) + "\n" +
		fmt.Sprintf("Today: %s", formatter.HoursStyled(today, standard(m.opts.Summary)))
	b.WriteString(formatter.RenderBox("Work hours · "+m.editor.User(), timerBox))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(formatter.Dim(m.status) + "\n")
	}

	b.WriteString("\n" + formatter.Header("Recent entries") + "\n")
	recent := m.logs.Sorted()
	if len(recent) > recentEntries {
		recent = recent[len(recent)-recentEntries:]
	}
	b.WriteString(formatter.FormatLogs(recent, overlapSet(m.logs)))

	b.WriteString("\n" + formatter.Header("Summary") + "\n")
	days := summary.Rolling(m.logs, m.opts.Summary, m.opts.RollingDays)
	b.WriteString(formatter.FormatSummary(days, standard(m.opts.Summary)))

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func standard(o summary.Options) float64 {
	if o.StandardHours <= 0 {
		return summary.DefaultStandardHours
	}
	return o.StandardHours
}

func overlapSet(c model.Collection) map[string]bool {
	set := map[string]bool{}
	for _, o := range summary.Overlaps(c) {
		set[o.A] = true
		set[o.B] = true
	}
	return set
}

// Run starts the dashboard on the terminal and blocks until it quits.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
