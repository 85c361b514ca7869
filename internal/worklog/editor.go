// Package worklog reconciles submitted entries with a user's interval
// collection. Every mutation loads the collection, applies the change and
// saves the result through the Store.
package worklog

import (
	"context"
	"log/slog"

	"github.com/Tiliavir/work-hours-logger/internal/logging"
	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// Store is the persistence gate for a user's collection.
type Store interface {
	Load(ctx context.Context, username string) (model.Collection, error)
	Save(ctx context.Context, username string, c model.Collection) error
}

// Outcome tells the caller what a mutation did, so it can pick a message.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeDeleted
	// OutcomeNotFound: the id to edit or delete is not in the collection.
	// Nothing was saved.
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "not found"
	}
}

// Result is the outcome of a mutation.
type Result struct {
	Outcome Outcome
	// Records are the intervals created, updated or deleted.
	Records []model.TimeInterval
	// Collection is the collection after the mutation.
	Collection model.Collection
	// Overlaps lists ids of intervals overlapping the affected ones.
	Overlaps []string
}

// Editor edits the collection of one user.
type Editor struct {
	store Store
	user  string
	newID func() string
	log   *slog.Logger
}

// New returns an Editor for username. log may be nil.
func New(store Store, username string, log *slog.Logger) *Editor {
	return &Editor{store: store, user: username, newID: timecalc.GenerateID, log: logging.OrDiscard(log)}
}

// User returns the username the editor is bound to.
func (e *Editor) User() string { return e.user }

// Collection loads the current collection.
func (e *Editor) Collection(ctx context.Context) (model.Collection, error) {
	return e.store.Load(ctx, e.user)
}

// Submit validates form and either appends a new interval (editingID empty)
// or replaces the interval with editingID in place, keeping its id. Editing
// an id that no longer exists is a no-op reported as OutcomeNotFound.
func (e *Editor) Submit(ctx context.Context, form Form, editingID string) (Result, error) {
	if err := form.Validate(); err != nil {
		return Result{}, err
	}
	c, err := e.store.Load(ctx, e.user)
	if err != nil {
		return Result{}, err
	}

	if editingID == "" {
		rec := form.interval(e.newID())
		c = append(c, rec)
		return e.commit(ctx, c, OutcomeCreated, rec)
	}

	i := c.Index(editingID)
	if i < 0 {
		return Result{Outcome: OutcomeNotFound, Collection: c}, nil
	}
	rec := form.interval(editingID)
	c[i] = rec
	return e.commit(ctx, c, OutcomeUpdated, rec)
}

// Append adds already-built intervals, as produced by the timer, and saves.
// Records without an id get a fresh one.
func (e *Editor) Append(ctx context.Context, records ...model.TimeInterval) (Result, error) {
	c, err := e.store.Load(ctx, e.user)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{Outcome: OutcomeCreated, Collection: c}, nil
	}
	for i := range records {
		if records[i].ID == "" || c.Index(records[i].ID) >= 0 {
			records[i].ID = e.newID()
		}
		c = append(c, records[i])
	}
	return e.commit(ctx, c, OutcomeCreated, records...)
}

// Delete removes the interval with id. Deleting a missing id is a no-op
// reported as OutcomeNotFound, so repeated deletes are harmless.
func (e *Editor) Delete(ctx context.Context, id string) (Result, error) {
	c, err := e.store.Load(ctx, e.user)
	if err != nil {
		return Result{}, err
	}
	i := c.Index(id)
	if i < 0 {
		return Result{Outcome: OutcomeNotFound, Collection: c}, nil
	}
	removed := c[i]
	c = append(c[:i:i], c[i+1:]...)
	if err := e.store.Save(ctx, e.user, c); err != nil {
		return Result{}, err
	}
	e.log.DebugContext(ctx, "interval deleted", "user", e.user, "id", id)
	return Result{Outcome: OutcomeDeleted, Records: []model.TimeInterval{removed}, Collection: c}, nil
}

func (e *Editor) commit(ctx context.Context, c model.Collection, outcome Outcome, recs ...model.TimeInterval) (Result, error) {
	if err := e.store.Save(ctx, e.user, c); err != nil {
		return Result{}, err
	}
	res := Result{Outcome: outcome, Records: recs, Collection: c}
	for _, r := range recs {
		res.Overlaps = append(res.Overlaps, summary.OverlapsWith(c, r.ID)...)
	}
	e.log.DebugContext(ctx, "intervals saved", "user", e.user, "outcome", outcome.String(), "count", len(recs))
	return res, nil
}
