package worklog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/storage"
	"github.com/Tiliavir/work-hours-logger/internal/timer"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

func newEditor(t *testing.T) (*worklog.Editor, *storage.LogStore) {
	t.Helper()
	store := storage.NewLogStore(storage.NewFileBackend(t.TempDir()), nil)
	return worklog.New(store, "alice", nil), store
}

func workForm(date, start, end string) worklog.Form {
	return worklog.Form{Date: date, StartTime: start, EndTime: end, Kind: "work"}
}

func TestSubmitCreates(t *testing.T) {
	ctx := context.Background()
	ed, store := newEditor(t)

	res, err := ed.Submit(ctx, workForm("2024-01-10", "09:00", "13:00"), "")
	require.NoError(t, err)
	assert.Equal(t, worklog.OutcomeCreated, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.NotEmpty(t, res.Records[0].ID)
	assert.Len(t, res.Collection, 1)

	stored, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, res.Collection, stored, "result is persisted immediately")
}

func TestSubmitOpenInterval(t *testing.T) {
	ed, _ := newEditor(t)
	res, err := ed.Submit(context.Background(), workForm("2024-01-10", "09:00", ""), "")
	require.NoError(t, err)
	assert.True(t, res.Records[0].Open())
}

func TestSubmitEditChangesOnlyThatRecord(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)

	var ids []string
	for _, start := range []string{"08:00", "10:00", "12:00"} {
		res, err := ed.Submit(ctx, workForm("2024-01-10", start, ""), "")
		require.NoError(t, err)
		ids = append(ids, res.Records[0].ID)
	}
	before, err := ed.Collection(ctx)
	require.NoError(t, err)

	res, err := ed.Submit(ctx, worklog.Form{Date: "2024-01-11", StartTime: "10:30", EndTime: "11:00", Kind: "break"}, ids[1])
	require.NoError(t, err)
	assert.Equal(t, worklog.OutcomeUpdated, res.Outcome)

	after := res.Collection
	require.Len(t, after, len(before))
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])

	edited := after[1]
	assert.Equal(t, ids[1], edited.ID, "id is preserved")
	assert.Equal(t, "2024-01-11", edited.Date)
	assert.Equal(t, "10:30", edited.StartTime)
	assert.Equal(t, "11:00", edited.End())
	assert.Equal(t, model.KindBreak, edited.Kind)
}

func TestSubmitEditTimerRecordAcrossMidnight(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)

	start := time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)
	tm, _ := timer.New(0).Start(model.KindWork, start)
	_, stop := tm.Stop(start.Add(2 * time.Hour))
	require.Len(t, stop.Records, 2)
	_, err := ed.Append(ctx, stop.Records...)
	require.NoError(t, err)

	first := stop.Records[0]
	require.Equal(t, "24:00", first.End())
	form := worklog.FormFor(first)
	form.Kind = "break"

	res, err := ed.Submit(ctx, form, first.ID)
	require.NoError(t, err)
	assert.Equal(t, worklog.OutcomeUpdated, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, model.KindBreak, res.Records[0].Kind)
	assert.Equal(t, "24:00", res.Records[0].End())
}

func TestSubmitEditMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)
	_, err := ed.Submit(ctx, workForm("2024-01-10", "09:00", "10:00"), "")
	require.NoError(t, err)

	res, err := ed.Submit(ctx, workForm("2024-01-10", "11:00", "12:00"), "gone")
	require.NoError(t, err)
	assert.Equal(t, worklog.OutcomeNotFound, res.Outcome)
	assert.Len(t, res.Collection, 1)

	c, err := ed.Collection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:00", c[0].StartTime)
}

func TestSubmitInvalidFormNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)

	_, err := ed.Submit(ctx, worklog.Form{StartTime: "9am", Kind: "lunch"}, "")
	var fe *worklog.FormError
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe.Fields, 3)

	c, err := ed.Collection(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestSubmitReportsOverlaps(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)

	first, err := ed.Submit(ctx, workForm("2024-01-10", "09:00", "12:00"), "")
	require.NoError(t, err)
	assert.Empty(t, first.Overlaps)

	second, err := ed.Submit(ctx, worklog.Form{Date: "2024-01-10", StartTime: "11:00", EndTime: "11:30", Kind: "break"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{first.Records[0].ID}, second.Overlaps)
	assert.Len(t, second.Collection, 2, "overlaps are accepted")
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)

	a, err := ed.Submit(ctx, workForm("2024-01-10", "09:00", "10:00"), "")
	require.NoError(t, err)
	_, err = ed.Submit(ctx, workForm("2024-01-10", "10:00", "11:00"), "")
	require.NoError(t, err)

	once, err := ed.Delete(ctx, a.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, worklog.OutcomeDeleted, once.Outcome)
	assert.Len(t, once.Collection, 1)

	twice, err := ed.Delete(ctx, a.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, worklog.OutcomeNotFound, twice.Outcome)
	assert.Equal(t, once.Collection, twice.Collection)
}

func TestAppendAssignsMissingAndDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t)

	res, err := ed.Append(ctx,
		model.TimeInterval{ID: "x", Date: "2024-01-10", StartTime: "09:00", EndTime: model.Clock("10:00"), Kind: model.KindWork},
		model.TimeInterval{ID: "x", Date: "2024-01-10", StartTime: "10:00", EndTime: model.Clock("11:00"), Kind: model.KindWork},
		model.TimeInterval{Date: "2024-01-10", StartTime: "11:00", EndTime: model.Clock("11:15"), Kind: model.KindBreak},
	)
	require.NoError(t, err)
	require.Len(t, res.Collection, 3)

	ids := map[string]bool{}
	for _, r := range res.Collection {
		require.NotEmpty(t, r.ID)
		ids[r.ID] = true
	}
	assert.Len(t, ids, 3)

	none, err := ed.Append(ctx)
	require.NoError(t, err)
	assert.Len(t, none.Collection, 3)
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string) (model.Collection, error) {
	return model.Collection{}, nil
}

func (f failingStore) Save(context.Context, string, model.Collection) error { return f.err }

func TestSaveErrorsPropagate(t *testing.T) {
	boom := errors.New("disk full")
	ed := worklog.New(failingStore{err: boom}, "alice", nil)

	_, err := ed.Submit(context.Background(), workForm("2024-01-10", "09:00", ""), "")
	assert.ErrorIs(t, err, boom)
}
