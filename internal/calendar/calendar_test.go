package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/calendar"
	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
)

func logs() model.Collection {
	return model.Collection{
		{ID: "a", Date: "2024-01-10", StartTime: "09:00", EndTime: model.Clock("13:00"), Kind: model.KindWork},
		{ID: "b", Date: "2024-01-10", StartTime: "13:00", EndTime: model.Clock("13:30"), Kind: model.KindBreak},
		{ID: "c", Date: "2024-01-10", StartTime: "13:30", EndTime: model.Clock("18:00"), Kind: model.KindWork},
		{ID: "d", Date: "2024-02-01", StartTime: "09:00", EndTime: model.Clock("10:00"), Kind: model.KindWork},
	}
}

func TestHoursOn(t *testing.T) {
	assert.Equal(t, 8.5, calendar.HoursOn(logs(), summary.Options{}, "2024-01-10"))
	assert.Equal(t, 0.0, calendar.HoursOn(logs(), summary.Options{}, "2024-01-11"))
}

func TestBuildJanuary2024(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-31 a Wednesday.
	m := calendar.Build(logs(), summary.Options{}, 2024, time.January)
	require.Len(t, m.Weeks, 5)

	first := m.Weeks[0][0]
	assert.True(t, first.InMonth)
	assert.Equal(t, 1, first.Date.Day())

	last := m.Weeks[4]
	assert.True(t, last[2].InMonth)
	assert.Equal(t, 31, last[2].Date.Day())
	assert.False(t, last[3].InMonth, "Feb 1 pads the last week")
	assert.Equal(t, 0, last[3].Summary.WorkMinutes, "padding days carry no hours")

	wed := m.Weeks[1][2]
	assert.Equal(t, 10, wed.Date.Day())
	assert.True(t, wed.Logged())
	assert.Equal(t, 8.5, wed.Summary.TotalHours)
	assert.Equal(t, 0.5, wed.Summary.OverworkHours)

	assert.Equal(t, 8.5, m.Total())
}

func TestBuildPadsLeadingDays(t *testing.T) {
	// 2024-02-01 is a Thursday.
	m := calendar.Build(logs(), summary.Options{}, 2024, time.February)
	week := m.Weeks[0]
	for i := 0; i < 3; i++ {
		assert.False(t, week[i].InMonth)
	}
	assert.True(t, week[3].InMonth)
	assert.Equal(t, time.Monday, week[0].Date.Weekday())
	assert.Equal(t, 1.0, m.Total())
}
