package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
)

func TestOverlaps(t *testing.T) {
	c := model.Collection{
		iv("a", "2024-01-10", "09:00", "12:00", model.KindWork),
		iv("b", "2024-01-10", "11:30", "12:30", model.KindBreak),
		iv("c", "2024-01-10", "12:30", "13:00", model.KindWork), // touches b
		iv("d", "2024-01-11", "10:00", "11:00", model.KindWork), // other date
		iv("e", "2024-01-10", "10:00", "", model.KindWork),      // open
	}

	got := summary.Overlaps(c)
	assert.Equal(t, []summary.Overlap{{A: "a", B: "b"}}, got)

	assert.Equal(t, []string{"b"}, summary.OverlapsWith(c, "a"))
	assert.Equal(t, []string{"a"}, summary.OverlapsWith(c, "b"))
	assert.Empty(t, summary.OverlapsWith(c, "c"))
}

func TestOverlapsAcrossMidnightSpan(t *testing.T) {
	c := model.Collection{
		iv("night", "2024-01-10", "22:00", "02:00", model.KindWork),
		iv("late", "2024-01-10", "23:00", "23:30", model.KindBreak),
	}
	assert.Equal(t, []summary.Overlap{{A: "night", B: "late"}}, summary.Overlaps(c))
}
