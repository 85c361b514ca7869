package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/model"
)

func TestDecodeCollectionDefaults(t *testing.T) {
	data := []byte(`[
		{"id": "1", "date": "2024-01-10", "startTime": "09:00", "endTime": "12:00"},
		{"id": "2", "date": "2024-01-10", "startTime": "12:00", "endTime": "", "type": "break"},
		{"id": 1700000000000, "date": "2024-01-11", "startTime": "08:00", "kind": "break"},
		{"date": "2024-01-12", "startTime": "10:00", "type": "meeting"},
		{"id": "1", "date": "2024-01-13", "startTime": "10:00", "type": "work"},
		{"id": "5", "startTime": "10:00"},
		{"id": "6", "date": "2024-01-14"},
		"not an object",
		42
	]`)

	c, report, err := DecodeCollection(data)
	require.NoError(t, err)
	require.Len(t, c, 5)

	assert.Equal(t, model.KindWork, c[0].Kind, "missing type defaults to work")
	assert.Equal(t, "12:00", c[0].End())

	assert.Equal(t, model.KindBreak, c[1].Kind)
	assert.True(t, c[1].Open(), "empty endTime is an open interval")

	assert.Equal(t, "1700000000000", c[2].ID, "numeric ids are kept")
	assert.Equal(t, model.KindBreak, c[2].Kind, "kind is accepted as alias of type")

	assert.NotEmpty(t, c[3].ID, "missing id is assigned")
	assert.Equal(t, model.KindWork, c[3].Kind)

	assert.NotEqual(t, "1", c[4].ID, "duplicate id is reassigned")

	assert.Equal(t, DecodeReport{Dropped: 4, Reassigned: 2, Defaulted: 2}, report)
	assert.True(t, report.Repaired())

	ids := map[string]bool{}
	for _, iv := range c {
		ids[iv.ID] = true
	}
	assert.Len(t, ids, len(c), "ids are unique after decoding")
}

func TestDecodeCollectionNotArray(t *testing.T) {
	_, _, err := DecodeCollection([]byte(`{"id": "1"}`))
	assert.Error(t, err)

	c, report, err := DecodeCollection([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, c)
	assert.False(t, report.Repaired())
}

func TestEncodeCollectionFormat(t *testing.T) {
	data, err := EncodeCollection(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = EncodeCollection(model.Collection{
		{ID: "a", Date: "2024-01-10", StartTime: "09:00", Kind: model.KindBreak},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","date":"2024-01-10","startTime":"09:00","endTime":null,"type":"break"}]`, string(data))
}
