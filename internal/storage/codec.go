package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// DecodeReport counts the repairs made while decoding stored intervals.
type DecodeReport struct {
	Dropped    int // entries without date or start time, or not objects
	Reassigned int // entries given a fresh id (missing or duplicate)
	Defaulted  int // entries whose kind was missing or unknown
}

// Repaired reports whether decoding changed anything.
func (r DecodeReport) Repaired() bool {
	return r.Dropped+r.Reassigned+r.Defaulted > 0
}

// storedInterval mirrors the persisted shape, where every field may be absent.
type storedInterval struct {
	ID        looseString `json:"id"`
	Date      *string     `json:"date"`
	StartTime *string     `json:"startTime"`
	EndTime   *string     `json:"endTime"`
	Type      *string     `json:"type"`
	Kind      *string     `json:"kind"`
}

// looseString accepts a JSON string or number. Older data used numeric
// millisecond timestamps as ids.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// EncodeCollection serializes c as a JSON array.
func EncodeCollection(c model.Collection) ([]byte, error) {
	if c == nil {
		c = model.Collection{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return data, nil
}

// DecodeCollection parses stored intervals. Individual bad entries are
// repaired or dropped and counted in the report; an error is returned only
// when data is not a JSON array at all.
func DecodeCollection(data []byte) (model.Collection, DecodeReport, error) {
	var report DecodeReport
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Collection{}, report, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Collection{}, report, fmt.Errorf("stored logs are not a JSON array: %w", err)
	}

	out := make(model.Collection, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, msg := range raw {
		var s storedInterval
		if err := json.Unmarshal(msg, &s); err != nil {
			report.Dropped++
			continue
		}
		if s.Date == nil || *s.Date == "" || s.StartTime == nil || *s.StartTime == "" {
			report.Dropped++
			continue
		}

		t := model.TimeInterval{
			ID:        string(s.ID),
			Date:      *s.Date,
			StartTime: *s.StartTime,
		}
		if s.EndTime != nil {
			t.EndTime = model.Clock(*s.EndTime)
		}

		kind := s.Type
		if kind == nil {
			kind = s.Kind
		}
		if kind == nil || !knownKind(*kind) {
			report.Defaulted++
			t.Kind = model.KindWork
		} else {
			t.Kind = model.ParseKind(*kind)
		}

		if t.ID == "" || seen[t.ID] {
			t.ID = timecalc.GenerateID()
			report.Reassigned++
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, report, nil
}

func knownKind(s string) bool {
	switch s {
	case "work", "Work", "WORK", "break", "Break", "BREAK":
		return true
	}
	return false
}
