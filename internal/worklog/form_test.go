package worklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/model"
)

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		fields []string
	}{
		{"valid closed", Form{Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00", Kind: "work"}, nil},
		{"valid open", Form{Date: "2024-01-10", StartTime: "09:00", Kind: "break"}, nil},
		{"missing all", Form{}, []string{"date", "startTime", "kind"}},
		{"bad date", Form{Date: "10-01-2024", StartTime: "09:00", Kind: "work"}, []string{"date"}},
		{"end of day", Form{Date: "2024-01-10", StartTime: "23:00", EndTime: "24:00", Kind: "work"}, nil},
		{"past end of day", Form{Date: "2024-01-10", StartTime: "23:00", EndTime: "24:01", Kind: "work"}, []string{"endTime"}},
		{"start at end of day", Form{Date: "2024-01-10", StartTime: "24:00", Kind: "work"}, []string{"startTime"}},
		{"bad end", Form{Date: "2024-01-10", StartTime: "09:00", EndTime: "25:00", Kind: "work"}, []string{"endTime"}},
		{"bad kind", Form{Date: "2024-01-10", StartTime: "09:00", Kind: "lunch"}, []string{"kind"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var fe *FormError
			require.ErrorAs(t, err, &fe)
			var got []string
			for _, f := range fe.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestFormErrorMessage(t *testing.T) {
	err := Form{Date: "2024-01-10", StartTime: "9h", Kind: "work"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startTime")
	assert.Contains(t, err.Error(), "HH:MM")
}

func TestFormForRoundTrip(t *testing.T) {
	iv := model.TimeInterval{ID: "a", Date: "2024-01-10", StartTime: "09:00", EndTime: model.Clock("10:00"), Kind: model.KindBreak}
	f := FormFor(iv)
	assert.Equal(t, Form{Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00", Kind: "break"}, f)
	assert.Equal(t, iv, f.interval("a"))
}
