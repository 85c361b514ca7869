package worklog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Tiliavir/work-hours-logger/internal/model"
	"github.com/Tiliavir/work-hours-logger/internal/timecalc"
)

// Form is the user-submitted data for creating or editing an interval.
// EndTime may be empty for an open interval.
type Form struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"omitempty,endclock"`
	Kind      string `json:"kind" validate:"required,oneof=work break"`
}

// FormFor prefills a form from an existing interval.
func FormFor(t model.TimeInterval) Form {
	return Form{
		Date:      t.Date,
		StartTime: t.StartTime,
		EndTime:   t.End(),
		Kind:      string(t.Kind),
	}
}

// interval builds the record described by the form under id.
func (f Form) interval(id string) model.TimeInterval {
	return model.TimeInterval{
		ID:        id,
		Date:      f.Date,
		StartTime: f.StartTime,
		EndTime:   model.Clock(f.EndTime),
		Kind:      model.ParseKind(f.Kind),
	}
}

// FieldError is one rejected form field.
type FieldError struct {
	Field   string
	Problem string
}

// FormError lists every invalid field of a rejected form.
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Problem
	}
	return "invalid entry: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// endclock also accepts 24:00, which the timer writes for segments that
	// run up to midnight.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		m, err := timecalc.ParseClock(fl.Field().String())
		return err == nil && m < timecalc.MinutesPerDay
	})
	_ = v.RegisterValidation("endclock", func(fl validator.FieldLevel) bool {
		_, err := timecalc.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks required fields and formats. It returns a *FormError for
// invalid input.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating entry: %w", err)
	}
	fe := &FormError{}
	for _, v := range verrs {
		fe.Fields = append(fe.Fields, FieldError{Field: v.Field(), Problem: problem(v)})
	}
	return fe
}

func problem(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("%q does not match %s", v.Value(), layoutHint(v.Param()))
	case "clock", "endclock":
		return fmt.Sprintf("%q does not match HH:MM", v.Value())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(v.Param(), " ", ", "))
	default:
		return "is invalid"
	}
}

func layoutHint(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "15:04":
		return "HH:MM"
	default:
		return layout
	}
}
