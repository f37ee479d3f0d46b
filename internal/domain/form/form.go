// Package form validates event form submissions and combines the separate
// date and time inputs into the single datetime instant the rest of the
// system works with.
package form

import (
	"strings"
	"time"

	"github.com/okian/planner/internal/domain/event"
)

// Values holds the raw field values of an event form. Date and Time carry
// the browser input shapes "2006-01-02" and "15:04".
type Values struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Category    string
	Priority    string
}

// Field error messages surfaced inline next to the offending input.
const (
	reasonTitleRequired = "Title is required"
	reasonDateRequired  = "Date is required"
	reasonTimeRequired  = "Time is required"
)

// Validate returns a mapping from invalid field name to a user-facing
// reason, or an empty map when the form can be submitted. Only presence is
// checked; the date/time input types already constrain the formats at the
// boundary.
func (v Values) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(v.Title) == "" {
		errs["title"] = reasonTitleRequired
	}
	if v.Date == "" {
		errs["date"] = reasonDateRequired
	}
	if v.Time == "" {
		errs["time"] = reasonTimeRequired
	}
	return errs
}

// CombineDateTime joins a date-only and a time-only input into one instant
// by direct concatenation, interpreted in loc. A correct date and a correct
// time always combine into a correctly parseable datetime; that contract is
// what keeps the stored model to a single field.
func CombineDateTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	return event.ParseDatetime(date+"T"+timeOfDay, loc)
}

// SplitDateTime is the inverse of CombineDateTime: it renders an event's
// datetime back into the form's date and time input shapes for editing.
func SplitDateTime(t time.Time, loc *time.Location) (date, timeOfDay string) {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02"), t.Format("15:04")
}
