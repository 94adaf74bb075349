// Package filter narrows an in-memory appointment collection by an
// optional date range and an optional contact.
package filter

import (
	"time"

	"github.com/agenda-project/agenda/internal/model"
)

// Criteria is the set of active filters. Nil fields are inactive; the
// zero value passes every appointment through.
type Criteria struct {
	Start     *time.Time
	End       *time.Time
	ContactID *int64
}

// Apply returns the appointments that satisfy every active filter.
// The input is never mutated; the result is always a fresh slice.
// Date bounds compare calendar days. An appointment without a date is
// excluded as soon as either bound is set, and a range whose start
// lies after its end matches nothing.
func (c Criteria) Apply(appointments []model.Appointment) []model.Appointment {
	result := make([]model.Appointment, 0, len(appointments))
	if c.Start != nil && c.End != nil && day(*c.Start).After(day(*c.End)) {
		return result
	}
	for _, a := range appointments {
		if c.matches(a) {
			result = append(result, a)
		}
	}
	return result
}

func (c Criteria) matches(a model.Appointment) bool {
	if c.Start != nil || c.End != nil {
		if a.DateTime == nil {
			return false
		}
		d := day(*a.DateTime)
		if c.Start != nil && d.Before(day(*c.Start)) {
			return false
		}
		if c.End != nil && d.After(day(*c.End)) {
			return false
		}
	}
	if c.ContactID != nil && a.ContactID != *c.ContactID {
		return false
	}
	return true
}

// day truncates a timestamp to its calendar day in a fixed zone so
// that bounds and appointment dates compare day-by-day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
