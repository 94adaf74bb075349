package model

import "time"

// TimeLayout is the fixed textual format in which appointment
// timestamps are stored.
const TimeLayout = "2006-01-02 15:04:05"

// ID identifies a persisted entity. The zero value means the entity
// has not been saved yet; an id is only ever assigned by the store.
type ID struct {
	value     int64
	persisted bool
}

// PersistedID returns the ID of an entity that exists in the store.
func PersistedID(v int64) ID {
	return ID{value: v, persisted: true}
}

// Persisted reports whether the entity carries a store-assigned id.
func (id ID) Persisted() bool {
	return id.persisted
}

// Int64 returns the numeric id, or 0 for an unsaved entity.
func (id ID) Int64() int64 {
	return id.value
}

// Contact is the data structure for a person that we know.
// Name is required; email and phone are optional.
type Contact struct {
	ID    ID
	Name  string
	Email *string
	Phone *string
}

// Appointment is a scheduled event linked to one contact. A nil
// DateTime means no date has been set. Location may be empty for
// online appointments.
type Appointment struct {
	ID          ID
	ContactID   int64
	DateTime    *time.Time
	Location    string
	Online      bool
	Description *string
}

// FormatDateTime renders a timestamp in the storage format, or an
// empty string when no date is set.
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseDateTime parses a stored timestamp. An empty string maps to
// "no date set" rather than an error.
func ParseDateTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
