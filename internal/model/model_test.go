package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestIDZeroValueIsUnsaved verifies that the zero value of ID marks an
// entity that has not been persisted yet.
func TestIDZeroValueIsUnsaved(t *testing.T) {
	var id ID
	assert.False(t, id.Persisted())
	assert.Equal(t, int64(0), id.Int64())
}

// TestPersistedID verifies that a store-assigned id is carried through.
func TestPersistedID(t *testing.T) {
	id := PersistedID(42)
	assert.True(t, id.Persisted())
	assert.Equal(t, int64(42), id.Int64())
}

// TestFormatDateTime verifies the fixed storage format and that a nil
// timestamp renders as the empty string.
func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, time.December, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-01 10:00:00", FormatDateTime(&ts))
	assert.Equal(t, "", FormatDateTime(nil))
}

// TestParseDateTime verifies that stored text round-trips and that an
// empty string maps to "no date set" rather than an error.
func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("2025-12-05 09:00:00")
	assert.NoError(t, err)
	if assert.NotNil(t, parsed) {
		assert.Equal(t, time.Date(2025, time.December, 5, 9, 0, 0, 0, time.UTC), *parsed)
	}

	parsed, err = ParseDateTime("")
	assert.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = ParseDateTime("05/12/2025 09:00")
	assert.Error(t, err)
}
