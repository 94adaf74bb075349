package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agenda-project/agenda/internal/model"
)

func at(day int, hour int) *time.Time {
	t := time.Date(2025, time.December, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func sample() []model.Appointment {
	return []model.Appointment{
		{ID: model.PersistedID(1), ContactID: 1, DateTime: at(1, 10), Location: "Sala 101"},
		{ID: model.PersistedID(2), ContactID: 2, DateTime: at(2, 14), Location: "Sala 202"},
		{ID: model.PersistedID(3), ContactID: 1, DateTime: at(5, 9), Online: true},
		{ID: model.PersistedID(4), ContactID: 3, DateTime: at(10, 16)},
		{ID: model.PersistedID(5), ContactID: 2},
	}
}

func ids(appointments []model.Appointment) []int64 {
	out := make([]int64, len(appointments))
	for i, a := range appointments {
		out[i] = a.ID.Int64()
	}
	return out
}

// TestApplyNoCriteria verifies that the zero criteria pass everything
// through, including the dateless appointment.
func TestApplyNoCriteria(t *testing.T) {
	got := Criteria{}.Apply(sample())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))
}

// TestApplyDateRange verifies the inclusive day-level range and that
// dateless appointments fall out once a bound is set.
func TestApplyDateRange(t *testing.T) {
	c := Criteria{Start: at(2, 0), End: at(10, 0)}
	got := c.Apply(sample())
	assert.Equal(t, []int64{2, 3, 4}, ids(got))
}

// TestApplyDayGranularity verifies that bounds compare calendar days:
// a late start bound still matches an earlier appointment on the same
// day.
func TestApplyDayGranularity(t *testing.T) {
	c := Criteria{Start: at(1, 23), End: at(1, 23)}
	got := c.Apply(sample())
	assert.Equal(t, []int64{1}, ids(got))
}

// TestApplyOpenEndedBounds verifies that each bound works alone.
func TestApplyOpenEndedBounds(t *testing.T) {
	got := Criteria{Start: at(5, 0)}.Apply(sample())
	assert.Equal(t, []int64{3, 4}, ids(got))

	got = Criteria{End: at(2, 0)}.Apply(sample())
	assert.Equal(t, []int64{1, 2}, ids(got))
}

// TestApplyContradictoryRange verifies that a start after the end
// matches nothing at all.
func TestApplyContradictoryRange(t *testing.T) {
	c := Criteria{Start: at(10, 0), End: at(2, 0)}
	got := c.Apply(sample())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestApplyContactFilter verifies the exact contact match, alone and
// combined with a date range.
func TestApplyContactFilter(t *testing.T) {
	contact := int64(1)
	got := Criteria{ContactID: &contact}.Apply(sample())
	assert.Equal(t, []int64{1, 3}, ids(got))

	c := Criteria{Start: at(2, 0), End: at(10, 0), ContactID: &contact}
	got = c.Apply(sample())
	assert.Equal(t, []int64{3}, ids(got))
}

// TestApplyDoesNotMutateInput verifies that the input slice keeps its
// order and contents.
func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	contact := int64(2)
	Criteria{ContactID: &contact}.Apply(in)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(in))
}
