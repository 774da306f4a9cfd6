package daterange

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nomadstay/internal/domain/shared/caldate"
)

func day(t *testing.T, s string) caldate.Date {
	t.Helper()
	d, err := caldate.Parse(s)
	assert.NoError(t, err)
	return d
}

func TestNewRejectsEmptyAndInvertedRanges(t *testing.T) {
	d := day(t, "2025-06-01")

	_, err := New(d, d)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(d.AddDays(2), d)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(caldate.Date{}, d)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewNormalizedWidensSingleDaySelection(t *testing.T) {
	d := day(t, "2025-06-01")
	r, err := NewNormalized(d, d)
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Nights())
	assert.Equal(t, "2025-06-02", r.CheckOut.String())

	// An already valid range passes through untouched.
	r, err = NewNormalized(d, d.AddDays(3))
	assert.NoError(t, err)
	assert.Equal(t, 3, r.Nights())
}

func TestNights(t *testing.T) {
	r, _ := New(day(t, "2025-06-01"), day(t, "2025-06-03"))
	assert.Equal(t, 2, r.Nights())

	oneNight, _ := New(day(t, "2025-06-01"), day(t, "2025-06-02"))
	assert.Equal(t, 1, oneNight.Nights())
}

func TestOverlaps(t *testing.T) {
	base, _ := New(day(t, "2025-06-05"), day(t, "2025-06-10"))

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"before", "2025-06-01", "2025-06-05", false}, // checkout day is free
		{"after", "2025-06-10", "2025-06-12", false},
		{"starts inside", "2025-06-08", "2025-06-12", true},
		{"ends inside", "2025-06-03", "2025-06-06", true},
		{"covers", "2025-06-01", "2025-06-15", true},
		{"inside", "2025-06-06", "2025-06-08", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := New(day(t, tt.from), day(t, tt.to))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, base.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(base))
		})
	}
}

func TestContainsDate(t *testing.T) {
	r, _ := New(day(t, "2025-06-01"), day(t, "2025-06-03"))
	assert.True(t, r.ContainsDate(day(t, "2025-06-01")))
	assert.True(t, r.ContainsDate(day(t, "2025-06-02")))
	assert.False(t, r.ContainsDate(day(t, "2025-06-03"))) // half-open
	assert.False(t, r.ContainsDate(day(t, "2025-05-31")))
}

func TestDatesExpansion(t *testing.T) {
	r, _ := New(day(t, "2025-06-01"), day(t, "2025-06-04"))
	got := r.Dates()
	assert.Len(t, got, 3)
	assert.Equal(t, "2025-06-01", got[0].String())
	assert.Equal(t, "2025-06-03", got[2].String())

	// Month boundary walks by calendar day, not 24h offsets.
	r, _ = New(day(t, "2025-06-29"), day(t, "2025-07-02"))
	got = r.Dates()
	assert.Equal(t, []string{"2025-06-29", "2025-06-30", "2025-07-01"}, []string{got[0].String(), got[1].String(), got[2].String()})

	assert.Nil(t, StayRange{}.Dates())
}
