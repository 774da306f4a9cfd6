package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nomadstay/internal/domain/availability"
	"nomadstay/internal/domain/pricing"
	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/daterange"
	"nomadstay/internal/domain/shared/money"
)

func day(t *testing.T, s string) caldate.Date {
	t.Helper()
	d, err := caldate.Parse(s)
	assert.NoError(t, err)
	return d
}

func openDates(t *testing.T, from, to string) *availability.Index {
	t.Helper()
	r, err := daterange.New(day(t, from), day(t, to))
	assert.NoError(t, err)
	return availability.IndexOf(r.Dates())
}

func testBooking(t *testing.T, id, from, to string) *Booking {
	t.Helper()
	r, err := daterange.New(day(t, from), day(t, to))
	assert.NoError(t, err)
	q, err := pricing.Quote(money.Must(50000, "MNT"), r, pricing.DefaultServiceFeePercent)
	assert.NoError(t, err)
	b, err := NewBooking(CreateParams{
		ID:          BookingID(id),
		ListingID:   "42",
		GuestID:     "guest-1",
		Range:       r,
		GuestCount:  2,
		MaxGuests:   4,
		FullName:    "Bat-Erdene",
		PhoneNumber: "99112233",
		Price:       q,
		CreatedAt:   time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	return b
}

func TestValidateSelectionHappyPath(t *testing.T) {
	// availability = {2025-06-01 .. 2025-06-05}, no bookings, 50000/night.
	avail := openDates(t, "2025-06-01", "2025-06-06")

	r, err := ValidateSelection(avail, nil, day(t, "2025-06-01"), day(t, "2025-06-03"))
	assert.NoError(t, err)
	assert.Equal(t, 2, r.Nights())

	q, err := pricing.Quote(money.Must(50000, "MNT"), r, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(100000), q.Base.Amount)
}

func TestValidateSelectionConflict(t *testing.T) {
	avail := openDates(t, "2025-06-01", "2025-06-06")
	// Booking #7 owns 2025-06-02.
	booked := BuildRangeIndex([]*Booking{testBooking(t, "7", "2025-06-02", "2025-06-03")}, "42")

	_, err := ValidateSelection(avail, booked, day(t, "2025-06-01"), day(t, "2025-06-03"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestValidateSelectionUnavailable(t *testing.T) {
	empty := availability.IndexOf(nil)
	_, err := ValidateSelection(empty, nil, day(t, "2025-06-01"), day(t, "2025-06-03"))
	assert.ErrorIs(t, err, ErrUnavailable)

	// Partially open is just as unavailable.
	avail := openDates(t, "2025-06-01", "2025-06-03")
	_, err = ValidateSelection(avail, nil, day(t, "2025-06-01"), day(t, "2025-06-05"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestValidateSelectionEmptyRange(t *testing.T) {
	avail := openDates(t, "2025-06-01", "2025-06-06")
	d := day(t, "2025-06-01")

	_, err := ValidateSelection(avail, nil, d, d)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = ValidateSelection(avail, nil, d.AddDays(2), d)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = ValidateSelection(avail, nil, caldate.Date{}, d)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestValidateSelectionNormalizedSingleClick(t *testing.T) {
	avail := openDates(t, "2025-06-01", "2025-06-06")
	d := day(t, "2025-06-01")

	r, err := daterange.NewNormalized(d, d)
	assert.NoError(t, err)
	got, err := ValidateSelection(avail, nil, r.CheckIn, r.CheckOut)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Nights())
}
