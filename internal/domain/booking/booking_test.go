package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nomadstay/internal/domain/shared/daterange"
)

func TestNewBookingValidation(t *testing.T) {
	valid := testBooking(t, "1", "2025-06-01", "2025-06-03")
	params := CreateParams{
		ID:          "2",
		ListingID:   valid.ListingID,
		GuestID:     "guest-1",
		Range:       valid.Range,
		GuestCount:  2,
		MaxGuests:   4,
		FullName:    "Bat-Erdene",
		PhoneNumber: "99112233",
		Price:       valid.Price,
		CreatedAt:   time.Now(),
	}

	tests := []struct {
		name   string
		mutate func(*CreateParams)
		want   error
	}{
		{"zero guests", func(p *CreateParams) { p.GuestCount = 0 }, ErrInvalidGuestCount},
		{"over capacity", func(p *CreateParams) { p.GuestCount = 5 }, ErrGuestLimit},
		{"missing name", func(p *CreateParams) { p.FullName = "  " }, ErrContactRequired},
		{"short phone", func(p *CreateParams) { p.PhoneNumber = "123" }, ErrContactRequired},
		{"empty range", func(p *CreateParams) { p.Range = daterange.StayRange{} }, daterange.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params
			tt.mutate(&p)
			_, err := NewBooking(p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewBookingRecordsRequestedEvent(t *testing.T) {
	b := testBooking(t, "1", "2025-06-01", "2025-06-03")
	evs := b.PendingEvents()
	assert.Len(t, evs, 1)
	assert.Equal(t, "booking.requested", evs[0].EventName())
	assert.Equal(t, "1", evs[0].AggregateID())
}

func TestCancelByHost(t *testing.T) {
	b := testBooking(t, "1", "2025-06-01", "2025-06-03")
	b.ClearEvents()
	now := time.Date(2025, time.May, 15, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, b.CancelByHost(now))
	assert.True(t, b.CancelledByHost)
	assert.Equal(t, now, b.UpdatedAt)

	assert.ErrorIs(t, b.CancelByHost(now), ErrAlreadyCancelled)

	evs := b.PendingEvents()
	assert.Len(t, evs, 1)
	assert.Equal(t, "booking.host_cancelled", evs[0].EventName())
}
