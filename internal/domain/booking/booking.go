package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/pricing"
	"nomadstay/internal/domain/shared/daterange"
	"nomadstay/internal/domain/shared/events"
)

var (
	ErrInvalidGuestCount = errors.New("booking: guest count must be positive")
	ErrGuestLimit        = errors.New("booking: guest count exceeds listing capacity")
	ErrContactRequired   = errors.New("booking: full name and phone number are required")
	ErrAlreadyCancelled  = errors.New("booking: already cancelled by host")
	ErrBookingNotFound   = errors.New("booking: not found")
)

type BookingID string

// Booking is a guest's stay request. There is no payment leg; a booking is
// effective from creation until the host cancels it.
type Booking struct {
	ID              BookingID
	ListingID       listings.ListingID
	GuestID         string
	Range           daterange.StayRange
	GuestCount      int
	FullName        string
	PhoneNumber     string
	Notes           string
	Price           pricing.Breakdown
	CancelledByHost bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
	ListByHost(ctx context.Context, host listings.HostID) ([]*Booking, error)
}

type CreateParams struct {
	ID          BookingID
	ListingID   listings.ListingID
	GuestID     string
	Range       daterange.StayRange
	GuestCount  int
	MaxGuests   int
	FullName    string
	PhoneNumber string
	Notes       string
	Price       pricing.Breakdown
	CreatedAt   time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.GuestID == "" {
		return nil, errors.New("booking: guest id required")
	}
	if params.GuestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}
	if params.MaxGuests > 0 && params.GuestCount > params.MaxGuests {
		return nil, ErrGuestLimit
	}
	fullName := strings.TrimSpace(params.FullName)
	phone := strings.TrimSpace(params.PhoneNumber)
	if fullName == "" || len(phone) < 6 {
		return nil, ErrContactRequired
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:          params.ID,
		ListingID:   params.ListingID,
		GuestID:     params.GuestID,
		Range:       params.Range,
		GuestCount:  params.GuestCount,
		FullName:    fullName,
		PhoneNumber: phone,
		Notes:       strings.TrimSpace(params.Notes),
		Price:       params.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.Record(BookingRequested{
		BookingID:  string(b.ID),
		ListingID:  string(b.ListingID),
		GuestID:    b.GuestID,
		Range:      b.Range,
		GuestCount: b.GuestCount,
		Total:      b.Price.Total,
		At:         now,
	})
	return b, nil
}

// CancelByHost flags the booking as cancelled. Restoring the consumed
// availability nights is the caller's job, alongside the calendar aggregate.
func (b *Booking) CancelByHost(now time.Time) error {
	if b.CancelledByHost {
		return ErrAlreadyCancelled
	}
	b.CancelledByHost = true
	b.UpdatedAt = now.UTC()
	b.Record(BookingHostCancelled{
		BookingID: string(b.ID),
		ListingID: string(b.ListingID),
		Range:     b.Range,
		At:        b.UpdatedAt,
	})
	return nil
}
