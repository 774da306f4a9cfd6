package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"nomadstay/internal/app/outbox"
	"nomadstay/internal/app/uow"
	domainbooking "nomadstay/internal/domain/booking"
	domainlistings "nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/pricing"
	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/daterange"
)

const RequestBookingKey = "booking.request"

var ErrListingInactive = errors.New("booking: listing is not accepting bookings")

// RequestBookingCommand creates a booking for a guest. Clients send the
// idempotency key they minted for the attempt; retries with the same key
// replay the first outcome.
type RequestBookingCommand struct {
	ListingID       string
	GuestID         string
	CheckIn         caldate.Date
	CheckOut        caldate.Date
	GuestCount      int
	FullName        string
	PhoneNumber     string
	Notes           string
	IdempotencyKeyV string
}

func (RequestBookingCommand) Key() string { return RequestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	ID string `json:"id"`
}

type RequestBookingHandler struct {
	box        outbox.Outbox
	encoder    outbox.EventEncoder
	feePercent int64
	now        func() time.Time
	newID      func() string
}

func NewRequestBookingHandler(box outbox.Outbox, feePercent int64) *RequestBookingHandler {
	return &RequestBookingHandler{
		box:        box,
		encoder:    outbox.JSONEventEncoder{},
		feePercent: feePercent,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}

	stay, err := daterange.NewNormalized(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, domainbooking.ErrEmptyRange
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, ErrListingInactive
	}

	quote, err := pricing.Quote(listing.PricePerNight, stay, h.feePercent)
	if err != nil {
		return nil, err
	}

	calendar, err := unit.Availability().Calendar(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	hostBookings, err := unit.Bookings().ListByHost(ctx, listing.Host)
	if err != nil {
		return nil, err
	}
	booked := domainbooking.BuildRangeIndex(hostBookings, listing.ID)
	if _, err := domainbooking.ValidateSelection(calendar.Index(), booked, stay.CheckIn, stay.CheckOut); err != nil {
		return nil, err
	}

	now := h.now()
	bk, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:          domainbooking.BookingID(h.newID()),
		ListingID:   listing.ID,
		GuestID:     cmd.GuestID,
		Range:       stay,
		GuestCount:  cmd.GuestCount,
		MaxGuests:   listing.MaxGuests,
		FullName:    cmd.FullName,
		PhoneNumber: cmd.PhoneNumber,
		Notes:       cmd.Notes,
		Price:       quote,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := calendar.Consume(stay, string(bk.ID), now); err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, bk); err != nil {
		return nil, err
	}
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.box, h.encoder, &bk.EventRecorder); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.box, h.encoder, &calendar.EventRecorder); err != nil {
		return nil, err
	}
	return &RequestBookingResult{ID: string(bk.ID)}, nil
}
