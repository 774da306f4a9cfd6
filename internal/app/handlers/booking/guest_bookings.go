package booking

import (
	"context"

	"nomadstay/internal/app/dto"
	"nomadstay/internal/app/uow"
)

const GuestBookingsKey = "booking.guest_bookings"

// GuestBookingsQuery lists the caller's own bookings.
type GuestBookingsQuery struct {
	GuestID string
}

func (GuestBookingsQuery) Key() string { return GuestBookingsKey }

type GuestBookingsHandler struct {
	factory uow.Factory
}

func NewGuestBookingsHandler(factory uow.Factory) *GuestBookingsHandler {
	return &GuestBookingsHandler{factory: factory}
}

func (h *GuestBookingsHandler) Handle(ctx context.Context, q GuestBookingsQuery) ([]dto.Booking, error) {
	unit, err := h.factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	items, err := unit.Bookings().ListByGuest(ctx, q.GuestID)
	if err != nil {
		return nil, err
	}
	return dto.BookingsFromDomain(items), nil
}
