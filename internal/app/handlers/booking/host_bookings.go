package booking

import (
	"context"

	"nomadstay/internal/app/dto"
	"nomadstay/internal/app/uow"
	domainlistings "nomadstay/internal/domain/listings"
)

const HostBookingsKey = "booking.host_bookings"

// HostBookingsQuery lists every booking made against the host's listings,
// cancelled ones included, newest first.
type HostBookingsQuery struct {
	HostID string
}

func (HostBookingsQuery) Key() string { return HostBookingsKey }

type HostBookingsHandler struct {
	factory uow.Factory
}

func NewHostBookingsHandler(factory uow.Factory) *HostBookingsHandler {
	return &HostBookingsHandler{factory: factory}
}

func (h *HostBookingsHandler) Handle(ctx context.Context, q HostBookingsQuery) ([]dto.Booking, error) {
	unit, err := h.factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	items, err := unit.Bookings().ListByHost(ctx, domainlistings.HostID(q.HostID))
	if err != nil {
		return nil, err
	}
	return dto.BookingsFromDomain(items), nil
}
