package booking

import (
	"context"
	"errors"
	"time"

	"nomadstay/internal/app/outbox"
	"nomadstay/internal/app/uow"
	domainbooking "nomadstay/internal/domain/booking"
	domainlistings "nomadstay/internal/domain/listings"
)

const HostCancelKey = "booking.host_cancel"

var ErrNotListingHost = errors.New("booking: caller does not host this listing")

// HostCancelCommand flags a booking as cancelled by the host and reopens its
// nights on the listing calendar.
type HostCancelCommand struct {
	BookingID string
	HostID    string
}

func (HostCancelCommand) Key() string { return HostCancelKey }

type HostCancelHandler struct {
	box     outbox.Outbox
	encoder outbox.EventEncoder
	now     func() time.Time
}

func NewHostCancelHandler(box outbox.Outbox) *HostCancelHandler {
	return &HostCancelHandler{box: box, encoder: outbox.JSONEventEncoder{}, now: time.Now}
}

func (h *HostCancelHandler) Handle(ctx context.Context, cmd HostCancelCommand) (struct{}, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return struct{}{}, uow.ErrUnitOfWorkMissing
	}

	bk, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return struct{}{}, err
	}
	listing, err := unit.Listings().ByID(ctx, bk.ListingID)
	if err != nil {
		return struct{}{}, err
	}
	if listing.Host != domainlistings.HostID(cmd.HostID) {
		return struct{}{}, ErrNotListingHost
	}

	now := h.now()
	if err := bk.CancelByHost(now); err != nil {
		return struct{}{}, err
	}
	calendar, err := unit.Availability().Calendar(ctx, listing.ID)
	if err != nil {
		return struct{}{}, err
	}
	calendar.Restore(bk.Range, string(bk.ID), now)

	if err := unit.Bookings().Save(ctx, bk); err != nil {
		return struct{}{}, err
	}
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return struct{}{}, err
	}
	if err := outbox.Drain(ctx, h.box, h.encoder, &bk.EventRecorder); err != nil {
		return struct{}{}, err
	}
	if err := outbox.Drain(ctx, h.box, h.encoder, &calendar.EventRecorder); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, nil
}
