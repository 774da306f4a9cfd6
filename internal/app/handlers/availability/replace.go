package availability

import (
	"context"
	"errors"
	"time"

	"nomadstay/internal/app/outbox"
	"nomadstay/internal/app/uow"
	domainavailability "nomadstay/internal/domain/availability"
	domainlistings "nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
)

const (
	ReplaceKey = "availability.replace"
	ClearKey   = "availability.clear"
)

var ErrNotListingHost = errors.New("availability: caller does not host this listing")

// ReplaceCommand swaps a listing's open-date set wholesale. The host edit
// flow always sends the full desired set, never a diff.
type ReplaceCommand struct {
	ListingID string
	HostID    string
	Dates     []caldate.Date
}

func (ReplaceCommand) Key() string { return ReplaceKey }

// ClearCommand drops every open night of a listing.
type ClearCommand struct {
	ListingID string
	HostID    string
}

func (ClearCommand) Key() string { return ClearKey }

type ReplaceHandler struct {
	box     outbox.Outbox
	encoder outbox.EventEncoder
	now     func() time.Time
}

func NewReplaceHandler(box outbox.Outbox) *ReplaceHandler {
	return &ReplaceHandler{box: box, encoder: outbox.JSONEventEncoder{}, now: time.Now}
}

func (h *ReplaceHandler) Handle(ctx context.Context, cmd ReplaceCommand) (struct{}, error) {
	calendar, unit, err := hostCalendar(ctx, cmd.ListingID, cmd.HostID)
	if err != nil {
		return struct{}{}, err
	}
	calendar.Replace(cmd.Dates, h.now())
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return struct{}{}, err
	}
	if err := outbox.Drain(ctx, h.box, h.encoder, &calendar.EventRecorder); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, nil
}

type ClearHandler struct {
	box     outbox.Outbox
	encoder outbox.EventEncoder
	now     func() time.Time
}

func NewClearHandler(box outbox.Outbox) *ClearHandler {
	return &ClearHandler{box: box, encoder: outbox.JSONEventEncoder{}, now: time.Now}
}

func (h *ClearHandler) Handle(ctx context.Context, cmd ClearCommand) (struct{}, error) {
	calendar, unit, err := hostCalendar(ctx, cmd.ListingID, cmd.HostID)
	if err != nil {
		return struct{}{}, err
	}
	calendar.Clear(h.now())
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return struct{}{}, err
	}
	if err := outbox.Drain(ctx, h.box, h.encoder, &calendar.EventRecorder); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, nil
}

// hostCalendar loads the listing's calendar after checking the caller hosts
// the listing.
func hostCalendar(ctx context.Context, listingID, hostID string) (*domainavailability.Calendar, uow.UnitOfWork, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, nil, uow.ErrUnitOfWorkMissing
	}
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(listingID))
	if err != nil {
		return nil, nil, err
	}
	if listing.Host != domainlistings.HostID(hostID) {
		return nil, nil, ErrNotListingHost
	}
	calendar, err := unit.Availability().Calendar(ctx, listing.ID)
	if err != nil {
		return nil, nil, err
	}
	return calendar, unit, nil
}
