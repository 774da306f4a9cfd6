package memory

import (
	"context"

	"nomadstay/internal/app/uow"
	"nomadstay/internal/domain/availability"
	"nomadstay/internal/domain/booking"
	"nomadstay/internal/domain/listings"
)

// Factory hands out units of work over the shared in-memory store. There is
// no real transaction; writes land immediately and Rollback is a no-op, which
// matches what the dev mode needs.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

func (f *Factory) Begin(_ context.Context, _ uow.TxOptions) (uow.UnitOfWork, error) {
	return &unit{store: f.store}, nil
}

type unit struct {
	store *Store
}

func (u *unit) Listings() listings.ListingRepository  { return listingRepo{store: u.store} }
func (u *unit) Availability() availability.Repository { return availabilityRepo{store: u.store} }
func (u *unit) Bookings() booking.Repository          { return bookingRepo{store: u.store} }
func (u *unit) Commit(context.Context) error          { return nil }
func (u *unit) Rollback(context.Context) error        { return nil }
