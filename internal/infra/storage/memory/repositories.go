package memory

import (
	"context"
	"sort"
	"sync"

	"nomadstay/internal/domain/availability"
	"nomadstay/internal/domain/booking"
	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
)

// Store holds every aggregate behind one mutex. Good enough for tests and the
// single-process dev mode; production runs on Mongo.
type Store struct {
	mu        sync.RWMutex
	listings  map[listings.ListingID]listings.Listing
	calendars map[listings.ListingID][]caldate.Date
	bookings  map[booking.BookingID]booking.Booking
}

func NewStore() *Store {
	return &Store{
		listings:  make(map[listings.ListingID]listings.Listing),
		calendars: make(map[listings.ListingID][]caldate.Date),
		bookings:  make(map[booking.BookingID]booking.Booking),
	}
}

type listingRepo struct{ store *Store }

func (r listingRepo) ByID(_ context.Context, id listings.ListingID) (*listings.Listing, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	l, ok := r.store.listings[id]
	if !ok {
		return nil, listings.ErrListingNotFound
	}
	out := l
	return &out, nil
}

func (r listingRepo) ByHost(_ context.Context, host listings.HostID) ([]*listings.Listing, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*listings.Listing
	for _, l := range r.store.listings {
		if l.Host == host {
			item := l
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r listingRepo) Save(_ context.Context, listing *listings.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing.Version++
	r.store.listings[listing.ID] = *listing
	return nil
}

type availabilityRepo struct{ store *Store }

func (r availabilityRepo) Calendar(_ context.Context, id listings.ListingID) (*availability.Calendar, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	// Listings without saved availability have an empty calendar rather than
	// a missing one.
	return availability.NewCalendar(id, r.store.calendars[id]), nil
}

func (r availabilityRepo) Save(_ context.Context, calendar *availability.Calendar) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	calendar.Version++
	r.store.calendars[calendar.ListingID] = calendar.OpenDates()
	return nil
}

type bookingRepo struct{ store *Store }

func (r bookingRepo) ByID(_ context.Context, id booking.BookingID) (*booking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	out := b
	return &out, nil
}

func (r bookingRepo) Save(_ context.Context, b *booking.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b.Version++
	stored := *b
	stored.ClearEvents()
	r.store.bookings[b.ID] = stored
	return nil
}

func (r bookingRepo) ListByGuest(_ context.Context, guestID string) ([]*booking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*booking.Booking
	for _, b := range r.store.bookings {
		if b.GuestID == guestID {
			item := b
			out = append(out, &item)
		}
	}
	sortBookings(out)
	return out, nil
}

func (r bookingRepo) ListByHost(_ context.Context, host listings.HostID) ([]*booking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	hosted := make(map[listings.ListingID]struct{})
	for _, l := range r.store.listings {
		if l.Host == host {
			hosted[l.ID] = struct{}{}
		}
	}
	var out []*booking.Booking
	for _, b := range r.store.bookings {
		if _, ok := hosted[b.ListingID]; ok {
			item := b
			out = append(out, &item)
		}
	}
	sortBookings(out)
	return out, nil
}

func sortBookings(items []*booking.Booking) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
