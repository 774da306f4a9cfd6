package booking

import (
	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
)

// RangeIndex maps each booked night of one listing to the booking that owns
// it, for host calendars (click a night, land on its booking). Host-cancelled
// bookings are excluded. The backend is the authority on overlap prevention;
// if the input nevertheless carries overlapping bookings the later one wins
// per night and nothing breaks.
type RangeIndex struct {
	owners map[caldate.Date]BookingID
}

func BuildRangeIndex(bookings []*Booking, listingID listings.ListingID) *RangeIndex {
	ix := &RangeIndex{owners: make(map[caldate.Date]BookingID)}
	for _, b := range bookings {
		if b == nil || b.ListingID != listingID || b.CancelledByHost {
			continue
		}
		for _, d := range b.Range.Dates() {
			ix.owners[d] = b.ID
		}
	}
	return ix
}

// OwnerOf returns the booking covering the night, if any.
func (ix *RangeIndex) OwnerOf(d caldate.Date) (BookingID, bool) {
	if ix == nil {
		return "", false
	}
	id, ok := ix.owners[d]
	return id, ok
}

// Overlaps reports whether any night of [from, to) is already booked.
func (ix *RangeIndex) Overlaps(from, to caldate.Date) bool {
	if ix == nil || from.IsZero() || to.IsZero() {
		return false
	}
	for d := from; d.Before(to); d = d.AddDays(1) {
		if _, ok := ix.owners[d]; ok {
			return true
		}
	}
	return false
}

func (ix *RangeIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.owners)
}
