package availability

import (
	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
)

// Entry is one night a host has opened for booking.
type Entry struct {
	ListingID listings.ListingID
	Date      caldate.Date
}

// Index answers "is this night open?" for a single listing in O(1) after an
// O(n) build. A nil or empty index reports every night unavailable, so callers
// rendering from partial data fail closed.
type Index struct {
	dates map[caldate.Date]struct{}
}

func BuildIndex(entries []Entry) *Index {
	ix := &Index{dates: make(map[caldate.Date]struct{}, len(entries))}
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		ix.dates[e.Date] = struct{}{}
	}
	return ix
}

// IndexOf builds an index straight from dates, for callers that already hold
// a single listing's calendar.
func IndexOf(dates []caldate.Date) *Index {
	ix := &Index{dates: make(map[caldate.Date]struct{}, len(dates))}
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		ix.dates[d] = struct{}{}
	}
	return ix
}

func (ix *Index) IsAvailable(d caldate.Date) bool {
	if ix == nil {
		return false
	}
	_, ok := ix.dates[d]
	return ok
}

// IsRangeAvailable reports whether every night of the half-open range
// [from, to) is open. A range that spans no nights (from >= to) is never
// available. The walk steps calendar days.
func (ix *Index) IsRangeAvailable(from, to caldate.Date) bool {
	if ix == nil || from.IsZero() || to.IsZero() || !from.Before(to) {
		return false
	}
	for d := from; d.Before(to); d = d.AddDays(1) {
		if !ix.IsAvailable(d) {
			return false
		}
	}
	return true
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.dates)
}
