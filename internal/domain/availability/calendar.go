package availability

import (
	"context"
	"errors"
	"sort"
	"time"

	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/daterange"
	"nomadstay/internal/domain/shared/events"
)

var ErrNightsUnavailable = errors.New("availability: some requested nights are not open")

// Calendar is a listing's set of host-opened nights. Hosts edit it with
// replace-not-diff semantics; booking creation consumes the booked nights and
// host cancellation restores them.
type Calendar struct {
	ListingID listings.ListingID
	dates     map[caldate.Date]struct{}
	Version   int64
	events.EventRecorder
}

type Repository interface {
	Calendar(ctx context.Context, id listings.ListingID) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

func NewCalendar(id listings.ListingID, dates []caldate.Date) *Calendar {
	c := &Calendar{ListingID: id, dates: make(map[caldate.Date]struct{}, len(dates))}
	for _, d := range dates {
		if !d.IsZero() {
			c.dates[d] = struct{}{}
		}
	}
	return c
}

// Replace swaps the whole open-date set. The delete-then-recreate pair the
// hosts' edit flow issues maps to a single Replace here.
func (c *Calendar) Replace(dates []caldate.Date, now time.Time) {
	c.dates = make(map[caldate.Date]struct{}, len(dates))
	for _, d := range dates {
		if !d.IsZero() {
			c.dates[d] = struct{}{}
		}
	}
	c.Record(CalendarReplaced{ListingID: string(c.ListingID), Count: len(c.dates), At: now.UTC()})
}

// Clear removes every open night without recording a replacement; used by the
// delete-by-listing call when it arrives on its own.
func (c *Calendar) Clear(now time.Time) {
	c.dates = make(map[caldate.Date]struct{})
	c.Record(CalendarReplaced{ListingID: string(c.ListingID), Count: 0, At: now.UTC()})
}

// Consume removes the booked nights from the open set. Every night of the
// range must currently be open or nothing is consumed.
func (c *Calendar) Consume(r daterange.StayRange, bookingID string, now time.Time) error {
	if !c.Index().IsRangeAvailable(r.CheckIn, r.CheckOut) {
		return ErrNightsUnavailable
	}
	for _, d := range r.Dates() {
		delete(c.dates, d)
	}
	c.Record(CalendarConsumed{ListingID: string(c.ListingID), Range: r, BookingID: bookingID, At: now.UTC()})
	return nil
}

// Restore reopens the nights of a cancelled booking. Nights that are already
// open stay open.
func (c *Calendar) Restore(r daterange.StayRange, bookingID string, now time.Time) {
	if c.dates == nil {
		c.dates = make(map[caldate.Date]struct{})
	}
	for _, d := range r.Dates() {
		c.dates[d] = struct{}{}
	}
	c.Record(CalendarRestored{ListingID: string(c.ListingID), Range: r, BookingID: bookingID, At: now.UTC()})
}

// Index snapshots the open set for read-side checks.
func (c *Calendar) Index() *Index {
	snapshot := make(map[caldate.Date]struct{}, len(c.dates))
	for d := range c.dates {
		snapshot[d] = struct{}{}
	}
	return &Index{dates: snapshot}
}

// OpenDates lists the open nights in chronological order.
func (c *Calendar) OpenDates() []caldate.Date {
	out := make([]caldate.Date, 0, len(c.dates))
	for d := range c.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
