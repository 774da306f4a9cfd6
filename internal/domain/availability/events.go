package availability

import (
	"time"

	"nomadstay/internal/domain/shared/daterange"
)

type CalendarReplaced struct {
	ListingID string    `json:"listing_id"`
	Count     int       `json:"count"`
	At        time.Time `json:"at"`
}

func (e CalendarReplaced) EventName() string     { return "calendar.replaced" }
func (e CalendarReplaced) AggregateID() string   { return e.ListingID }
func (e CalendarReplaced) OccurredAt() time.Time { return e.At }

type CalendarConsumed struct {
	ListingID string              `json:"listing_id"`
	Range     daterange.StayRange `json:"range"`
	BookingID string              `json:"booking_id"`
	At        time.Time           `json:"at"`
}

func (e CalendarConsumed) EventName() string     { return "calendar.consumed" }
func (e CalendarConsumed) AggregateID() string   { return e.ListingID }
func (e CalendarConsumed) OccurredAt() time.Time { return e.At }

type CalendarRestored struct {
	ListingID string              `json:"listing_id"`
	Range     daterange.StayRange `json:"range"`
	BookingID string              `json:"booking_id"`
	At        time.Time           `json:"at"`
}

func (e CalendarRestored) EventName() string     { return "calendar.restored" }
func (e CalendarRestored) AggregateID() string   { return e.ListingID }
func (e CalendarRestored) OccurredAt() time.Time { return e.At }
