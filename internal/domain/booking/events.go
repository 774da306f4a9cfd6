package booking

import (
	"time"

	"nomadstay/internal/domain/shared/daterange"
	"nomadstay/internal/domain/shared/money"
)

type BookingRequested struct {
	BookingID  string              `json:"booking_id"`
	ListingID  string              `json:"listing_id"`
	GuestID    string              `json:"guest_id"`
	Range      daterange.StayRange `json:"range"`
	GuestCount int                 `json:"guest_count"`
	Total      money.Money         `json:"total"`
	At         time.Time           `json:"at"`
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return e.BookingID }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingHostCancelled struct {
	BookingID string              `json:"booking_id"`
	ListingID string              `json:"listing_id"`
	Range     daterange.StayRange `json:"range"`
	At        time.Time           `json:"at"`
}

func (e BookingHostCancelled) EventName() string     { return "booking.host_cancelled" }
func (e BookingHostCancelled) AggregateID() string   { return e.BookingID }
func (e BookingHostCancelled) OccurredAt() time.Time { return e.At }
