package dto

import (
	"time"

	"nomadstay/internal/domain/availability"
	"nomadstay/internal/domain/booking"
	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
)

// Listing is the read model handed to HTTP handlers and clients.
type Listing struct {
	ID            string `json:"id"`
	HostID        string `json:"host_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	LocationText  string `json:"location_text,omitempty"`
	PricePerNight int64  `json:"price_per_night"`
	Currency      string `json:"currency"`
	MaxGuests     int    `json:"max_guests"`
	Beds          int    `json:"beds"`
	IsActive      bool   `json:"is_active"`
}

func ListingFromDomain(l *listings.Listing) Listing {
	return Listing{
		ID:            string(l.ID),
		HostID:        string(l.Host),
		Title:         l.Title,
		Description:   l.Description,
		LocationText:  l.LocationText,
		PricePerNight: l.PricePerNight.Amount,
		Currency:      l.PricePerNight.Currency,
		MaxGuests:     l.MaxGuests,
		Beds:          l.Beds,
		IsActive:      l.IsActive,
	}
}

// AvailabilityEntry mirrors one open night of a listing calendar.
type AvailabilityEntry struct {
	Listing string       `json:"listing"`
	Date    caldate.Date `json:"date"`
}

func AvailabilityFromCalendar(c *availability.Calendar) []AvailabilityEntry {
	dates := c.OpenDates()
	out := make([]AvailabilityEntry, 0, len(dates))
	for _, d := range dates {
		out = append(out, AvailabilityEntry{Listing: string(c.ListingID), Date: d})
	}
	return out
}

// BookingListing is the embedded listing reference on booking payloads. The
// host dashboard only needs the id to group rows per property.
type BookingListing struct {
	ID string `json:"id"`
}

type Booking struct {
	ID                string         `json:"id"`
	Listing           BookingListing `json:"listing"`
	GuestID           string         `json:"guest_id"`
	CheckIn           caldate.Date   `json:"check_in"`
	CheckOut          caldate.Date   `json:"check_out"`
	GuestCount        int            `json:"guest_count"`
	FullName          string         `json:"full_name"`
	PhoneNumber       string         `json:"phone_number"`
	Notes             string         `json:"notes,omitempty"`
	Nights            int            `json:"nights"`
	PriceBase         int64          `json:"price_base"`
	ServiceFee        int64          `json:"service_fee"`
	PriceTotal        int64          `json:"price_total"`
	Currency          string         `json:"currency"`
	IsCancelledByHost bool           `json:"is_cancelled_by_host"`
	CreatedAt         time.Time      `json:"created_at"`
}

func BookingFromDomain(b *booking.Booking) Booking {
	return Booking{
		ID:                string(b.ID),
		Listing:           BookingListing{ID: string(b.ListingID)},
		GuestID:           b.GuestID,
		CheckIn:           b.Range.CheckIn,
		CheckOut:          b.Range.CheckOut,
		GuestCount:        b.GuestCount,
		FullName:          b.FullName,
		PhoneNumber:       b.PhoneNumber,
		Notes:             b.Notes,
		Nights:            b.Price.Nights,
		PriceBase:         b.Price.Base.Amount,
		ServiceFee:        b.Price.ServiceFee.Amount,
		PriceTotal:        b.Price.Total.Amount,
		Currency:          b.Price.Total.Currency,
		IsCancelledByHost: b.CancelledByHost,
		CreatedAt:         b.CreatedAt,
	}
}

func BookingsFromDomain(items []*booking.Booking) []Booking {
	out := make([]Booking, 0, len(items))
	for _, b := range items {
		out = append(out, BookingFromDomain(b))
	}
	return out
}
