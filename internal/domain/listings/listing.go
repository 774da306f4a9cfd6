package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"nomadstay/internal/domain/shared/money"
)

var (
	ErrTitleRequired   = errors.New("listings: title is required")
	ErrGuestsLimit     = errors.New("listings: max guests must be at least 1")
	ErrNightlyRate     = errors.New("listings: nightly rate must be positive")
	ErrListingNotFound = errors.New("listings: not found")
)

type ListingID string

type HostID string

// Listing is the bookable unit. Photos, amenities and geocoding live with the
// media and catalog services; the booking core only needs what pricing and
// capacity checks read.
type Listing struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	LocationText  string
	PricePerNight money.Money
	MaxGuests     int
	Beds          int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

type ListingRepository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	ByHost(ctx context.Context, host HostID) ([]*Listing, error)
	Save(ctx context.Context, listing *Listing) error
}

type CreateListingParams struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	LocationText  string
	PricePerNight money.Money
	MaxGuests     int
	Beds          int
	CreatedAt     time.Time
}

func NewListing(params CreateListingParams) (*Listing, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.MaxGuests < 1 {
		return nil, ErrGuestsLimit
	}
	if params.PricePerNight.Amount <= 0 || params.PricePerNight.Currency == "" {
		return nil, ErrNightlyRate
	}
	now := params.CreatedAt.UTC()
	return &Listing{
		ID:            params.ID,
		Host:          params.Host,
		Title:         strings.TrimSpace(params.Title),
		Description:   params.Description,
		LocationText:  params.LocationText,
		PricePerNight: params.PricePerNight,
		MaxGuests:     params.MaxGuests,
		Beds:          params.Beds,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
