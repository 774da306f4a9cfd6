package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"nomadstay/internal/app/uow"
	domainlistings "nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/money"
)

type listingFixture struct {
	ID            string         `json:"id"`
	HostID        string         `json:"host_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	LocationText  string         `json:"location_text"`
	PricePerNight int64          `json:"price_per_night"`
	Currency      string         `json:"currency"`
	MaxGuests     int            `json:"max_guests"`
	Beds          int            `json:"beds"`
	OpenDates     []caldate.Date `json:"open_dates"`
}

// loadListingFixtures seeds listings and their calendars from a JSON file,
// for the in-memory dev mode.
func loadListingFixtures(ctx context.Context, factory uow.Factory, path string, logger *slog.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fixtures []listingFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return err
	}

	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	defer unit.Rollback(ctx)

	now := time.Now()
	for _, f := range fixtures {
		currency := f.Currency
		if currency == "" {
			currency = "MNT"
		}
		listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
			ID:            domainlistings.ListingID(f.ID),
			Host:          domainlistings.HostID(f.HostID),
			Title:         f.Title,
			Description:   f.Description,
			LocationText:  f.LocationText,
			PricePerNight: money.Money{Amount: f.PricePerNight, Currency: currency},
			MaxGuests:     f.MaxGuests,
			Beds:          f.Beds,
			CreatedAt:     now,
		})
		if err != nil {
			logger.Warn("skipping invalid listing fixture", "id", f.ID, "error", err)
			continue
		}
		if err := unit.Listings().Save(ctx, listing); err != nil {
			return err
		}
		if len(f.OpenDates) > 0 {
			calendar, err := unit.Availability().Calendar(ctx, listing.ID)
			if err != nil {
				return err
			}
			calendar.Replace(f.OpenDates, now)
			calendar.ClearEvents()
			if err := unit.Availability().Save(ctx, calendar); err != nil {
				return err
			}
		}
	}
	return unit.Commit(ctx)
}
