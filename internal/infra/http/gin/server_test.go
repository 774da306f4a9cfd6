package ginserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadstay/internal/app/commands"
	availabilityapp "nomadstay/internal/app/handlers/availability"
	bookingapp "nomadstay/internal/app/handlers/booking"
	listingapp "nomadstay/internal/app/handlers/listings"
	"nomadstay/internal/app/middleware"
	"nomadstay/internal/app/queries"
	"nomadstay/internal/app/uow"
	domainlistings "nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/pricing"
	"nomadstay/internal/domain/shared/money"
	"nomadstay/internal/infra/config"
	"nomadstay/internal/infra/obs"
	"nomadstay/internal/infra/storage/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Factory) {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewFactory(store)
	box := memory.NewOutbox(nil)

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingKey,
		bookingapp.NewRequestBookingHandler(box, pricing.DefaultServiceFeePercent))
	commands.RegisterHandler(commandBus, bookingapp.HostCancelKey, bookingapp.NewHostCancelHandler(box))
	commands.RegisterHandler(commandBus, availabilityapp.ReplaceKey, availabilityapp.NewReplaceHandler(box))
	commands.RegisterHandler(commandBus, availabilityapp.ClearKey, availabilityapp.NewClearHandler(box))

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.ListKey, availabilityapp.NewListHandler(factory))
	queries.RegisterHandler(queryBus, listingapp.GetListingKey, listingapp.NewGetListingHandler(factory))
	queries.RegisterHandler(queryBus, bookingapp.HostBookingsKey, bookingapp.NewHostBookingsHandler(factory))
	queries.RegisterHandler(queryBus, bookingapp.GuestBookingsKey, bookingapp.NewGuestBookingsHandler(factory))

	wrapped := middleware.ChainCommands(commandBus,
		middleware.Idempotency(memory.NewIdempotencyStore(time.Hour)),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)

	router := NewRouter(config.Config{Env: "test"}, obs.Middleware{}, obs.HealthHandlers{}, Handlers{
		Booking:      BookingHandler{Commands: wrapped, Queries: queryBus},
		Availability: AvailabilityHandler{Commands: wrapped, Queries: queryBus},
		Listing:      ListingHandler{Queries: queryBus},
		HostBooking:  HostBookingHandler{Queries: queryBus},
	})
	return router, factory
}

func seedListing(t *testing.T, factory *memory.Factory) {
	t.Helper()
	ctx := context.Background()
	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:            "lst-1",
		Host:          "host-1",
		Title:         "Yurt near Terelj",
		PricePerNight: money.Must(50000, "MNT"),
		MaxGuests:     4,
		CreatedAt:     time.Now(),
	})
	require.NoError(t, err)
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	require.NoError(t, err)
	require.NoError(t, unit.Listings().Save(ctx, listing))
	require.NoError(t, unit.Commit(ctx))
}

func doJSON(router *gin.Engine, method, path, user, idemKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(UserIDHeader, user)
	}
	if idemKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idemKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBookingFlowOverHTTP(t *testing.T) {
	router, factory := newTestRouter(t)
	seedListing(t, factory)

	rec := doJSON(router, http.MethodPost, "/availability/bulk/", "host-1", "",
		`{"listing":"lst-1","dates":["2025-06-01","2025-06-02","2025-06-03"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodPost, "/bookings/", "guest-1", "key-1",
		`{"listing_id":"lst-1","check_in":"2025-06-01","check_out":"2025-06-03","guest_count":2,"full_name":"Bat Erdene","phone_number":"99112233"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// Retry with the same idempotency key replays the original outcome.
	rec = doJSON(router, http.MethodPost, "/bookings/", "guest-1", "key-1",
		`{"listing_id":"lst-1","check_in":"2025-06-01","check_out":"2025-06-03","guest_count":2,"full_name":"Bat Erdene","phone_number":"99112233"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var replayed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &replayed))
	assert.Equal(t, created.ID, replayed.ID)

	// Booked nights are gone from the public calendar; checkout day stays.
	rec = doJSON(router, http.MethodGet, "/availability/?listing=lst-1", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []struct {
		Listing string `json:"listing"`
		Date    string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-06-03", entries[0].Date)

	// A fresh key for overlapping nights now conflicts.
	rec = doJSON(router, http.MethodPost, "/bookings/", "guest-2", "key-2",
		`{"listing_id":"lst-1","check_in":"2025-06-02","check_out":"2025-06-03","guest_count":1,"full_name":"Saruul G","phone_number":"88112233"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Host sees the booking on the dashboard.
	rec = doJSON(router, http.MethodGet, "/host-bookings/", "host-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hostBookings []struct {
		ID                string `json:"id"`
		IsCancelledByHost bool   `json:"is_cancelled_by_host"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hostBookings))
	require.Len(t, hostBookings, 1)
	assert.Equal(t, created.ID, hostBookings[0].ID)

	// Host cancellation restores the nights.
	rec = doJSON(router, http.MethodPost, "/bookings/"+created.ID+"/host-cancel/", "host-1", "", "")
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodGet, "/availability/?listing=lst-1", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 3)
}

func TestBookingRequiresIdentity(t *testing.T) {
	router, factory := newTestRouter(t)
	seedListing(t, factory)

	rec := doJSON(router, http.MethodPost, "/bookings/", "", "key-x",
		`{"listing_id":"lst-1","check_in":"2025-06-01","check_out":"2025-06-02","guest_count":1,"full_name":"Bat","phone_number":"99112233"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAvailabilityEditRequiresListingHost(t *testing.T) {
	router, factory := newTestRouter(t)
	seedListing(t, factory)

	rec := doJSON(router, http.MethodPost, "/availability/bulk/", "host-2", "",
		`{"listing":"lst-1","dates":["2025-06-01"]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetListing(t *testing.T) {
	router, factory := newTestRouter(t)
	seedListing(t, factory)

	rec := doJSON(router, http.MethodGet, "/listings/lst-1/", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		ID            string `json:"id"`
		PricePerNight int64  `json:"price_per_night"`
		Currency      string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, "lst-1", listing.ID)
	assert.Equal(t, int64(50000), listing.PricePerNight)
	assert.Equal(t, "MNT", listing.Currency)

	rec = doJSON(router, http.MethodGet, "/listings/missing/", "", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
