package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadstay/internal/domain/booking"
	"nomadstay/internal/domain/shared/caldate"
)

func testDate(t *testing.T, s string) caldate.Date {
	t.Helper()
	d, err := caldate.Parse(s)
	require.NoError(t, err)
	return d
}

func TestListAvailabilityBuildsIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lst-1", r.URL.Query().Get("listing"))
		json.NewEncoder(w).Encode([]map[string]string{
			{"listing": "lst-1", "date": "2025-06-01"},
			{"listing": "lst-1", "date": "2025-06-02"},
		})
	}))
	defer srv.Close()

	ix, err := New(srv.URL).ListAvailability(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.True(t, ix.IsRangeAvailable(testDate(t, "2025-06-01"), testDate(t, "2025-06-03")),
		"checkout day needs no open night")
	assert.False(t, ix.IsAvailable(testDate(t, "2025-06-03")))
}

func TestHostRangeIndexSkipsCancelled(t *testing.T) {
	items := []Booking{
		{ID: "bk-1", CheckIn: testDate(t, "2025-06-01"), CheckOut: testDate(t, "2025-06-03")},
		{ID: "bk-2", CheckIn: testDate(t, "2025-06-05"), CheckOut: testDate(t, "2025-06-06"), IsCancelledByHost: true},
	}
	items[0].Listing.ID = "lst-1"
	items[1].Listing.ID = "lst-1"

	ix := HostRangeIndex(items, "lst-1")
	owner, ok := ix.OwnerOf(testDate(t, "2025-06-02"))
	require.True(t, ok)
	assert.Equal(t, booking.BookingID("bk-1"), owner)
	_, ok = ix.OwnerOf(testDate(t, "2025-06-05"))
	assert.False(t, ok, "cancelled bookings do not block nights")
}

func TestCreateBookingWirePayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "bk-1"})
	}))
	defer srv.Close()

	req := CreateBookingRequest{
		ListingID:   "lst-1",
		CheckIn:     testDate(t, "2025-06-01"),
		CheckOut:    testDate(t, "2025-06-03"),
		GuestCount:  2,
		FullName:    "Bat Erdene",
		PhoneNumber: "99112233",
	}
	id, err := New(srv.URL, WithUserID("guest-1")).CreateBooking(context.Background(), req, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "bk-1", id)

	// The write payload names the listing by id, matching the backend's
	// write-only serializer field.
	assert.Equal(t, "lst-1", got["listing_id"])
	_, hasListing := got["listing"]
	assert.False(t, hasListing)
	assert.Equal(t, "2025-06-01", got["check_in"])
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{name: "expired session", status: http.StatusUnauthorized, body: `{"detail":"token expired"}`, want: KindAuthExpired},
		{name: "validation rejection", status: http.StatusBadRequest, body: `{"error":"guest count exceeds capacity"}`, want: KindServerRejected},
		{name: "lost race", status: http.StatusConflict, body: `{"error":"nights not open"}`, want: KindServerRejected},
		{name: "server down", status: http.StatusBadGateway, body: "", want: KindServerUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Listing(context.Background(), "lst-1")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestErrorMessageFromDetailField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"signature expired"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Listing(context.Background(), "lst-1")
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "signature expired")
}

func TestReplaceAvailabilityOrdersDeleteBeforeBulk(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL, WithUserID("host-1")).ReplaceAvailability(context.Background(), "lst-1",
		[]caldate.Date{testDate(t, "2025-06-01")})
	require.NoError(t, err)
	assert.Equal(t, []string{"/availability/delete-by-listing/", "/availability/bulk/"}, calls)
}

func TestReplaceAvailabilityStopsWhenDeleteFails(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"not your listing"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, WithUserID("host-2")).ReplaceAvailability(context.Background(), "lst-1", nil)
	require.Error(t, err)
	assert.Equal(t, KindServerRejected, KindOf(err))
	assert.Equal(t, []string{"/availability/delete-by-listing/"}, calls)
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestAuthorizationHeaderForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Listing{ID: "lst-1"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTokenProvider(staticToken("tok-123"))).Listing(context.Background(), "lst-1")
	require.NoError(t, err)
}
