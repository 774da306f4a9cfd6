package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nomadstay/internal/domain/availability"
	"nomadstay/internal/domain/booking"
	"nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/daterange"
)

const (
	idempotencyKeyHeader = "X-Idempotency-Key"
	userIDHeader         = "X-User-ID"
)

// TokenProvider supplies the bearer token attached to every request. Return
// an empty token to send the request unauthenticated.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) { c.tokens = p }
}

// WithUserID forwards the identity header directly, for setups without a
// gateway in front.
func WithUserID(id string) Option {
	return func(c *Client) { c.userID = id }
}

// Client talks to the booking API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	userID  string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Listing struct {
	ID            string `json:"id"`
	HostID        string `json:"host_id"`
	Title         string `json:"title"`
	PricePerNight int64  `json:"price_per_night"`
	Currency      string `json:"currency"`
	MaxGuests     int    `json:"max_guests"`
	Beds          int    `json:"beds"`
	IsActive      bool   `json:"is_active"`
}

func (c *Client) Listing(ctx context.Context, id string) (Listing, error) {
	var out Listing
	err := c.doJSON(ctx, http.MethodGet, "/listings/"+url.PathEscape(id)+"/", "", nil, &out)
	return out, err
}

type availabilityEntry struct {
	Listing string       `json:"listing"`
	Date    caldate.Date `json:"date"`
}

// ListAvailability fetches the listing's open nights as a membership index.
func (c *Client) ListAvailability(ctx context.Context, listingID string) (*availability.Index, error) {
	var entries []availabilityEntry
	path := "/availability/?listing=" + url.QueryEscape(listingID)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &entries); err != nil {
		return nil, err
	}
	dates := make([]caldate.Date, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	return availability.IndexOf(dates), nil
}

type Booking struct {
	ID      string `json:"id"`
	Listing struct {
		ID string `json:"id"`
	} `json:"listing"`
	CheckIn           caldate.Date `json:"check_in"`
	CheckOut          caldate.Date `json:"check_out"`
	GuestCount        int          `json:"guest_count"`
	FullName          string       `json:"full_name"`
	PriceTotal        int64        `json:"price_total"`
	Currency          string       `json:"currency"`
	IsCancelledByHost bool         `json:"is_cancelled_by_host"`
}

// HostBookings lists every booking on the caller's listings.
func (c *Client) HostBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	err := c.doJSON(ctx, http.MethodGet, "/host-bookings/", "", nil, &out)
	return out, err
}

// HostRangeIndex folds fetched bookings into a per-night ownership index for
// one listing, skipping host-cancelled rows.
func HostRangeIndex(items []Booking, listingID string) *booking.RangeIndex {
	aggregates := make([]*booking.Booking, 0, len(items))
	for _, b := range items {
		aggregates = append(aggregates, &booking.Booking{
			ID:              booking.BookingID(b.ID),
			ListingID:       listings.ListingID(b.Listing.ID),
			Range:           daterange.StayRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut},
			CancelledByHost: b.IsCancelledByHost,
		})
	}
	return booking.BuildRangeIndex(aggregates, listings.ListingID(listingID))
}

type CreateBookingRequest struct {
	ListingID   string       `json:"listing_id"`
	CheckIn     caldate.Date `json:"check_in"`
	CheckOut    caldate.Date `json:"check_out"`
	GuestCount  int          `json:"guest_count"`
	FullName    string       `json:"full_name"`
	PhoneNumber string       `json:"phone_number"`
	Notes       string       `json:"notes,omitempty"`
}

type createBookingResponse struct {
	ID string `json:"id"`
}

// CreateBooking submits a booking under the given idempotency key and returns
// the booking id. Most callers go through Submitter, which manages the key
// lifecycle.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest, idempotencyKey string) (string, error) {
	var out createBookingResponse
	if err := c.doJSON(ctx, http.MethodPost, "/bookings/", idempotencyKey, req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ReplaceAvailability swaps the listing's open-date set. The delete must land
// before the bulk insert, in that order, or a failed edit could leave stale
// nights open.
func (c *Client) ReplaceAvailability(ctx context.Context, listingID string, dates []caldate.Date) error {
	del := map[string]string{"listing": listingID}
	if err := c.doJSON(ctx, http.MethodPost, "/availability/delete-by-listing/", "", del, nil); err != nil {
		return err
	}
	bulk := map[string]any{"listing": listingID, "dates": dates}
	return c.doJSON(ctx, http.MethodPost, "/availability/bulk/", "", bulk, nil)
}

// CancelByHost cancels a booking on the caller's listing and restores its
// nights.
func (c *Client) CancelByHost(ctx context.Context, bookingID string) error {
	path := "/bookings/" + url.PathEscape(bookingID) + "/host-cancel/"
	return c.doJSON(ctx, http.MethodPost, path, "", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path, idempotencyKey string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return newError(KindUnknown, err.Error(), 0, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return newError(KindUnknown, err.Error(), 0, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyKeyHeader, idempotencyKey)
	}
	if c.userID != "" {
		req.Header.Set(userIDHeader, c.userID)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return newError(KindAuthExpired, err.Error(), 0, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return classifyStatus(resp.StatusCode, readErrorMessage(resp.Body, resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindServerUnavailable, fmt.Sprintf("malformed response: %v", err), resp.StatusCode, err)
	}
	return nil
}

// readErrorMessage pulls the human message out of an error body; Django-style
// backends use "detail" where this one uses "error", so both are accepted.
func readErrorMessage(r io.Reader, status int) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return http.StatusText(status)
	}
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	return strings.TrimSpace(string(raw))
}
