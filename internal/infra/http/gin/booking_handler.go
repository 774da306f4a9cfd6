package ginserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomadstay/internal/app/commands"
	"nomadstay/internal/app/dto"
	bookingapp "nomadstay/internal/app/handlers/booking"
	"nomadstay/internal/app/queries"
	"nomadstay/internal/domain/shared/caldate"
)

// IdempotencyKeyHeader carries the client-minted key for booking submission.
const IdempotencyKeyHeader = "X-Idempotency-Key"

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createBookingRequest struct {
	ListingID   string       `json:"listing_id"`
	CheckIn     caldate.Date `json:"check_in"`
	CheckOut    caldate.Date `json:"check_out"`
	GuestCount  int          `json:"guest_count"`
	FullName    string       `json:"full_name"`
	PhoneNumber string       `json:"phone_number"`
	Notes       string       `json:"notes"`
}

func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.RequestBookingCommand{
		ListingID:       req.ListingID,
		GuestID:         user,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		GuestCount:      req.GuestCount,
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
		IdempotencyKeyV: c.GetHeader(IdempotencyKeyHeader),
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](
		c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) HostCancel(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := bookingapp.HostCancelCommand{BookingID: c.Param("id"), HostID: user}
	if _, err := commands.Dispatch[bookingapp.HostCancelCommand, struct{}](
		c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h BookingHandler) ListMine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	items, err := queries.Ask[bookingapp.GuestBookingsQuery, []dto.Booking](
		c.Request.Context(), h.Queries, bookingapp.GuestBookingsQuery{GuestID: user})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

var _ BookingHTTP = BookingHandler{}
