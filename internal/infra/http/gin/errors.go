package ginserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	availabilityapp "nomadstay/internal/app/handlers/availability"
	bookingapp "nomadstay/internal/app/handlers/booking"
	domainavailability "nomadstay/internal/domain/availability"
	domainbooking "nomadstay/internal/domain/booking"
	domainlistings "nomadstay/internal/domain/listings"
)

// respondError maps application errors onto the wire contract: every failure
// body is {"error": "..."} and the status narrows the class.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainlistings.ErrListingNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainbooking.ErrUnavailable),
		errors.Is(err, domainbooking.ErrConflict),
		errors.Is(err, domainavailability.ErrNightsUnavailable),
		errors.Is(err, domainbooking.ErrAlreadyCancelled):
		return http.StatusConflict
	case errors.Is(err, bookingapp.ErrNotListingHost),
		errors.Is(err, availabilityapp.ErrNotListingHost):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
