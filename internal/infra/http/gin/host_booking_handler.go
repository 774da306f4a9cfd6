package ginserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomadstay/internal/app/dto"
	bookingapp "nomadstay/internal/app/handlers/booking"
	"nomadstay/internal/app/queries"
)

type HostBookingHandler struct {
	Queries queries.Bus
}

// List returns every booking on the caller's listings, cancelled included, so
// the host dashboard can show history alongside the active calendar.
func (h HostBookingHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	items, err := queries.Ask[bookingapp.HostBookingsQuery, []dto.Booking](
		c.Request.Context(), h.Queries, bookingapp.HostBookingsQuery{HostID: user})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

var _ HostBookingHTTP = HostBookingHandler{}
