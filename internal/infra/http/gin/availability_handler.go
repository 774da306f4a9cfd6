package ginserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomadstay/internal/app/commands"
	"nomadstay/internal/app/dto"
	availabilityapp "nomadstay/internal/app/handlers/availability"
	"nomadstay/internal/app/queries"
	"nomadstay/internal/domain/shared/caldate"
)

type AvailabilityHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h AvailabilityHandler) List(c *gin.Context) {
	listingID := c.Query("listing")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing query parameter is required"})
		return
	}
	entries, err := queries.Ask[availabilityapp.ListQuery, []dto.AvailabilityEntry](
		c.Request.Context(), h.Queries, availabilityapp.ListQuery{ListingID: listingID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type bulkAvailabilityRequest struct {
	Listing string         `json:"listing"`
	Dates   []caldate.Date `json:"dates"`
}

// Bulk replaces the open-date set. The host edit flow always calls
// delete-by-listing first, so treating bulk as a full replacement keeps both
// call orders correct.
func (h AvailabilityHandler) Bulk(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req bulkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := availabilityapp.ReplaceCommand{ListingID: req.Listing, HostID: user, Dates: req.Dates}
	if _, err := commands.Dispatch[availabilityapp.ReplaceCommand, struct{}](
		c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type deleteByListingRequest struct {
	Listing string `json:"listing"`
}

func (h AvailabilityHandler) DeleteByListing(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req deleteByListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := availabilityapp.ClearCommand{ListingID: req.Listing, HostID: user}
	if _, err := commands.Dispatch[availabilityapp.ClearCommand, struct{}](
		c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
