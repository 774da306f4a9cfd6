package ginserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomadstay/internal/app/dto"
	listingapp "nomadstay/internal/app/handlers/listings"
	"nomadstay/internal/app/queries"
)

type ListingHandler struct {
	Queries queries.Bus
}

func (h ListingHandler) Get(c *gin.Context) {
	listing, err := queries.Ask[listingapp.GetListingQuery, dto.Listing](
		c.Request.Context(), h.Queries, listingapp.GetListingQuery{ListingID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

var _ ListingHTTP = ListingHandler{}
