package listings

import (
	"context"

	"nomadstay/internal/app/dto"
	"nomadstay/internal/app/uow"
	domainlistings "nomadstay/internal/domain/listings"
)

const GetListingKey = "listings.get"

type GetListingQuery struct {
	ListingID string
}

func (GetListingQuery) Key() string { return GetListingKey }

type GetListingHandler struct {
	factory uow.Factory
}

func NewGetListingHandler(factory uow.Factory) *GetListingHandler {
	return &GetListingHandler{factory: factory}
}

func (h *GetListingHandler) Handle(ctx context.Context, q GetListingQuery) (dto.Listing, error) {
	unit, err := h.factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.Listing{}, err
	}
	defer unit.Rollback(ctx)

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.Listing{}, err
	}
	return dto.ListingFromDomain(listing), nil
}
