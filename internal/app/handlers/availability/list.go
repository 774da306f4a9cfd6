package availability

import (
	"context"

	"nomadstay/internal/app/dto"
	"nomadstay/internal/app/uow"
	domainlistings "nomadstay/internal/domain/listings"
)

const ListKey = "availability.list"

// ListQuery returns a listing's open nights, one entry per date, ordered
// chronologically.
type ListQuery struct {
	ListingID string
}

func (ListQuery) Key() string { return ListKey }

type ListHandler struct {
	factory uow.Factory
}

func NewListHandler(factory uow.Factory) *ListHandler {
	return &ListHandler{factory: factory}
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) ([]dto.AvailabilityEntry, error) {
	unit, err := h.factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer unit.Rollback(ctx)

	calendar, err := unit.Availability().Calendar(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return nil, err
	}
	return dto.AvailabilityFromCalendar(calendar), nil
}
