package pricing

import (
	"errors"

	"nomadstay/internal/domain/shared/daterange"
	"nomadstay/internal/domain/shared/money"
)

var (
	ErrNightsRequired = errors.New("pricing: stay must cover at least one night")
	ErrCurrencyUnset  = errors.New("pricing: nightly rate currency must be defined")
	ErrBadFeePercent  = errors.New("pricing: service fee percent must be within 0..100")
)

// DefaultServiceFeePercent is the marketplace cut added on top of the base.
const DefaultServiceFeePercent = 10

// Breakdown is the quoted price of a stay. All components share the nightly
// rate's currency. ServiceFee is floored toward zero, never rounded up.
type Breakdown struct {
	Nights     int         `json:"nights" bson:"nights"`
	Nightly    money.Money `json:"nightly" bson:"nightly"`
	Base       money.Money `json:"base" bson:"base"`
	ServiceFee money.Money `json:"service_fee" bson:"service_fee"`
	Total      money.Money `json:"total" bson:"total"`
}

// Quote prices a stay: base = nights * nightly, fee = floor(base * percent /
// 100), total = base + fee.
func Quote(nightly money.Money, r daterange.StayRange, feePercent int64) (Breakdown, error) {
	if nightly.Currency == "" {
		return Breakdown{}, ErrCurrencyUnset
	}
	if feePercent < 0 || feePercent > 100 {
		return Breakdown{}, ErrBadFeePercent
	}
	if err := r.Validate(); err != nil {
		return Breakdown{}, ErrNightsRequired
	}
	nights := r.Nights()
	base := nightly.Multiply(int64(nights))
	fee := base.PercentFloor(feePercent)
	total, err := base.Add(fee)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Nights:     nights,
		Nightly:    nightly,
		Base:       base,
		ServiceFee: fee,
		Total:      total,
	}, nil
}
