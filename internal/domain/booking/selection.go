package booking

import (
	"errors"

	"nomadstay/internal/domain/availability"
	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/daterange"
)

var (
	ErrEmptyRange  = errors.New("booking: selection must cover at least one night")
	ErrUnavailable = errors.New("booking: selected nights are not open for booking")
	ErrConflict    = errors.New("booking: selected nights overlap an existing booking")
)

// ValidateSelection checks a candidate [from, to) stay against the listing's
// open nights and, when the caller owns the listing, its booked nights. This
// check is advisory: the backend revalidates on creation and two guests racing
// for the same nights are resolved there, not here.
//
// Callers wanting the single-click one-night rule normalize with
// daterange.NewNormalized before calling.
func ValidateSelection(avail *availability.Index, booked *RangeIndex, from, to caldate.Date) (daterange.StayRange, error) {
	if from.IsZero() || to.IsZero() || from.Equal(to) {
		return daterange.StayRange{}, ErrEmptyRange
	}
	r, err := daterange.New(from, to)
	if err != nil {
		return daterange.StayRange{}, ErrEmptyRange
	}
	if !avail.IsRangeAvailable(from, to) {
		return daterange.StayRange{}, ErrUnavailable
	}
	if booked.Overlaps(from, to) {
		return daterange.StayRange{}, ErrConflict
	}
	return r, nil
}
