package daterange

import (
	"errors"

	"nomadstay/internal/domain/shared/caldate"
)

var ErrInvalidRange = errors.New("daterange: checkout must be after checkin")

// StayRange represents a half-open run of nights [CheckIn, CheckOut). The
// checkout day itself is never part of the stay.
type StayRange struct {
	CheckIn  caldate.Date `json:"check_in"`
	CheckOut caldate.Date `json:"check_out"`
}

func New(checkIn, checkOut caldate.Date) (StayRange, error) {
	r := StayRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := r.Validate(); err != nil {
		return StayRange{}, err
	}
	return r, nil
}

// NewNormalized applies the one-night minimum: a single-day selection where
// checkin equals checkout is widened to checkout = checkin + 1 day.
func NewNormalized(checkIn, checkOut caldate.Date) (StayRange, error) {
	if !checkIn.IsZero() && checkIn.Equal(checkOut) {
		checkOut = checkIn.AddDays(1)
	}
	return New(checkIn, checkOut)
}

func (r StayRange) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts the nights covered by the range; at least 1 for a valid range.
func (r StayRange) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

func (r StayRange) Overlaps(other StayRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r StayRange) ContainsDate(d caldate.Date) bool {
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Dates expands the range into its individual nights by calendar-day stepping.
func (r StayRange) Dates() []caldate.Date {
	if r.Validate() != nil {
		return nil
	}
	out := make([]caldate.Date, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}
