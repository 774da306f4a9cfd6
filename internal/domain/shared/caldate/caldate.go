package caldate

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical wire form. It is zero-padded and fixed-width, so
// lexicographic order on the serialized form matches chronological order.
const Layout = "2006-01-02"

var ErrBadFormat = errors.New("caldate: expected YYYY-MM-DD")

// Date is a calendar day without time-of-day or timezone. Two dates are equal
// iff their canonical forms are equal.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New builds a Date, normalizing out-of-range components the way time.Date
// does (e.g. January 32 becomes February 1).
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Parse reads the canonical YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// FromTime projects a timestamp onto its calendar day using the year/month/day
// fields in the timestamp's own location, not UTC.
func FromTime(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d Date) String() string {
	return d.Time().Format(Layout)
}

// Time returns midnight UTC of the day, for storage and ordering only.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmp(d.year, other.year)
	case d.month != other.month:
		return cmp(int(d.month), int(other.month))
	default:
		return cmp(d.day, other.day)
	}
}

// AddDays steps by whole calendar days. Day arithmetic is done on normalized
// calendar fields, never on 24h offsets, so it stays correct across DST
// transitions in any rendering timezone.
func (d Date) AddDays(n int) Date {
	return New(d.year, d.month, d.day+n)
}

// DaysUntil counts calendar days from d up to other. Negative when other is
// earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrBadFormat
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
