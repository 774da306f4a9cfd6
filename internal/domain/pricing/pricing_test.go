package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nomadstay/internal/domain/shared/caldate"
	"nomadstay/internal/domain/shared/daterange"
	"nomadstay/internal/domain/shared/money"
)

func stay(t *testing.T, from, to string) daterange.StayRange {
	t.Helper()
	a, err := caldate.Parse(from)
	assert.NoError(t, err)
	b, err := caldate.Parse(to)
	assert.NoError(t, err)
	r, err := daterange.New(a, b)
	assert.NoError(t, err)
	return r
}

func TestQuoteTwoNights(t *testing.T) {
	q, err := Quote(money.Must(50000, "MNT"), stay(t, "2025-06-01", "2025-06-03"), DefaultServiceFeePercent)
	assert.NoError(t, err)
	assert.Equal(t, 2, q.Nights)
	assert.Equal(t, int64(100000), q.Base.Amount)
	assert.Equal(t, int64(10000), q.ServiceFee.Amount)
	assert.Equal(t, int64(110000), q.Total.Amount)
	assert.Equal(t, "MNT", q.Total.Currency)
}

func TestQuoteFeeFloorsTowardZero(t *testing.T) {
	// 3 nights * 33333 = 99999; 10% = 9999.9, floored to 9999.
	q, err := Quote(money.Must(33333, "MNT"), stay(t, "2025-06-01", "2025-06-04"), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(99999), q.Base.Amount)
	assert.Equal(t, int64(9999), q.ServiceFee.Amount)
	assert.Equal(t, int64(109998), q.Total.Amount)
}

func TestQuoteZeroFee(t *testing.T) {
	q, err := Quote(money.Must(50000, "MNT"), stay(t, "2025-06-01", "2025-06-02"), 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Nights)
	assert.True(t, q.ServiceFee.IsZero())
	assert.Equal(t, q.Base, q.Total)
}

func TestQuoteValidation(t *testing.T) {
	r := stay(t, "2025-06-01", "2025-06-02")

	_, err := Quote(money.Money{Amount: 100}, r, 10)
	assert.ErrorIs(t, err, ErrCurrencyUnset)

	_, err = Quote(money.Must(100, "MNT"), daterange.StayRange{}, 10)
	assert.ErrorIs(t, err, ErrNightsRequired)

	_, err = Quote(money.Must(100, "MNT"), r, 101)
	assert.ErrorIs(t, err, ErrBadFeePercent)
	_, err = Quote(money.Must(100, "MNT"), r, -1)
	assert.ErrorIs(t, err, ErrBadFeePercent)
}
