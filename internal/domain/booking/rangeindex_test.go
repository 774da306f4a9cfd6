package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangeIndexOwnership(t *testing.T) {
	b7 := testBooking(t, "7", "2025-06-02", "2025-06-04")
	b9 := testBooking(t, "9", "2025-06-10", "2025-06-12")
	ix := BuildRangeIndex([]*Booking{b7, b9}, "42")

	owner, ok := ix.OwnerOf(day(t, "2025-06-02"))
	assert.True(t, ok)
	assert.Equal(t, BookingID("7"), owner)

	owner, ok = ix.OwnerOf(day(t, "2025-06-03"))
	assert.True(t, ok)
	assert.Equal(t, BookingID("7"), owner)

	_, ok = ix.OwnerOf(day(t, "2025-06-04")) // checkout day is free
	assert.False(t, ok)

	owner, _ = ix.OwnerOf(day(t, "2025-06-11"))
	assert.Equal(t, BookingID("9"), owner)
}

func TestRangeIndexFiltersListingAndCancelled(t *testing.T) {
	ours := testBooking(t, "7", "2025-06-02", "2025-06-04")
	other := testBooking(t, "8", "2025-06-02", "2025-06-04")
	other.ListingID = "99"
	cancelled := testBooking(t, "10", "2025-06-20", "2025-06-22")
	assert.NoError(t, cancelled.CancelByHost(time.Now()))

	ix := BuildRangeIndex([]*Booking{ours, other, cancelled, nil}, "42")
	assert.Equal(t, 2, ix.Len())
	_, ok := ix.OwnerOf(day(t, "2025-06-20"))
	assert.False(t, ok)
}

func TestRangeIndexOverlaps(t *testing.T) {
	ix := BuildRangeIndex([]*Booking{testBooking(t, "7", "2025-06-02", "2025-06-04")}, "42")

	assert.True(t, ix.Overlaps(day(t, "2025-06-01"), day(t, "2025-06-03")))
	assert.True(t, ix.Overlaps(day(t, "2025-06-03"), day(t, "2025-06-05")))
	assert.False(t, ix.Overlaps(day(t, "2025-06-04"), day(t, "2025-06-06")))
	assert.False(t, ix.Overlaps(day(t, "2025-05-30"), day(t, "2025-06-02")))
	assert.False(t, ix.Overlaps(day(t, "2025-06-01"), day(t, "2025-06-01")))
}

func TestRangeIndexOverlappingBookingsLastWriteWins(t *testing.T) {
	first := testBooking(t, "7", "2025-06-02", "2025-06-05")
	second := testBooking(t, "8", "2025-06-04", "2025-06-06")

	// Overlap is a backend data-integrity fault; the index must absorb it.
	ix := BuildRangeIndex([]*Booking{first, second}, "42")
	owner, _ := ix.OwnerOf(day(t, "2025-06-04"))
	assert.Equal(t, BookingID("8"), owner)
	owner, _ = ix.OwnerOf(day(t, "2025-06-03"))
	assert.Equal(t, BookingID("7"), owner)
}

func TestNilRangeIndexIsInert(t *testing.T) {
	var ix *RangeIndex
	_, ok := ix.OwnerOf(day(t, "2025-06-01"))
	assert.False(t, ok)
	assert.False(t, ix.Overlaps(day(t, "2025-06-01"), day(t, "2025-06-05")))
	assert.Equal(t, 0, ix.Len())
}
