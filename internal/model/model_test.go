package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	// Existing stay occupies [10th, 13th): nights 10, 11, 12.
	r := Reservation{
		CheckInDate:  Date(2026, time.September, 10),
		CheckOutDate: Date(2026, time.September, 13),
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     bool
	}{
		{"identical range", Date(2026, time.September, 10), Date(2026, time.September, 13), true},
		{"contained", Date(2026, time.September, 11), Date(2026, time.September, 12), true},
		{"overlaps start", Date(2026, time.September, 8), Date(2026, time.September, 11), true},
		{"overlaps end", Date(2026, time.September, 12), Date(2026, time.September, 15), true},
		{"surrounds", Date(2026, time.September, 8), Date(2026, time.September, 15), true},
		{"back to back before", Date(2026, time.September, 7), Date(2026, time.September, 10), false},
		{"back to back after", Date(2026, time.September, 13), Date(2026, time.September, 16), false},
		{"disjoint before", Date(2026, time.September, 1), Date(2026, time.September, 5), false},
		{"disjoint after", Date(2026, time.September, 20), Date(2026, time.September, 22), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Overlaps(tt.from, tt.to))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCheckedIn, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusCheckedIn, StatusCancelled, false},
		{StatusCheckedOut, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPriceForDate(t *testing.T) {
	weekend := int64(22000)
	a := Accommodation{BasePriceCents: 18000, WeekendPriceCents: &weekend}

	// 2026-09-11 is a Friday, 12th Saturday, 13th Sunday.
	assert.Equal(t, int64(18000), a.PriceForDate(Date(2026, time.September, 11)))
	assert.Equal(t, int64(22000), a.PriceForDate(Date(2026, time.September, 12)))
	assert.Equal(t, int64(22000), a.PriceForDate(Date(2026, time.September, 13)))

	// Without a weekend rate the base applies everywhere.
	plain := Accommodation{BasePriceCents: 18000}
	assert.Equal(t, int64(18000), plain.PriceForDate(Date(2026, time.September, 12)))
}

func TestCalculateTotal(t *testing.T) {
	r := Reservation{
		BaseAmountCents:  36000,
		CleaningFeeCents: 3000,
		ServiceFeeCents:  1500,
		TaxesCents:       2000,
		DiscountCents:    500,
	}
	assert.Equal(t, int64(42000), r.CalculateTotal())
	assert.Equal(t, int64(42000), r.TotalCents)
}

func TestCanCancel(t *testing.T) {
	today := Date(2026, time.September, 10)
	future := Reservation{Status: StatusConfirmed, CheckInDate: Date(2026, time.September, 11)}
	assert.True(t, future.CanCancel(today))

	sameDay := Reservation{Status: StatusConfirmed, CheckInDate: today}
	assert.False(t, sameDay.CanCancel(today))

	started := Reservation{Status: StatusCheckedIn, CheckInDate: Date(2026, time.September, 12)}
	assert.False(t, started.CanCancel(today))

	cancelled := Reservation{Status: StatusCancelled, CheckInDate: Date(2026, time.September, 12)}
	assert.False(t, cancelled.CanCancel(today))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, Date(2026, time.September, 10), d)

	_, err = ParseDate("10/09/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(Date(2026, time.September, 10), Date(2026, time.September, 13)))
	assert.Equal(t, 0, DaysBetween(Date(2026, time.September, 10), Date(2026, time.September, 10)))
	// Normalizes away time-of-day before diffing.
	assert.Equal(t, 1, DaysBetween(
		time.Date(2026, time.September, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2026, time.September, 11, 1, 0, 0, 0, time.UTC)))
}

func TestStatusIn(t *testing.T) {
	set := DefaultBlockingStatuses()
	assert.True(t, StatusIn(StatusConfirmed, set))
	assert.True(t, StatusIn(StatusCheckedIn, set))
	assert.False(t, StatusIn(StatusPending, set))
	assert.False(t, StatusIn(StatusCancelled, set))
}
