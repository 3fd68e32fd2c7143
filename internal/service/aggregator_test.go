package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

func TestUpdateStatsCountsQualifyingReservations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	second := env.addAccommodation(t, "Chale Verde")

	first := env.book(t, 5, 2)
	_, err := env.reservations.Confirm(ctx, first.ID)
	require.NoError(t, err)

	// A later stay on another unit, also confirmed.
	later, err := env.reservations.Create(ctx, model.CreateReservationRequest{
		AccommodationID: second.ID,
		GuestID:         env.guest.ID,
		CheckInDate:     model.Today().AddDate(0, 0, 20).Format(model.DateLayout),
		CheckOutDate:    model.Today().AddDate(0, 0, 23).Format(model.DateLayout),
		Adults:          2,
	})
	require.NoError(t, err)
	_, err = env.reservations.Confirm(ctx, later.ID)
	require.NoError(t, err)

	// A cancelled stay never qualifies.
	dropped := env.book(t, 30, 2)
	_, err = env.reservations.Cancel(ctx, dropped.ID, "")
	require.NoError(t, err)

	stats, err := env.aggregator.UpdateStats(ctx, env.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, first.TotalCents+later.TotalCents, stats.TotalSpentCents)
	require.NotNil(t, stats.LastStayDate)
	assert.Equal(t, later.CheckOutDate, *stats.LastStayDate)

	// The aggregate lands on the guest record.
	g, err := env.inventory.GetGuest(ctx, env.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, g.TotalBookings)
	assert.Equal(t, stats.TotalSpentCents, g.TotalSpentCents)
}

func TestUpdateStatsIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.book(t, 5, 2)
	_, err := env.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)

	// Recomputation always derives from the full history, so repeating it
	// cannot inflate the counters.
	for i := 0; i < 3; i++ {
		stats, err := env.aggregator.UpdateStats(ctx, env.guest.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalBookings)
		assert.Equal(t, res.TotalCents, stats.TotalSpentCents)
	}
}

func TestUpdateStatsEmptyHistory(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.aggregator.UpdateStats(context.Background(), env.guest.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalBookings)
	assert.Zero(t, stats.TotalSpentCents)
	assert.Nil(t, stats.LastStayDate)
}

func TestUpdateStatsUnknownGuest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.aggregator.UpdateStats(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
