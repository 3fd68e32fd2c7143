package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

func seed(t *testing.T) (*DB, *model.Accommodation, *model.Guest) {
	t.Helper()
	ctx := context.Background()
	db := New()

	p := &model.Property{Name: "Pousada Mar Azul", Address: "Rua das Gaivotas 12", City: "Florianopolis", State: "SC", IsActive: true}
	require.NoError(t, db.CreateProperty(ctx, p))

	a := &model.Accommodation{
		PropertyID:     p.ID,
		Name:           "Suite Master",
		Type:           "suite",
		MaxGuests:      4,
		BasePriceCents: 18000,
		MinStayNights:  1,
		IsAvailable:    true,
		IsActive:       true,
	}
	require.NoError(t, db.CreateAccommodation(ctx, a))

	g := &model.Guest{FirstName: "Ana", LastName: "Souza", Email: "ana.souza@example.com", IsActive: true}
	require.NoError(t, db.CreateGuest(ctx, g))

	return db, a, g
}

func reservation(a *model.Accommodation, g *model.Guest, code string, in, out time.Time, status model.ReservationStatus) *model.Reservation {
	return &model.Reservation{
		Code:            code,
		PropertyID:      a.PropertyID,
		AccommodationID: a.ID,
		GuestID:         g.ID,
		CheckInDate:     in,
		CheckOutDate:    out,
		Nights:          model.DaysBetween(in, out),
		Adults:          2,
		TotalGuests:     2,
		BaseAmountCents: 36000,
		TotalCents:      36000,
		Status:          status,
		PaymentStatus:   model.PaymentPending,
		Source:          "direct",
	}
}

var blockingAll = []model.ReservationStatus{model.StatusPending, model.StatusConfirmed, model.StatusCheckedIn}

func TestConcurrentCreateExactlyOneWins(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	in := model.Date(2026, time.September, 10)
	out := model.Date(2026, time.September, 13)

	const writers = 32
	errs := make([]error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			r := reservation(a, g, fmt.Sprintf("HF202609%04d", i), in, out, model.StatusPending)
			errs[i] = db.CreateReservation(ctx, r, blockingAll)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, model.ErrConflict)
		}
	}
	assert.Equal(t, 1, wins, "exactly one overlapping create may succeed")

	stored, err := db.ListReservations(ctx, model.ReservationFilter{AccommodationID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateBackToBackStays(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	first := reservation(a, g, "HF2026090001",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 13), model.StatusConfirmed)
	require.NoError(t, db.CreateReservation(ctx, first, blockingAll))

	// Check-out day doubles as the next stay's check-in day.
	second := reservation(a, g, "HF2026090002",
		model.Date(2026, time.September, 13), model.Date(2026, time.September, 15), model.StatusConfirmed)
	assert.NoError(t, db.CreateReservation(ctx, second, blockingAll))
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	first := reservation(a, g, "HF2026090001",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 12), model.StatusPending)
	require.NoError(t, db.CreateReservation(ctx, first, blockingAll))

	dup := reservation(a, g, "HF2026090001",
		model.Date(2026, time.October, 1), model.Date(2026, time.October, 3), model.StatusPending)
	assert.ErrorIs(t, db.CreateReservation(ctx, dup, blockingAll), model.ErrConflict)
}

func TestCreateUnknownReferences(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	r := reservation(a, g, "HF2026090001",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 12), model.StatusPending)
	r.AccommodationID = 999
	assert.ErrorIs(t, db.CreateReservation(ctx, r, blockingAll), model.ErrNotFound)

	r = reservation(a, g, "HF2026090002",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 12), model.StatusPending)
	r.GuestID = 999
	assert.ErrorIs(t, db.CreateReservation(ctx, r, blockingAll), model.ErrNotFound)
}

func TestChangeStatusCAS(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	r := reservation(a, g, "HF2026090001",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 12), model.StatusPending)
	require.NoError(t, db.CreateReservation(ctx, r, blockingAll))

	confirm := model.StatusChange{
		To:          model.StatusConfirmed,
		AllowedFrom: []model.ReservationStatus{model.StatusPending},
	}
	got, err := db.ChangeStatus(ctx, r.ID, confirm, blockingAll)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)

	// The second identical transition finds the wrong current status.
	_, err = db.ChangeStatus(ctx, r.ID, confirm, blockingAll)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestChangeStatusReverifiesOverlap(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()
	blocking := []model.ReservationStatus{model.StatusConfirmed, model.StatusCheckedIn}

	in := model.Date(2026, time.September, 10)
	out := model.Date(2026, time.September, 13)

	// Two pending holds on the same range; under this blocking set neither
	// blocks the other at create time.
	first := reservation(a, g, "HF2026090001", in, out, model.StatusPending)
	require.NoError(t, db.CreateReservation(ctx, first, blocking))
	second := reservation(a, g, "HF2026090002", in, out, model.StatusPending)
	require.NoError(t, db.CreateReservation(ctx, second, blocking))

	confirm := model.StatusChange{
		To:          model.StatusConfirmed,
		AllowedFrom: []model.ReservationStatus{model.StatusPending},
	}
	_, err := db.ChangeStatus(ctx, first.ID, confirm, blocking)
	require.NoError(t, err)

	_, err = db.ChangeStatus(ctx, second.ID, confirm, blocking)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestChangeStatusStampsTimestamps(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	r := reservation(a, g, "HF2026090001",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 12), model.StatusPending)
	require.NoError(t, db.CreateReservation(ctx, r, blockingAll))

	got, err := db.ChangeStatus(ctx, r.ID, model.StatusChange{
		To:             model.StatusCancelled,
		AllowedFrom:    []model.ReservationStatus{model.StatusPending},
		Reason:         "guest request",
		StampCancelled: true,
	}, blockingAll)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled, got.Status)
	assert.Equal(t, "guest request", got.CancellationReason)
	require.NotNil(t, got.CancelledAt)
	assert.Nil(t, got.ActualCheckIn)
	assert.Nil(t, got.ActualCheckOut)
}

func TestListReservationsFilterAndOrder(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	mk := func(code string, day int, status model.ReservationStatus) *model.Reservation {
		r := reservation(a, g, code,
			model.Date(2026, time.September, day), model.Date(2026, time.September, day+2), status)
		require.NoError(t, db.CreateReservation(ctx, r, nil))
		return r
	}
	mk("HF2026090001", 1, model.StatusConfirmed)
	mk("HF2026090002", 5, model.StatusCancelled)
	third := mk("HF2026090003", 10, model.StatusConfirmed)

	confirmed, err := db.ListReservations(ctx, model.ReservationFilter{
		Statuses: []model.ReservationStatus{model.StatusConfirmed},
	})
	require.NoError(t, err)
	require.Len(t, confirmed, 2)
	// Most recent first; equal creation times fall back to highest id.
	assert.Equal(t, third.ID, confirmed[0].ID)

	from := model.Date(2026, time.September, 4)
	later, err := db.ListReservations(ctx, model.ReservationFilter{CheckInFrom: &from})
	require.NoError(t, err)
	assert.Len(t, later, 2)
}

func TestReturnedReservationsAreCopies(t *testing.T) {
	db, a, g := seed(t)
	ctx := context.Background()

	r := reservation(a, g, "HF2026090001",
		model.Date(2026, time.September, 10), model.Date(2026, time.September, 12), model.StatusPending)
	require.NoError(t, db.CreateReservation(ctx, r, blockingAll))

	got, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	got.Status = model.StatusCancelled

	again, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, again.Status)
}
