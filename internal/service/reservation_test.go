package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

func TestCreateReservation(t *testing.T) {
	env := newTestEnv(t)

	res := env.book(t, 7, 2)

	assert.True(t, strings.HasPrefix(res.Code, "HF"), "code %q", res.Code)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, model.PaymentPending, res.PaymentStatus)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, env.property.ID, res.PropertyID)
	assert.Equal(t, "direct", res.Source)
	assert.Equal(t, res.BaseAmountCents+res.CleaningFeeCents, res.TotalCents)
	assert.NotZero(t, res.ID)

	got, err := env.reservations.GetByCode(context.Background(), res.Code)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
}

func TestCreateReservationValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := model.Today().AddDate(0, 0, 7).Format(model.DateLayout)
	out := model.Today().AddDate(0, 0, 9).Format(model.DateLayout)
	base := model.CreateReservationRequest{
		AccommodationID: env.accommodation.ID,
		GuestID:         env.guest.ID,
		CheckInDate:     in,
		CheckOutDate:    out,
		Adults:          2,
	}

	tests := []struct {
		name    string
		mutate  func(r *model.CreateReservationRequest)
		wantErr error
	}{
		{"missing accommodation", func(r *model.CreateReservationRequest) { r.AccommodationID = 0 }, model.ErrValidation},
		{"missing guest", func(r *model.CreateReservationRequest) { r.GuestID = 0 }, model.ErrValidation},
		{"no adults", func(r *model.CreateReservationRequest) { r.Adults = 0 }, model.ErrValidation},
		{"negative children", func(r *model.CreateReservationRequest) { r.Children = -1 }, model.ErrValidation},
		{"negative fees", func(r *model.CreateReservationRequest) { r.DiscountCents = -100 }, model.ErrValidation},
		{"bad date format", func(r *model.CreateReservationRequest) { r.CheckInDate = "07/09/2026" }, model.ErrValidation},
		{"inverted range", func(r *model.CreateReservationRequest) { r.CheckInDate, r.CheckOutDate = r.CheckOutDate, r.CheckInDate }, model.ErrValidation},
		{"past check-in", func(r *model.CreateReservationRequest) {
			r.CheckInDate = model.Today().AddDate(0, 0, -2).Format(model.DateLayout)
		}, model.ErrValidation},
		{"unknown accommodation", func(r *model.CreateReservationRequest) { r.AccommodationID = 999 }, model.ErrNotFound},
		{"unknown guest", func(r *model.CreateReservationRequest) { r.GuestID = 999 }, model.ErrNotFound},
		{"too many guests", func(r *model.CreateReservationRequest) { r.Adults = 3; r.Children = 2 }, model.ErrCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := env.reservations.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateReservationStayLength(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	three := 3
	min2 := 2
	_, err := env.inventory.UpdateAccommodation(ctx, env.accommodation.ID,
		model.AccommodationUpdate{MinStayNights: &min2, MaxStayNights: &three})
	require.NoError(t, err)

	in := model.Today().AddDate(0, 0, 7)
	mk := func(nights int) model.CreateReservationRequest {
		return model.CreateReservationRequest{
			AccommodationID: env.accommodation.ID,
			GuestID:         env.guest.ID,
			CheckInDate:     in.Format(model.DateLayout),
			CheckOutDate:    in.AddDate(0, 0, nights).Format(model.DateLayout),
			Adults:          2,
		}
	}

	_, err = env.reservations.Create(ctx, mk(1))
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = env.reservations.Create(ctx, mk(4))
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = env.reservations.Create(ctx, mk(2))
	assert.NoError(t, err)
}

func TestLifecycleHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Check-in today so arrival and departure are legal immediately.
	res := env.book(t, 0, 2)

	confirmed, err := env.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, confirmed.Status)

	arrived, err := env.reservations.CheckIn(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, arrived.Status)
	require.NotNil(t, arrived.ActualCheckIn)

	departed, err := env.reservations.CheckOut(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, departed.Status)
	require.NotNil(t, departed.ActualCheckOut)
}

func TestIllegalTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.book(t, 0, 2)

	// Cannot arrive or depart from pending.
	_, err := env.reservations.CheckIn(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrConflict)
	_, err = env.reservations.CheckOut(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = env.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)

	// Confirm is not idempotent; the second attempt loses the CAS.
	_, err = env.reservations.Confirm(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = env.reservations.CheckIn(ctx, res.ID)
	require.NoError(t, err)
	_, err = env.reservations.CheckOut(ctx, res.ID)
	require.NoError(t, err)

	// Terminal state: nothing moves out of checked_out.
	_, err = env.reservations.CheckOut(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrConflict)
	_, err = env.reservations.Cancel(ctx, res.ID, "")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestCheckInBeforeArrivalDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.book(t, 5, 2)
	_, err := env.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)

	_, err = env.reservations.CheckIn(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestCancelFutureReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.book(t, 5, 2)
	cancelled, err := env.reservations.Cancel(ctx, res.ID, "change of plans")
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled, cancelled.Status)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelDefaultsReason(t *testing.T) {
	env := newTestEnv(t)

	res := env.book(t, 5, 2)
	cancelled, err := env.reservations.Cancel(context.Background(), res.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "cancellation requested", cancelled.CancellationReason)
}

func TestCancelOnCheckInDayRejected(t *testing.T) {
	env := newTestEnv(t)

	// The stay starts today, so the cancellation window has closed.
	res := env.book(t, 0, 2)
	_, err := env.reservations.Cancel(context.Background(), res.ID, "too late")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestCancelledRangeReopens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.book(t, 5, 2)
	_, err := env.reservations.Confirm(ctx, first.ID)
	require.NoError(t, err)

	_, err = env.reservations.Cancel(ctx, first.ID, "")
	require.NoError(t, err)

	// Same range books again.
	second := env.book(t, 5, 2)
	_, err = env.reservations.Confirm(ctx, second.ID)
	assert.NoError(t, err)
}

func TestCompetingHoldsResolveAtConfirm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	other := env.addGuest(t, "Bruno", "Lima", "bruno.lima@example.com")

	// Pending holds do not block, so two holds on the same range coexist.
	first := env.book(t, 5, 2)
	in := first.CheckInDate.Format(model.DateLayout)
	out := first.CheckOutDate.Format(model.DateLayout)
	second, err := env.reservations.Create(ctx, model.CreateReservationRequest{
		AccommodationID: env.accommodation.ID,
		GuestID:         other.ID,
		CheckInDate:     in,
		CheckOutDate:    out,
		Adults:          1,
	})
	require.NoError(t, err)

	// First confirm wins, second loses the overlap re-check.
	_, err = env.reservations.Confirm(ctx, first.ID)
	require.NoError(t, err)
	_, err = env.reservations.Confirm(ctx, second.ID)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestUpdatePayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.book(t, 5, 2)

	paid := model.PaymentPaid
	pix := "pix"
	upd, err := env.reservations.UpdatePayment(ctx, res.ID, model.PaymentUpdate{Status: &paid, Method: &pix})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentPaid, upd.PaymentStatus)
	assert.Equal(t, "pix", upd.PaymentMethod)
	require.NotNil(t, upd.PaymentDate)
	// Payment state is independent of the lifecycle.
	assert.Equal(t, model.StatusPending, upd.Status)

	_, err = env.reservations.UpdatePayment(ctx, res.ID, model.PaymentUpdate{})
	assert.ErrorIs(t, err, model.ErrValidation)

	bogus := model.PaymentStatus("gold")
	_, err = env.reservations.UpdatePayment(ctx, res.ID, model.PaymentUpdate{Status: &bogus})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestUpdateFeesRecomputesTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.book(t, 5, 2)
	before := res.TotalCents

	service := int64(1500)
	discount := int64(2000)
	upd, err := env.reservations.UpdateFees(ctx, res.ID, model.FeesUpdate{
		ServiceFeeCents: &service,
		DiscountCents:   &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, before+1500-2000, upd.TotalCents)

	notes := "late arrival"
	upd, err = env.reservations.UpdateFees(ctx, res.ID, model.FeesUpdate{InternalNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "late arrival", upd.InternalNotes)

	negative := int64(-1)
	_, err = env.reservations.UpdateFees(ctx, res.ID, model.FeesUpdate{TaxesCents: &negative})
	assert.ErrorIs(t, err, model.ErrValidation)
}
