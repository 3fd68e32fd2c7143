package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/storage/memory"
)

// testEnv wires the full service graph over the in-memory store with one
// seeded property, accommodation, and guest.
type testEnv struct {
	db           *memory.DB
	policy       Policy
	availability *AvailabilityService
	aggregator   *GuestStatsAggregator
	reservations *ReservationService
	inventory    *InventoryService
	reporting    *ReportingService

	property      *model.Property
	accommodation *model.Accommodation
	guest         *model.Guest
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	policy := DefaultPolicy()

	availability := NewAvailabilityService(db, policy, nil)
	aggregator := NewGuestStatsAggregator(db, policy)

	env := &testEnv{
		db:           db,
		policy:       policy,
		availability: availability,
		aggregator:   aggregator,
		reservations: NewReservationService(db, availability, aggregator, policy),
		inventory:    NewInventoryService(db),
		reporting:    NewReportingService(db, policy),
	}

	prop, err := env.inventory.CreateProperty(ctx, &model.Property{
		Name:    "Pousada Mar Azul",
		Address: "Rua das Gaivotas 12",
		City:    "Florianopolis",
		State:   "SC",
	})
	require.NoError(t, err)
	env.property = prop

	env.accommodation = env.addAccommodation(t, "Suite Master")

	guest, err := env.inventory.CreateGuest(ctx, &model.Guest{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana.souza@example.com",
	})
	require.NoError(t, err)
	env.guest = guest

	return env
}

// addAccommodation seeds one more unit under the test property: base rate
// 180.00, weekend rate 220.00, cleaning fee 30.00, four guests max.
func (env *testEnv) addAccommodation(t *testing.T, name string) *model.Accommodation {
	t.Helper()
	weekend := int64(22000)
	acc, err := env.inventory.CreateAccommodation(context.Background(), &model.Accommodation{
		PropertyID:        env.property.ID,
		Name:              name,
		Type:              "suite",
		MaxGuests:         4,
		BasePriceCents:    18000,
		WeekendPriceCents: &weekend,
		CleaningFeeCents:  3000,
	})
	require.NoError(t, err)
	return acc
}

// addGuest seeds one more guest.
func (env *testEnv) addGuest(t *testing.T, first, last, email string) *model.Guest {
	t.Helper()
	g, err := env.inventory.CreateGuest(context.Background(), &model.Guest{
		FirstName: first,
		LastName:  last,
		Email:     email,
	})
	require.NoError(t, err)
	return g
}

// book creates a reservation for the seeded guest and unit, n days out.
func (env *testEnv) book(t *testing.T, daysFromNow, nights int) *model.Reservation {
	t.Helper()
	in := model.Today().AddDate(0, 0, daysFromNow)
	out := in.AddDate(0, 0, nights)
	res, err := env.reservations.Create(context.Background(), model.CreateReservationRequest{
		AccommodationID: env.accommodation.ID,
		GuestID:         env.guest.ID,
		CheckInDate:     in.Format(model.DateLayout),
		CheckOutDate:    out.Format(model.DateLayout),
		Adults:          2,
	})
	require.NoError(t, err)
	return res
}
