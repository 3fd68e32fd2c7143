package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/service"
	"github.com/albertoramos98/hostflow-homolog/internal/storage/memory"
)

// newTestRouter builds the API over the in-memory store with one seeded
// property, accommodation, and guest.
func newTestRouter(t *testing.T) (*chi.Mux, *model.Accommodation, *model.Guest) {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	policy := service.DefaultPolicy()

	availabilitySvc := service.NewAvailabilityService(db, policy, nil)
	aggregator := service.NewGuestStatsAggregator(db, policy)
	reservationSvc := service.NewReservationService(db, availabilitySvc, aggregator, policy)
	inventorySvc := service.NewInventoryService(db)

	inventory := NewInventoryHandler(inventorySvc)
	reservations := NewReservationHandler(reservationSvc, aggregator)
	availability := NewAvailabilityHandler(availabilitySvc)

	prop, err := inventorySvc.CreateProperty(ctx, &model.Property{
		Name: "Pousada Mar Azul", Address: "Rua das Gaivotas 12", City: "Florianopolis", State: "SC",
	})
	require.NoError(t, err)
	acc, err := inventorySvc.CreateAccommodation(ctx, &model.Accommodation{
		PropertyID: prop.ID, Name: "Suite Master", Type: "suite",
		MaxGuests: 2, BasePriceCents: 18000, CleaningFeeCents: 3000,
	})
	require.NoError(t, err)
	guest, err := inventorySvc.CreateGuest(ctx, &model.Guest{
		FirstName: "Ana", LastName: "Souza", Email: "ana.souza@example.com",
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/accommodations", func(r chi.Router) {
		r.Get("/", inventory.ListAccommodations)
		r.Get("/{id}", inventory.GetAccommodation)
		r.Get("/{id}/availability", availability.Check)
		r.Get("/{id}/quote", availability.Quote)
	})
	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", reservations.Create)
		r.Get("/{id}", reservations.Get)
		r.Post("/{id}/confirm", reservations.Confirm)
		r.Post("/{id}/cancel", reservations.Cancel)
	})
	return r, acc, guest
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateReservationEndpoint(t *testing.T) {
	router, acc, guest := newTestRouter(t)

	in := model.Today().AddDate(0, 0, 7)
	payload := model.CreateReservationRequest{
		AccommodationID: acc.ID,
		GuestID:         guest.ID,
		CheckInDate:     in.Format(model.DateLayout),
		CheckOutDate:    in.AddDate(0, 0, 2).Format(model.DateLayout),
		Adults:          2,
	}
	rec := do(t, router, http.MethodPost, "/reservations", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res model.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.StatusPending, res.Status)
	assert.NotEmpty(t, res.Code)

	// Confirm it, then the same range conflicts.
	rec = do(t, router, http.MethodPost, fmt.Sprintf("/reservations/%d/confirm", res.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/reservations", payload)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestCreateReservationEndpointErrors(t *testing.T) {
	router, acc, guest := newTestRouter(t)
	in := model.Today().AddDate(0, 0, 7)

	// Capacity violations map to 400.
	rec := do(t, router, http.MethodPost, "/reservations", model.CreateReservationRequest{
		AccommodationID: acc.ID,
		GuestID:         guest.ID,
		CheckInDate:     in.Format(model.DateLayout),
		CheckOutDate:    in.AddDate(0, 0, 2).Format(model.DateLayout),
		Adults:          3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown accommodation maps to 404.
	rec = do(t, router, http.MethodPost, "/reservations", model.CreateReservationRequest{
		AccommodationID: 999,
		GuestID:         guest.ID,
		CheckInDate:     in.Format(model.DateLayout),
		CheckOutDate:    in.AddDate(0, 0, 2).Format(model.DateLayout),
		Adults:          1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Unknown fields in the body are rejected.
	rec = do(t, router, http.MethodPost, "/reservations", map[string]any{"bogus": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	router, acc, _ := newTestRouter(t)

	path := fmt.Sprintf("/accommodations/%d/availability?check_in=2026-09-07&check_out=2026-09-09", acc.ID)
	rec := do(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["available"])

	// Missing dates are a validation error.
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/accommodations/%d/availability", acc.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteEndpoint(t *testing.T) {
	router, acc, _ := newTestRouter(t)

	path := fmt.Sprintf("/accommodations/%d/quote?check_in=2026-09-07&check_out=2026-09-09", acc.ID)
	rec := do(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var q model.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, 2, q.Nights)
	assert.Equal(t, int64(39000), q.TotalCents)
}

func TestCancelEndpoint(t *testing.T) {
	router, acc, guest := newTestRouter(t)
	in := model.Today().AddDate(0, 0, 7)

	rec := do(t, router, http.MethodPost, "/reservations", model.CreateReservationRequest{
		AccommodationID: acc.ID,
		GuestID:         guest.ID,
		CheckInDate:     in.Format(model.DateLayout),
		CheckOutDate:    in.AddDate(0, 0, 2).Format(model.DateLayout),
		Adults:          1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var res model.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/reservations/%d/cancel", res.ID),
		model.CancelRequest{Reason: "change of plans"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cancelled model.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Equal(t, model.StatusCancelled, cancelled.Status)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)

	// A second cancel hits the terminal state.
	rec = do(t, router, http.MethodPost, fmt.Sprintf("/reservations/%d/cancel", res.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
