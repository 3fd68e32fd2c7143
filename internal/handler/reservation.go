package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/service"
)

// ReservationHandler exposes the reservation lifecycle.
type ReservationHandler struct {
	svc        *service.ReservationService
	aggregator *service.GuestStatsAggregator
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *service.ReservationService, aggregator *service.GuestStatsAggregator) *ReservationHandler {
	return &ReservationHandler{svc: svc, aggregator: aggregator}
}

// Create handles POST /reservations
// Performs a concurrency-safe booking for the requested period.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// List handles GET /reservations
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	f := model.ReservationFilter{
		AccommodationID: queryInt64Ptr(r, "accommodation_id"),
		PropertyID:      queryInt64Ptr(r, "property_id"),
		GuestID:         queryInt64Ptr(r, "guest_id"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		f.Statuses = []model.ReservationStatus{model.ReservationStatus(s)}
	}
	var err error
	if f.CheckInFrom, err = queryDate(r, "check_in_from"); err != nil {
		writeServiceError(w, err)
		return
	}
	if f.CheckOutTo, err = queryDate(r, "check_out_to"); err != nil {
		writeServiceError(w, err)
		return
	}

	reservations, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

// Get handles GET /reservations/{id}
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	res, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetByCode handles GET /reservations/code/{code}
func (h *ReservationHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Confirm handles POST /reservations/{id}/confirm
func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Confirm)
}

// CheckIn handles POST /reservations/{id}/checkin
func (h *ReservationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CheckIn)
}

// CheckOut handles POST /reservations/{id}/checkout
func (h *ReservationHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CheckOut)
}

// Cancel handles POST /reservations/{id}/cancel
// The body may carry a cancellation reason; an empty body is accepted.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	var req model.CancelRequest
	_ = decodeJSON(r, &req)

	res, err := h.svc.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdatePayment handles PATCH /reservations/{id}/payment
func (h *ReservationHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	var upd model.PaymentUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.UpdatePayment(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateFees handles PATCH /reservations/{id}
func (h *ReservationHandler) UpdateFees(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	var upd model.FeesUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.UpdateFees(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GuestStats handles POST /guests/{id}/stats
// Recomputes the guest's lifetime statistics from their reservation history.
func (h *ReservationHandler) GuestStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}
	stats, err := h.aggregator.UpdateStats(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// transition runs a bodyless lifecycle operation identified by {id}.
func (h *ReservationHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) (*model.Reservation, error)) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	res, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
