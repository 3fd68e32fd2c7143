package handler

import (
	"net/http"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/service"
)

// InventoryHandler exposes the bookable catalog: properties,
// accommodations, and guest records.
type InventoryHandler struct {
	svc *service.InventoryService
}

// NewInventoryHandler constructs an InventoryHandler.
func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ─── Properties ───────────────────────────────────────────────────────────────

// CreateProperty handles POST /properties
func (h *InventoryHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var p model.Property
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	created, err := h.svc.CreateProperty(r.Context(), &p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListProperties handles GET /properties
func (h *InventoryHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.ListProperties(r.Context(), queryBool(r, "include_inactive"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if props == nil {
		props = []model.Property{}
	}
	writeJSON(w, http.StatusOK, props)
}

// GetProperty handles GET /properties/{id}
func (h *InventoryHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	p, err := h.svc.GetProperty(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProperty handles PATCH /properties/{id}
func (h *InventoryHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	var upd model.PropertyUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	p, err := h.svc.UpdateProperty(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeactivateProperty handles DELETE /properties/{id}
func (h *InventoryHandler) DeactivateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	if err := h.svc.DeactivateProperty(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Accommodations ───────────────────────────────────────────────────────────

// CreateAccommodation handles POST /accommodations
func (h *InventoryHandler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var a model.Accommodation
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	created, err := h.svc.CreateAccommodation(r.Context(), &a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListAccommodations handles GET /accommodations
func (h *InventoryHandler) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	f := model.AccommodationFilter{
		PropertyID:      queryInt64Ptr(r, "property_id"),
		Type:            r.URL.Query().Get("type"),
		MinGuests:       queryInt(r, "guests"),
		MinPriceCents:   queryInt64Ptr(r, "min_price_cents"),
		MaxPriceCents:   queryInt64Ptr(r, "max_price_cents"),
		AvailableOnly:   queryBool(r, "available_only"),
		IncludeInactive: queryBool(r, "include_inactive"),
	}
	accs, err := h.svc.ListAccommodations(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if accs == nil {
		accs = []model.Accommodation{}
	}
	writeJSON(w, http.StatusOK, accs)
}

// GetAccommodation handles GET /accommodations/{id}
func (h *InventoryHandler) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	a, err := h.svc.GetAccommodation(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// UpdateAccommodation handles PATCH /accommodations/{id}
func (h *InventoryHandler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	var upd model.AccommodationUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	a, err := h.svc.UpdateAccommodation(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DeactivateAccommodation handles DELETE /accommodations/{id}
func (h *InventoryHandler) DeactivateAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	if err := h.svc.DeactivateAccommodation(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Guests ───────────────────────────────────────────────────────────────────

// CreateGuest handles POST /guests
func (h *InventoryHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var g model.Guest
	if err := decodeJSON(r, &g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	created, err := h.svc.CreateGuest(r.Context(), &g)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListGuests handles GET /guests
func (h *InventoryHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.svc.ListGuests(r.Context(), queryBool(r, "include_inactive"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if guests == nil {
		guests = []model.Guest{}
	}
	writeJSON(w, http.StatusOK, guests)
}

// GetGuest handles GET /guests/{id}
func (h *InventoryHandler) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}
	g, err := h.svc.GetGuest(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// UpdateGuest handles PATCH /guests/{id}
func (h *InventoryHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}
	var upd model.GuestUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	g, err := h.svc.UpdateGuest(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// DeactivateGuest handles DELETE /guests/{id}
func (h *InventoryHandler) DeactivateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return
	}
	if err := h.svc.DeactivateGuest(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
