package handler

import (
	"net/http"
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/service"
)

// ReportingHandler exposes read-only aggregations: property statistics,
// estate-wide booking statistics, and the booking calendar feed.
type ReportingHandler struct {
	svc *service.ReportingService
}

// NewReportingHandler constructs a ReportingHandler.
func NewReportingHandler(svc *service.ReportingService) *ReportingHandler {
	return &ReportingHandler{svc: svc}
}

// PropertyStats handles GET /properties/{id}/stats?days=
func (h *ReportingHandler) PropertyStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	stats, err := h.svc.PropertyStats(r.Context(), id, queryInt(r, "days"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// BookingStats handles GET /reports/bookings?property_id=&days=
func (h *ReportingHandler) BookingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.BookingStats(r.Context(), queryInt64Ptr(r, "property_id"), queryInt(r, "days"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CalendarEvents handles GET /reports/calendar?start=&end=&property_id=&accommodation_id=
func (h *ReportingHandler) CalendarEvents(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	end, err := queryDate(r, "end")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var from, to time.Time
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	events, err := h.svc.CalendarEvents(r.Context(),
		queryInt64Ptr(r, "property_id"), queryInt64Ptr(r, "accommodation_id"), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []model.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
