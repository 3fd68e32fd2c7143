package service

import (
	"context"
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// DefaultReportingWindowDays is the reporting window when the caller does
// not ask for a specific one.
const DefaultReportingWindowDays = 30

// ReportingService computes read-only aggregations over a time window:
// occupancy, revenue, today's arrivals and departures, and calendar views.
// It owns no state and produces no side effects; empty data sets yield
// zero-valued reports, not errors.
type ReportingService struct {
	store  Store
	policy Policy
}

// NewReportingService constructs a ReportingService.
func NewReportingService(store Store, policy Policy) *ReportingService {
	return &ReportingService{store: store, policy: policy}
}

// revenueStatuses are the statuses whose totals count as realized revenue.
var revenueStatuses = []model.ReservationStatus{model.StatusConfirmed, model.StatusCheckedOut}

// occupancyStatuses are the statuses whose nights count as occupied.
var occupancyStatuses = []model.ReservationStatus{model.StatusConfirmed, model.StatusCheckedIn, model.StatusCheckedOut}

// PropertyStats aggregates one property's window: active unit count,
// bookings created in the window, revenue, and the occupancy rate
// nights_booked / (active_units * window_days) * 100. The rate is reported
// raw unless the clamp policy is on, so an overbooked unit can exceed 100%.
func (s *ReportingService) PropertyStats(ctx context.Context, propertyID int64, windowDays int) (*model.PropertyStats, error) {
	if windowDays <= 0 {
		windowDays = DefaultReportingWindowDays
	}
	prop, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	accs, err := s.store.ListAccommodations(ctx, model.AccommodationFilter{PropertyID: &propertyID})
	if err != nil {
		return nil, err
	}

	end := model.Today()
	start := end.AddDate(0, 0, -windowDays)

	recent, err := s.store.ListReservations(ctx, model.ReservationFilter{
		PropertyID:  &propertyID,
		CreatedFrom: &start,
	})
	if err != nil {
		return nil, err
	}

	var revenueCents int64
	for i := range recent {
		if model.StatusIn(recent[i].Status, revenueStatuses) {
			revenueCents += recent[i].TotalCents
		}
	}

	occupied, err := s.store.ListReservations(ctx, model.ReservationFilter{
		PropertyID:  &propertyID,
		Statuses:    occupancyStatuses,
		CheckInFrom: &start,
	})
	if err != nil {
		return nil, err
	}
	var nightsBooked int
	for i := range occupied {
		nightsBooked += occupied[i].Nights
	}

	var rate float64
	if nightsAvailable := len(accs) * windowDays; nightsAvailable > 0 {
		rate = float64(nightsBooked) / float64(nightsAvailable) * 100
	}
	if s.policy.ClampOccupancy {
		if rate > 100 {
			rate = 100
		}
		if rate < 0 {
			rate = 0
		}
	}

	return &model.PropertyStats{
		PropertyName:        prop.Name,
		TotalAccommodations: len(accs),
		RecentBookings:      len(recent),
		MonthlyRevenueCents: revenueCents,
		OccupancyRate:       rate,
		WindowStart:         start,
		WindowEnd:           end,
	}, nil
}

// BookingStats aggregates reservations across the whole estate or one
// property: totals, per-status counts, window revenue, and today's
// arrivals and departures.
func (s *ReportingService) BookingStats(ctx context.Context, propertyID *int64, windowDays int) (*model.BookingStats, error) {
	if windowDays <= 0 {
		windowDays = DefaultReportingWindowDays
	}
	end := model.Today()
	start := end.AddDate(0, 0, -windowDays)

	all, err := s.store.ListReservations(ctx, model.ReservationFilter{PropertyID: propertyID})
	if err != nil {
		return nil, err
	}

	stats := &model.BookingStats{
		TotalBookings: len(all),
		StatusCounts:  make(map[model.ReservationStatus]int),
		WindowStart:   start,
		WindowEnd:     end,
	}
	today := model.Today()
	for i := range all {
		r := &all[i]
		stats.StatusCounts[r.Status]++
		if !r.CreatedAt.Before(start) {
			stats.RecentBookings++
		}
		if model.StatusIn(r.Status, revenueStatuses) &&
			!r.CheckInDate.Before(start) && !r.CheckInDate.After(end) {
			stats.TotalRevenueCents += r.TotalCents
		}
		if r.CheckInDate.Equal(today) &&
			(r.Status == model.StatusConfirmed || r.Status == model.StatusCheckedIn) {
			stats.TodayCheckIns++
		}
		if r.CheckOutDate.Equal(today) && r.Status == model.StatusCheckedIn {
			stats.TodayCheckOuts++
		}
	}
	return stats, nil
}

// CalendarEvents renders blocking reservations intersecting the window as
// calendar entries with guest and unit names resolved.
func (s *ReportingService) CalendarEvents(ctx context.Context, propertyID, accommodationID *int64, start, end time.Time) ([]model.CalendarEvent, error) {
	reservations, err := s.store.ListReservations(ctx, model.ReservationFilter{
		PropertyID:      propertyID,
		AccommodationID: accommodationID,
		Statuses:        model.DefaultBlockingStatuses(),
	})
	if err != nil {
		return nil, err
	}

	accNames := make(map[int64]string)
	guestNames := make(map[int64]string)

	events := make([]model.CalendarEvent, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		if !start.IsZero() && !r.CheckOutDate.After(model.ToDate(start)) {
			continue
		}
		if !end.IsZero() && r.CheckInDate.After(model.ToDate(end)) {
			continue
		}

		accName, ok := accNames[r.AccommodationID]
		if !ok {
			if acc, err := s.store.GetAccommodation(ctx, r.AccommodationID); err == nil {
				accName = acc.Name
			}
			accNames[r.AccommodationID] = accName
		}
		guestName, ok := guestNames[r.GuestID]
		if !ok {
			if g, err := s.store.GetGuest(ctx, r.GuestID); err == nil {
				guestName = g.FullName()
			}
			guestNames[r.GuestID] = guestName
		}

		events = append(events, model.CalendarEvent{
			ReservationID:     r.ID,
			Code:              r.Code,
			Title:             guestName + " - " + accName,
			Start:             r.CheckInDate,
			End:               r.CheckOutDate,
			Status:            r.Status,
			TotalGuests:       r.TotalGuests,
			TotalCents:        r.TotalCents,
			AccommodationName: accName,
			GuestName:         guestName,
		})
	}
	return events, nil
}
