package service

import (
	"context"
	"fmt"
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// CalendarCache is an optional read-cache for availability calendars.
// Implemented by redisx; a nil cache disables caching.
type CalendarCache interface {
	GetCalendar(ctx context.Context, key string) (*model.AccommodationCalendar, bool)
	SetCalendar(ctx context.Context, key string, cal *model.AccommodationCalendar)
}

// DefaultCalendarDays is the calendar horizon when the caller does not ask
// for a specific one: today through +90 days.
const DefaultCalendarDays = 90

// AvailabilityService answers free/booked questions and computes
// date-variable prices. It reads inventory and reservations and persists
// nothing; its answers are advisory, the stores enforce the overlap
// invariant at write time.
type AvailabilityService struct {
	store  Store
	policy Policy
	cache  CalendarCache
}

// NewAvailabilityService constructs an AvailabilityService. cache may be nil.
func NewAvailabilityService(store Store, policy Policy, cache CalendarCache) *AvailabilityService {
	return &AvailabilityService{store: store, policy: policy, cache: cache}
}

// Check reports whether the accommodation is free over [checkIn, checkOut).
func (s *AvailabilityService) Check(ctx context.Context, accommodationID int64, checkIn, checkOut time.Time) (bool, error) {
	checkIn, checkOut = model.ToDate(checkIn), model.ToDate(checkOut)
	if !checkIn.Before(checkOut) {
		return false, model.Validationf("check-out must be after check-in")
	}

	acc, err := s.store.GetAccommodation(ctx, accommodationID)
	if err != nil {
		return false, err
	}
	return s.isFree(ctx, acc, checkIn, checkOut)
}

// isFree applies the flag and overlap rules for an already-loaded unit.
func (s *AvailabilityService) isFree(ctx context.Context, acc *model.Accommodation, checkIn, checkOut time.Time) (bool, error) {
	if !acc.IsAvailable || !acc.IsActive {
		return false, nil
	}

	blocking, err := s.store.ListReservations(ctx, model.ReservationFilter{
		AccommodationID: &acc.ID,
		Statuses:        s.policy.BlockingStatuses,
	})
	if err != nil {
		return false, err
	}
	for i := range blocking {
		if blocking[i].Overlaps(checkIn, checkOut) {
			return false, nil
		}
	}
	return true, nil
}

// Quote computes the price for a stay: the per-date rate summed over every
// night in [checkIn, checkOut), plus the cleaning fee once. Deterministic
// and idempotent; persists nothing.
func (s *AvailabilityService) Quote(ctx context.Context, accommodationID int64, checkIn, checkOut time.Time) (*model.Quote, error) {
	checkIn, checkOut = model.ToDate(checkIn), model.ToDate(checkOut)
	if !checkIn.Before(checkOut) {
		return nil, model.Validationf("check-out must be after check-in")
	}

	acc, err := s.store.GetAccommodation(ctx, accommodationID)
	if err != nil {
		return nil, err
	}

	free, err := s.isFree(ctx, acc, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	base := stayBaseAmount(acc, checkIn, checkOut)
	return &model.Quote{
		AccommodationID:   acc.ID,
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
		Nights:            model.DaysBetween(checkIn, checkOut),
		Available:         free,
		BaseAmountCents:   base,
		CleaningFeeCents:  acc.CleaningFeeCents,
		TotalCents:        base + acc.CleaningFeeCents,
		BasePerNightCents: acc.BasePriceCents,
	}, nil
}

// stayBaseAmount sums the nightly rate over every date in [in, out).
func stayBaseAmount(acc *model.Accommodation, in, out time.Time) int64 {
	var total int64
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		total += acc.PriceForDate(d)
	}
	return total
}

// Search returns accommodations matching the capacity/type/price filters.
// When a date range is supplied it further filters to free units and
// annotates each result with the quote for that query.
func (s *AvailabilityService) Search(ctx context.Context, req model.SearchRequest) ([]model.SearchResult, error) {
	if (req.CheckInDate == nil) != (req.CheckOutDate == nil) {
		return nil, model.Validationf("provide both check-in and check-out dates, or neither")
	}

	accs, err := s.store.ListAccommodations(ctx, model.AccommodationFilter{
		PropertyID:    req.PropertyID,
		Type:          req.Type,
		MinGuests:     req.Guests,
		MinPriceCents: req.MinPriceCents,
		MaxPriceCents: req.MaxPriceCents,
		AvailableOnly: true,
	})
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(accs))
	if req.CheckInDate == nil {
		for i := range accs {
			results = append(results, model.SearchResult{Accommodation: accs[i]})
		}
		return results, nil
	}

	in, out := model.ToDate(*req.CheckInDate), model.ToDate(*req.CheckOutDate)
	if !in.Before(out) {
		return nil, model.Validationf("check-out must be after check-in")
	}
	for i := range accs {
		acc := accs[i]
		free, err := s.isFree(ctx, &acc, in, out)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}
		results = append(results, model.SearchResult{
			Accommodation: acc,
			Nights:        model.DaysBetween(in, out),
			TotalCents:    stayBaseAmount(&acc, in, out) + acc.CleaningFeeCents,
		})
	}
	return results, nil
}

// Calendar returns the day-by-day availability and price for one unit over
// the horizon. A zero start means today; days <= 0 means the default
// 90-day horizon. Served from the cache when one is configured.
func (s *AvailabilityService) Calendar(ctx context.Context, accommodationID int64, start time.Time, days int) (*model.AccommodationCalendar, error) {
	if start.IsZero() {
		start = model.Today()
	}
	start = model.ToDate(start)
	if days <= 0 {
		days = DefaultCalendarDays
	}

	key := fmt.Sprintf("calendar:%d:%s:%d", accommodationID, start.Format(model.DateLayout), days)
	if s.cache != nil {
		if cal, ok := s.cache.GetCalendar(ctx, key); ok {
			return cal, nil
		}
	}

	acc, err := s.store.GetAccommodation(ctx, accommodationID)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 0, days)
	blocking, err := s.store.ListReservations(ctx, model.ReservationFilter{
		AccommodationID: &accommodationID,
		Statuses:        s.policy.BlockingStatuses,
	})
	if err != nil {
		return nil, err
	}

	cal := &model.AccommodationCalendar{
		AccommodationID:   acc.ID,
		AccommodationName: acc.Name,
		Days:              make([]model.CalendarDay, 0, days),
	}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		booked := false
		for i := range blocking {
			if blocking[i].Overlaps(d, d.AddDate(0, 0, 1)) {
				booked = true
				break
			}
		}
		cal.Days = append(cal.Days, model.CalendarDay{
			Date:       d,
			Available:  !booked && acc.IsAvailable,
			PriceCents: acc.PriceForDate(d),
			IsWeekend:  model.IsWeekend(d),
		})
	}

	if s.cache != nil {
		s.cache.SetCalendar(ctx, key, cal)
	}
	return cal, nil
}
