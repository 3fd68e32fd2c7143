package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// ReservationService drives the reservation lifecycle. Every mutation is
// delegated to the store as one atomic unit; the service owns validation,
// guard predicates, and orchestration of side effects.
type ReservationService struct {
	store        Store
	availability *AvailabilityService
	aggregator   *GuestStatsAggregator
	policy       Policy
}

// NewReservationService constructs a ReservationService.
func NewReservationService(store Store, availability *AvailabilityService, aggregator *GuestStatsAggregator, policy Policy) *ReservationService {
	return &ReservationService{
		store:        store,
		availability: availability,
		aggregator:   aggregator,
		policy:       policy,
	}
}

// newCode builds a reservation code: fixed prefix, creation year+month, and
// a short random suffix. Uniqueness is enforced by the store.
func newCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("HF%s%s", now.Format("200601"), suffix)
}

// Create validates the request, re-checks availability, computes totals,
// and persists a pending reservation. The store re-verifies the overlap
// invariant inside the same atomic commit; the pre-check here is advisory.
func (s *ReservationService) Create(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error) {
	if req.AccommodationID == 0 {
		return nil, model.Validationf("accommodation_id is required")
	}
	if req.GuestID == 0 {
		return nil, model.Validationf("guest_id is required")
	}
	if req.Adults < 1 {
		return nil, model.Validationf("at least one adult is required")
	}
	if req.Children < 0 {
		return nil, model.Validationf("children cannot be negative")
	}
	if req.ServiceFeeCents < 0 || req.TaxesCents < 0 || req.DiscountCents < 0 {
		return nil, model.Validationf("fees cannot be negative")
	}

	checkIn, err := model.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, model.Validationf("invalid check_in_date, use YYYY-MM-DD")
	}
	checkOut, err := model.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, model.Validationf("invalid check_out_date, use YYYY-MM-DD")
	}
	if !checkIn.Before(checkOut) {
		return nil, model.Validationf("check-out must be after check-in")
	}
	if checkIn.Before(model.Today()) {
		return nil, model.Validationf("check-in cannot be in the past")
	}

	acc, err := s.store.GetAccommodation(ctx, req.AccommodationID)
	if err != nil {
		return nil, err
	}
	guest, err := s.store.GetGuest(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	nights := model.DaysBetween(checkIn, checkOut)
	if nights < acc.MinStayNights {
		return nil, model.Validationf("minimum stay is %d nights", acc.MinStayNights)
	}
	if acc.MaxStayNights != nil && nights > *acc.MaxStayNights {
		return nil, model.Validationf("maximum stay is %d nights", *acc.MaxStayNights)
	}

	totalGuests := req.Adults + req.Children
	if totalGuests > acc.MaxGuests {
		return nil, model.Capacityf("guest count %d exceeds maximum of %d", totalGuests, acc.MaxGuests)
	}

	// Advisory pre-check for early rejection; the authoritative check runs
	// inside the store's commit.
	free, err := s.availability.isFree(ctx, acc, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, model.Conflictf("accommodation %d is not available for the requested period", acc.ID)
	}

	now := time.Now().UTC()
	source := req.Source
	if source == "" {
		source = "direct"
	}

	res := &model.Reservation{
		Code:             newCode(now),
		PropertyID:       acc.PropertyID,
		AccommodationID:  acc.ID,
		GuestID:          guest.ID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Nights:           nights,
		Adults:           req.Adults,
		Children:         req.Children,
		TotalGuests:      totalGuests,
		BaseAmountCents:  stayBaseAmount(acc, checkIn, checkOut),
		CleaningFeeCents: acc.CleaningFeeCents,
		ServiceFeeCents:  req.ServiceFeeCents,
		TaxesCents:       req.TaxesCents,
		DiscountCents:    req.DiscountCents,
		Status:           model.StatusPending,
		PaymentStatus:    model.PaymentPending,
		SpecialRequests:  req.SpecialRequests,
		Source:           source,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	res.CalculateTotal()

	if err := s.store.CreateReservation(ctx, res, s.policy.BlockingStatuses); err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns a reservation by id.
func (s *ReservationService) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// GetByCode returns a reservation by its booking code.
func (s *ReservationService) GetByCode(ctx context.Context, code string) (*model.Reservation, error) {
	return s.store.GetReservationByCode(ctx, code)
}

// List returns reservations matching the filter, most recent first.
func (s *ReservationService) List(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, error) {
	return s.store.ListReservations(ctx, f)
}

// Confirm moves a pending reservation to confirmed. Because confirmed
// reservations block availability, the store re-verifies the overlap
// invariant in the same commit; a losing confirm gets ErrConflict.
func (s *ReservationService) Confirm(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.store.ChangeStatus(ctx, id, model.StatusChange{
		To:          model.StatusConfirmed,
		AllowedFrom: []model.ReservationStatus{model.StatusPending},
	}, s.policy.BlockingStatuses)
}

// Cancel cancels a pending or confirmed reservation whose check-in is
// strictly in the future, recording the reason and timestamp.
func (s *ReservationService) Cancel(ctx context.Context, id int64, reason string) (*model.Reservation, error) {
	res, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.IsFuture(model.Today()) {
		return nil, model.Conflictf("reservation %s can no longer be cancelled", res.Code)
	}
	if reason == "" {
		reason = "cancellation requested"
	}
	return s.store.ChangeStatus(ctx, id, model.StatusChange{
		To:             model.StatusCancelled,
		AllowedFrom:    []model.ReservationStatus{model.StatusPending, model.StatusConfirmed},
		Reason:         reason,
		StampCancelled: true,
	}, s.policy.BlockingStatuses)
}

// CheckIn records the guest's arrival. Legal from confirmed once the
// check-in date has been reached.
func (s *ReservationService) CheckIn(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.CheckInDate.After(model.Today()) {
		return nil, model.Conflictf("reservation %s cannot check in before %s",
			res.Code, res.CheckInDate.Format(model.DateLayout))
	}
	return s.store.ChangeStatus(ctx, id, model.StatusChange{
		To:           model.StatusCheckedIn,
		AllowedFrom:  []model.ReservationStatus{model.StatusConfirmed},
		StampCheckIn: true,
	}, s.policy.BlockingStatuses)
}

// CheckOut records the guest's departure and triggers the statistics
// aggregation for the guest. The transition is serialized by the store, so
// concurrent check-outs cannot both succeed; the aggregation itself is a
// pure recomputation and safe to repeat.
func (s *ReservationService) CheckOut(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := s.store.ChangeStatus(ctx, id, model.StatusChange{
		To:            model.StatusCheckedOut,
		AllowedFrom:   []model.ReservationStatus{model.StatusCheckedIn},
		StampCheckOut: true,
	}, s.policy.BlockingStatuses)
	if err != nil {
		return nil, err
	}

	if _, err := s.aggregator.UpdateStats(ctx, res.GuestID); err != nil {
		return nil, fmt.Errorf("update guest stats after check-out: %w", err)
	}
	return res, nil
}

// UpdatePayment changes payment fields independently of lifecycle status.
// Setting the status to paid stamps the payment date.
func (s *ReservationService) UpdatePayment(ctx context.Context, id int64, upd model.PaymentUpdate) (*model.Reservation, error) {
	if upd.Status == nil && upd.Method == nil {
		return nil, model.Validationf("no payment fields to update")
	}
	if upd.Status != nil && !model.ValidPaymentStatus(*upd.Status) {
		return nil, model.Validationf("unknown payment status %q", *upd.Status)
	}
	return s.store.UpdatePayment(ctx, id, upd)
}

// UpdateFees applies allow-listed fee and note mutations. The store
// re-derives the total inside the same unit of work, so the monetary
// breakdown invariant is never observably violated.
func (s *ReservationService) UpdateFees(ctx context.Context, id int64, upd model.FeesUpdate) (*model.Reservation, error) {
	if (upd.ServiceFeeCents != nil && *upd.ServiceFeeCents < 0) ||
		(upd.TaxesCents != nil && *upd.TaxesCents < 0) ||
		(upd.DiscountCents != nil && *upd.DiscountCents < 0) {
		return nil, model.Validationf("fees cannot be negative")
	}
	return s.store.UpdateFees(ctx, id, upd)
}
