package service

import (
	"context"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// GuestStatsAggregator rolls a guest's qualifying reservations into lifetime
// statistics. The recomputation is pure and idempotent: it always derives
// the aggregate from the full reservation history, never increments.
type GuestStatsAggregator struct {
	store  Store
	policy Policy
}

// NewGuestStatsAggregator constructs a GuestStatsAggregator.
func NewGuestStatsAggregator(store Store, policy Policy) *GuestStatsAggregator {
	return &GuestStatsAggregator{store: store, policy: policy}
}

// UpdateStats recomputes and persists the guest's aggregate: booking count,
// total spent, and last stay date over the qualifying-status set. Safe to
// call repeatedly; reservation records are never touched.
func (a *GuestStatsAggregator) UpdateStats(ctx context.Context, guestID int64) (*model.GuestStats, error) {
	if _, err := a.store.GetGuest(ctx, guestID); err != nil {
		return nil, err
	}

	qualifying, err := a.store.ListReservations(ctx, model.ReservationFilter{
		GuestID:  &guestID,
		Statuses: a.policy.QualifyingStatuses,
	})
	if err != nil {
		return nil, err
	}

	stats := model.GuestStats{GuestID: guestID}
	for i := range qualifying {
		r := &qualifying[i]
		stats.TotalBookings++
		stats.TotalSpentCents += r.TotalCents
		if stats.LastStayDate == nil || r.CheckOutDate.After(*stats.LastStayDate) {
			d := r.CheckOutDate
			stats.LastStayDate = &d
		}
	}

	if err := a.store.SaveGuestStats(ctx, stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
