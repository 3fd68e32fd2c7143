// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the storage layer: the availability engine, the
// reservation lifecycle, guest statistics aggregation, and reporting.
package service

import (
	"context"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// PropertyStore persists properties.
type PropertyStore interface {
	CreateProperty(ctx context.Context, p *model.Property) error
	GetProperty(ctx context.Context, id int64) (*model.Property, error)
	ListProperties(ctx context.Context, includeInactive bool) ([]model.Property, error)
	UpdateProperty(ctx context.Context, id int64, upd model.PropertyUpdate) (*model.Property, error)
	DeactivateProperty(ctx context.Context, id int64) error
}

// AccommodationStore persists accommodations.
type AccommodationStore interface {
	CreateAccommodation(ctx context.Context, a *model.Accommodation) error
	GetAccommodation(ctx context.Context, id int64) (*model.Accommodation, error)
	ListAccommodations(ctx context.Context, f model.AccommodationFilter) ([]model.Accommodation, error)
	UpdateAccommodation(ctx context.Context, id int64, upd model.AccommodationUpdate) (*model.Accommodation, error)
	DeactivateAccommodation(ctx context.Context, id int64) error
}

// GuestStore persists guests and their aggregated statistics.
type GuestStore interface {
	CreateGuest(ctx context.Context, g *model.Guest) error
	GetGuest(ctx context.Context, id int64) (*model.Guest, error)
	ListGuests(ctx context.Context, includeInactive bool) ([]model.Guest, error)
	UpdateGuest(ctx context.Context, id int64, upd model.GuestUpdate) (*model.Guest, error)
	DeactivateGuest(ctx context.Context, id int64) error
	// SaveGuestStats overwrites a guest's aggregate columns.
	SaveGuestStats(ctx context.Context, stats model.GuestStats) error
}

// ReservationStore persists reservations. Implementations are the
// authoritative enforcement point for the no-overlap invariant: the
// advisory availability pre-check in the service layer is for early
// rejection only.
type ReservationStore interface {
	// CreateReservation writes the reservation atomically, re-verifying
	// inside the same unit of work that no reservation with a status in
	// blocking overlaps the new range. A losing writer gets ErrConflict.
	CreateReservation(ctx context.Context, r *model.Reservation, blocking []model.ReservationStatus) error
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	GetReservationByCode(ctx context.Context, code string) (*model.Reservation, error)
	ListReservations(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, error)
	// ChangeStatus applies a lifecycle transition atomically. The current
	// status must be in change.AllowedFrom, and when the target status is
	// in blocking the store re-verifies the overlap invariant before
	// committing. Either failure yields ErrConflict.
	ChangeStatus(ctx context.Context, id int64, change model.StatusChange, blocking []model.ReservationStatus) (*model.Reservation, error)
	UpdatePayment(ctx context.Context, id int64, upd model.PaymentUpdate) (*model.Reservation, error)
	// UpdateFees applies allow-listed fee mutations and re-derives the
	// total in the same unit of work.
	UpdateFees(ctx context.Context, id int64, upd model.FeesUpdate) (*model.Reservation, error)
}

// Store is the full persistence surface consumed by the services.
type Store interface {
	PropertyStore
	AccommodationStore
	GuestStore
	ReservationStore
}

// Policy carries the configurable behaviors the source system left
// ambiguous: which statuses block availability, which qualify for guest
// statistics, and whether occupancy is clamped.
type Policy struct {
	BlockingStatuses   []model.ReservationStatus
	QualifyingStatuses []model.ReservationStatus
	ClampOccupancy     bool
}

// DefaultPolicy mirrors the source system's behavior: pending holds do not
// block, only confirmed reservations feed guest statistics, occupancy is
// reported raw.
func DefaultPolicy() Policy {
	return Policy{
		BlockingStatuses:   model.DefaultBlockingStatuses(),
		QualifyingStatuses: []model.ReservationStatus{model.StatusConfirmed},
		ClampOccupancy:     false,
	}
}
