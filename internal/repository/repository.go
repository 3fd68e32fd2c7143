// Package repository implements all database queries for the reservation
// backend. It uses pgx directly (no ORM) for transparency and performance.
//
// The reservation operations are the authoritative enforcement point for
// the no-overlap invariant: creates and blocking transitions re-verify the
// overlap inside the transaction that writes, under a row lock on the
// accommodation, with the schema's range-exclusion constraint as backstop.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// Store bundles the per-entity repositories into the single persistence
// surface the services consume.
type Store struct {
	*PropertyRepository
	*AccommodationRepository
	*GuestRepository
	*ReservationRepository
}

// NewStore constructs all repositories over one connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		PropertyRepository:      NewPropertyRepository(db),
		AccommodationRepository: NewAccommodationRepository(db),
		GuestRepository:         NewGuestRepository(db),
		ReservationRepository:   NewReservationRepository(db),
	}
}

// Postgres error codes this package maps onto domain error kinds.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// mapWriteError turns constraint violations into ErrConflict and everything
// else into ErrPersistence.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return model.Conflictf("%s: duplicate value for %s", op, pgErr.ConstraintName)
		case pgExclusionViolation:
			return model.Conflictf("%s: overlapping reservation", op)
		}
	}
	return model.Persistencef(op, err)
}
