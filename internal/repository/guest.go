package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// GuestRepository handles persistence for guests and their aggregated
// statistics.
type GuestRepository struct {
	db *pgxpool.Pool
}

// NewGuestRepository constructs a GuestRepository.
func NewGuestRepository(db *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{db: db}
}

const guestColumns = `id, first_name, last_name, email, phone,
	document_type, document_number, city, country, is_active,
	total_bookings, total_spent_cents, last_stay_date, created_at, updated_at`

func scanGuest(row pgx.Row) (*model.Guest, error) {
	var g model.Guest
	err := row.Scan(
		&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone,
		&g.DocumentType, &g.DocumentNumber, &g.City, &g.Country, &g.IsActive,
		&g.TotalBookings, &g.TotalSpentCents, &g.LastStayDate, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepository) CreateGuest(ctx context.Context, g *model.Guest) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO guests (first_name, last_name, email, phone,
			document_type, document_number, city, country, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		g.FirstName, g.LastName, g.Email, g.Phone,
		g.DocumentType, g.DocumentNumber, g.City, g.Country, g.IsActive,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return mapWriteError("insert guest", err)
	}
	return nil
}

func (r *GuestRepository) GetGuest(ctx context.Context, id int64) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRow(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("guest %d", id)
		}
		return nil, model.Persistencef("get guest", err)
	}
	return g, nil
}

func (r *GuestRepository) ListGuests(ctx context.Context, includeInactive bool) ([]model.Guest, error) {
	q := `SELECT ` + guestColumns + ` FROM guests`
	if !includeInactive {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, model.Persistencef("list guests", err)
	}
	defer rows.Close()

	var out []model.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, model.Persistencef("scan guest", err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistencef("list guests", err)
	}
	return out, nil
}

func (r *GuestRepository) UpdateGuest(ctx context.Context, id int64, upd model.GuestUpdate) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRow(ctx,
		`UPDATE guests SET
			first_name      = COALESCE($2, first_name),
			last_name       = COALESCE($3, last_name),
			email           = COALESCE($4, email),
			phone           = COALESCE($5, phone),
			document_type   = COALESCE($6, document_type),
			document_number = COALESCE($7, document_number),
			city            = COALESCE($8, city),
			country         = COALESCE($9, country),
			updated_at      = $10
		 WHERE id = $1
		 RETURNING `+guestColumns,
		id, upd.FirstName, upd.LastName, upd.Email, upd.Phone,
		upd.DocumentType, upd.DocumentNumber, upd.City, upd.Country, time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("guest %d", id)
		}
		return nil, mapWriteError("update guest", err)
	}
	return g, nil
}

func (r *GuestRepository) DeactivateGuest(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE guests SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return mapWriteError("deactivate guest", err)
	}
	if ct.RowsAffected() == 0 {
		return model.NotFoundf("guest %d", id)
	}
	return nil
}

// SaveGuestStats overwrites the aggregate columns computed by the
// statistics aggregator.
func (r *GuestRepository) SaveGuestStats(ctx context.Context, stats model.GuestStats) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE guests SET
			total_bookings    = $2,
			total_spent_cents = $3,
			last_stay_date    = $4,
			updated_at        = $5
		 WHERE id = $1`,
		stats.GuestID, stats.TotalBookings, stats.TotalSpentCents, stats.LastStayDate, time.Now().UTC())
	if err != nil {
		return mapWriteError("save guest stats", err)
	}
	if ct.RowsAffected() == 0 {
		return model.NotFoundf("guest %d", stats.GuestID)
	}
	return nil
}
