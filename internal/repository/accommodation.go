package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// AccommodationRepository handles persistence for accommodations.
type AccommodationRepository struct {
	db *pgxpool.Pool
}

// NewAccommodationRepository constructs an AccommodationRepository.
func NewAccommodationRepository(db *pgxpool.Pool) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

const accommodationColumns = `id, property_id, name, type, description,
	max_guests, bedrooms, bathrooms, beds,
	base_price_cents, weekend_price_cents, holiday_price_cents, cleaning_fee_cents,
	min_stay_nights, max_stay_nights, is_available, is_active, created_at, updated_at`

func scanAccommodation(row pgx.Row) (*model.Accommodation, error) {
	var a model.Accommodation
	err := row.Scan(
		&a.ID, &a.PropertyID, &a.Name, &a.Type, &a.Description,
		&a.MaxGuests, &a.Bedrooms, &a.Bathrooms, &a.Beds,
		&a.BasePriceCents, &a.WeekendPriceCents, &a.HolidayPriceCents, &a.CleaningFeeCents,
		&a.MinStayNights, &a.MaxStayNights, &a.IsAvailable, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccommodationRepository) CreateAccommodation(ctx context.Context, a *model.Accommodation) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO accommodations (property_id, name, type, description,
			max_guests, bedrooms, bathrooms, beds,
			base_price_cents, weekend_price_cents, holiday_price_cents, cleaning_fee_cents,
			min_stay_nights, max_stay_nights, is_available, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, created_at, updated_at`,
		a.PropertyID, a.Name, a.Type, a.Description,
		a.MaxGuests, a.Bedrooms, a.Bathrooms, a.Beds,
		a.BasePriceCents, a.WeekendPriceCents, a.HolidayPriceCents, a.CleaningFeeCents,
		a.MinStayNights, a.MaxStayNights, a.IsAvailable, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapWriteError("insert accommodation", err)
	}
	return nil
}

func (r *AccommodationRepository) GetAccommodation(ctx context.Context, id int64) (*model.Accommodation, error) {
	a, err := scanAccommodation(r.db.QueryRow(ctx,
		`SELECT `+accommodationColumns+` FROM accommodations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("accommodation %d", id)
		}
		return nil, model.Persistencef("get accommodation", err)
	}
	return a, nil
}

func (r *AccommodationRepository) ListAccommodations(ctx context.Context, f model.AccommodationFilter) ([]model.Accommodation, error) {
	q := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE TRUE`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.IncludeInactive {
		q += ` AND is_active`
	}
	if f.AvailableOnly {
		q += ` AND is_available`
	}
	if f.PropertyID != nil {
		q += ` AND property_id = ` + arg(*f.PropertyID)
	}
	if f.Type != "" {
		q += ` AND type = ` + arg(f.Type)
	}
	if f.MinGuests > 0 {
		q += ` AND max_guests >= ` + arg(f.MinGuests)
	}
	if f.MinPriceCents != nil {
		q += ` AND base_price_cents >= ` + arg(*f.MinPriceCents)
	}
	if f.MaxPriceCents != nil {
		q += ` AND base_price_cents <= ` + arg(*f.MaxPriceCents)
	}
	q += ` ORDER BY id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, model.Persistencef("list accommodations", err)
	}
	defer rows.Close()

	var out []model.Accommodation
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, model.Persistencef("scan accommodation", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistencef("list accommodations", err)
	}
	return out, nil
}

func (r *AccommodationRepository) UpdateAccommodation(ctx context.Context, id int64, upd model.AccommodationUpdate) (*model.Accommodation, error) {
	a, err := scanAccommodation(r.db.QueryRow(ctx,
		`UPDATE accommodations SET
			name                = COALESCE($2, name),
			type                = COALESCE($3, type),
			description         = COALESCE($4, description),
			max_guests          = COALESCE($5, max_guests),
			bedrooms            = COALESCE($6, bedrooms),
			bathrooms           = COALESCE($7, bathrooms),
			beds                = COALESCE($8, beds),
			base_price_cents    = COALESCE($9, base_price_cents),
			weekend_price_cents = COALESCE($10, weekend_price_cents),
			holiday_price_cents = COALESCE($11, holiday_price_cents),
			cleaning_fee_cents  = COALESCE($12, cleaning_fee_cents),
			min_stay_nights     = COALESCE($13, min_stay_nights),
			max_stay_nights     = COALESCE($14, max_stay_nights),
			is_available        = COALESCE($15, is_available),
			updated_at          = $16
		 WHERE id = $1
		 RETURNING `+accommodationColumns,
		id, upd.Name, upd.Type, upd.Description,
		upd.MaxGuests, upd.Bedrooms, upd.Bathrooms, upd.Beds,
		upd.BasePriceCents, upd.WeekendPriceCents, upd.HolidayPriceCents, upd.CleaningFeeCents,
		upd.MinStayNights, upd.MaxStayNights, upd.IsAvailable, time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("accommodation %d", id)
		}
		return nil, mapWriteError("update accommodation", err)
	}
	return a, nil
}

func (r *AccommodationRepository) DeactivateAccommodation(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE accommodations SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return mapWriteError("deactivate accommodation", err)
	}
	if ct.RowsAffected() == 0 {
		return model.NotFoundf("accommodation %d", id)
	}
	return nil
}
