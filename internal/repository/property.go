package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// PropertyRepository handles persistence for properties.
type PropertyRepository struct {
	db *pgxpool.Pool
}

// NewPropertyRepository constructs a PropertyRepository.
func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, name, description, address, city, state, zip_code,
	phone, email, website, check_in_time, check_out_time,
	cancellation_policy, house_rules, is_active, created_at, updated_at`

func scanProperty(row pgx.Row) (*model.Property, error) {
	var p model.Property
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Address, &p.City, &p.State, &p.ZipCode,
		&p.Phone, &p.Email, &p.Website, &p.CheckInTime, &p.CheckOutTime,
		&p.CancellationPolicy, &p.HouseRules, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) CreateProperty(ctx context.Context, p *model.Property) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO properties (name, description, address, city, state, zip_code,
			phone, email, website, check_in_time, check_out_time,
			cancellation_policy, house_rules, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Address, p.City, p.State, p.ZipCode,
		p.Phone, p.Email, p.Website, p.CheckInTime, p.CheckOutTime,
		p.CancellationPolicy, p.HouseRules, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert property", err)
	}
	return nil
}

func (r *PropertyRepository) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("property %d", id)
		}
		return nil, model.Persistencef("get property", err)
	}
	return p, nil
}

func (r *PropertyRepository) ListProperties(ctx context.Context, includeInactive bool) ([]model.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties`
	if !includeInactive {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, model.Persistencef("list properties", err)
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, model.Persistencef("scan property", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistencef("list properties", err)
	}
	return out, nil
}

func (r *PropertyRepository) UpdateProperty(ctx context.Context, id int64, upd model.PropertyUpdate) (*model.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx,
		`UPDATE properties SET
			name                = COALESCE($2, name),
			description         = COALESCE($3, description),
			address             = COALESCE($4, address),
			city                = COALESCE($5, city),
			state               = COALESCE($6, state),
			zip_code            = COALESCE($7, zip_code),
			phone               = COALESCE($8, phone),
			email               = COALESCE($9, email),
			website             = COALESCE($10, website),
			check_in_time       = COALESCE($11, check_in_time),
			check_out_time      = COALESCE($12, check_out_time),
			cancellation_policy = COALESCE($13, cancellation_policy),
			house_rules         = COALESCE($14, house_rules),
			updated_at          = $15
		 WHERE id = $1
		 RETURNING `+propertyColumns,
		id, upd.Name, upd.Description, upd.Address, upd.City, upd.State, upd.ZipCode,
		upd.Phone, upd.Email, upd.Website, upd.CheckInTime, upd.CheckOutTime,
		upd.CancellationPolicy, upd.HouseRules, time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("property %d", id)
		}
		return nil, mapWriteError("update property", err)
	}
	return p, nil
}

func (r *PropertyRepository) DeactivateProperty(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE properties SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return mapWriteError("deactivate property", err)
	}
	if ct.RowsAffected() == 0 {
		return model.NotFoundf("property %d", id)
	}
	return nil
}
