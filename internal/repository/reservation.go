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

// ReservationRepository handles persistence for reservations.
type ReservationRepository struct {
	db *pgxpool.Pool
}

// NewReservationRepository constructs a ReservationRepository.
func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, code, property_id, accommodation_id, guest_id,
	check_in_date, check_out_date, nights, adults, children, total_guests,
	base_amount_cents, cleaning_fee_cents, service_fee_cents, taxes_cents,
	discount_cents, total_cents, status, payment_status, payment_method,
	payment_date, actual_check_in, actual_check_out, special_requests,
	internal_notes, cancellation_reason, cancelled_at, source,
	guest_rating, guest_review, host_rating, host_review, created_at, updated_at`

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var r model.Reservation
	err := row.Scan(
		&r.ID, &r.Code, &r.PropertyID, &r.AccommodationID, &r.GuestID,
		&r.CheckInDate, &r.CheckOutDate, &r.Nights, &r.Adults, &r.Children, &r.TotalGuests,
		&r.BaseAmountCents, &r.CleaningFeeCents, &r.ServiceFeeCents, &r.TaxesCents,
		&r.DiscountCents, &r.TotalCents, &r.Status, &r.PaymentStatus, &r.PaymentMethod,
		&r.PaymentDate, &r.ActualCheckIn, &r.ActualCheckOut, &r.SpecialRequests,
		&r.InternalNotes, &r.CancellationReason, &r.CancelledAt, &r.Source,
		&r.GuestRating, &r.GuestReview, &r.HostRating, &r.HostReview, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// statusStrings converts a status set for use with = ANY($n).
func statusStrings(set []model.ReservationStatus) []string {
	out := make([]string, len(set))
	for i, s := range set {
		out[i] = string(s)
	}
	return out
}

// CreateReservation performs the concurrency-safe booking write.
//
// Two concurrent creates for overlapping ranges can both pass the advisory
// pre-check before either commits. To close that race, the insert runs in a
// transaction that first takes a row-level lock on the accommodation
// (SELECT ... FOR UPDATE), serializing all bookings for that unit, and then
// re-counts blocking overlaps while holding the lock. The loser of the race
// observes the winner's committed row and gets ErrConflict. The schema's
// range-exclusion constraint enforces the same invariant even for writes
// that bypass this path.
func (r *ReservationRepository) CreateReservation(ctx context.Context, res *model.Reservation, blocking []model.ReservationStatus) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Persistencef("begin create reservation", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the accommodation row; all concurrent creates for this unit
	// queue behind the lock until we commit or roll back.
	var accommodationID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM accommodations WHERE id = $1 FOR UPDATE`,
		res.AccommodationID,
	).Scan(&accommodationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NotFoundf("accommodation %d", res.AccommodationID)
		}
		return model.Persistencef("lock accommodation row", err)
	}

	// Authoritative overlap re-check inside the same transaction.
	var overlaps int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations
		 WHERE accommodation_id = $1
		   AND status = ANY($2)
		   AND check_in_date < $4 AND $3 < check_out_date`,
		res.AccommodationID, statusStrings(blocking), res.CheckInDate, res.CheckOutDate,
	).Scan(&overlaps)
	if err != nil {
		return model.Persistencef("check overlap", err)
	}
	if overlaps > 0 {
		return model.Conflictf("accommodation %d already booked for the requested period", res.AccommodationID)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO reservations (code, property_id, accommodation_id, guest_id,
			check_in_date, check_out_date, nights, adults, children, total_guests,
			base_amount_cents, cleaning_fee_cents, service_fee_cents, taxes_cents,
			discount_cents, total_cents, status, payment_status, special_requests, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		 RETURNING id, created_at, updated_at`,
		res.Code, res.PropertyID, res.AccommodationID, res.GuestID,
		res.CheckInDate, res.CheckOutDate, res.Nights, res.Adults, res.Children, res.TotalGuests,
		res.BaseAmountCents, res.CleaningFeeCents, res.ServiceFeeCents, res.TaxesCents,
		res.DiscountCents, res.TotalCents, res.Status, res.PaymentStatus, res.SpecialRequests, res.Source,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return mapWriteError("insert reservation", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return mapWriteError("commit reservation", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("reservation %d", id)
		}
		return nil, model.Persistencef("get reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) GetReservationByCode(ctx context.Context, code string) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("reservation %s", code)
		}
		return nil, model.Persistencef("get reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE TRUE`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Statuses) > 0 {
		q += ` AND status = ANY(` + arg(statusStrings(f.Statuses)) + `)`
	}
	if f.AccommodationID != nil {
		q += ` AND accommodation_id = ` + arg(*f.AccommodationID)
	}
	if f.PropertyID != nil {
		q += ` AND property_id = ` + arg(*f.PropertyID)
	}
	if f.GuestID != nil {
		q += ` AND guest_id = ` + arg(*f.GuestID)
	}
	if f.CheckInFrom != nil {
		q += ` AND check_in_date >= ` + arg(*f.CheckInFrom)
	}
	if f.CheckOutTo != nil {
		q += ` AND check_out_date <= ` + arg(*f.CheckOutTo)
	}
	if f.CreatedFrom != nil {
		q += ` AND created_at >= ` + arg(*f.CreatedFrom)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, model.Persistencef("list reservations", err)
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, model.Persistencef("scan reservation", err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistencef("list reservations", err)
	}
	return out, nil
}

// ChangeStatus applies a lifecycle transition as one transaction. The row
// lock on the reservation serializes concurrent transitions; the status
// check behind the lock turns the loser's attempt into ErrConflict. When
// the target status blocks availability, the overlap invariant is
// re-verified before the update lands.
func (r *ReservationRepository) ChangeStatus(ctx context.Context, id int64, change model.StatusChange, blocking []model.ReservationStatus) (_ *model.Reservation, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, model.Persistencef("begin change status", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	res, err := scanReservation(tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("reservation %d", id)
		}
		return nil, model.Persistencef("lock reservation row", err)
	}

	if !model.StatusIn(res.Status, change.AllowedFrom) {
		return nil, model.Conflictf("illegal transition from %s to %s", res.Status, change.To)
	}

	if model.StatusIn(change.To, blocking) {
		var overlaps int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM reservations
			 WHERE accommodation_id = $1 AND id <> $2
			   AND status = ANY($3)
			   AND check_in_date < $5 AND $4 < check_out_date`,
			res.AccommodationID, res.ID, statusStrings(blocking), res.CheckInDate, res.CheckOutDate,
		).Scan(&overlaps)
		if err != nil {
			return nil, model.Persistencef("check overlap", err)
		}
		if overlaps > 0 {
			return nil, model.Conflictf("accommodation %d already booked for the requested period", res.AccommodationID)
		}
	}

	now := time.Now().UTC()
	res.Status = change.To
	res.UpdatedAt = now
	if change.Reason != "" {
		res.CancellationReason = change.Reason
	}
	if change.StampCheckIn {
		t := now
		res.ActualCheckIn = &t
	}
	if change.StampCheckOut {
		t := now
		res.ActualCheckOut = &t
	}
	if change.StampCancelled {
		t := now
		res.CancelledAt = &t
	}

	_, err = tx.Exec(ctx,
		`UPDATE reservations SET
			status = $2, cancellation_reason = $3, cancelled_at = $4,
			actual_check_in = $5, actual_check_out = $6, updated_at = $7
		 WHERE id = $1`,
		res.ID, res.Status, res.CancellationReason, res.CancelledAt,
		res.ActualCheckIn, res.ActualCheckOut, res.UpdatedAt,
	)
	if err != nil {
		return nil, mapWriteError("update reservation status", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, mapWriteError("commit status change", err)
	}
	return res, nil
}

// UpdatePayment changes payment fields; the reservation status is
// untouched. Setting the status to paid stamps the payment date.
func (r *ReservationRepository) UpdatePayment(ctx context.Context, id int64, upd model.PaymentUpdate) (*model.Reservation, error) {
	var paymentDate *time.Time
	if upd.Status != nil && *upd.Status == model.PaymentPaid {
		t := time.Now().UTC()
		paymentDate = &t
	}

	res, err := scanReservation(r.db.QueryRow(ctx,
		`UPDATE reservations SET
			payment_status = COALESCE($2, payment_status),
			payment_method = COALESCE($3, payment_method),
			payment_date   = COALESCE($4, payment_date),
			updated_at     = $5
		 WHERE id = $1
		 RETURNING `+reservationColumns,
		id, upd.Status, upd.Method, paymentDate, time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("reservation %d", id)
		}
		return nil, mapWriteError("update payment", err)
	}
	return res, nil
}

// UpdateFees mutates the allow-listed fee fields and re-derives the total
// inside the same transaction, so the monetary breakdown invariant is
// never observably violated.
func (r *ReservationRepository) UpdateFees(ctx context.Context, id int64, upd model.FeesUpdate) (_ *model.Reservation, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, model.Persistencef("begin update fees", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	res, err := scanReservation(tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundf("reservation %d", id)
		}
		return nil, model.Persistencef("lock reservation row", err)
	}

	if upd.ServiceFeeCents != nil {
		res.ServiceFeeCents = *upd.ServiceFeeCents
	}
	if upd.TaxesCents != nil {
		res.TaxesCents = *upd.TaxesCents
	}
	if upd.DiscountCents != nil {
		res.DiscountCents = *upd.DiscountCents
	}
	if upd.SpecialRequests != nil {
		res.SpecialRequests = *upd.SpecialRequests
	}
	if upd.InternalNotes != nil {
		res.InternalNotes = *upd.InternalNotes
	}
	if upd.TouchesMoney() {
		res.CalculateTotal()
	}
	res.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx,
		`UPDATE reservations SET
			service_fee_cents = $2, taxes_cents = $3, discount_cents = $4,
			total_cents = $5, special_requests = $6, internal_notes = $7, updated_at = $8
		 WHERE id = $1`,
		res.ID, res.ServiceFeeCents, res.TaxesCents, res.DiscountCents,
		res.TotalCents, res.SpecialRequests, res.InternalNotes, res.UpdatedAt,
	)
	if err != nil {
		return nil, mapWriteError("update fees", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, mapWriteError("commit fee update", err)
	}
	return res, nil
}
