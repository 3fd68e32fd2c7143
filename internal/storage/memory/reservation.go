package memory

import (
	"context"
	"sort"
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// CreateReservation writes the reservation while holding the store lock,
// re-verifying the overlap invariant against the blocking set inside the
// same critical section. This is the authoritative check: a creation that
// lost the race gets ErrConflict, never a corrupted state.
func (db *DB) CreateReservation(_ context.Context, r *model.Reservation, blocking []model.ReservationStatus) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.accommodations[r.AccommodationID]; !ok {
		return model.NotFoundf("accommodation %d", r.AccommodationID)
	}
	if _, ok := db.guests[r.GuestID]; !ok {
		return model.NotFoundf("guest %d", r.GuestID)
	}
	if _, ok := db.codes[r.Code]; ok {
		return model.Conflictf("reservation code %s already exists", r.Code)
	}

	if err := db.checkOverlapLocked(r.AccommodationID, r.ID, r.CheckInDate, r.CheckOutDate, blocking); err != nil {
		return err
	}

	db.nextReservationID++
	r.ID = db.nextReservationID
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	db.reservations[r.ID] = cloneReservation(r)
	db.codes[r.Code] = r.ID
	return nil
}

// checkOverlapLocked scans the accommodation's reservations for a blocking
// overlap. Callers must hold db.mu.
func (db *DB) checkOverlapLocked(accommodationID, excludeID int64, in, out time.Time, blocking []model.ReservationStatus) error {
	for _, other := range db.reservations {
		if other.AccommodationID != accommodationID || other.ID == excludeID {
			continue
		}
		if !model.StatusIn(other.Status, blocking) {
			continue
		}
		if other.Overlaps(in, out) {
			return model.Conflictf("accommodation %d already booked from %s to %s",
				accommodationID,
				other.CheckInDate.Format(model.DateLayout),
				other.CheckOutDate.Format(model.DateLayout))
		}
	}
	return nil
}

func (db *DB) GetReservation(_ context.Context, id int64) (*model.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.reservations[id]
	if !ok {
		return nil, model.NotFoundf("reservation %d", id)
	}
	return cloneReservation(r), nil
}

func (db *DB) GetReservationByCode(_ context.Context, code string) (*model.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, ok := db.codes[code]
	if !ok {
		return nil, model.NotFoundf("reservation %s", code)
	}
	return cloneReservation(db.reservations[id]), nil
}

func (db *DB) ListReservations(_ context.Context, f model.ReservationFilter) ([]model.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []model.Reservation
	for _, r := range db.reservations {
		if len(f.Statuses) > 0 && !model.StatusIn(r.Status, f.Statuses) {
			continue
		}
		if f.AccommodationID != nil && r.AccommodationID != *f.AccommodationID {
			continue
		}
		if f.PropertyID != nil && r.PropertyID != *f.PropertyID {
			continue
		}
		if f.GuestID != nil && r.GuestID != *f.GuestID {
			continue
		}
		if f.CheckInFrom != nil && r.CheckInDate.Before(*f.CheckInFrom) {
			continue
		}
		if f.CheckOutTo != nil && r.CheckOutDate.After(*f.CheckOutTo) {
			continue
		}
		if f.CreatedFrom != nil && r.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		out = append(out, *cloneReservation(r))
	}
	// Most recent first, matching the SQL ORDER BY created_at DESC.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ChangeStatus applies a lifecycle transition in one critical section. The
// compare-and-set on the current status serializes concurrent transitions;
// when the target status blocks availability the overlap invariant is
// re-verified before the change lands.
func (db *DB) ChangeStatus(_ context.Context, id int64, change model.StatusChange, blocking []model.ReservationStatus) (*model.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.reservations[id]
	if !ok {
		return nil, model.NotFoundf("reservation %d", id)
	}
	if !model.StatusIn(r.Status, change.AllowedFrom) {
		return nil, model.Conflictf("illegal transition from %s to %s", r.Status, change.To)
	}
	if model.StatusIn(change.To, blocking) {
		if err := db.checkOverlapLocked(r.AccommodationID, r.ID, r.CheckInDate, r.CheckOutDate, blocking); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	r.Status = change.To
	if change.Reason != "" {
		r.CancellationReason = change.Reason
	}
	if change.StampCheckIn {
		t := now
		r.ActualCheckIn = &t
	}
	if change.StampCheckOut {
		t := now
		r.ActualCheckOut = &t
	}
	if change.StampCancelled {
		t := now
		r.CancelledAt = &t
	}
	r.UpdatedAt = now
	return cloneReservation(r), nil
}

func (db *DB) UpdatePayment(_ context.Context, id int64, upd model.PaymentUpdate) (*model.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.reservations[id]
	if !ok {
		return nil, model.NotFoundf("reservation %d", id)
	}
	now := time.Now().UTC()
	if upd.Status != nil {
		r.PaymentStatus = *upd.Status
		if *upd.Status == model.PaymentPaid {
			t := now
			r.PaymentDate = &t
		}
	}
	if upd.Method != nil {
		r.PaymentMethod = *upd.Method
	}
	r.UpdatedAt = now
	return cloneReservation(r), nil
}

// UpdateFees mutates the allow-listed fee fields and re-derives the total
// in the same critical section, so the breakdown invariant always holds.
func (db *DB) UpdateFees(_ context.Context, id int64, upd model.FeesUpdate) (*model.Reservation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.reservations[id]
	if !ok {
		return nil, model.NotFoundf("reservation %d", id)
	}
	applyInt64(&r.ServiceFeeCents, upd.ServiceFeeCents)
	applyInt64(&r.TaxesCents, upd.TaxesCents)
	applyInt64(&r.DiscountCents, upd.DiscountCents)
	applyString(&r.SpecialRequests, upd.SpecialRequests)
	applyString(&r.InternalNotes, upd.InternalNotes)
	if upd.TouchesMoney() {
		r.CalculateTotal()
	}
	r.UpdatedAt = time.Now().UTC()
	return cloneReservation(r), nil
}
