// Package memory is an in-memory implementation of the service storage
// interfaces. It backs the test suite and the DB-less demo mode. Every
// operation runs under one mutex, so each mutation is a single atomic unit
// and the write-time overlap re-check is serialized exactly like the
// Postgres implementation's transactions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// DB is the in-memory store.
type DB struct {
	mu sync.Mutex

	properties     map[int64]*model.Property
	accommodations map[int64]*model.Accommodation
	guests         map[int64]*model.Guest
	reservations   map[int64]*model.Reservation
	codes          map[string]int64

	nextPropertyID      int64
	nextAccommodationID int64
	nextGuestID         int64
	nextReservationID   int64
}

// New constructs an empty DB.
func New() *DB {
	return &DB{
		properties:     make(map[int64]*model.Property),
		accommodations: make(map[int64]*model.Accommodation),
		guests:         make(map[int64]*model.Guest),
		reservations:   make(map[int64]*model.Reservation),
		codes:          make(map[string]int64),
	}
}

// ── Properties ───────────────────────────────────────────────────────────

func (db *DB) CreateProperty(_ context.Context, p *model.Property) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.nextPropertyID++
	p.ID = db.nextPropertyID
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	db.properties[p.ID] = cloneProperty(p)
	return nil
}

func (db *DB) GetProperty(_ context.Context, id int64) (*model.Property, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.properties[id]
	if !ok {
		return nil, model.NotFoundf("property %d", id)
	}
	return cloneProperty(p), nil
}

func (db *DB) ListProperties(_ context.Context, includeInactive bool) ([]model.Property, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []model.Property
	for _, p := range db.properties {
		if !includeInactive && !p.IsActive {
			continue
		}
		out = append(out, *cloneProperty(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *DB) UpdateProperty(_ context.Context, id int64, upd model.PropertyUpdate) (*model.Property, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.properties[id]
	if !ok {
		return nil, model.NotFoundf("property %d", id)
	}
	applyString(&p.Name, upd.Name)
	applyString(&p.Description, upd.Description)
	applyString(&p.Address, upd.Address)
	applyString(&p.City, upd.City)
	applyString(&p.State, upd.State)
	applyString(&p.ZipCode, upd.ZipCode)
	applyString(&p.Phone, upd.Phone)
	applyString(&p.Email, upd.Email)
	applyString(&p.Website, upd.Website)
	applyString(&p.CheckInTime, upd.CheckInTime)
	applyString(&p.CheckOutTime, upd.CheckOutTime)
	applyString(&p.CancellationPolicy, upd.CancellationPolicy)
	applyString(&p.HouseRules, upd.HouseRules)
	p.UpdatedAt = time.Now().UTC()
	return cloneProperty(p), nil
}

func (db *DB) DeactivateProperty(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.properties[id]
	if !ok {
		return model.NotFoundf("property %d", id)
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ── Accommodations ───────────────────────────────────────────────────────

func (db *DB) CreateAccommodation(_ context.Context, a *model.Accommodation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.properties[a.PropertyID]; !ok {
		return model.NotFoundf("property %d", a.PropertyID)
	}
	db.nextAccommodationID++
	a.ID = db.nextAccommodationID
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	db.accommodations[a.ID] = cloneAccommodation(a)
	return nil
}

func (db *DB) GetAccommodation(_ context.Context, id int64) (*model.Accommodation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	a, ok := db.accommodations[id]
	if !ok {
		return nil, model.NotFoundf("accommodation %d", id)
	}
	return cloneAccommodation(a), nil
}

func (db *DB) ListAccommodations(_ context.Context, f model.AccommodationFilter) ([]model.Accommodation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []model.Accommodation
	for _, a := range db.accommodations {
		if !f.IncludeInactive && !a.IsActive {
			continue
		}
		if f.AvailableOnly && !a.IsAvailable {
			continue
		}
		if f.PropertyID != nil && a.PropertyID != *f.PropertyID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.MinGuests > 0 && a.MaxGuests < f.MinGuests {
			continue
		}
		if f.MinPriceCents != nil && a.BasePriceCents < *f.MinPriceCents {
			continue
		}
		if f.MaxPriceCents != nil && a.BasePriceCents > *f.MaxPriceCents {
			continue
		}
		out = append(out, *cloneAccommodation(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *DB) UpdateAccommodation(_ context.Context, id int64, upd model.AccommodationUpdate) (*model.Accommodation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	a, ok := db.accommodations[id]
	if !ok {
		return nil, model.NotFoundf("accommodation %d", id)
	}
	applyString(&a.Name, upd.Name)
	applyString(&a.Type, upd.Type)
	applyString(&a.Description, upd.Description)
	applyInt(&a.MaxGuests, upd.MaxGuests)
	applyInt(&a.Bedrooms, upd.Bedrooms)
	applyInt(&a.Bathrooms, upd.Bathrooms)
	applyInt(&a.Beds, upd.Beds)
	applyInt64(&a.BasePriceCents, upd.BasePriceCents)
	if upd.WeekendPriceCents != nil {
		v := *upd.WeekendPriceCents
		a.WeekendPriceCents = &v
	}
	if upd.HolidayPriceCents != nil {
		v := *upd.HolidayPriceCents
		a.HolidayPriceCents = &v
	}
	applyInt64(&a.CleaningFeeCents, upd.CleaningFeeCents)
	applyInt(&a.MinStayNights, upd.MinStayNights)
	if upd.MaxStayNights != nil {
		v := *upd.MaxStayNights
		a.MaxStayNights = &v
	}
	if upd.IsAvailable != nil {
		a.IsAvailable = *upd.IsAvailable
	}
	a.UpdatedAt = time.Now().UTC()
	return cloneAccommodation(a), nil
}

func (db *DB) DeactivateAccommodation(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	a, ok := db.accommodations[id]
	if !ok {
		return model.NotFoundf("accommodation %d", id)
	}
	a.IsActive = false
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// ── Guests ───────────────────────────────────────────────────────────────

func (db *DB) CreateGuest(_ context.Context, g *model.Guest) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.guests {
		if existing.Email == g.Email {
			return model.Conflictf("guest email %s already registered", g.Email)
		}
	}
	db.nextGuestID++
	g.ID = db.nextGuestID
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	db.guests[g.ID] = cloneGuest(g)
	return nil
}

func (db *DB) GetGuest(_ context.Context, id int64) (*model.Guest, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.guests[id]
	if !ok {
		return nil, model.NotFoundf("guest %d", id)
	}
	return cloneGuest(g), nil
}

func (db *DB) ListGuests(_ context.Context, includeInactive bool) ([]model.Guest, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []model.Guest
	for _, g := range db.guests {
		if !includeInactive && !g.IsActive {
			continue
		}
		out = append(out, *cloneGuest(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *DB) UpdateGuest(_ context.Context, id int64, upd model.GuestUpdate) (*model.Guest, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.guests[id]
	if !ok {
		return nil, model.NotFoundf("guest %d", id)
	}
	applyString(&g.FirstName, upd.FirstName)
	applyString(&g.LastName, upd.LastName)
	applyString(&g.Email, upd.Email)
	applyString(&g.Phone, upd.Phone)
	applyString(&g.DocumentType, upd.DocumentType)
	applyString(&g.DocumentNumber, upd.DocumentNumber)
	applyString(&g.City, upd.City)
	applyString(&g.Country, upd.Country)
	g.UpdatedAt = time.Now().UTC()
	return cloneGuest(g), nil
}

func (db *DB) DeactivateGuest(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.guests[id]
	if !ok {
		return model.NotFoundf("guest %d", id)
	}
	g.IsActive = false
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (db *DB) SaveGuestStats(_ context.Context, stats model.GuestStats) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.guests[stats.GuestID]
	if !ok {
		return model.NotFoundf("guest %d", stats.GuestID)
	}
	g.TotalBookings = stats.TotalBookings
	g.TotalSpentCents = stats.TotalSpentCents
	if stats.LastStayDate != nil {
		d := *stats.LastStayDate
		g.LastStayDate = &d
	} else {
		g.LastStayDate = nil
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}
