package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// InventoryService manages the bookable catalog: properties, accommodations,
// and guest records. Deletion is always soft, via the active flag.
type InventoryService struct {
	store Store
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(store Store) *InventoryService {
	return &InventoryService{store: store}
}

// CreateProperty validates and persists a new property.
func (s *InventoryService) CreateProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, model.Validationf("property name is required")
	}
	if p.Address == "" || p.City == "" || p.State == "" {
		return nil, model.Validationf("address, city, and state are required")
	}
	if p.CheckInTime == "" {
		p.CheckInTime = "14:00"
	}
	if p.CheckOutTime == "" {
		p.CheckOutTime = "12:00"
	}
	p.IsActive = true

	if err := s.store.CreateProperty(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *InventoryService) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *InventoryService) ListProperties(ctx context.Context, includeInactive bool) ([]model.Property, error) {
	return s.store.ListProperties(ctx, includeInactive)
}

func (s *InventoryService) UpdateProperty(ctx context.Context, id int64, upd model.PropertyUpdate) (*model.Property, error) {
	return s.store.UpdateProperty(ctx, id, upd)
}

// DeactivateProperty soft-deletes a property.
func (s *InventoryService) DeactivateProperty(ctx context.Context, id int64) error {
	return s.store.DeactivateProperty(ctx, id)
}

// CreateAccommodation validates and persists a new accommodation under an
// existing property.
func (s *InventoryService) CreateAccommodation(ctx context.Context, a *model.Accommodation) (*model.Accommodation, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return nil, model.Validationf("accommodation name is required")
	}
	if a.Type == "" {
		return nil, model.Validationf("accommodation type is required")
	}
	if a.MaxGuests < 1 {
		return nil, model.Validationf("max_guests must be at least 1")
	}
	if a.BasePriceCents <= 0 {
		return nil, model.Validationf("base_price_cents must be positive")
	}
	if a.CleaningFeeCents < 0 {
		return nil, model.Validationf("cleaning_fee_cents cannot be negative")
	}
	if a.MinStayNights < 1 {
		a.MinStayNights = 1
	}
	if a.MaxStayNights != nil && *a.MaxStayNights < a.MinStayNights {
		return nil, model.Validationf("max_stay_nights cannot be below min_stay_nights")
	}
	if a.Bedrooms < 1 {
		a.Bedrooms = 1
	}
	if a.Bathrooms < 1 {
		a.Bathrooms = 1
	}
	if a.Beds < 1 {
		a.Beds = 1
	}

	if _, err := s.store.GetProperty(ctx, a.PropertyID); err != nil {
		return nil, err
	}

	a.IsAvailable = true
	a.IsActive = true
	if err := s.store.CreateAccommodation(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *InventoryService) GetAccommodation(ctx context.Context, id int64) (*model.Accommodation, error) {
	return s.store.GetAccommodation(ctx, id)
}

func (s *InventoryService) ListAccommodations(ctx context.Context, f model.AccommodationFilter) ([]model.Accommodation, error) {
	return s.store.ListAccommodations(ctx, f)
}

func (s *InventoryService) UpdateAccommodation(ctx context.Context, id int64, upd model.AccommodationUpdate) (*model.Accommodation, error) {
	if upd.MaxGuests != nil && *upd.MaxGuests < 1 {
		return nil, model.Validationf("max_guests must be at least 1")
	}
	if upd.BasePriceCents != nil && *upd.BasePriceCents <= 0 {
		return nil, model.Validationf("base_price_cents must be positive")
	}
	return s.store.UpdateAccommodation(ctx, id, upd)
}

// DeactivateAccommodation soft-deletes an accommodation. Existing
// reservations are untouched; the unit just stops matching availability.
func (s *InventoryService) DeactivateAccommodation(ctx context.Context, id int64) error {
	return s.store.DeactivateAccommodation(ctx, id)
}

// CreateGuest validates and persists a new guest record.
func (s *InventoryService) CreateGuest(ctx context.Context, g *model.Guest) (*model.Guest, error) {
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	g.Email = strings.TrimSpace(strings.ToLower(g.Email))
	if g.FirstName == "" || g.LastName == "" {
		return nil, model.Validationf("first_name and last_name are required")
	}
	if _, err := mail.ParseAddress(g.Email); err != nil {
		return nil, model.Validationf("invalid email address")
	}

	g.IsActive = true
	if err := s.store.CreateGuest(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *InventoryService) GetGuest(ctx context.Context, id int64) (*model.Guest, error) {
	return s.store.GetGuest(ctx, id)
}

func (s *InventoryService) ListGuests(ctx context.Context, includeInactive bool) ([]model.Guest, error) {
	return s.store.ListGuests(ctx, includeInactive)
}

func (s *InventoryService) UpdateGuest(ctx context.Context, id int64, upd model.GuestUpdate) (*model.Guest, error) {
	if upd.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*upd.Email))
		if _, err := mail.ParseAddress(e); err != nil {
			return nil, model.Validationf("invalid email address")
		}
		upd.Email = &e
	}
	return s.store.UpdateGuest(ctx, id, upd)
}

// DeactivateGuest soft-deletes a guest record.
func (s *InventoryService) DeactivateGuest(ctx context.Context, id int64) error {
	return s.store.DeactivateGuest(ctx, id)
}
