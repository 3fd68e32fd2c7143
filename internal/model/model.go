// Package model defines the core domain types for the lodging reservation
// backend: properties, accommodations, guests, and reservations.
package model

import "time"

// Property is a lodging property (guesthouse, inn) that owns accommodations.
// Rarely mutated; soft-deleted by clearing IsActive.
type Property struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	ZipCode            string    `json:"zip_code,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Email              string    `json:"email,omitempty"`
	Website            string    `json:"website,omitempty"`
	CheckInTime        string    `json:"check_in_time"`
	CheckOutTime       string    `json:"check_out_time"`
	CancellationPolicy string    `json:"cancellation_policy,omitempty"`
	HouseRules         string    `json:"house_rules,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Accommodation is a bookable unit (room, suite, chalet) within a property.
// Monetary fields are fixed-point amounts in cents.
type Accommodation struct {
	ID                int64     `json:"id"`
	PropertyID        int64     `json:"property_id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Description       string    `json:"description,omitempty"`
	MaxGuests         int       `json:"max_guests"`
	Bedrooms          int       `json:"bedrooms"`
	Bathrooms         int       `json:"bathrooms"`
	Beds              int       `json:"beds"`
	BasePriceCents    int64     `json:"base_price_cents"`
	WeekendPriceCents *int64    `json:"weekend_price_cents,omitempty"`
	HolidayPriceCents *int64    `json:"holiday_price_cents,omitempty"`
	CleaningFeeCents  int64     `json:"cleaning_fee_cents"`
	MinStayNights     int       `json:"min_stay_nights"`
	MaxStayNights     *int      `json:"max_stay_nights,omitempty"`
	IsAvailable       bool      `json:"is_available"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PriceForDate returns the nightly rate for a specific date: the weekend
// rate on Saturdays and Sundays when one is set, the base rate otherwise.
func (a *Accommodation) PriceForDate(d time.Time) int64 {
	if IsWeekend(d) && a.WeekendPriceCents != nil {
		return *a.WeekendPriceCents
	}
	return a.BasePriceCents
}

// Guest holds a guest's identity plus rolling lifetime statistics. The
// statistics are recomputed by the aggregator, never incremented in place.
type Guest struct {
	ID              int64      `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	DocumentType    string     `json:"document_type,omitempty"`
	DocumentNumber  string     `json:"document_number,omitempty"`
	City            string     `json:"city,omitempty"`
	Country         string     `json:"country,omitempty"`
	IsActive        bool       `json:"is_active"`
	TotalBookings   int        `json:"total_bookings"`
	TotalSpentCents int64      `json:"total_spent_cents"`
	LastStayDate    *time.Time `json:"last_stay_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// FullName joins first and last name for display.
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Reservation is a stay booked on one accommodation by one guest over a
// half-open date range [CheckInDate, CheckOutDate).
type Reservation struct {
	ID                 int64             `json:"id"`
	Code               string            `json:"code"`
	PropertyID         int64             `json:"property_id"`
	AccommodationID    int64             `json:"accommodation_id"`
	GuestID            int64             `json:"guest_id"`
	CheckInDate        time.Time         `json:"check_in_date"`
	CheckOutDate       time.Time         `json:"check_out_date"`
	Nights             int               `json:"nights"`
	Adults             int               `json:"adults"`
	Children           int               `json:"children"`
	TotalGuests        int               `json:"total_guests"`
	BaseAmountCents    int64             `json:"base_amount_cents"`
	CleaningFeeCents   int64             `json:"cleaning_fee_cents"`
	ServiceFeeCents    int64             `json:"service_fee_cents"`
	TaxesCents         int64             `json:"taxes_cents"`
	DiscountCents      int64             `json:"discount_cents"`
	TotalCents         int64             `json:"total_cents"`
	Status             ReservationStatus `json:"status"`
	PaymentStatus      PaymentStatus     `json:"payment_status"`
	PaymentMethod      string            `json:"payment_method,omitempty"`
	PaymentDate        *time.Time        `json:"payment_date,omitempty"`
	ActualCheckIn      *time.Time        `json:"actual_check_in,omitempty"`
	ActualCheckOut     *time.Time        `json:"actual_check_out,omitempty"`
	SpecialRequests    string            `json:"special_requests,omitempty"`
	InternalNotes      string            `json:"internal_notes,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	Source             string            `json:"source"`
	GuestRating        *int              `json:"guest_rating,omitempty"`
	GuestReview        string            `json:"guest_review,omitempty"`
	HostRating         *int              `json:"host_rating,omitempty"`
	HostReview         string            `json:"host_review,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// Overlaps reports whether the reservation's date range shares at least one
// night with the half-open range [from, to).
func (r *Reservation) Overlaps(from, to time.Time) bool {
	return r.CheckInDate.Before(to) && from.Before(r.CheckOutDate)
}

// IsFuture reports whether the stay has not started yet relative to today.
func (r *Reservation) IsFuture(today time.Time) bool {
	return r.CheckInDate.After(today)
}

// CanCancel reports whether the reservation may still be cancelled: status
// pending or confirmed, and check-in strictly in the future.
func (r *Reservation) CanCancel(today time.Time) bool {
	return (r.Status == StatusPending || r.Status == StatusConfirmed) && r.IsFuture(today)
}

// CalculateTotal re-derives TotalCents from the fee components. Must be
// applied in the same unit of work as any fee mutation.
func (r *Reservation) CalculateTotal() int64 {
	r.TotalCents = r.BaseAmountCents + r.CleaningFeeCents + r.ServiceFeeCents + r.TaxesCents - r.DiscountCents
	return r.TotalCents
}

// GuestStats is the aggregate recomputed from a guest's qualifying
// reservations.
type GuestStats struct {
	GuestID         int64      `json:"guest_id"`
	TotalBookings   int        `json:"total_bookings"`
	TotalSpentCents int64      `json:"total_spent_cents"`
	LastStayDate    *time.Time `json:"last_stay_date,omitempty"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
