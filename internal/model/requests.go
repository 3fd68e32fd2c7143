package model

import "time"

// CreateReservationRequest is the payload for creating a reservation.
// Dates travel as YYYY-MM-DD strings.
type CreateReservationRequest struct {
	AccommodationID int64  `json:"accommodation_id"`
	GuestID         int64  `json:"guest_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	ServiceFeeCents int64  `json:"service_fee_cents"`
	TaxesCents      int64  `json:"taxes_cents"`
	DiscountCents   int64  `json:"discount_cents"`
	SpecialRequests string `json:"special_requests"`
	Source          string `json:"source"`
}

// CancelRequest carries the cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// PaymentUpdate changes payment fields independently of lifecycle status.
// Nil pointers leave the field untouched.
type PaymentUpdate struct {
	Status *PaymentStatus `json:"payment_status,omitempty"`
	Method *string        `json:"payment_method,omitempty"`
}

// FeesUpdate is the allow-listed mutable surface of a reservation outside
// its lifecycle operations. The total is re-derived in the same unit of
// work whenever a fee component changes.
type FeesUpdate struct {
	ServiceFeeCents *int64  `json:"service_fee_cents,omitempty"`
	TaxesCents      *int64  `json:"taxes_cents,omitempty"`
	DiscountCents   *int64  `json:"discount_cents,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	InternalNotes   *string `json:"internal_notes,omitempty"`
}

// TouchesMoney reports whether the update changes any fee component.
func (u FeesUpdate) TouchesMoney() bool {
	return u.ServiceFeeCents != nil || u.TaxesCents != nil || u.DiscountCents != nil
}

// StatusChange is the storage-level instruction for a lifecycle transition.
// The store applies it atomically: the current status must be in
// AllowedFrom, otherwise the change fails with ErrConflict.
type StatusChange struct {
	To          ReservationStatus
	AllowedFrom []ReservationStatus
	Reason      string

	// Which timestamp the transition stamps, if any.
	StampCheckIn   bool
	StampCheckOut  bool
	StampCancelled bool
}

// PropertyUpdate is the allow-listed update surface for a property.
type PropertyUpdate struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	Address            *string `json:"address,omitempty"`
	City               *string `json:"city,omitempty"`
	State              *string `json:"state,omitempty"`
	ZipCode            *string `json:"zip_code,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty"`
	Website            *string `json:"website,omitempty"`
	CheckInTime        *string `json:"check_in_time,omitempty"`
	CheckOutTime       *string `json:"check_out_time,omitempty"`
	CancellationPolicy *string `json:"cancellation_policy,omitempty"`
	HouseRules         *string `json:"house_rules,omitempty"`
}

// AccommodationUpdate is the allow-listed update surface for an
// accommodation. Availability and active flags have dedicated operations.
type AccommodationUpdate struct {
	Name              *string `json:"name,omitempty"`
	Type              *string `json:"type,omitempty"`
	Description       *string `json:"description,omitempty"`
	MaxGuests         *int    `json:"max_guests,omitempty"`
	Bedrooms          *int    `json:"bedrooms,omitempty"`
	Bathrooms         *int    `json:"bathrooms,omitempty"`
	Beds              *int    `json:"beds,omitempty"`
	BasePriceCents    *int64  `json:"base_price_cents,omitempty"`
	WeekendPriceCents *int64  `json:"weekend_price_cents,omitempty"`
	HolidayPriceCents *int64  `json:"holiday_price_cents,omitempty"`
	CleaningFeeCents  *int64  `json:"cleaning_fee_cents,omitempty"`
	MinStayNights     *int    `json:"min_stay_nights,omitempty"`
	MaxStayNights     *int    `json:"max_stay_nights,omitempty"`
	IsAvailable       *bool   `json:"is_available,omitempty"`
}

// GuestUpdate is the allow-listed update surface for a guest. Statistics
// are excluded: only the aggregator writes them.
type GuestUpdate struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DocumentType   *string `json:"document_type,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	City           *string `json:"city,omitempty"`
	Country        *string `json:"country,omitempty"`
}

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	Statuses        []ReservationStatus
	AccommodationID *int64
	PropertyID      *int64
	GuestID         *int64
	// CheckInFrom keeps reservations whose check-in is on or after it.
	CheckInFrom *time.Time
	// CheckOutTo keeps reservations whose check-out is on or before it.
	CheckOutTo *time.Time
	// CreatedFrom keeps reservations created on or after it.
	CreatedFrom *time.Time
}

// AccommodationFilter narrows accommodation listings.
type AccommodationFilter struct {
	PropertyID    *int64
	Type          string
	MinGuests     int
	MinPriceCents *int64
	MaxPriceCents *int64
	AvailableOnly bool
	// Inactive units are excluded unless IncludeInactive is set.
	IncludeInactive bool
}

// SearchRequest is an accommodation search, optionally scoped to a date
// range. With dates, results carry a quote for that specific query.
type SearchRequest struct {
	PropertyID    *int64
	Type          string
	Guests        int
	MinPriceCents *int64
	MaxPriceCents *int64
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
}

// Quote is a price computation for one accommodation and date range.
// It persists nothing.
type Quote struct {
	AccommodationID   int64     `json:"accommodation_id"`
	CheckInDate       time.Time `json:"check_in_date"`
	CheckOutDate      time.Time `json:"check_out_date"`
	Nights            int       `json:"nights"`
	Available         bool      `json:"available"`
	BaseAmountCents   int64     `json:"base_amount_cents"`
	CleaningFeeCents  int64     `json:"cleaning_fee_cents"`
	TotalCents        int64     `json:"total_cents"`
	BasePerNightCents int64     `json:"base_price_per_night_cents"`
}

// SearchResult is an accommodation annotated with the quote for the
// searched date range, when one was supplied.
type SearchResult struct {
	Accommodation Accommodation `json:"accommodation"`
	Nights        int           `json:"nights,omitempty"`
	TotalCents    int64         `json:"total_cents,omitempty"`
}

// CalendarDay is one day of an accommodation's availability calendar.
type CalendarDay struct {
	Date       time.Time `json:"date"`
	Available  bool      `json:"available"`
	PriceCents int64     `json:"price_cents"`
	IsWeekend  bool      `json:"is_weekend"`
}

// AccommodationCalendar is the day-by-day calendar for one unit.
type AccommodationCalendar struct {
	AccommodationID   int64         `json:"accommodation_id"`
	AccommodationName string        `json:"accommodation_name"`
	Days              []CalendarDay `json:"calendar"`
}

// CalendarEvent is a reservation rendered for a booking calendar view.
type CalendarEvent struct {
	ReservationID     int64             `json:"id"`
	Code              string            `json:"code"`
	Title             string            `json:"title"`
	Start             time.Time         `json:"start"`
	End               time.Time         `json:"end"`
	Status            ReservationStatus `json:"status"`
	TotalGuests       int               `json:"guests"`
	TotalCents        int64             `json:"total_cents"`
	AccommodationName string            `json:"accommodation_name"`
	GuestName         string            `json:"guest_name"`
}

// PropertyStats is the reporting window aggregate for one property.
type PropertyStats struct {
	PropertyName        string    `json:"property_name"`
	TotalAccommodations int       `json:"total_accommodations"`
	RecentBookings      int       `json:"recent_bookings"`
	MonthlyRevenueCents int64     `json:"monthly_revenue_cents"`
	OccupancyRate       float64   `json:"occupancy_rate"`
	WindowStart         time.Time `json:"window_start"`
	WindowEnd           time.Time `json:"window_end"`
}

// BookingStats is the overall reservation aggregate for a window.
type BookingStats struct {
	TotalBookings     int                       `json:"total_bookings"`
	StatusCounts      map[ReservationStatus]int `json:"status_counts"`
	RecentBookings    int                       `json:"recent_bookings"`
	TotalRevenueCents int64                     `json:"total_revenue_cents"`
	TodayCheckIns     int                       `json:"today_checkins"`
	TodayCheckOuts    int                       `json:"today_checkouts"`
	WindowStart       time.Time                 `json:"window_start"`
	WindowEnd         time.Time                 `json:"window_end"`
}
