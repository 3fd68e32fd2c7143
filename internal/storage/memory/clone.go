package memory

import (
	"time"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// The store hands out copies so callers can never mutate shared state
// outside the lock.

func cloneProperty(p *model.Property) *model.Property {
	c := *p
	return &c
}

func cloneAccommodation(a *model.Accommodation) *model.Accommodation {
	c := *a
	c.WeekendPriceCents = cloneInt64(a.WeekendPriceCents)
	c.HolidayPriceCents = cloneInt64(a.HolidayPriceCents)
	c.MaxStayNights = cloneInt(a.MaxStayNights)
	return &c
}

func cloneGuest(g *model.Guest) *model.Guest {
	c := *g
	c.LastStayDate = cloneTime(g.LastStayDate)
	return &c
}

func cloneReservation(r *model.Reservation) *model.Reservation {
	c := *r
	c.PaymentDate = cloneTime(r.PaymentDate)
	c.ActualCheckIn = cloneTime(r.ActualCheckIn)
	c.ActualCheckOut = cloneTime(r.ActualCheckOut)
	c.CancelledAt = cloneTime(r.CancelledAt)
	c.GuestRating = cloneInt(r.GuestRating)
	c.HostRating = cloneInt(r.HostRating)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
