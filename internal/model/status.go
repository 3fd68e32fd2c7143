package model

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

// validNext encodes the legal lifecycle transitions. checked_out and
// cancelled are terminal.
var validNext = map[ReservationStatus]map[ReservationStatus]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusCheckedIn: true, StatusCancelled: true},
	StatusCheckedIn:  {StatusCheckedOut: true},
	StatusCheckedOut: {},
	StatusCancelled:  {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ReservationStatus) bool {
	return validNext[from][to]
}

// AllStatuses lists every reservation status, for validation of filters and
// policy configuration.
func AllStatuses() []ReservationStatus {
	return []ReservationStatus{
		StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled,
	}
}

// DefaultBlockingStatuses are the statuses that make a reservation block
// availability. Pending holds do not block unless policy says otherwise.
func DefaultBlockingStatuses() []ReservationStatus {
	return []ReservationStatus{StatusConfirmed, StatusCheckedIn}
}

// StatusIn reports whether s is a member of set.
func StatusIn(s ReservationStatus, set []ReservationStatus) bool {
	for _, m := range set {
		if s == m {
			return true
		}
	}
	return false
}

// PaymentStatus tracks payment independently of the reservation lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}
