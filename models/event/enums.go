package event

// EventStatus is the payment-progress state of a booking.
type EventStatus string

const (
	StatusPending       EventStatus = "pending"
	StatusPartiallyPaid EventStatus = "partially_paid"
	StatusPaidInFull    EventStatus = "paid_in_full"
	StatusCancelled     EventStatus = "cancelled"
)

func (es EventStatus) String() string {
	return string(es)
}

func (es EventStatus) IsValid() bool {
	switch es {
	case StatusPending, StatusPartiallyPaid, StatusPaidInFull, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsSettled returns true if no further payments are expected
func (es EventStatus) IsSettled() bool {
	return es == StatusPaidInFull || es == StatusCancelled
}

// CanAcceptPayments returns true if ledger entries may still be added
func (es EventStatus) CanAcceptPayments() bool {
	return es != StatusCancelled
}

// GetAllEventStatuses returns all valid event statuses
func GetAllEventStatuses() []EventStatus {
	return []EventStatus{
		StatusPending,
		StatusPartiallyPaid,
		StatusPaidInFull,
		StatusCancelled,
	}
}

// DeriveStatus computes the payment-progress status from the ledger total and
// the outstanding amount. Cancelled is never derived, only set explicitly.
func DeriveStatus(paid, pending float64) EventStatus {
	switch {
	case paid <= 0:
		return StatusPending
	case pending <= 0:
		return StatusPaidInFull
	default:
		return StatusPartiallyPaid
	}
}
