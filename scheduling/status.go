// Package scheduling holds the appointment view model behind the operations
// calendar: the status vocabulary, the month grid and the daily agenda.
package scheduling

// Status is the appointment status used everywhere in the dashboard.
type Status string

const (
	StatusAwaitingValidation Status = "awaiting_validation"
	StatusInProgress         Status = "in_progress"
	StatusDone               Status = "done"
	StatusCancelled          Status = "cancelled"
)

// Status values stored on the orders table.
const (
	OrderNeedValidation = "NEED_VALIDATION"
	OrderOnProgress     = "ON_PROGRESS"
	OrderDone           = "DONE"
	OrderCancel         = "CANCEL"
)

// The mapping lives here and only here. Both directions must stay in sync, so
// no controller carries its own copy.
var toOrderStatus = map[Status]string{
	StatusAwaitingValidation: OrderNeedValidation,
	StatusInProgress:         OrderOnProgress,
	StatusDone:               OrderDone,
	StatusCancelled:          OrderCancel,
}

var fromOrderStatus = map[string]Status{
	OrderNeedValidation: StatusAwaitingValidation,
	OrderOnProgress:     StatusInProgress,
	OrderDone:           StatusDone,
	OrderCancel:         StatusCancelled,
}

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	_, ok := toOrderStatus[s]
	return ok
}

// ToOrderStatus translates an appointment status to the order enum.
func ToOrderStatus(s Status) (string, bool) {
	v, ok := toOrderStatus[s]
	return v, ok
}

// FromOrderStatus translates an order status to the appointment vocabulary.
// Unrecognized values fall back to awaiting validation, the least privileged
// state, so a bad row never breaks the calendar.
func FromOrderStatus(v string) Status {
	if s, ok := fromOrderStatus[v]; ok {
		return s
	}
	return StatusAwaitingValidation
}
