package scheduling

import (
	"time"

	"mandorpro-backend/models"

	"github.com/google/uuid"
)

// Appointment is the unit the calendar, agenda and editor all work with. It is
// derived from either an order or a manual schedule row; an order-backed
// appointment shares the order's id.
type Appointment struct {
	ID           uuid.UUID  `json:"id"`
	OrderID      *uuid.UUID `json:"orderId,omitempty"`
	CustomerName string     `json:"customerName"`
	ServiceName  string     `json:"serviceName"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Time         string     `json:"time"`
	Address      string     `json:"address"`
	MandorID     *uuid.UUID `json:"mandorId,omitempty"`
	MandorName   string     `json:"mandorName"`
	Status       Status     `json:"status"`
}

// DateKey renders t as a calendar date string. The time is normalized to local
// midnight first so a late-evening timestamp never drifts to the next day.
func DateKey(t time.Time) string {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).Format("2006-01-02")
}

// FromOrder builds the appointment view of an order.
func FromOrder(o models.Order) Appointment {
	orderID := o.ID
	a := Appointment{
		ID:           o.ID,
		OrderID:      &orderID,
		CustomerName: o.CustomerName,
		ServiceName:  o.ServiceName,
		Date:         DateKey(o.Date),
		Time:         o.Time,
		Address:      o.Address,
		MandorID:     o.MandorID,
		Status:       FromOrderStatus(o.Status),
	}
	if o.Mandor != nil {
		a.MandorName = o.Mandor.Name
	}
	return a
}

// FromSchedule builds the appointment view of a manual schedule row.
func FromSchedule(s models.Schedule) Appointment {
	status := Status(s.Status)
	if !status.Valid() {
		status = StatusAwaitingValidation
	}
	a := Appointment{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		ServiceName:  s.ServiceName,
		Date:         DateKey(s.Date),
		Time:         s.Time,
		Address:      s.Address,
		MandorID:     s.MandorID,
		Status:       status,
	}
	if s.Mandor != nil {
		a.MandorName = s.Mandor.Name
	}
	return a
}

// AppointmentsOn returns the appointments whose date equals the given calendar
// date string, in the order they were given. An empty result is a normal
// outcome, not an error.
func AppointmentsOn(date string, appts []Appointment) []Appointment {
	out := make([]Appointment, 0)
	for _, a := range appts {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}
