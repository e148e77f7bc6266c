package scheduling

import "time"

// Cell is one slot in the month grid. Leading blanks (Day == 0) align day 1
// with its weekday column and never carry an indicator.
type Cell struct {
	Day       int    `json:"day"`
	Date      string `json:"date,omitempty"`
	Indicator Status `json:"indicator,omitempty"`
}

// Urgent states must never be hidden by settled ones sharing the day, so the
// indicator is chosen by priority rather than by count.
var indicatorPriority = []Status{
	StatusInProgress,
	StatusAwaitingValidation,
	StatusDone,
	StatusCancelled,
}

// DayIndicator derives the aggregate indicator for one day's appointments.
// It returns "" when the day has none.
func DayIndicator(appts []Appointment) Status {
	present := make(map[Status]bool, len(appts))
	for _, a := range appts {
		present[a.Status] = true
	}
	for _, s := range indicatorPriority {
		if present[s] {
			return s
		}
	}
	return ""
}

// MonthGrid builds the calendar cells for one month: weekday-offset blanks
// (Sunday is column 0) followed by one cell per day, each day's indicator
// derived from the appointments dated on it.
func MonthGrid(year int, month time.Month, appts []Appointment) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string][]Appointment)
	for _, a := range appts {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	cells := make([]Cell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := DateKey(first.AddDate(0, 0, day-1))
		cells = append(cells, Cell{
			Day:       day,
			Date:      date,
			Indicator: DayIndicator(byDate[date]),
		})
	}
	return cells
}
