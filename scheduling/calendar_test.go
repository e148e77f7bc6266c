package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridShape(t *testing.T) {
	testCases := []struct {
		name        string
		year        int
		month       time.Month
		wantOffset  int
		wantDays    int
	}{
		{"December 2025 starts on a Monday", 2025, time.December, 1, 31},
		{"February 2024 is a leap month", 2024, time.February, 4, 29},
		{"February 2025", 2025, time.February, 6, 28},
		{"June 2025 starts on a Sunday", 2025, time.June, 0, 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells := MonthGrid(tc.year, tc.month, nil)
			require.Len(t, cells, tc.wantOffset+tc.wantDays)

			for i := 0; i < tc.wantOffset; i++ {
				assert.Equal(t, 0, cells[i].Day)
				assert.Empty(t, cells[i].Date)
				assert.Empty(t, cells[i].Indicator)
			}
			for day := 1; day <= tc.wantDays; day++ {
				assert.Equal(t, day, cells[tc.wantOffset+day-1].Day)
			}
		})
	}
}

func TestDayIndicatorPriority(t *testing.T) {
	day := []Appointment{
		{Status: StatusDone},
		{Status: StatusCancelled},
		{Status: StatusAwaitingValidation},
		{Status: StatusDone},
	}
	assert.Equal(t, StatusAwaitingValidation, DayIndicator(day))

	// A single in-progress appointment outranks any number of others.
	day = append(day, Appointment{Status: StatusInProgress})
	assert.Equal(t, StatusInProgress, DayIndicator(day))

	assert.Equal(t, StatusDone, DayIndicator([]Appointment{
		{Status: StatusCancelled},
		{Status: StatusDone},
	}))
	assert.Equal(t, Status(""), DayIndicator(nil))
}

func TestMonthGridIndicators(t *testing.T) {
	appts := []Appointment{
		{Date: "2025-12-28", Status: StatusAwaitingValidation},
		{Date: "2025-12-28", Status: StatusDone},
		{Date: "2025-12-03", Status: StatusInProgress},
	}

	cells := MonthGrid(2025, time.December, appts)
	require.Len(t, cells, 32) // offset 1 + 31 days

	byDay := make(map[int]Cell)
	for _, c := range cells {
		if c.Day != 0 {
			byDay[c.Day] = c
		}
	}

	assert.Equal(t, StatusAwaitingValidation, byDay[28].Indicator)
	assert.Equal(t, StatusInProgress, byDay[3].Indicator)
	assert.Empty(t, byDay[15].Indicator)
	assert.Empty(t, cells[0].Indicator)
}

func TestDateKeyNormalizesTimeOfDay(t *testing.T) {
	late := time.Date(2025, time.December, 28, 23, 30, 0, 0, time.Local)
	assert.Equal(t, "2025-12-28", DateKey(late))

	early := time.Date(2025, time.December, 28, 0, 0, 0, 0, time.Local)
	assert.Equal(t, DateKey(early), DateKey(late))
}

func TestAppointmentsOn(t *testing.T) {
	appts := []Appointment{
		{CustomerName: "Ibu Ratna", Date: "2025-12-28"},
		{CustomerName: "Pak Darto", Date: "2025-12-29"},
		{CustomerName: "Ibu Sari", Date: "2025-12-28"},
	}

	day := AppointmentsOn("2025-12-28", appts)
	require.Len(t, day, 2)
	assert.Equal(t, "Ibu Ratna", day[0].CustomerName)
	assert.Equal(t, "Ibu Sari", day[1].CustomerName)

	empty := AppointmentsOn("2025-12-30", appts)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}
