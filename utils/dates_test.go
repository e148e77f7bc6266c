package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-12-28")
	require.NoError(t, err)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 28, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.Local, got.Location())

	_, err = ParseDate("28-12-2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestBeginningOfDay(t *testing.T) {
	late := time.Date(2025, 6, 15, 23, 45, 12, 999, time.Local)
	got := BeginningOfDay(late)

	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 12, 20, 18, 0, 0, 0, time.Local)
	end := time.Date(2025, 12, 28, 6, 0, 0, 0, time.Local)

	assert.Equal(t, 8, DaysBetween(start, end))
	assert.Equal(t, -8, DaysBetween(end, start))
	assert.Equal(t, 0, DaysBetween(start, start))
}
