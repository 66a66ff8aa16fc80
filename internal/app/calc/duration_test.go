package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHours(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		unit     string
		want     float64
	}{
		{"hours as is", 5, "hours", 5},
		{"days", 2, "days", 48},
		{"weeks", 1, "weeks", 168},
		{"months", 1, "months", 720},
		{"months scaled", 3, "months", 2160},
		{"years", 1, "years", 8760},
		{"years scaled", 2, "years", 17520},
		{"case insensitive", 1, "HOURS", 1},
		{"mixed case", 1, "Months", 720},
		{"unknown unit is identity", 5, "fortnights", 5},
		{"empty unit is identity", 7, "", 7},
		{"zero duration", 0, "years", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHours(tt.duration, tt.unit))
		})
	}
}

func TestToMonths(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		unit     string
		want     float64
	}{
		{"months as is", 4, "months", 4},
		{"days", 30, "days", 1},
		{"days fraction", 15, "days", 0.5},
		{"weeks", 4.33, "weeks", 1},
		{"hours", 720, "hours", 1},
		{"years", 1, "years", 12},
		{"years scaled", 3, "years", 36},
		{"case insensitive", 720, "Hours", 1},
		{"unknown unit is identity", 9, "quarters", 9},
		{"zero duration", 0, "days", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToMonths(tt.duration, tt.unit), 1e-9)
		})
	}
}

func TestToHoursMatchesLowercase(t *testing.T) {
	// регистр единицы не влияет на результат
	assert.Equal(t, ToHours(1, "hours"), ToHours(1, "HOURS"))
	assert.Equal(t, ToMonths(1, "years"), ToMonths(1, "YEARS"))
}

func TestCheckDuration(t *testing.T) {
	assert.NoError(t, CheckDuration(0))
	assert.NoError(t, CheckDuration(100.5))

	assert.ErrorIs(t, CheckDuration(math.NaN()), ErrInvalidDuration)
	assert.ErrorIs(t, CheckDuration(math.Inf(1)), ErrInvalidDuration)
	assert.ErrorIs(t, CheckDuration(math.Inf(-1)), ErrInvalidDuration)
}
