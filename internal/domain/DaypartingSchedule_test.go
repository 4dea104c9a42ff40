package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected int
	}{
		{
			name:     "segunda-feira vira 0",
			date:     "2026-08-24T12:00:00Z",
			expected: DayMonday,
		},
		{
			name:     "sexta-feira vira 4",
			date:     "2026-08-28T12:00:00Z",
			expected: DayFriday,
		},
		{
			name:     "sábado vira 5",
			date:     "2026-08-29T12:00:00Z",
			expected: DaySaturday,
		},
		{
			name:     "domingo vira 6",
			date:     "2026-08-30T12:00:00Z",
			expected: DaySunday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.date)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, ISOWeekday(now))
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expected    TimeOfDay
		expectError bool
	}{
		{
			name:     "formato HH:MM:SS",
			value:    "09:30:15",
			expected: TimeOfDay(9*3600 + 30*60 + 15),
		},
		{
			name:     "formato HH:MM assume segundos zerados",
			value:    "14:45",
			expected: TimeOfDay(14*3600 + 45*60),
		},
		{
			name:     "meia-noite",
			value:    "00:00:00",
			expected: TimeOfDay(0),
		},
		{
			name:        "hora fora da faixa é rejeitada",
			value:       "25:00:00",
			expectError: true,
		},
		{
			name:        "texto arbitrário é rejeitado",
			value:       "manhã",
			expectError: true,
		},
		{
			name:        "vazio é rejeitado",
			value:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTimeOfDay(tt.value)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05:00", TimeOfDay(9*3600+5*60).String())
	assert.Equal(t, "23:59:59", TimeOfDay(23*3600+59*60+59).String())
	assert.Equal(t, "00:00:00", TimeOfDay(0).String())
}

func TestDayOfWeekName(t *testing.T) {
	assert.Equal(t, "Monday", DayOfWeekName(DayMonday))
	assert.Equal(t, "Sunday", DayOfWeekName(DaySunday))
	assert.Equal(t, "", DayOfWeekName(7))
	assert.Equal(t, "", DayOfWeekName(-1))
}

func TestScheduleIsActiveAt(t *testing.T) {
	schedule := &DaypartingSchedule{
		DayOfWeek: DayWednesday,
		StartTime: 10 * 3600,
		EndTime:   16 * 3600,
		IsActive:  true,
	}

	wednesday, err := time.Parse(time.RFC3339, "2026-08-26T12:00:00Z")
	require.NoError(t, err)

	assert.True(t, schedule.IsActiveAt(wednesday))

	schedule.IsActive = false
	assert.False(t, schedule.IsActiveAt(wednesday))
}
