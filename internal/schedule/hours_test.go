package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"13:00", 780},
		{"19:30", 1170},
		{"23:00", 1380},
	}

	for _, tt := range tests {
		got, err := ClockToMinutes(tt.clock)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "clock %s", tt.clock)
	}
}

func TestClockToMinutes_Invalid(t *testing.T) {
	_, err := ClockToMinutes("25:99")
	assert.Error(t, err)

	_, err = ClockToMinutes("half past nine")
	assert.Error(t, err)
}

func TestMinutesToClock_RoundTrip(t *testing.T) {
	for min := 0; min < 24*60; min++ {
		back, err := ClockToMinutes(MinutesToClock(min))
		require.NoError(t, err)
		require.Equal(t, min, back)
	}
}

func TestDefaultHours(t *testing.T) {
	h := DefaultHours()
	assert.Equal(t, 780, h.OpenMin)
	assert.Equal(t, 1380, h.CloseMin)
	assert.Equal(t, 15, h.StepMin)
	assert.Equal(t, time.Thursday, h.ClosedWeekday)
}

func TestLastStart(t *testing.T) {
	h := DefaultHours()

	assert.Equal(t, 1320, h.LastStart(60))
	assert.Equal(t, 780, h.LastStart(600)) // exactly fills the day
	assert.Equal(t, -1, h.LastStart(601))
	assert.Equal(t, -1, h.LastStart(700))
}
