package schedule

import (
	"fmt"
	"time"
)

// Hours describes the bookable window of one business day. Offsets are
// minutes from midnight; candidate start times are aligned to StepMin.
type Hours struct {
	OpenMin       int
	CloseMin      int
	StepMin       int
	ClosedWeekday time.Weekday
}

// DefaultHours is the current house policy: open 13:00-23:00, 15-minute
// grid, closed on Thursdays.
func DefaultHours() Hours {
	return Hours{
		OpenMin:       13 * 60,
		CloseMin:      23 * 60,
		StepMin:       15,
		ClosedWeekday: time.Thursday,
	}
}

// LastStart returns the latest grid-aligned start that still ends at or
// before close, or -1 when the duration cannot fit in the day at all.
func (h Hours) LastStart(durationMin int) int {
	last := h.CloseMin - durationMin
	if last < h.OpenMin {
		return -1
	}
	return last
}

// ClockToMinutes converts an "HH:MM" wall-clock string to its minute offset.
func ClockToMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToClock is the exact inverse of ClockToMinutes for whole minutes
// within a day.
func MinutesToClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
