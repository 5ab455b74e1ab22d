package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{StartMin: 840, EndMin: 900} // 14:00-15:00

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"before", Interval{780, 840}, false}, // touching endpoints do not overlap
		{"after", Interval{900, 960}, false},
		{"starts during", Interval{870, 930}, true},
		{"ends during", Interval{810, 870}, true},
		{"contained", Interval{850, 880}, true},
		{"containing", Interval{780, 960}, true},
		{"identical", Interval{840, 900}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestAdmissible_CapacityThreshold(t *testing.T) {
	candidate := Interval{StartMin: 840, EndMin: 900}
	overlapping := []Interval{
		{830, 890},
		{850, 910},
		{840, 900},
	}

	// Three bookings over the same span: full at capacity 3, open at 4.
	assert.False(t, Admissible(candidate, overlapping, 3))
	assert.True(t, Admissible(candidate, overlapping, 4))

	// Two of three removed leaves room under capacity 3.
	assert.True(t, Admissible(candidate, overlapping[:1], 3))
}

func TestAdmissible_ZeroCapacity(t *testing.T) {
	candidate := Interval{StartMin: 780, EndMin: 840}

	assert.False(t, Admissible(candidate, nil, 0))
	assert.False(t, Admissible(candidate, []Interval{}, 0))
	assert.False(t, Admissible(candidate, nil, -1))
}

func TestAdmissible_TouchingDoesNotCount(t *testing.T) {
	candidate := Interval{StartMin: 840, EndMin: 900}
	booked := []Interval{
		{780, 840}, // ends exactly at candidate start
		{900, 960}, // starts exactly at candidate end
	}

	assert.True(t, Admissible(candidate, booked, 1))
}

func TestSlotScore_IdleTime(t *testing.T) {
	hours := DefaultHours()
	booked := []Interval{
		{780, 840},  // 13:00-14:00
		{960, 1020}, // 16:00-17:00
	}

	// 14:00-15:00 abuts the first booking, one hour before the next.
	snug := slotScore(Interval{840, 900}, booked, hours, nil)
	assert.Equal(t, 60.0, snug)

	// 15:00-16:00 leaves an hour behind, abuts the next.
	trailing := slotScore(Interval{900, 960}, booked, hours, nil)
	assert.Equal(t, 60.0, trailing)

	// 17:00-18:00 abuts the last booking, nothing until close.
	tail := slotScore(Interval{1020, 1080}, booked, hours, nil)
	assert.Equal(t, 300.0, tail)
}

func TestSlotScore_EmptyDayUsesOpenClose(t *testing.T) {
	hours := DefaultHours()

	score := slotScore(Interval{900, 960}, nil, hours, nil)
	// 120 idle since open, 420 idle until close.
	assert.Equal(t, 540.0, score)
}

func TestSlotScore_PreferredPenalty(t *testing.T) {
	hours := DefaultHours()
	preferred := 1140 // 19:00

	at := slotScore(Interval{1140, 1200}, nil, hours, &preferred)
	off := slotScore(Interval{1200, 1260}, nil, hours, &preferred)

	// Base score is constant on an empty day, so only the distance penalty
	// separates the two: 0.5 * 60.
	assert.Equal(t, 30.0, off-at)
}
