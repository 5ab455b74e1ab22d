package schedule

import "math"

// Interval is a half-open [StartMin, EndMin) span within one business day.
type Interval struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// Overlaps uses half-open semantics: intervals that merely touch at an
// endpoint do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.StartMin < other.EndMin && other.StartMin < iv.EndMin
}

// Admissible reports whether the candidate can be booked without the count
// of simultaneous bookings reaching capacity. Tables are fungible, so a
// plain overlap-count threshold is enough; no table is ever assigned
// individually.
func Admissible(candidate Interval, booked []Interval, capacity int) bool {
	if capacity <= 0 {
		return false
	}
	overlapping := 0
	for _, b := range booked {
		if candidate.Overlaps(b) {
			overlapping++
		}
	}
	return overlapping < capacity
}

// slotScore rates a candidate, lower is better. The base score is the idle
// time left between the candidate and its closest neighbors (or the
// open/close bounds); a preferred start adds half a point per minute of
// distance.
func slotScore(candidate Interval, booked []Interval, hours Hours, preferredMin *int) float64 {
	prevEnd := hours.OpenMin
	nextStart := hours.CloseMin
	for _, b := range booked {
		if b.EndMin <= candidate.StartMin && b.EndMin > prevEnd {
			prevEnd = b.EndMin
		}
		if b.StartMin >= candidate.EndMin && b.StartMin < nextStart {
			nextStart = b.StartMin
		}
	}

	idleBefore := candidate.StartMin - prevEnd
	idleAfter := nextStart - candidate.EndMin
	score := float64(idleBefore + idleAfter)

	if preferredMin != nil {
		score += 0.5 * math.Abs(float64(candidate.StartMin-*preferredMin))
	}

	return score
}
