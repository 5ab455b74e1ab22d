package schedule

import (
	"context"
	"time"
)

const (
	// DefaultHorizonDays bounds the forward search so worst-case latency
	// stays capped.
	DefaultHorizonDays = 30

	// fallbackDurationMin applies when the service carries no default.
	fallbackDurationMin = 60
)

const (
	reasonIdle      = "Slot chosen to minimize idle time between bookings"
	reasonPreferred = " and to stay close to the preferred time"
)

// Store is the read-only projection of the reservation records the engine
// queries. Implementations own all persistence; the engine holds no state
// between calls.
type Store interface {
	// CountActiveTables returns how many active tables back the service.
	CountActiveTables(ctx context.Context, serviceID uint) (int, error)

	// ListActiveIntervals returns the occupied minute intervals of all
	// pending or confirmed bookings for the service on the given date, in
	// no particular order.
	ListActiveIntervals(ctx context.Context, serviceID uint, date time.Time) ([]Interval, error)

	// ServiceDuration returns the service's default duration in minutes.
	ServiceDuration(ctx context.Context, serviceID uint) (int, error)
}

// Suggestion is the best open slot found by SuggestSlot.
type Suggestion struct {
	Date     time.Time `json:"date"`
	StartMin int       `json:"start_min"`
	EndMin   int       `json:"end_min"`
	Reason   string    `json:"reason"`
}

// Engine answers admission and slot-search queries over a snapshot of the
// store. It is synchronous and side-effect free; callers that turn its
// answers into writes must re-check inside their own transaction.
type Engine struct {
	store Store
	hours Hours
}

func NewEngine(store Store, hours Hours) *Engine {
	return &Engine{store: store, hours: hours}
}

func (e *Engine) Hours() Hours {
	return e.hours
}

// SuggestInput carries the optional knobs of a suggestion query. Zero
// values mean: search from today, use the service's default duration, no
// preferred time, default horizon.
type SuggestInput struct {
	ServiceID    uint
	From         time.Time
	DurationMin  int
	PreferredMin *int
	HorizonDays  int
}

// SuggestSlot scans days forward from the start date and returns the
// best-scoring admissible slot of the first day that has any, or nil when
// the whole horizon is booked out. A nil suggestion is a normal outcome,
// not an error.
func (e *Engine) SuggestSlot(ctx context.Context, in SuggestInput) (*Suggestion, error) {
	from := in.From
	if from.IsZero() {
		from = time.Now()
	}
	from = truncateToDay(from)

	horizon := in.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	duration, err := e.resolveDuration(ctx, in.ServiceID, in.DurationMin)
	if err != nil {
		return nil, err
	}

	capacity, err := e.store.CountActiveTables(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if capacity == 0 {
		return nil, nil
	}

	lastStart := e.hours.LastStart(duration)
	if lastStart < 0 {
		// Duration never fits a business day; every day would be skipped.
		return nil, nil
	}

	for offset := 0; offset <= horizon; offset++ {
		day := from.AddDate(0, 0, offset)

		booked, err := e.store.ListActiveIntervals(ctx, in.ServiceID, day)
		if err != nil {
			return nil, err
		}

		var best *Interval
		var bestScore float64

		for start := e.hours.OpenMin; start <= lastStart; start += e.hours.StepMin {
			cand := Interval{StartMin: start, EndMin: start + duration}
			if !Admissible(cand, booked, capacity) {
				continue
			}

			score := slotScore(cand, booked, e.hours, in.PreferredMin)
			// Strictly-less keeps the earliest start on ties.
			if best == nil || score < bestScore {
				c := cand
				best = &c
				bestScore = score
			}
		}

		if best != nil {
			reason := reasonIdle
			if in.PreferredMin != nil {
				reason += reasonPreferred
			}
			return &Suggestion{
				Date:     day,
				StartMin: best.StartMin,
				EndMin:   best.EndMin,
				Reason:   reason,
			}, nil
		}
	}

	return nil, nil
}

// AvailableSlots returns every admissible slot for the service on one date,
// in chronological order. The list is empty on the closed weekday, when no
// active table backs the service, or when the duration cannot fit the day.
func (e *Engine) AvailableSlots(ctx context.Context, serviceID uint, date time.Time, durationMin int) ([]Interval, error) {
	slots := []Interval{}

	if date.Weekday() == e.hours.ClosedWeekday {
		return slots, nil
	}

	duration, err := e.resolveDuration(ctx, serviceID, durationMin)
	if err != nil {
		return nil, err
	}

	capacity, err := e.store.CountActiveTables(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if capacity == 0 {
		return slots, nil
	}

	booked, err := e.store.ListActiveIntervals(ctx, serviceID, truncateToDay(date))
	if err != nil {
		return nil, err
	}

	lastStart := e.hours.LastStart(duration)
	if lastStart < 0 {
		return slots, nil
	}

	for start := e.hours.OpenMin; start <= lastStart; start += e.hours.StepMin {
		cand := Interval{StartMin: start, EndMin: start + duration}
		if Admissible(cand, booked, capacity) {
			slots = append(slots, cand)
		}
	}

	return slots, nil
}

func (e *Engine) resolveDuration(ctx context.Context, serviceID uint, durationMin int) (int, error) {
	if durationMin > 0 {
		return durationMin, nil
	}
	d, err := e.store.ServiceDuration(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		d = fallbackDurationMin
	}
	return d, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
