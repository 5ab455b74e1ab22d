package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements Store for testing, keyed by date.
type fakeStore struct {
	tables    int
	duration  int
	intervals map[string][]Interval
	err       error
}

func (f *fakeStore) CountActiveTables(ctx context.Context, serviceID uint) (int, error) {
	return f.tables, f.err
}

func (f *fakeStore) ListActiveIntervals(ctx context.Context, serviceID uint, date time.Time) ([]Interval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.intervals[date.Format("2006-01-02")], nil
}

func (f *fakeStore) ServiceDuration(ctx context.Context, serviceID uint) (int, error) {
	return f.duration, f.err
}

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

func newEngine(store *fakeStore) *Engine {
	return NewEngine(store, DefaultHours())
}

func TestSuggestSlot_FillsGapBetweenBookings(t *testing.T) {
	store := &fakeStore{
		tables:   1,
		duration: 60,
		intervals: map[string][]Interval{
			"2026-09-01": {
				{780, 840}, // 13:00-14:00
				{900, 960}, // 15:00-16:00
			},
		},
	}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID: 1,
		From:      day(1),
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, day(1), got.Date)
	assert.Equal(t, 840, got.StartMin) // the 14:00-15:00 gap scores zero idle
	assert.Equal(t, 900, got.EndMin)
	assert.NotEmpty(t, got.Reason)
}

func TestSuggestSlot_TieBreakPicksEarliestStart(t *testing.T) {
	// A single booking leaves every remaining slot with the same total idle
	// time, so the earliest admissible start must win.
	store := &fakeStore{
		tables:   1,
		duration: 60,
		intervals: map[string][]Interval{
			"2026-09-01": {{780, 840}}, // 13:00-14:00
		},
	}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID: 1,
		From:      day(1),
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 840, got.StartMin) // 14:00, abutting the booking
	assert.Equal(t, 900, got.EndMin)
}

func TestSuggestSlot_PreferredTime(t *testing.T) {
	preferred := 1140 // 19:00

	store := &fakeStore{tables: 1, duration: 60}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID:    1,
		From:         day(1),
		PreferredMin: &preferred,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 1140, got.StartMin)
	assert.Equal(t, 1200, got.EndMin)
	assert.Contains(t, got.Reason, "preferred")
}

func TestSuggestSlot_ZeroCapacity(t *testing.T) {
	store := &fakeStore{tables: 0, duration: 60}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID: 1,
		From:      day(1),
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSuggestSlot_DurationNeverFits(t *testing.T) {
	store := &fakeStore{tables: 3, duration: 60}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID:   1,
		From:        day(1),
		DurationMin: 700, // longer than the 600-minute day
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSuggestSlot_ReturnsFirstDayWithAnySlot(t *testing.T) {
	// Day one is fully booked; day two is wide open. The search must stop
	// at day two even though later days are just as open.
	store := &fakeStore{
		tables:   1,
		duration: 60,
		intervals: map[string][]Interval{
			"2026-09-01": {{780, 1380}},
		},
	}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID: 1,
		From:      day(1),
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, day(2), got.Date)
	assert.Equal(t, 780, got.StartMin)
}

func TestSuggestSlot_ExhaustedHorizon(t *testing.T) {
	full := []Interval{{780, 1380}}
	intervals := make(map[string][]Interval)
	for d := 1; d <= 30; d++ {
		intervals[day(d).Format("2006-01-02")] = full
	}

	store := &fakeStore{tables: 1, duration: 60, intervals: intervals}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID:   1,
		From:        day(1),
		HorizonDays: 20,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSuggestSlot_UsesServiceDefaultDuration(t *testing.T) {
	// 600-minute default: only the 13:00 start fits the whole day.
	store := &fakeStore{tables: 1, duration: 600}

	got, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID: 1,
		From:      day(1),
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 780, got.StartMin)
	assert.Equal(t, 1380, got.EndMin)
}

func TestSuggestSlot_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}

	_, err := newEngine(store).SuggestSlot(context.Background(), SuggestInput{
		ServiceID: 1,
		From:      day(1),
	})
	assert.Error(t, err)
}

func TestAvailableSlots_SkipsOccupiedStarts(t *testing.T) {
	store := &fakeStore{
		tables:   1,
		duration: 60,
		intervals: map[string][]Interval{
			"2026-09-01": {{840, 900}}, // 14:00-15:00
		},
	}

	slots, err := newEngine(store).AvailableSlots(context.Background(), 1, day(1), 0)
	require.NoError(t, err)

	// 13:00 fits before the booking (touching is fine), then everything
	// from 15:00 on; the 13:15-14:45 starts all collide.
	require.Len(t, slots, 30)
	assert.Equal(t, Interval{780, 840}, slots[0])
	assert.Equal(t, Interval{900, 960}, slots[1])

	for i := 1; i < len(slots); i++ {
		assert.Greater(t, slots[i].StartMin, slots[i-1].StartMin, "chronological order")
	}
}

func TestAvailableSlots_ClosedOnThursday(t *testing.T) {
	store := &fakeStore{tables: 5, duration: 60}

	thursday := day(3)
	require.Equal(t, time.Thursday, thursday.Weekday())

	slots, err := newEngine(store).AvailableSlots(context.Background(), 1, thursday, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_ZeroCapacity(t *testing.T) {
	store := &fakeStore{tables: 0, duration: 60}

	slots, err := newEngine(store).AvailableSlots(context.Background(), 1, day(1), 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_DurationNeverFits(t *testing.T) {
	store := &fakeStore{tables: 2, duration: 60}

	slots, err := newEngine(store).AvailableSlots(context.Background(), 1, day(1), 700)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_FullGridOnEmptyDay(t *testing.T) {
	store := &fakeStore{tables: 1, duration: 60}

	slots, err := newEngine(store).AvailableSlots(context.Background(), 1, day(1), 0)
	require.NoError(t, err)

	// Starts every 15 minutes from 13:00 through 22:00.
	require.Len(t, slots, 37)
	assert.Equal(t, Interval{780, 840}, slots[0])
	assert.Equal(t, Interval{1320, 1380}, slots[36])
}

func TestAvailableSlots_CapacityTwoAllowsDoubleBooking(t *testing.T) {
	store := &fakeStore{
		tables:   2,
		duration: 60,
		intervals: map[string][]Interval{
			"2026-09-01": {{840, 900}},
		},
	}

	slots, err := newEngine(store).AvailableSlots(context.Background(), 1, day(1), 0)
	require.NoError(t, err)

	// A second table keeps every start admissible.
	assert.Len(t, slots, 37)
}
