package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Booking lifecycle events published after a successful write. Consumers
// (notification worker, calendar sync) run outside the request path.
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BusinessID uint      `json:"business_id"`
	BookingID  uint      `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(eventType string, businessID, bookingID uint) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BusinessID: businessID,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Dispatcher decouples the write path from the queue: publishing happens on
// a background goroutine and a full buffer drops the event rather than
// blocking or failing the request.
type Dispatcher struct {
	publisher Publisher
	queue     chan Event
}

func NewDispatcher(publisher Publisher) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		queue:     make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.publisher.Publish(ctx, ev); err != nil {
			log.Error().Err(err).Str("type", ev.Type).Uint("booking_id", ev.BookingID).
				Msg("event publish failed")
		}
		cancel()
	}
}

// Dispatch is non-blocking; a nil dispatcher drops everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("type", ev.Type).Msg("event queue full, dropping event")
	}
}
