package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/events"
	"github.com/mesalibre/reserva-api/internal/notify"
)

// Notifier consumes booking events off the queue and emails the client.
// Delivery is at-least-once; the queue's claim key suppresses duplicates.
type Notifier struct {
	queue  *events.RedisQueue
	repo   domain.Repository
	sender notify.Sender
}

func NewNotifier(queue *events.RedisQueue, repo domain.Repository, sender notify.Sender) *Notifier {
	return &Notifier{
		queue:  queue,
		repo:   repo,
		sender: sender,
	}
}

// Run blocks consuming events until the context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	log.Info().Msg("notification worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("notification worker stopped")
			return
		default:
		}

		ev, err := n.queue.Pop(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("event pop failed")
			time.Sleep(time.Second)
			continue
		}
		if ev == nil {
			continue
		}

		n.handle(ctx, ev)
	}
}

func (n *Notifier) handle(ctx context.Context, ev *events.Event) {
	first, err := n.queue.ClaimDelivery(ctx, ev.ID)
	if err != nil {
		log.Error().Err(err).Str("event_id", ev.ID).Msg("delivery claim failed")
		return
	}
	if !first {
		return
	}

	b, err := n.repo.GetBookingDetail(ctx, ev.BookingID, ev.BusinessID)
	if err != nil {
		log.Error().Err(err).Uint("booking_id", ev.BookingID).Msg("booking lookup failed")
		return
	}

	if b.Client.Email == "" {
		return
	}

	var subject, body string
	switch ev.Type {
	case events.TypeBookingCreated, events.TypeBookingConfirmed:
		subject = notify.ConfirmationSubject(b)
		body = notify.ConfirmationBody(b)
	case events.TypeBookingCancelled:
		subject = notify.CancellationSubject(b)
		body = notify.CancellationBody(b)
	default:
		log.Warn().Str("type", ev.Type).Msg("unknown event type, skipping")
		return
	}

	if err := n.sender.Send(b.Client.Email, subject, body); err != nil {
		log.Error().Err(err).Uint("booking_id", b.ID).Msg("notification send failed")
	}
}
