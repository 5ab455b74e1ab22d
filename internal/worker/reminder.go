package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/metrics"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/notify"
	"github.com/mesalibre/reserva-api/internal/schedule"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

// Reminder emails clients about bookings inside the lookahead window, once
// per booking. It mirrors a cron job; Run is safe to call repeatedly.
type Reminder struct {
	repo   domain.Repository
	sender notify.Sender
	window time.Duration
}

func NewReminder(repo domain.Repository, sender notify.Sender, windowHours int) *Reminder {
	if windowHours <= 0 {
		windowHours = 24
	}
	return &Reminder{
		repo:   repo,
		sender: sender,
		window: time.Duration(windowHours) * time.Hour,
	}
}

// Run sends the due reminders and returns how many went out.
func (r *Reminder) Run(ctx context.Context) (int, error) {
	now := timezone.Now()

	due, err := r.repo.ListBookingsDueReminder(ctx, now, r.window)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		b := &due[i]

		if b.Client.Email == "" {
			continue
		}
		if !r.stillUpcoming(b, now) {
			continue
		}

		if err := r.sender.Send(
			b.Client.Email,
			notify.ReminderSubject(b),
			notify.ReminderBody(b),
		); err != nil {
			log.Error().Err(err).Uint("booking_id", b.ID).Msg("reminder send failed")
			continue
		}

		if err := r.repo.MarkReminderSent(ctx, b.ID); err != nil {
			log.Error().Err(err).Uint("booking_id", b.ID).Msg("reminder flag update failed")
			continue
		}

		metrics.IncReminderSent()
		sent++
	}

	return sent, nil
}

// stillUpcoming drops same-day bookings whose start already passed.
func (r *Reminder) stillUpcoming(b *models.Booking, now time.Time) bool {
	if b.Date.Format("2006-01-02") != now.Format("2006-01-02") {
		return true
	}

	startMin, err := schedule.ClockToMinutes(b.StartClock)
	if err != nil {
		return false
	}
	return startMin > now.Hour()*60+now.Minute()
}
