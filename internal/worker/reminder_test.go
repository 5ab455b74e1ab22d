package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

type stubRepo struct {
	domain.Repository

	due     []models.Booking
	listErr error

	markedIDs []uint
}

func (s *stubRepo) ListBookingsDueReminder(ctx context.Context, now time.Time, window time.Duration) ([]models.Booking, error) {
	return s.due, s.listErr
}

func (s *stubRepo) MarkReminderSent(ctx context.Context, bookingID uint) error {
	s.markedIDs = append(s.markedIDs, bookingID)
	return nil
}

type recordingSender struct {
	sent []string
	err  error
}

func (r *recordingSender) Send(to, subject, body string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, to)
	return nil
}

func dueBooking(id uint, email string, date time.Time, start string) models.Booking {
	return models.Booking{
		ID:         id,
		Date:       date,
		StartClock: start,
		EndClock:   "21:00",
		Status:     string(domain.StatusConfirmed),
		Client:     models.Client{Name: "Ana", Email: email},
		Service:    models.Service{Name: "Cena"},
		Business:   models.Business{Name: "La Cocina"},
	}
}

func TestReminderSendsAndMarks(t *testing.T) {
	tomorrow := timezone.Now().AddDate(0, 0, 1)

	repo := &stubRepo{
		due: []models.Booking{
			dueBooking(1, "ana@example.com", tomorrow, "20:00"),
			dueBooking(2, "beto@example.com", tomorrow, "19:00"),
		},
	}
	sender := &recordingSender{}

	r := NewReminder(repo, sender, 24)

	sent, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"ana@example.com", "beto@example.com"}, sender.sent)
	assert.Equal(t, []uint{1, 2}, repo.markedIDs)
}

func TestReminderSkipsClientsWithoutEmail(t *testing.T) {
	tomorrow := timezone.Now().AddDate(0, 0, 1)

	repo := &stubRepo{
		due: []models.Booking{
			dueBooking(1, "", tomorrow, "20:00"),
			dueBooking(2, "beto@example.com", tomorrow, "19:00"),
		},
	}
	sender := &recordingSender{}

	r := NewReminder(repo, sender, 24)

	sent, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.Equal(t, []uint{2}, repo.markedIDs)
}

func TestReminderSkipsSameDayPassedStart(t *testing.T) {
	// A same-day booking at 00:00 has always started already.
	repo := &stubRepo{
		due: []models.Booking{
			dueBooking(1, "ana@example.com", timezone.Now(), "00:00"),
		},
	}
	sender := &recordingSender{}

	r := NewReminder(repo, sender, 24)

	sent, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sent)
	assert.Empty(t, sender.sent)
	assert.Empty(t, repo.markedIDs)
}

func TestReminderSenderFailureDoesNotMark(t *testing.T) {
	tomorrow := timezone.Now().AddDate(0, 0, 1)

	repo := &stubRepo{
		due: []models.Booking{
			dueBooking(1, "ana@example.com", tomorrow, "20:00"),
		},
	}
	sender := &recordingSender{err: errors.New("smtp down")}

	r := NewReminder(repo, sender, 24)

	sent, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sent)
	assert.Empty(t, repo.markedIDs)
}

func TestReminderListErrorPropagates(t *testing.T) {
	repo := &stubRepo{listErr: errors.New("db down")}

	r := NewReminder(repo, &recordingSender{}, 24)

	_, err := r.Run(context.Background())
	assert.Error(t, err)
}
