package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/schedule"
)

// fakeRepo keeps everything in memory and mimics the admission recheck the
// real repository performs inside its transaction.
type fakeRepo struct {
	business *models.Business
	service  *models.Service
	tables   int

	clientActive int64
	bookings     []models.Booking

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		business: &models.Business{
			ID:       1,
			Name:     "La Cocina de Oaxaca",
			Slug:     "la-cocina",
			Timezone: "America/Mexico_City",
			Active:   true,
		},
		service: &models.Service{
			ID:          10,
			BusinessID:  1,
			Name:        "Cena",
			DurationMin: 60,
			Active:      true,
		},
		tables: 1,
		nextID: 100,
	}
}

func (f *fakeRepo) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	return f.business, nil
}

func (f *fakeRepo) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	return f.business, nil
}

func (f *fakeRepo) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	return f.service, nil
}

func (f *fakeRepo) CountActiveTables(ctx context.Context, serviceID uint) (int, error) {
	return f.tables, nil
}

func (f *fakeRepo) ListActiveIntervals(ctx context.Context, serviceID uint, date time.Time) ([]schedule.Interval, error) {
	var out []schedule.Interval
	for _, b := range f.bookings {
		start, _ := schedule.ClockToMinutes(b.StartClock)
		end, _ := schedule.ClockToMinutes(b.EndClock)
		out = append(out, schedule.Interval{StartMin: start, EndMin: end})
	}
	return out, nil
}

func (f *fakeRepo) ServiceDuration(ctx context.Context, serviceID uint) (int, error) {
	return f.service.DurationMin, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, businessID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 7, BusinessID: businessID, Name: name, Phone: phone, Email: email}, nil
}

func (f *fakeRepo) CountClientActiveBookings(ctx context.Context, clientID uint, from time.Time) (int64, error) {
	return f.clientActive, nil
}

func (f *fakeRepo) CreateBookingAdmitted(ctx context.Context, b *models.Booking, capacity int) error {
	if capacity <= 0 {
		return httperr.ErrBusiness("no_table_available")
	}

	overlapping := 0
	for _, existing := range f.bookings {
		if existing.Date.Equal(b.Date) &&
			existing.StartClock < b.EndClock &&
			existing.EndClock > b.StartClock {
			overlapping++
		}
	}
	if overlapping >= capacity {
		return httperr.ErrBusiness("no_table_available")
	}

	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeRepo) GetBookingForBusiness(ctx context.Context, bookingID, businessID uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			return &f.bookings[i], nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (f *fakeRepo) GetBookingDetail(ctx context.Context, bookingID, businessID uint) (*models.Booking, error) {
	return f.GetBookingForBusiness(ctx, bookingID, businessID)
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) ListBookingsForDay(ctx context.Context, businessID uint, date time.Time) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeRepo) ListBookingsForRange(ctx context.Context, businessID uint, from, to time.Time) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeRepo) ListBookingsDueReminder(ctx context.Context, now time.Time, window time.Duration) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeRepo) MarkReminderSent(ctx context.Context, bookingID uint) error {
	return nil
}

func (f *fakeRepo) MarkNoShows(ctx context.Context, now time.Time, toleranceMin int) (int64, error) {
	return 0, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Tests
// --------------------------------------------------

func newCreateUC(repo *fakeRepo) *CreateBooking {
	return NewCreateBooking(repo, schedule.DefaultHours(), nil, nil)
}

func futureDate(t *testing.T) string {
	t.Helper()
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "14:00",
		End:         "15:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "14:00", b.StartClock)
	assert.Equal(t, "15:00", b.EndClock)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBookingConfirmedFlag(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "14:00",
		Confirmed:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
}

func TestCreateBookingEndDefaultsToDuration(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "18:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "18:30", b.StartClock)
	assert.Equal(t, "19:30", b.EndClock)
}

func TestCreateBookingDateInPast(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        "2020-01-01",
		Start:       "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateBookingOutsideBusinessHours(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	for _, start := range []string{"09:00", "12:45", "23:00"} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			BusinessID:  1,
			ServiceID:   10,
			ClientName:  "Ana",
			ClientPhone: "5512345678",
			Date:        futureDate(t),
			Start:       start,
		})
		assert.True(t, httperr.IsBusiness(err, "outside_business_hours"), "start %s", start)
	}
}

func TestCreateBookingEndBeforeStart(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "15:00",
		End:         "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "end_before_start"))
}

func TestCreateBookingClientAlreadyBooked(t *testing.T) {
	repo := newFakeRepo()
	repo.clientActive = 1
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "client_already_booked"))
}

func TestCreateBookingNoTables(t *testing.T) {
	repo := newFakeRepo()
	repo.tables = 0
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "no_table_available"))
}

func TestCreateBookingCapacityConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)
	date := futureDate(t)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        date,
		Start:       "14:00",
	})
	require.NoError(t, err)

	// Same slot, single table: rejected.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Beto",
		ClientPhone: "5587654321",
		Date:        date,
		Start:       "14:30",
	})
	assert.True(t, httperr.IsBusiness(err, "no_table_available"))

	// Touching interval right after is fine.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Beto",
		ClientPhone: "5587654321",
		Date:        date,
		Start:       "15:00",
	})
	assert.NoError(t, err)
}

func TestCreateBookingInactiveService(t *testing.T) {
	repo := newFakeRepo()
	repo.service.Active = false
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BusinessID:  1,
		ServiceID:   10,
		ClientName:  "Ana",
		ClientPhone: "5512345678",
		Date:        futureDate(t),
		Start:       "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
