package booking

import (
	"context"
	"time"

	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/schedule"
)

type Repository interface {
	// The availability engine reads through the same repository.
	schedule.Store

	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	CountClientActiveBookings(
		ctx context.Context,
		clientID uint,
		from time.Time,
	) (int64, error)

	// -------- Booking (create / admission) --------

	// CreateBookingAdmitted inserts the booking inside a transaction that
	// locks and re-counts the overlapping active bookings first, so two
	// concurrent requests cannot both slip under capacity.
	CreateBookingAdmitted(
		ctx context.Context,
		b *models.Booking,
		capacity int,
	) error

	// -------- Booking (state change) --------
	GetBookingForBusiness(
		ctx context.Context,
		bookingID uint,
		businessID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// GetBookingDetail loads the booking with its client, service and
	// business associations, for notification rendering.
	GetBookingDetail(
		ctx context.Context,
		bookingID uint,
		businessID uint,
	) (*models.Booking, error)

	// -------- Booking (listing) --------
	ListBookingsForDay(
		ctx context.Context,
		businessID uint,
		date time.Time,
	) ([]models.Booking, error)

	ListBookingsForRange(
		ctx context.Context,
		businessID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// -------- Workers --------
	ListBookingsDueReminder(
		ctx context.Context,
		now time.Time,
		window time.Duration,
	) ([]models.Booking, error)

	MarkReminderSent(
		ctx context.Context,
		bookingID uint,
	) error

	MarkNoShows(
		ctx context.Context,
		now time.Time,
		toleranceMin int,
	) (int64, error)
}
