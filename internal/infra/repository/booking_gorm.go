package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/schedule"
)

const dateLayout = "2006-01-02"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *BookingGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = true", slug).
		First(&biz).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Engine store (capacity / intervals / duration)
// --------------------------------------------------

func (r *BookingGormRepository) CountActiveTables(
	ctx context.Context,
	serviceID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("service_id = ? AND active = true", serviceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *BookingGormRepository) ListActiveIntervals(
	ctx context.Context,
	serviceID uint,
	date time.Time,
) ([]schedule.Interval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_clock", "end_clock").
		Where(
			"service_id = ? AND date = ? AND status IN ?",
			serviceID,
			date.Format(dateLayout),
			domain.ActiveStatuses,
		).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(rows))
	for _, b := range rows {
		start, err := schedule.ClockToMinutes(b.StartClock)
		if err != nil {
			continue
		}
		end, err := schedule.ClockToMinutes(b.EndClock)
		if err != nil {
			continue
		}
		intervals = append(intervals, schedule.Interval{StartMin: start, EndMin: end})
	}

	return intervals, nil
}

func (r *BookingGormRepository) ServiceDuration(
	ctx context.Context,
	serviceID uint,
) (int, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Select("duration_min").
		First(&svc, serviceID).Error; err != nil {
		return 0, err
	}
	return svc.DurationMin, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *BookingGormRepository) CountClientActiveBookings(
	ctx context.Context,
	clientID uint,
	from time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"client_id = ? AND date >= ? AND status IN ?",
			clientID,
			from.Format(dateLayout),
			domain.ActiveStatuses,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Booking (create with admission recheck)
// --------------------------------------------------

// CreateBookingAdmitted locks the overlapping active bookings and re-counts
// them against capacity before inserting. Zero-padded HH:MM strings compare
// lexicographically in chronological order, so the half-open overlap test
// works directly in SQL.
func (r *BookingGormRepository) CreateBookingAdmitted(
	ctx context.Context,
	b *models.Booking,
	capacity int,
) error {

	if capacity <= 0 {
		return httperr.ErrBusiness("no_table_available")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var overlapping []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"service_id = ? AND date = ? AND status IN ? AND start_clock < ? AND end_clock > ?",
				b.ServiceID,
				b.Date.Format(dateLayout),
				domain.ActiveStatuses,
				b.EndClock,
				b.StartClock,
			).
			Find(&overlapping).Error; err != nil {
			return err
		}

		if len(overlapping) >= capacity {
			return httperr.ErrBusiness("no_table_available")
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForBusiness(
	ctx context.Context,
	bookingID uint,
	businessID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", bookingID, businessID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingDetail(
	ctx context.Context,
	bookingID uint,
	businessID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Business").
		Where("id = ? AND business_id = ?", bookingID, businessID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Booking (listing)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	businessID uint,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("business_id = ? AND date = ?", businessID, date.Format(dateLayout)).
		Order("start_clock ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// ListBookingsForRange returns bookings whose date falls in [from, to).
func (r *BookingGormRepository) ListBookingsForRange(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"business_id = ? AND date >= ? AND date < ?",
			businessID,
			from.Format(dateLayout),
			to.Format(dateLayout),
		).
		Order("date ASC, start_clock ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Workers
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsDueReminder(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) ([]models.Booking, error) {

	limit := now.Add(window)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Business").
		Where(
			"status IN ? AND reminder_sent = false AND date >= ? AND date <= ?",
			domain.ActiveStatuses,
			now.Format(dateLayout),
			limit.Format(dateLayout),
		).
		Order("date ASC, start_clock ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) MarkReminderSent(
	ctx context.Context,
	bookingID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("reminder_sent", true).Error
}

func (r *BookingGormRepository) MarkNoShows(
	ctx context.Context,
	now time.Time,
	toleranceMin int,
) (int64, error) {

	limit := now.Add(-time.Duration(toleranceMin) * time.Minute)
	limitClock := limit.Format("15:04")

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"status IN ? AND date <= ? AND start_clock < ?",
			domain.ActiveStatuses,
			now.Format(dateLayout),
			limitClock,
		).
		Update("status", string(domain.StatusNoShow))

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
