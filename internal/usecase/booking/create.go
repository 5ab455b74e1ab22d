package booking

import (
	"context"
	"time"

	"github.com/mesalibre/reserva-api/internal/audit"
	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/events"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/metrics"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/schedule"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BusinessID uint
	ServiceID  uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string // YYYY-MM-DD
	Start string // HH:MM
	End   string // HH:MM, empty means start + service duration

	Confirmed bool
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	hours  schedule.Hours
	audit  *audit.Dispatcher
	events *events.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	hours schedule.Hours,
	auditDisp *audit.Dispatcher,
	eventDisp *events.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		hours:  hours,
		audit:  auditDisp,
		events: eventDisp,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !biz.Active {
		return nil, httperr.ErrBusiness("business_inactive")
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(biz.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	today := todayIn(loc)
	if date.Before(today) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	startMin, endMin, err := uc.resolveInterval(in.Start, in.End, svc.DurationMin)
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// One active future booking per client.
	active, err := uc.repo.CountClientActiveBookings(ctx, client.ID, today)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, httperr.ErrBusiness("client_already_booked")
	}

	capacity, err := uc.repo.CountActiveTables(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if in.Confirmed {
		status = domain.StatusConfirmed
	}

	b := &models.Booking{
		BusinessID: in.BusinessID,
		ServiceID:  svc.ID,
		ClientID:   client.ID,
		Date:       date,
		StartClock: schedule.MinutesToClock(startMin),
		EndClock:   schedule.MinutesToClock(endMin),
		Status:     string(status),
		Notes:      in.Notes,
	}

	// Admission is re-checked under lock inside the transaction; the
	// point-in-time engine answer alone is not enough to close the
	// check-then-act race between concurrent requests.
	if err := uc.repo.CreateBookingAdmitted(ctx, b, capacity); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated(b.Status)

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Action:     "booking_created",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	uc.events.Dispatch(events.New(events.TypeBookingCreated, in.BusinessID, b.ID))

	return b, nil
}

// resolveInterval validates the clocks against business hours and returns
// minute offsets. An empty end clock defaults to start + service duration.
func (uc *CreateBooking) resolveInterval(start, end string, durationMin int) (int, int, error) {
	startMin, err := schedule.ClockToMinutes(start)
	if err != nil {
		return 0, 0, httperr.ErrBusiness("invalid_time")
	}

	var endMin int
	if end == "" {
		if durationMin <= 0 {
			durationMin = 60
		}
		endMin = startMin + durationMin
	} else {
		endMin, err = schedule.ClockToMinutes(end)
		if err != nil {
			return 0, 0, httperr.ErrBusiness("invalid_time")
		}
	}

	if endMin <= startMin {
		return 0, 0, httperr.ErrBusiness("end_before_start")
	}

	if startMin < uc.hours.OpenMin || startMin >= uc.hours.CloseMin {
		return 0, 0, httperr.ErrBusiness("outside_business_hours")
	}
	if endMin <= uc.hours.OpenMin || endMin > uc.hours.CloseMin {
		return 0, 0, httperr.ErrBusiness("outside_business_hours")
	}

	return startMin, endMin, nil
}

func todayIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
