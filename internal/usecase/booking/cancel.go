package booking

import (
	"context"

	"github.com/mesalibre/reserva-api/internal/audit"
	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/events"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/metrics"
	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

type CancelBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	eventDisp *events.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  auditDisp,
		events: eventDisp,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	businessID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForBusiness(ctx, bookingID, businessID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(biz.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled()

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "booking_cancelled",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	uc.events.Dispatch(events.New(events.TypeBookingCancelled, businessID, b.ID))

	return b, nil
}
