package booking

import (
	"context"

	"github.com/mesalibre/reserva-api/internal/audit"
	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/events"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/models"
)

type ConfirmBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Dispatcher
}

func NewConfirmBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	eventDisp *events.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:   repo,
		audit:  auditDisp,
		events: eventDisp,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	businessID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForBusiness(ctx, bookingID, businessID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Confirm(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "booking_confirmed",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	uc.events.Dispatch(events.New(events.TypeBookingConfirmed, businessID, b.ID))

	return b, nil
}
