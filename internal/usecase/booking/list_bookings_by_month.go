package booking

import (
	"context"
	"time"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/dto"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	businessID uint,
	year int,
	month time.Month,
) ([]dto.BookingListDTO, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForRange(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}
