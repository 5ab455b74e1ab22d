package booking

import (
	"context"
	"time"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/dto"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/schedule"
)

type ListAvailability struct {
	repo   domain.Repository
	engine *schedule.Engine
}

func NewListAvailability(repo domain.Repository, engine *schedule.Engine) *ListAvailability {
	return &ListAvailability{repo: repo, engine: engine}
}

// Execute returns every open slot for the service on one date. The empty
// list covers closed days and zero capacity alike; it is never an error.
func (uc *ListAvailability) Execute(
	ctx context.Context,
	businessID uint,
	serviceID uint,
	date time.Time,
	durationMin int,
) ([]dto.TimeSlotDTO, error) {

	svc, err := uc.repo.GetService(ctx, businessID, serviceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	slots, err := uc.engine.AvailableSlots(ctx, serviceID, date, durationMin)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TimeSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.TimeSlotDTO{
			Start: schedule.MinutesToClock(s.StartMin),
			End:   schedule.MinutesToClock(s.EndMin),
		})
	}

	return out, nil
}
