package booking

import (
	"context"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/dto"
	"github.com/mesalibre/reserva-api/internal/httperr"
	"github.com/mesalibre/reserva-api/internal/metrics"
	"github.com/mesalibre/reserva-api/internal/schedule"
)

type SuggestSlot struct {
	repo   domain.Repository
	engine *schedule.Engine
}

func NewSuggestSlot(repo domain.Repository, engine *schedule.Engine) *SuggestSlot {
	return &SuggestSlot{repo: repo, engine: engine}
}

// Execute runs the forward slot search for a service of the business. A nil
// DTO with nil error means no availability inside the horizon.
func (uc *SuggestSlot) Execute(
	ctx context.Context,
	businessID uint,
	in schedule.SuggestInput,
) (*dto.SuggestionDTO, error) {

	svc, err := uc.repo.GetService(ctx, businessID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	suggestion, err := uc.engine.SuggestSlot(ctx, in)
	if err != nil {
		return nil, err
	}

	if suggestion == nil {
		metrics.IncSuggestion("none")
		return nil, nil
	}

	metrics.IncSuggestion("found")

	return &dto.SuggestionDTO{
		Date:   suggestion.Date.Format("2006-01-02"),
		Start:  schedule.MinutesToClock(suggestion.StartMin),
		End:    schedule.MinutesToClock(suggestion.EndMin),
		Reason: suggestion.Reason,
	}, nil
}
