package worker

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mesalibre/reserva-api/internal/timezone"
	usecase "github.com/mesalibre/reserva-api/internal/usecase/booking"
)

// NoShowSweeper flags past-due active bookings as no-shows.
type NoShowSweeper struct {
	mark *usecase.MarkNoShows
}

func NewNoShowSweeper(mark *usecase.MarkNoShows) *NoShowSweeper {
	return &NoShowSweeper{mark: mark}
}

func (s *NoShowSweeper) Run(ctx context.Context) (int64, error) {
	marked, err := s.mark.Execute(ctx, timezone.Now())
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		log.Info().Int64("marked", marked).Msg("bookings flagged as no-show")
	}
	return marked, nil
}
