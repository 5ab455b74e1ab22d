package booking

import (
	"context"
	"time"

	domain "github.com/mesalibre/reserva-api/internal/domain/booking"
	"github.com/mesalibre/reserva-api/internal/metrics"
)

// MarkNoShows sweeps active bookings whose start time passed the arrival
// tolerance and flags them no_show. Run periodically by the worker.
type MarkNoShows struct {
	repo         domain.Repository
	toleranceMin int
}

func NewMarkNoShows(repo domain.Repository, toleranceMin int) *MarkNoShows {
	if toleranceMin <= 0 {
		toleranceMin = 15
	}
	return &MarkNoShows{repo: repo, toleranceMin: toleranceMin}
}

func (uc *MarkNoShows) Execute(ctx context.Context, now time.Time) (int64, error) {
	marked, err := uc.repo.MarkNoShows(ctx, now, uc.toleranceMin)
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		metrics.AddNoShowMarked(float64(marked))
	}

	return marked, nil
}
