package appointment

import (
	"context"
	"time"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
)

const expiredBatchSize = 100

// CompleteExpired moves scheduled appointments whose end has passed to
// completed, which opens them to rating.
type CompleteExpired struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewCompleteExpired(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CompleteExpired {
	return &CompleteExpired{
		repo:  repo,
		audit: audit,
		now:   timezone.SystemClock(loc),
	}
}

func (uc *CompleteExpired) Execute(ctx context.Context) (int, error) {
	now := uc.now()
	done := 0

	for {
		batch, err := uc.repo.ListExpired(ctx, now, expiredBatchSize)
		if err != nil {
			return done, httperr.ErrTransaction(err)
		}

		for i := range batch {
			ap := &batch[i]
			if err := domain.Complete(ap, now); err != nil {
				continue
			}
			// A cancel may have landed since the batch was read.
			ok, err := uc.repo.TransitionAppointment(ctx, ap, domain.StatusScheduled)
			if err != nil {
				return done, httperr.ErrTransaction(err)
			}
			if !ok {
				continue
			}
			done++

			uc.audit.Dispatch(audit.Event{
				Action:   "appointment_auto_completed",
				Entity:   "appointment",
				EntityID: &ap.ID,
			})
		}

		if len(batch) < expiredBatchSize {
			return done, nil
		}
	}
}
