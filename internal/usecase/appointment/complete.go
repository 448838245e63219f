package appointment

import (
	"context"
	"time"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.SystemClock(loc),
	}
}

// Execute marks the appointment completed. Only the professional may do it.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		var (
			who participant
			err error
		)
		ap, who, err = loadForActor(ctx, tx, appointmentID, actorID)
		if err != nil {
			return err
		}
		if who != asProfessional {
			return httperr.ErrForbidden()
		}

		if err := domain.Complete(ap, uc.now()); err != nil {
			return err
		}
		ok, err := tx.TransitionAppointment(ctx, ap, domain.StatusScheduled)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrConflict(httperr.CodeInvalidState)
		}
		return nil
	})
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
