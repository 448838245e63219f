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

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.SystemClock(loc),
	}
}

// Execute cancels on behalf of either side of the appointment.
func (uc *CancelAppointment) Execute(
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
		if who == outsider {
			return httperr.ErrForbidden()
		}

		if err := domain.Cancel(ap, uc.now()); err != nil {
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
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
