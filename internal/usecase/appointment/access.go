package appointment

import (
	"context"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

type participant int

const (
	outsider participant = iota
	asClient
	asProfessional
)

// loadForActor fetches the appointment and tells how actorID takes part in
// it. The professional may be gone; the client still owns the history.
func loadForActor(
	ctx context.Context,
	repo domain.Repository,
	appointmentID uint,
	actorID uint,
) (*models.Appointment, participant, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, outsider, err
	}
	if ap == nil {
		return nil, outsider, httperr.ErrNotFound("appointment", appointmentID)
	}

	if ap.ClientID == actorID {
		return ap, asClient, nil
	}

	prof, err := repo.GetProfessional(ctx, ap.ProfessionalID)
	if err != nil {
		return nil, outsider, err
	}
	if prof != nil && prof.UserID == actorID {
		return ap, asProfessional, nil
	}

	return ap, outsider, nil
}
