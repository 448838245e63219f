package appointment

import (
	"context"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, who, err := loadForActor(ctx, uc.repo, appointmentID, actorID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if who == outsider {
		return nil, httperr.ErrForbidden()
	}
	return ap, nil
}
