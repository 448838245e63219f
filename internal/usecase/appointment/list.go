package appointment

import (
	"context"
	"time"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
)

const maxListPeriod = 62 * 24 * time.Hour

// ======================================================
// Por profissional
// ======================================================

type ListProfessionalAppointments struct {
	repo domain.Repository
}

func NewListProfessionalAppointments(repo domain.Repository) *ListProfessionalAppointments {
	return &ListProfessionalAppointments{repo: repo}
}

// Execute lists the appointments starting in [from, to).
func (uc *ListProfessionalAppointments) Execute(
	ctx context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentDTO, error) {

	if !from.Before(to) {
		return nil, httperr.ErrInvalidArgument("to", "must be after from")
	}
	if to.Sub(from) > maxListPeriod {
		return nil, httperr.ErrInvalidArgument("to", "period must not exceed 62 days")
	}

	prof, err := uc.repo.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if prof == nil {
		return nil, httperr.ErrNotFound("professional", professionalID)
	}

	apps, err := uc.repo.ListForProfessional(ctx, professionalID, from, to)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	return dto.NewAppointmentDTOs(apps), nil
}

// ======================================================
// Por cliente
// ======================================================

type ListClientAppointments struct {
	repo domain.Repository
	now  timezone.Clock
}

func NewListClientAppointments(repo domain.Repository, loc *time.Location) *ListClientAppointments {
	return &ListClientAppointments{repo: repo, now: timezone.SystemClock(loc)}
}

// Execute pages through the client's upcoming (soonest first) or past
// (latest first) appointments.
func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
	upcoming bool,
	page pagination.Page,
) (pagination.Result[dto.AppointmentDTO], error) {

	apps, total, err := uc.repo.ListForClient(ctx, clientID, uc.now(), upcoming, page)
	if err != nil {
		return pagination.Result[dto.AppointmentDTO]{}, httperr.ErrTransaction(err)
	}

	return pagination.NewResult(dto.NewAppointmentDTOs(apps), total, page), nil
}
