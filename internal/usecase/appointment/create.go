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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID uint
	ClientID       uint

	Start time.Time
	End   time.Time

	Service string
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   timezone.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   timezone.SystemClock(loc),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books the interval. The professional row stays locked from the
// availability check through the insert, so two overlapping requests for the
// same professional cannot both pass the conflict check.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Intervalo
	// --------------------------------------------------
	iv := domain.Interval{Start: in.Start, End: in.End}
	if !iv.Valid() {
		return nil, httperr.ErrInvalidArgument("end", "must be after start")
	}
	if iv.Start.Before(uc.now()) {
		return nil, httperr.ErrInvalidArgument("start", "must not be in the past")
	}

	var ap *models.Appointment

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 2️⃣ Profissional (lock)
		// --------------------------------------------------
		prof, err := tx.LockProfessional(ctx, in.ProfessionalID)
		if err != nil {
			return err
		}
		if prof == nil {
			return httperr.ErrNotFound("professional", in.ProfessionalID)
		}
		if prof.UserID == in.ClientID {
			return httperr.ErrInvalidArgument("client_id", "a professional cannot book their own schedule")
		}

		// --------------------------------------------------
		// 3️⃣ Disponibilidade do dia
		// --------------------------------------------------
		weekday := int(iv.Start.In(uc.loc).Weekday())
		av, err := tx.GetAvailability(ctx, prof.ID, weekday)
		if err != nil {
			return err
		}
		if !domain.IsWithinAvailability(av, iv, uc.loc) {
			return httperr.ErrConflict(httperr.CodeOutsideAvailability)
		}

		// --------------------------------------------------
		// 4️⃣ Conflito de horário
		// --------------------------------------------------
		conflict, err := hasConflict(ctx, tx, prof.ID, iv)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrConflict(httperr.CodeScheduleConflict)
		}

		// --------------------------------------------------
		// 5️⃣ Criação
		// --------------------------------------------------
		ap = &models.Appointment{
			ProfessionalID: prof.ID,
			ClientID:       in.ClientID,
			StartTime:      iv.Start,
			EndTime:        iv.End,
			Status:         string(domain.InitialStatus()),
			Service:        in.Service,
			Notes:          in.Notes,
		}
		return tx.CreateAppointment(ctx, ap)
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeScheduleConflict) {
			uc.audit.Dispatch(audit.Event{
				UserID:   &in.ClientID,
				Action:   "appointment_conflict",
				Entity:   "professional",
				EntityID: &in.ProfessionalID,
				Metadata: map[string]time.Time{"start": iv.Start, "end": iv.End},
			})
		}
		return nil, httperr.ErrTransaction(err)
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
