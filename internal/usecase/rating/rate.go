package rating

import (
	"context"
	"strings"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	"github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/rating"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

type RateInput struct {
	AppointmentID uint
	// ClientID is the caller; only the appointment's client may rate it.
	ClientID    uint
	Score       int
	Description string
}

// RateAppointment attaches the one rating a completed appointment can get
// and folds its score into the professional's average.
type RateAppointment struct {
	repo  domain.Repository
	cache cache.ProfessionalCache
	audit *audit.Dispatcher
}

func NewRateAppointment(
	repo domain.Repository,
	cache cache.ProfessionalCache,
	audit *audit.Dispatcher,
) *RateAppointment {
	return &RateAppointment{repo: repo, cache: cache, audit: audit}
}

func (uc *RateAppointment) Execute(ctx context.Context, in RateInput) (*models.Rating, error) {
	var rt *models.Rating

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Agendamento
		// --------------------------------------------------
		ap, err := tx.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		if ap == nil {
			return httperr.ErrNotFound("appointment", in.AppointmentID)
		}
		if ap.ClientID != in.ClientID {
			return httperr.ErrForbidden()
		}
		if err := appointment.CanRate(appointment.Status(ap.Status)); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Uma avaliação por agendamento
		// --------------------------------------------------
		rated, err := tx.ExistsForAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}
		if rated {
			return httperr.ErrConflict(httperr.CodeAlreadyRated)
		}

		// --------------------------------------------------
		// 3️⃣ Nota e descrição
		// --------------------------------------------------
		if err := domain.ValidateScore(in.Score); err != nil {
			return err
		}
		if err := domain.ValidateDescription(in.Description); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Persistência + média do profissional
		// --------------------------------------------------
		prof, err := tx.LockProfessional(ctx, ap.ProfessionalID)
		if err != nil {
			return err
		}
		if prof == nil {
			return httperr.ErrNotFound("professional", ap.ProfessionalID)
		}

		rt = &models.Rating{
			AppointmentID:  ap.ID,
			ProfessionalID: ap.ProfessionalID,
			ClientID:       ap.ClientID,
			Description:    strings.TrimSpace(in.Description),
			Score:          in.Score,
		}
		if err := tx.CreateRating(ctx, rt); err != nil {
			return err
		}

		sum, count, err := tx.ScoreTotals(ctx, prof.ID)
		if err != nil {
			return err
		}
		return tx.UpdateProfessionalRating(ctx, prof.ID, domain.Average(sum, count), int(count))
	})
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	uc.cache.Invalidate(ctx, rt.ProfessionalID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "rating_created",
		Entity:   "rating",
		EntityID: &rt.ID,
		Metadata: map[string]int{"score": rt.Score},
	})

	return rt, nil
}
