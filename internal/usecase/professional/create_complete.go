package professional

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type PortfolioInput struct {
	Description string
	Specialty   string
	Experience  string
	Website     string
	Instagram   string
	TikTok      string
	Facebook    string
	Twitter     string
}

type CreateCompleteInput struct {
	UserID    uint
	AddressID uint
	Portfolio PortfolioInput

	// Availability tokens, "<weekday>-<HH:MM>-<HH:MM>".
	Availability []string
}

// ======================================================
// USE CASE
// ======================================================

// CreateCompleteProfessional onboards a professional: profile, portfolio and
// weekly availability are written in one transaction or not at all.
type CreateCompleteProfessional struct {
	repo  domain.Repository
	cache cache.ProfessionalCache
	audit *audit.Dispatcher
}

func NewCreateCompleteProfessional(
	repo domain.Repository,
	cache cache.ProfessionalCache,
	audit *audit.Dispatcher,
) *CreateCompleteProfessional {
	return &CreateCompleteProfessional{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateCompleteProfessional) Execute(
	ctx context.Context,
	in CreateCompleteInput,
) (*dto.ProfessionalDTO, error) {

	var (
		prof      *models.Professional
		portfolio *models.Portfolio
		set       []models.Availability
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Usuário
		// --------------------------------------------------
		user, err := tx.GetUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return httperr.ErrNotFound("user", in.UserID)
		}

		// --------------------------------------------------
		// 2️⃣ Um perfil por usuário
		// --------------------------------------------------
		exists, err := tx.ExistsByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return httperr.ErrConflict(httperr.CodeDuplicateProfile)
		}

		// --------------------------------------------------
		// 3️⃣ Endereço
		// --------------------------------------------------
		addr, err := tx.GetAddress(ctx, in.AddressID)
		if err != nil {
			return err
		}
		if addr == nil {
			return httperr.ErrNotFound("address", in.AddressID)
		}
		if addr.UserID != user.ID {
			return httperr.ErrInvalidArgument("address_id", "address belongs to another user")
		}

		// --------------------------------------------------
		// 4️⃣ Disponibilidade (falha antes de qualquer escrita)
		// --------------------------------------------------
		set, err = domain.BuildAvailability(0, in.Availability)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 5️⃣ Profissional
		// --------------------------------------------------
		prof = &models.Professional{
			UserID:    user.ID,
			AddressID: addr.ID,
			Rating:    decimal.Zero,
		}
		if err := tx.CreateProfessional(ctx, prof); err != nil {
			return err
		}

		// --------------------------------------------------
		// 6️⃣ Portfólio
		// --------------------------------------------------
		portfolio = newPortfolio(prof.ID, in.Portfolio)
		if err := tx.CreatePortfolio(ctx, portfolio); err != nil {
			return err
		}

		// --------------------------------------------------
		// 7️⃣ Janelas semanais
		// --------------------------------------------------
		for i := range set {
			set[i].ProfessionalID = prof.ID
		}
		if err := tx.ReplaceAvailability(ctx, prof.ID, set); err != nil {
			return err
		}

		return tx.UpdateUserRole(ctx, user.ID, models.RoleProfessional)
	})
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	out := &dto.ProfessionalDTO{
		ID:           prof.ID,
		UserID:       prof.UserID,
		AddressID:    prof.AddressID,
		Rating:       prof.Rating,
		RatingsCount: prof.RatingsCount,
		Portfolio:    dto.NewPortfolioDTO(portfolio),
		Availability: dto.NewAvailabilityDTOs(set),
		Images:       []dto.ImageDTO{},
	}
	uc.cache.Set(ctx, out)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "professional_created",
		Entity:   "professional",
		EntityID: &prof.ID,
	})

	return out, nil
}

func newPortfolio(professionalID uint, in PortfolioInput) *models.Portfolio {
	return &models.Portfolio{
		ProfessionalID: professionalID,
		Description:    strings.TrimSpace(in.Description),
		Specialty:      strings.TrimSpace(in.Specialty),
		Experience:     strings.TrimSpace(in.Experience),
		Website:        strings.TrimSpace(in.Website),
		Instagram:      strings.TrimSpace(in.Instagram),
		TikTok:         strings.TrimSpace(in.TikTok),
		Facebook:       strings.TrimSpace(in.Facebook),
		Twitter:        strings.TrimSpace(in.Twitter),
	}
}
