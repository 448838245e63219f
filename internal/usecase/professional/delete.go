package professional

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/storage"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
)

// DeleteProfessional removes the profile with its portfolio, images and
// availability. Appointments that have not ended are cancelled; past
// appointments and ratings stay as history.
type DeleteProfessional struct {
	repo  domain.Repository
	cache cache.ProfessionalCache
	store storage.ObjectStore
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewDeleteProfessional(
	repo domain.Repository,
	cache cache.ProfessionalCache,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
	loc *time.Location,
) *DeleteProfessional {
	return &DeleteProfessional{
		repo:  repo,
		cache: cache,
		store: store,
		audit: audit,
		now:   timezone.SystemClock(loc),
	}
}

func (uc *DeleteProfessional) Execute(ctx context.Context, actorID, professionalID uint) error {
	var (
		keys      []string
		cancelled int64
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		prof, err := ownedBy(ctx, tx, professionalID, actorID)
		if err != nil {
			return err
		}

		portfolio, err := tx.GetPortfolio(ctx, prof.ID)
		if err != nil {
			return err
		}
		if portfolio != nil {
			images, err := tx.ListPortfolioImages(ctx, portfolio.ID)
			if err != nil {
				return err
			}
			for _, img := range images {
				keys = append(keys, img.ObjectKey)
			}
			if err := tx.DeletePortfolioImages(ctx, portfolio.ID); err != nil {
				return err
			}
			if err := tx.DeletePortfolio(ctx, prof.ID); err != nil {
				return err
			}
		}

		if err := tx.ReplaceAvailability(ctx, prof.ID, nil); err != nil {
			return err
		}
		if cancelled, err = tx.CancelOpenAppointments(ctx, prof.ID, uc.now()); err != nil {
			return err
		}
		if err := tx.DeleteProfessional(ctx, prof.ID); err != nil {
			return err
		}
		return tx.UpdateUserRole(ctx, prof.UserID, models.RoleClient)
	})
	if err != nil {
		return httperr.ErrTransaction(err)
	}

	uc.cache.Invalidate(ctx, professionalID)

	if cancelled > 0 {
		zap.L().Info("open appointments cancelled with profile",
			zap.Uint("professional_id", professionalID),
			zap.Int64("count", cancelled),
		)
	}

	// Blob cleanup is best effort once the rows are gone.
	if uc.store != nil {
		for _, key := range keys {
			if err := uc.store.Delete(ctx, key); err != nil {
				zap.L().Warn("portfolio image cleanup failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "professional_deleted",
		Entity:   "professional",
		EntityID: &professionalID,
	})

	return nil
}
