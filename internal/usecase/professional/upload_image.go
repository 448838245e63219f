package professional

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/storage"
)

type UploadPortfolioImage struct {
	repo  domain.Repository
	cache cache.ProfessionalCache
	store storage.ObjectStore
	audit *audit.Dispatcher
}

func NewUploadPortfolioImage(
	repo domain.Repository,
	cache cache.ProfessionalCache,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
) *UploadPortfolioImage {
	return &UploadPortfolioImage{repo: repo, cache: cache, store: store, audit: audit}
}

// Execute transcodes the upload to WebP, stores the blob and records it in
// the professional's portfolio.
func (uc *UploadPortfolioImage) Execute(
	ctx context.Context,
	actorID uint,
	professionalID uint,
	file io.Reader,
) (*dto.ImageDTO, error) {

	if uc.store == nil {
		return nil, httperr.ErrInvalidArgument("storage", "image storage is not configured")
	}

	if _, err := ownedBy(ctx, uc.repo, professionalID, actorID); err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	portfolio, err := uc.repo.GetPortfolio(ctx, professionalID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if portfolio == nil {
		return nil, httperr.ErrNotFound("portfolio", professionalID)
	}

	body, err := storage.ToWebP(file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, httperr.ErrInvalidArgument("image", "must be a png, jpeg or webp image")
		}
		return nil, err
	}

	key := storage.PortfolioKey(professionalID, uuid.NewString())
	if err := uc.store.Put(ctx, key, storage.ContentTypeWebP, body); err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	img := &models.PortfolioImage{
		PortfolioID: portfolio.ID,
		ObjectKey:   key,
		ContentType: storage.ContentTypeWebP,
	}
	if err := uc.repo.AddPortfolioImage(ctx, img); err != nil {
		if derr := uc.store.Delete(ctx, key); derr != nil {
			zap.L().Warn("portfolio image rollback failed", zap.String("key", key), zap.Error(derr))
		}
		return nil, httperr.ErrTransaction(err)
	}

	uc.cache.Invalidate(ctx, professionalID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "portfolio_image_added",
		Entity:   "portfolio_image",
		EntityID: &img.ID,
	})

	return &dto.ImageDTO{ID: img.ID, URL: uc.store.URL(key)}, nil
}
