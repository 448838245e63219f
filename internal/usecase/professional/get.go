package professional

import (
	"context"

	"github.com/PedrohFolster/inkspiration/internal/cache"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/storage"
)

// GetProfessional loads the whole aggregate, serving from cache when it can.
type GetProfessional struct {
	repo  domain.Repository
	cache cache.ProfessionalCache
	store storage.ObjectStore
}

func NewGetProfessional(
	repo domain.Repository,
	cache cache.ProfessionalCache,
	store storage.ObjectStore,
) *GetProfessional {
	return &GetProfessional{repo: repo, cache: cache, store: store}
}

func (uc *GetProfessional) Execute(ctx context.Context, id uint) (*dto.ProfessionalDTO, error) {
	if p, ok := uc.cache.Get(ctx, id); ok {
		return p, nil
	}

	prof, err := uc.repo.GetProfessional(ctx, id)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if prof == nil {
		return nil, httperr.ErrNotFound("professional", id)
	}

	return uc.load(ctx, prof)
}

// ByUser resolves the profile owned by userID.
func (uc *GetProfessional) ByUser(ctx context.Context, userID uint) (*dto.ProfessionalDTO, error) {
	prof, err := uc.repo.GetProfessionalByUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if prof == nil {
		return nil, httperr.ErrNotFound("professional", userID)
	}

	if p, ok := uc.cache.Get(ctx, prof.ID); ok {
		return p, nil
	}
	return uc.load(ctx, prof)
}

func (uc *GetProfessional) load(ctx context.Context, prof *models.Professional) (*dto.ProfessionalDTO, error) {
	portfolio, err := uc.repo.GetPortfolio(ctx, prof.ID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	set, err := uc.repo.ListAvailability(ctx, prof.ID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	images := []dto.ImageDTO{}
	if portfolio != nil {
		rows, err := uc.repo.ListPortfolioImages(ctx, portfolio.ID)
		if err != nil {
			return nil, httperr.ErrTransaction(err)
		}
		for _, img := range rows {
			images = append(images, dto.ImageDTO{ID: img.ID, URL: uc.url(img.ObjectKey)})
		}
	}

	out := &dto.ProfessionalDTO{
		ID:           prof.ID,
		UserID:       prof.UserID,
		AddressID:    prof.AddressID,
		Rating:       prof.Rating,
		RatingsCount: prof.RatingsCount,
		Portfolio:    dto.NewPortfolioDTO(portfolio),
		Availability: dto.NewAvailabilityDTOs(set),
		Images:       images,
	}

	uc.cache.Set(ctx, out)
	return out, nil
}

func (uc *GetProfessional) url(key string) string {
	if uc.store == nil {
		return key
	}
	return uc.store.URL(key)
}
