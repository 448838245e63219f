package rating

import (
	"context"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/rating"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

type GetRating struct {
	repo domain.Repository
}

func NewGetRating(repo domain.Repository) *GetRating {
	return &GetRating{repo: repo}
}

func (uc *GetRating) Execute(ctx context.Context, id uint) (*dto.RatingDTO, error) {
	rt, err := uc.repo.GetRating(ctx, id)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if rt == nil {
		return nil, httperr.ErrNotFound("rating", id)
	}
	out := dto.NewRatingDTO(*rt)
	return &out, nil
}

type ListRatings struct {
	repo domain.Repository
}

func NewListRatings(repo domain.Repository) *ListRatings {
	return &ListRatings{repo: repo}
}

func (uc *ListRatings) ByProfessional(
	ctx context.Context,
	professionalID uint,
	page pagination.Page,
) (pagination.Result[dto.RatingDTO], error) {
	rows, total, err := uc.repo.ListByProfessional(ctx, professionalID, page)
	return toPage(rows, total, page, err)
}

func (uc *ListRatings) ByClient(
	ctx context.Context,
	clientID uint,
	page pagination.Page,
) (pagination.Result[dto.RatingDTO], error) {
	rows, total, err := uc.repo.ListByClient(ctx, clientID, page)
	return toPage(rows, total, page, err)
}

func toPage(
	rows []models.Rating,
	total int64,
	page pagination.Page,
	err error,
) (pagination.Result[dto.RatingDTO], error) {
	if err != nil {
		return pagination.Result[dto.RatingDTO]{}, httperr.ErrTransaction(err)
	}
	return pagination.Map(pagination.NewResult(rows, total, page), dto.NewRatingDTO), nil
}
