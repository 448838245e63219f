package professional

import (
	"context"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

type ListProfessionals struct {
	repo domain.Repository
}

func NewListProfessionals(repo domain.Repository) *ListProfessionals {
	return &ListProfessionals{repo: repo}
}

func (uc *ListProfessionals) Execute(
	ctx context.Context,
	page pagination.Page,
) (pagination.Result[dto.ProfessionalSummaryDTO], error) {

	rows, total, err := uc.repo.ListProfessionals(ctx, page)
	if err != nil {
		return pagination.Result[dto.ProfessionalSummaryDTO]{}, httperr.ErrTransaction(err)
	}

	out := make([]dto.ProfessionalSummaryDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.NewProfessionalSummaryDTO(p))
	}
	return pagination.NewResult(out, total, page), nil
}
