package appointment

import (
	"context"
	"time"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
)

// hasConflict reports whether any active appointment of the professional
// overlaps iv. A conflict is an answer, not an error; only storage failures
// are returned. Degenerate intervals are evaluated as given.
func hasConflict(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	iv domain.Interval,
) (bool, error) {
	apps, err := repo.FindOverlapping(ctx, professionalID, iv)
	if err != nil {
		return false, err
	}
	return len(apps) > 0, nil
}

type HasConflict struct {
	repo domain.Repository
}

func NewHasConflict(repo domain.Repository) *HasConflict {
	return &HasConflict{repo: repo}
}

func (uc *HasConflict) Execute(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	prof, err := uc.repo.GetProfessional(ctx, professionalID)
	if err != nil {
		return false, httperr.ErrTransaction(err)
	}
	if prof == nil {
		return false, httperr.ErrNotFound("professional", professionalID)
	}

	conflict, err := hasConflict(ctx, uc.repo, professionalID, domain.Interval{Start: start, End: end})
	if err != nil {
		return false, httperr.ErrTransaction(err)
	}
	return conflict, nil
}
