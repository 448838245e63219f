package professional

import (
	"context"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
)

// ExistsProfile answers whether userID already has a professional profile.
// It is a pure read.
type ExistsProfile struct {
	repo domain.Repository
}

func NewExistsProfile(repo domain.Repository) *ExistsProfile {
	return &ExistsProfile{repo: repo}
}

func (uc *ExistsProfile) Execute(ctx context.Context, userID uint) (bool, error) {
	exists, err := uc.repo.ExistsByUser(ctx, userID)
	if err != nil {
		return false, httperr.ErrTransaction(err)
	}
	return exists, nil
}
