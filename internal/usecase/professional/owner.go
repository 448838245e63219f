package professional

import (
	"context"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

// ownedBy loads the professional and requires actorID to be its user.
func ownedBy(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	actorID uint,
) (*models.Professional, error) {

	prof, err := repo.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, httperr.ErrNotFound("professional", professionalID)
	}
	if prof.UserID != actorID {
		return nil, httperr.ErrForbidden()
	}
	return prof, nil
}
