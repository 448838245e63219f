package professional

import (
	"context"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
)

// ReplaceAvailability swaps the whole weekly schedule. Same token rules as
// onboarding: one malformed token rejects the set, later tokens win per weekday.
type ReplaceAvailability struct {
	repo  domain.Repository
	cache cache.ProfessionalCache
	audit *audit.Dispatcher
}

func NewReplaceAvailability(
	repo domain.Repository,
	cache cache.ProfessionalCache,
	audit *audit.Dispatcher,
) *ReplaceAvailability {
	return &ReplaceAvailability{repo: repo, cache: cache, audit: audit}
}

func (uc *ReplaceAvailability) Execute(
	ctx context.Context,
	actorID uint,
	professionalID uint,
	tokens []string,
) ([]dto.AvailabilityDTO, error) {

	set, err := domain.BuildAvailability(professionalID, tokens)
	if err != nil {
		return nil, err
	}

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if _, err := ownedBy(ctx, tx, professionalID, actorID); err != nil {
			return err
		}
		return tx.ReplaceAvailability(ctx, professionalID, set)
	})
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	uc.cache.Invalidate(ctx, professionalID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "availability_replaced",
		Entity:   "professional",
		EntityID: &professionalID,
		Metadata: tokens,
	})

	return dto.NewAvailabilityDTOs(set), nil
}
