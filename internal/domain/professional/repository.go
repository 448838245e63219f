package professional

import (
	"context"
	"time"

	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

// Repository is the persistence gateway for the professional aggregate.
// Getters return (nil, nil) when the row does not exist.
type Repository interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Collaborators --------
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	GetAddress(ctx context.Context, addressID uint) (*models.Address, error)
	UpdateUserRole(ctx context.Context, userID uint, role string) error

	// -------- Professional --------
	ExistsByUser(ctx context.Context, userID uint) (bool, error)
	CreateProfessional(ctx context.Context, p *models.Professional) error
	GetProfessional(ctx context.Context, id uint) (*models.Professional, error)
	GetProfessionalByUser(ctx context.Context, userID uint) (*models.Professional, error)
	ListProfessionals(ctx context.Context, page pagination.Page) ([]models.Professional, int64, error)
	DeleteProfessional(ctx context.Context, id uint) error
	// CancelOpenAppointments cancels the professional's scheduled
	// appointments that have not ended by at, returning how many it touched.
	CancelOpenAppointments(ctx context.Context, professionalID uint, at time.Time) (int64, error)

	// -------- Portfolio --------
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolio(ctx context.Context, professionalID uint) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, professionalID uint) error
	AddPortfolioImage(ctx context.Context, img *models.PortfolioImage) error
	ListPortfolioImages(ctx context.Context, portfolioID uint) ([]models.PortfolioImage, error)
	DeletePortfolioImages(ctx context.Context, portfolioID uint) error

	// -------- Availability --------
	// ReplaceAvailability deletes the professional's current windows and
	// stores the given set.
	ReplaceAvailability(ctx context.Context, professionalID uint, set []models.Availability) error
	ListAvailability(ctx context.Context, professionalID uint) ([]models.Availability, error)
}
