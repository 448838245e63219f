package rating

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

// Repository is the rating persistence gateway. Getters return (nil, nil)
// when the row does not exist.
type Repository interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error)
	// LockProfessional returns the professional row under a row lock so
	// concurrent ratings fold into the average one at a time.
	LockProfessional(ctx context.Context, professionalID uint) (*models.Professional, error)
	// ScoreTotals sums the stored scores of a professional.
	ScoreTotals(ctx context.Context, professionalID uint) (sum int64, count int64, err error)
	UpdateProfessionalRating(ctx context.Context, professionalID uint, avg decimal.Decimal, count int) error

	ExistsForAppointment(ctx context.Context, appointmentID uint) (bool, error)
	CreateRating(ctx context.Context, r *models.Rating) error
	GetRating(ctx context.Context, id uint) (*models.Rating, error)
	ListByProfessional(ctx context.Context, professionalID uint, page pagination.Page) ([]models.Rating, int64, error)
	ListByClient(ctx context.Context, clientID uint, page pagination.Page) ([]models.Rating, int64, error)
}
