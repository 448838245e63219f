package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

const professionalUserConstraint = "idx_professionals_user_id"

type ProfessionalGormRepository struct {
	db *gorm.DB
}

func NewProfessionalGormRepository(db *gorm.DB) *ProfessionalGormRepository {
	return &ProfessionalGormRepository{db: db}
}

func (r *ProfessionalGormRepository) WithTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProfessionalGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *ProfessionalGormRepository) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return first[models.User](r.db.WithContext(ctx), userID)
}

func (r *ProfessionalGormRepository) GetAddress(ctx context.Context, addressID uint) (*models.Address, error) {
	return first[models.Address](r.db.WithContext(ctx), addressID)
}

func (r *ProfessionalGormRepository) UpdateUserRole(ctx context.Context, userID uint, role string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *ProfessionalGormRepository) ExistsByUser(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// CreateProfessional maps the unique index on user_id to duplicate_profile,
// covering two creations racing past the ExistsByUser check.
func (r *ProfessionalGormRepository) CreateProfessional(ctx context.Context, p *models.Professional) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	if httperr.IsUniqueViolation(err, professionalUserConstraint) {
		return httperr.ErrConflict(httperr.CodeDuplicateProfile)
	}
	return err
}

func (r *ProfessionalGormRepository) GetProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	return first[models.Professional](r.db.WithContext(ctx), id)
}

func (r *ProfessionalGormRepository) GetProfessionalByUser(ctx context.Context, userID uint) (*models.Professional, error) {
	return first[models.Professional](r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *ProfessionalGormRepository) ListProfessionals(
	ctx context.Context,
	page pagination.Page,
) ([]models.Professional, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Professional{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Professional
	err := r.db.WithContext(ctx).
		Order("rating DESC, id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ProfessionalGormRepository) DeleteProfessional(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Professional{}, id).Error
}

func (r *ProfessionalGormRepository) CancelOpenAppointments(
	ctx context.Context,
	professionalID uint,
	at time.Time,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("professional_id = ? AND status = ? AND end_time > ?",
			professionalID, string(appointment.StatusScheduled), at).
		Updates(map[string]any{
			"status":       string(appointment.StatusCancelled),
			"cancelled_at": at,
		})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Portfolio
// --------------------------------------------------

func (r *ProfessionalGormRepository) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfessionalGormRepository) GetPortfolio(ctx context.Context, professionalID uint) (*models.Portfolio, error) {
	return first[models.Portfolio](r.db.WithContext(ctx).Where("professional_id = ?", professionalID))
}

func (r *ProfessionalGormRepository) DeletePortfolio(ctx context.Context, professionalID uint) error {
	return r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Delete(&models.Portfolio{}).Error
}

func (r *ProfessionalGormRepository) AddPortfolioImage(ctx context.Context, img *models.PortfolioImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *ProfessionalGormRepository) ListPortfolioImages(
	ctx context.Context,
	portfolioID uint,
) ([]models.PortfolioImage, error) {
	var out []models.PortfolioImage
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *ProfessionalGormRepository) DeletePortfolioImages(ctx context.Context, portfolioID uint) error {
	return r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Delete(&models.PortfolioImage{}).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ProfessionalGormRepository) ReplaceAvailability(
	ctx context.Context,
	professionalID uint,
	set []models.Availability,
) error {
	db := r.db.WithContext(ctx)

	if err := db.
		Where("professional_id = ?", professionalID).
		Delete(&models.Availability{}).Error; err != nil {
		return err
	}

	if len(set) == 0 {
		return nil
	}
	return db.Create(&set).Error
}

func (r *ProfessionalGormRepository) ListAvailability(
	ctx context.Context,
	professionalID uint,
) ([]models.Availability, error) {
	var out []models.Availability
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&out).Error
	return out, err
}

// Compile-time check
var _ domain.Repository = (*ProfessionalGormRepository)(nil)
