package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/rating"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

const ratingAppointmentConstraint = "idx_ratings_appointment_id"

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) WithTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RatingGormRepository{db: tx})
	})
}

func (r *RatingGormRepository) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return first[models.Appointment](r.db.WithContext(ctx), appointmentID)
}

func (r *RatingGormRepository) LockProfessional(ctx context.Context, professionalID uint) (*models.Professional, error) {
	return first[models.Professional](
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		professionalID,
	)
}

func (r *RatingGormRepository) ScoreTotals(ctx context.Context, professionalID uint) (int64, int64, error) {
	var row struct {
		Total int64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(SUM(score), 0) AS total, COUNT(*) AS count").
		Where("professional_id = ?", professionalID).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *RatingGormRepository) UpdateProfessionalRating(
	ctx context.Context,
	professionalID uint,
	avg decimal.Decimal,
	count int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ?", professionalID).
		Updates(map[string]any{
			"rating":        avg,
			"ratings_count": count,
		}).Error
}

func (r *RatingGormRepository) ExistsForAppointment(ctx context.Context, appointmentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *RatingGormRepository) CreateRating(ctx context.Context, rt *models.Rating) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rt).Error
	if httperr.IsUniqueViolation(err, ratingAppointmentConstraint) {
		return httperr.ErrConflict(httperr.CodeAlreadyRated)
	}
	return err
}

func (r *RatingGormRepository) GetRating(ctx context.Context, id uint) (*models.Rating, error) {
	return first[models.Rating](r.db.WithContext(ctx), id)
}

func (r *RatingGormRepository) ListByProfessional(
	ctx context.Context,
	professionalID uint,
	page pagination.Page,
) ([]models.Rating, int64, error) {
	return r.list(r.db.WithContext(ctx).Where("professional_id = ?", professionalID), page)
}

func (r *RatingGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
	page pagination.Page,
) ([]models.Rating, int64, error) {
	return r.list(r.db.WithContext(ctx).Where("client_id = ?", clientID), page)
}

func (r *RatingGormRepository) list(
	q *gorm.DB,
	page pagination.Page,
) ([]models.Rating, int64, error) {

	var total int64
	if err := q.Session(&gorm.Session{}).Model(&models.Rating{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Rating
	err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Compile-time check
var _ domain.Repository = (*RatingGormRepository)(nil)
