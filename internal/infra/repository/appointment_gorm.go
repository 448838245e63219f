package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

type AppointmentGormRepository struct {
	db   *gorm.DB
	mode domain.OverlapMode
}

func NewAppointmentGormRepository(db *gorm.DB, mode domain.OverlapMode) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, mode: mode}
}

func (r *AppointmentGormRepository) WithTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx, mode: r.mode})
	})
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) LockProfessional(
	ctx context.Context,
	professionalID uint,
) (*models.Professional, error) {
	return first[models.Professional](
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		professionalID,
	)
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	professionalID uint,
) (*models.Professional, error) {
	return first[models.Professional](r.db.WithContext(ctx), professionalID)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAvailability(
	ctx context.Context,
	professionalID uint,
	weekday int,
) (*models.Availability, error) {
	return first[models.Availability](
		r.db.WithContext(ctx).
			Where("professional_id = ? AND weekday = ?", professionalID, weekday),
	)
}

// --------------------------------------------------
// Interval store
// --------------------------------------------------

func (r *AppointmentGormRepository) FindOverlapping(
	ctx context.Context,
	professionalID uint,
	iv domain.Interval,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.overlapping(r.db.WithContext(ctx), professionalID, iv).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// overlapping scopes q to the professional's active appointments that
// collide with iv under the configured overlap mode.
func (r *AppointmentGormRepository) overlapping(q *gorm.DB, professionalID uint, iv domain.Interval) *gorm.DB {
	q = q.Where("professional_id = ? AND status IN ?", professionalID, domain.ActiveStatuses)

	if r.mode == domain.OverlapLegacy {
		q = q.Where(
			"(start_time BETWEEN ? AND ?) OR (end_time BETWEEN ? AND ?)",
			iv.Start, iv.End, iv.Start, iv.End,
		)
	} else {
		q = q.Where("start_time < ? AND end_time > ?", iv.End, iv.Start)
	}
	return q.Order("start_time ASC")
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {
	return first[models.Appointment](r.db.WithContext(ctx), appointmentID)
}

func (r *AppointmentGormRepository) TransitionAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AppointmentGormRepository) ListForProfessional(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND start_time >= ? AND start_time < ?",
			professionalID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
	now time.Time,
	upcoming bool,
	page pagination.Page,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ?", clientID)

	order := "start_time DESC"
	if upcoming {
		q = q.Where("end_time > ?", now)
		order = "start_time ASC"
	} else {
		q = q.Where("end_time <= ?", now)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.Session(&gorm.Session{}).
		Order(order).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListExpired(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", string(domain.StatusScheduled), before).
		Order("end_time ASC").
		Limit(limit).
		Find(&apps).Error

	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
