package appointment

import (
	"context"
	"time"

	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

// Repository is the appointment persistence gateway. Getters return (nil, nil)
// when the row does not exist.
type Repository interface {
	// WithTx runs fn inside one transaction; any error rolls everything back.
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Professional --------
	// LockProfessional takes a row lock on the professional, serializing
	// bookings for it until the surrounding transaction ends.
	LockProfessional(
		ctx context.Context,
		professionalID uint,
	) (*models.Professional, error)

	GetProfessional(
		ctx context.Context,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Availability --------
	GetAvailability(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.Availability, error)

	// -------- Interval store --------
	FindOverlapping(
		ctx context.Context,
		professionalID uint,
		iv Interval,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// TransitionAppointment writes the status fields of ap only while the
	// stored row is still in status from, and reports whether it did.
	TransitionAppointment(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) (bool, error)

	ListForProfessional(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForClient(
		ctx context.Context,
		clientID uint,
		now time.Time,
		upcoming bool,
		page pagination.Page,
	) ([]models.Appointment, int64, error)

	ListExpired(
		ctx context.Context,
		before time.Time,
		limit int,
	) ([]models.Appointment, error)
}
