package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PedrohFolster/inkspiration/internal/config"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table. Order follows the foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Professional{},
		&models.Portfolio{},
		&models.PortfolioImage{},
		&models.Availability{},
		&models.Appointment{},
		&models.Rating{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// Speeds up the overlap lookup for the active agenda only.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_appointments_active_period
		ON appointments (professional_id, start_time, end_time)
		WHERE status = 'scheduled'
	`).Error; err != nil {
		return fmt.Errorf("failed to create partial index: %w", err)
	}

	zap.L().Info("db.migrated")
	return nil
}
