package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Migrate creates the schema. The partial unique index is the last line of
// defence against two active bookings on the same branch/staff/date/time; it
// is written in SQL understood by both Postgres and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Service{},
		&models.Staff{},
		&models.Promotion{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.ContactSubmission{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot
		ON bookings (branch_id, COALESCE(staff_id, 0), booking_date, booking_time)
		WHERE status <> 'cancelled'
	`).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}

	return nil
}
