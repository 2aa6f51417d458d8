package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/timbangcerdas/timbang-api/internal/config"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.ReceiptSettings{},
		&entity.Transaction{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the configured operator account together with its
// default receipt settings. Nothing is created when no admin is configured.
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	log.Println("Seeding default data...")

	var existing entity.User
	err := db.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		log.Printf("Admin user already exists: %s", admin.Username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	fullName := admin.FullName
	if fullName == "" {
		fullName = "Administrator"
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := &entity.User{
			Username: admin.Username,
			FullName: fullName,
			Password: string(hashedPassword),
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if err := tx.Create(entity.DefaultReceiptSettings(user.ID)).Error; err != nil {
			return fmt.Errorf("failed to create admin receipt settings: %w", err)
		}
		log.Printf("Admin user created: %s", admin.Username)
		return nil
	})
}
