package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	domainRepo "github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptSettingsRepository struct {
	db *gorm.DB
}

// NewReceiptSettingsRepository creates a new receipt settings repository
func NewReceiptSettingsRepository(db *gorm.DB) domainRepo.ReceiptSettingsRepository {
	return &receiptSettingsRepository{db: db}
}

// GetByUserID retrieves settings by user ID
func (r *receiptSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReceiptSettings, error) {
	var settings entity.ReceiptSettings
	err := r.db.WithContext(ctx).Scopes(OwnedBy(userID)).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create creates new receipt settings
func (r *receiptSettingsRepository) Create(ctx context.Context, settings *entity.ReceiptSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// Update saves every column, including false booleans and empty strings
func (r *receiptSettingsRepository) Update(ctx context.Context, settings *entity.ReceiptSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
