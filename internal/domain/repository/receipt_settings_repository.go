package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// ReceiptSettingsRepository defines the interface for receipt settings data access
type ReceiptSettingsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReceiptSettings, error)
	Create(ctx context.Context, settings *entity.ReceiptSettings) error
	Update(ctx context.Context, settings *entity.ReceiptSettings) error
}
