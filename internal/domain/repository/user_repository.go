package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// CreateWithSettings stores a new user and its default receipt settings atomically.
	CreateWithSettings(ctx context.Context, user *entity.User, settings *entity.ReceiptSettings) error
	// DeleteWithData removes the user's transactions and settings, then the user.
	DeleteWithData(ctx context.Context, id uuid.UUID) error
}
