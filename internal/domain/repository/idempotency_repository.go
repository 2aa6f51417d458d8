package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by client supplied idempotency keys
type IdempotencyRepository interface {
	// GetByKey returns the unexpired key of a user, or nil
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Save stores a response under its key, taking over an expired row with the same key
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired keys and returns how many were removed
	DeleteExpired(ctx context.Context) (int64, error)
}
