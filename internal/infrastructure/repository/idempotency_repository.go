package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	domainRepo "github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

// GetByKey returns the live key of a user. Expired rows are treated as absent
// even before the janitor removes them.
func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(userID)).
		Where("key = ? AND expires_at > ?", key, time.Now()).
		First(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

// Save stores a response. An expired row still holding the same key is
// overwritten in place.
func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}, {Name: "user_id"}},
			Where:   clause.Where{Exprs: []clause.Expression{clause.Lt{Column: clause.Column{Table: "idempotency_keys", Name: "expires_at"}, Value: time.Now()}}},
			DoUpdates: clause.AssignmentColumns([]string{
				"endpoint", "response_code", "response_body", "created_at", "expires_at",
			}),
		}).
		Create(ikey).Error
}

// DeleteExpired removes expired keys and reports how many were removed.
func (r *idempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}
