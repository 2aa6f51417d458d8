package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	domainRepo "github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) CreateWithSettings(ctx context.Context, user *entity.User, settings *entity.ReceiptSettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings.UserID = user.ID
		return tx.Create(settings).Error
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) DeleteWithData(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(OwnedBy(id)).Delete(&entity.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Scopes(OwnedBy(id)).Delete(&entity.ReceiptSettings{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(OwnedBy(id)).Delete(&entity.IdempotencyKey{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.User{}, "id = ?", id).Error
	})
}
