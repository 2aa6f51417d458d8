package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	domainRepo "github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/pkg/pagination"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(userID)).
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(OwnedBy(userID), Search(params.Search), DateBetween(params.StartDate, params.EndDate))

	if params.ItemType != "" {
		query = query.Where("item_type = ?", params.ItemType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Newest).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&txns).Error

	return txns, total, err
}

func (r *transactionRepository) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(userID), DateBetween(&start, &end), Newest).
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(userID)).
		Delete(&entity.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*domainRepo.TransactionStats, error) {
	var stats domainRepo.TransactionStats

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).Scopes(OwnedBy(userID))
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	err := query.Select(`
		COUNT(*) as count,
		COALESCE(SUM(total_price), 0) as revenue,
		COALESCE(SUM(billed_weight_kg), 0) as billed_weight
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
