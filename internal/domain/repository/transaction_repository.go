package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/pkg/pagination"
)

// ErrNotFound is returned by deletes that matched no row.
var ErrNotFound = errors.New("repository: record not found")

// TransactionFilterParams narrows a transaction history listing
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches customer name or item type
	ItemType   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionStats aggregates transaction counts and revenue since a point in time
type TransactionStats struct {
	Count        int64   `json:"count"`
	Revenue      float64 `json:"revenue"`
	BilledWeight float64 `json:"billed_weight_kg"`
}

// TransactionRepository defines the interface for transaction data operations.
// Every read and delete is scoped to the owning user.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// GetByDateRange returns transactions dated between start and end inclusive, newest first.
	GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// Stats aggregates transactions created at or after since. A zero since covers all time.
	Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*TransactionStats, error)
}
