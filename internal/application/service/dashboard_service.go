package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/pagination"
)

const recentTransactionCount = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	txnRepo repository.TransactionRepository
	loc     *time.Location
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(txnRepo repository.TransactionRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{txnRepo: txnRepo, loc: loc}
}

// PeriodStats is the transaction count and revenue of one period
type PeriodStats struct {
	Count          int64   `json:"count"`
	Revenue        float64 `json:"revenue"`
	BilledWeightKg float64 `json:"billed_weight_kg"`
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Total              PeriodStats          `json:"total"`
	Today              PeriodStats          `json:"today"`
	Week               PeriodStats          `json:"week"`
	Month              PeriodStats          `json:"month"`
	RecentTransactions []entity.Transaction `json:"recent_transactions"`
}

// GetStats returns all-time, today, last 7 days and last 30 days figures
// together with the most recent transactions.
func (s *DashboardService) GetStats(ctx context.Context, userID uuid.UUID, now time.Time) (*DashboardStats, error) {
	local := now.In(s.loc)
	startOfToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	stats := &DashboardStats{}
	periods := []struct {
		since time.Time
		dst   *PeriodStats
	}{
		{time.Time{}, &stats.Total},
		{startOfToday, &stats.Today},
		{local.AddDate(0, 0, -7), &stats.Week},
		{local.AddDate(0, 0, -30), &stats.Month},
	}

	for _, p := range periods {
		result, err := s.txnRepo.Stats(ctx, userID, p.since)
		if err != nil {
			return nil, apperror.Wrap(apperror.ErrStorage, err)
		}
		*p.dst = PeriodStats{Count: result.Count, Revenue: result.Revenue, BilledWeightKg: result.BilledWeight}
	}

	recent, _, err := s.txnRepo.List(ctx, userID, &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: recentTransactionCount},
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if recent == nil {
		recent = []entity.Transaction{}
	}
	stats.RecentTransactions = recent

	return stats, nil
}
