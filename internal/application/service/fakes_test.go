package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
)

type fakeTxnRepo struct {
	mu        sync.Mutex
	txns      []entity.Transaction
	createErr error
}

func (r *fakeTxnRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	r.txns = append(r.txns, *txn)
	return nil
}

func (r *fakeTxnRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.ID == id && t.UserID == userID {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) owned(userID uuid.UUID) []entity.Transaction {
	var out []entity.Transaction
	for _, t := range r.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeTxnRepo) List(_ context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.owned(userID)
	total := int64(len(all))
	p := params.Pagination
	from := p.Offset()
	if from > len(all) {
		from = len(all)
	}
	to := from + p.PerPage
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], total, nil
}

func (r *fakeTxnRepo) GetByDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Transaction
	for _, t := range r.owned(userID) {
		if !t.TransactionDate.Before(start) && !t.TransactionDate.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.txns {
		if t.ID == id && t.UserID == userID {
			r.txns = append(r.txns[:i], r.txns[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeTxnRepo) Stats(_ context.Context, userID uuid.UUID, since time.Time) (*repository.TransactionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.TransactionStats{}
	for _, t := range r.owned(userID) {
		if !since.IsZero() && t.CreatedAt.Before(since) {
			continue
		}
		stats.Count++
		stats.Revenue += t.TotalPrice
		stats.BilledWeight += t.BilledWeightKg
	}
	return stats, nil
}

type fakeSettingsRepo struct {
	mu      sync.Mutex
	byUser  map[uuid.UUID]entity.ReceiptSettings
	creates int
	updates int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byUser: map[uuid.UUID]entity.ReceiptSettings{}}
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.ReceiptSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, settings *entity.ReceiptSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	r.creates++
	r.byUser[settings.UserID] = *settings
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *entity.ReceiptSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.byUser[settings.UserID] = *settings
	return nil
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	settings *fakeSettingsRepo
}

func newFakeUserRepo(settings *fakeSettingsRepo) *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]entity.User{}, settings: settings}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) CreateWithSettings(ctx context.Context, user *entity.User, settings *entity.ReceiptSettings) error {
	if err := r.Create(ctx, user); err != nil {
		return err
	}
	settings.UserID = user.ID
	return r.settings.Create(ctx, settings)
}

func (r *fakeUserRepo) DeleteWithData(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	r.settings.mu.Lock()
	delete(r.settings.byUser, id)
	r.settings.mu.Unlock()
	return nil
}

// sampleWeighing is the 1500/1000 kg weighing used across the tests.
func sampleWeighing(userID uuid.UUID) *entity.Transaction {
	created := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)
	txn := &entity.Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		TransactionDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ItemType:         "Sawit",
		GrossWeightKg:    1500,
		TareWeightKg:     1000,
		DeductionPercent: 3,
		PricePerKg:       1000,
		AdminName:        "Rina",
		CustomerName:     "Budi Santoso",
		CreatedAt:        created,
	}
	txn.Recalculate()
	return txn
}
