package routes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
)

// memStore backs every repository interface with maps for HTTP tests.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	settings map[uuid.UUID]entity.ReceiptSettings
	txns     []entity.Transaction
	keys     map[string]entity.IdempotencyKey
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]entity.User{},
		settings: map[uuid.UUID]entity.ReceiptSettings{},
		keys:     map[string]entity.IdempotencyKey{},
	}
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) CreateWithSettings(ctx context.Context, u *entity.User, settings *entity.ReceiptSettings) error {
	if err := r.Create(ctx, u); err != nil {
		return err
	}
	settings.UserID = u.ID
	return memSettings(r).Create(ctx, settings)
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) DeleteWithData(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	delete(r.s.settings, id)
	kept := r.s.txns[:0]
	for _, t := range r.s.txns {
		if t.UserID != id {
			kept = append(kept, t)
		}
	}
	r.s.txns = kept
	return nil
}

type memSettings struct{ s *memStore }

func (r memSettings) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.ReceiptSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.settings[userID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r memSettings) Create(_ context.Context, v *entity.ReceiptSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.s.settings[v.UserID] = *v
	return nil
}

func (r memSettings) Update(_ context.Context, v *entity.ReceiptSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[v.UserID] = *v
	return nil
}

type memTxns struct{ s *memStore }

func (r memTxns) owned(userID uuid.UUID) []entity.Transaction {
	var out []entity.Transaction
	for _, t := range r.s.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r memTxns) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.CreatedAt = time.Now()
	r.s.txns = append(r.s.txns, *t)
	return nil
}

func (r memTxns) GetByID(_ context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.txns {
		if t.ID == id && t.UserID == userID {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r memTxns) List(_ context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.owned(userID)
	from := params.Pagination.Offset()
	if from > len(all) {
		from = len(all)
	}
	to := from + params.Pagination.PerPage
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], int64(len(all)), nil
}

func (r memTxns) GetByDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Transaction
	for _, t := range r.owned(userID) {
		if !t.TransactionDate.Before(start) && !t.TransactionDate.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r memTxns) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.txns {
		if t.ID == id && t.UserID == userID {
			r.s.txns = append(r.s.txns[:i], r.s.txns[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memTxns) Stats(_ context.Context, userID uuid.UUID, since time.Time) (*repository.TransactionStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := &repository.TransactionStats{}
	for _, t := range r.owned(userID) {
		if since.IsZero() || !t.CreatedAt.Before(since) {
			stats.Count++
			stats.Revenue += t.TotalPrice
			stats.BilledWeight += t.BilledWeightKg
		}
	}
	return stats, nil
}

type memKeys struct{ s *memStore }

func (r memKeys) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k, ok := r.s.keys[userID.String()+"/"+key]
	if !ok || k.IsExpired() {
		return nil, nil
	}
	return &k, nil
}

func (r memKeys) Save(_ context.Context, k *entity.IdempotencyKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := k.UserID.String() + "/" + k.Key
	if existing, ok := r.s.keys[id]; ok && !existing.IsExpired() {
		return nil
	}
	r.s.keys[id] = *k
	return nil
}

func (r memKeys) DeleteExpired(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, k := range r.s.keys {
		if k.IsExpired() {
			delete(r.s.keys, id)
			n++
		}
	}
	return n, nil
}
