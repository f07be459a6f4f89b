package transaction

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// fakeTransactionRepository is an in-memory TransactionRepository with
// injectable failures.
type fakeTransactionRepository struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*entity.Transaction
	calls int

	findErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeTransactionRepository(rows ...*entity.Transaction) *fakeTransactionRepository {
	r := &fakeTransactionRepository{rows: map[uuid.UUID]*entity.Transaction{}}
	for _, t := range rows {
		r.rows[t.ID] = t.Clone()
	}
	return r
}

func (r *fakeTransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[t.ID] = t.Clone()
	return nil
}

func (r *fakeTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	t, ok := r.rows[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return t.Clone(), nil
}

func (r *fakeTransactionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*entity.Transaction
	for _, t := range r.rows {
		if t.UserID == userID {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeTransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.updateErr != nil {
		return r.updateErr
	}
	r.rows[t.ID] = t.Clone()
	return nil
}

func (r *fakeTransactionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeTransactionRepository) DistinctCategories(ctx context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, t := range r.rows {
		if t.UserID == userID && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepository) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
