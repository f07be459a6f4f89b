package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/dashboard"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/transaction"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// TransactionStore is the stateless remote adapter the ledger mirrors.
type TransactionStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)
	Add(ctx context.Context, input transaction.CreateTransactionInput) (*entity.Transaction, error)
	Update(ctx context.Context, input transaction.UpdateTransactionInput) (*entity.Transaction, error)
	Delete(ctx context.Context, input transaction.DeleteTransactionInput) (bool, error)
}

// Ledger is the in-memory transaction set of one user, shared by the user's
// sessions. It only changes after the store confirmed a mutation, and it is
// the only input of the dashboard projection.
type Ledger struct {
	userID uuid.UUID
	store  TransactionStore

	// loadMu is held shared by mutations and exclusively by Load, so a reload
	// never drops a mutation committed while the store was being read.
	loadMu sync.RWMutex

	mu       sync.RWMutex
	items    []*entity.Transaction // date desc, then created desc
	loaded   bool
	inFlight map[uuid.UUID]struct{}

	projector dashboard.Projector
}

// NewLedger creates an empty, not yet loaded ledger for userID.
func NewLedger(userID uuid.UUID, store TransactionStore) *Ledger {
	return &Ledger{
		userID:   userID,
		store:    store,
		items:    []*entity.Transaction{},
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// Load replaces the set with a fresh read from the store. A failed read
// leaves the set empty and is retried on the next access.
func (l *Ledger) Load(ctx context.Context) error {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	items, err := l.store.List(ctx, l.userID)
	if items == nil {
		items = []*entity.Transaction{}
	}

	l.mu.Lock()
	l.items = items
	l.loaded = err == nil
	l.mu.Unlock()

	return err
}

// Loaded reports whether the last Load succeeded.
func (l *Ledger) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Transactions returns a copy of the current set.
func (l *Ledger) Transactions(ctx context.Context) ([]*entity.Transaction, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return []*entity.Transaction{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.items), nil
}

// View projects the current set through q.
func (l *Ledger) View(ctx context.Context, q dashboard.ViewQuery) (dashboard.View, error) {
	err := l.ensureLoaded(ctx)

	l.mu.RLock()
	items := l.items
	l.mu.RUnlock()

	return l.projector.Project(l.userID, items, q), err
}

// Summary returns the totals of the whole set.
func (l *Ledger) Summary(ctx context.Context) (entity.FinancialSummary, error) {
	view, err := l.View(ctx, dashboard.DefaultViewQuery())
	return view.Summary, err
}

// Add stores a transaction for the ledger's user and inserts it on success.
func (l *Ledger) Add(ctx context.Context, input transaction.CreateTransactionInput) (*entity.Transaction, error) {
	input.UserID = l.userID

	l.loadMu.RLock()
	defer l.loadMu.RUnlock()

	created, err := l.store.Add(ctx, input)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.items = insertOrdered(removeByID(l.items, created.ID), created.Clone())
	l.mu.Unlock()

	return created, nil
}

// Update applies a partial update and replaces the local copy on success.
func (l *Ledger) Update(ctx context.Context, input transaction.UpdateTransactionInput) (*entity.Transaction, error) {
	input.UserID = l.userID

	release, err := l.acquire(input.TransactionID)
	if err != nil {
		return nil, err
	}
	defer release()

	l.loadMu.RLock()
	defer l.loadMu.RUnlock()

	updated, err := l.store.Update(ctx, input)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.items = insertOrdered(removeByID(l.items, updated.ID), updated.Clone())
	l.mu.Unlock()

	return updated, nil
}

// Delete removes a transaction and drops the local copy on success.
func (l *Ledger) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	release, err := l.acquire(id)
	if err != nil {
		return false, err
	}
	defer release()

	l.loadMu.RLock()
	defer l.loadMu.RUnlock()

	ok, err := l.store.Delete(ctx, transaction.DeleteTransactionInput{TransactionID: id, UserID: l.userID})
	if err != nil || !ok {
		return false, err
	}

	l.mu.Lock()
	l.items = removeByID(l.items, id)
	l.mu.Unlock()

	return true, nil
}

func (l *Ledger) ensureLoaded(ctx context.Context) error {
	if l.Loaded() {
		return nil
	}
	return l.Load(ctx)
}

// acquire marks id as being mutated. The returned func clears the mark.
func (l *Ledger) acquire(id uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.inFlight[id]; busy {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInFlight,
			"transaction is already being changed",
			domainerror.ErrMutationInFlight,
		)
	}
	l.inFlight[id] = struct{}{}

	return func() {
		l.mu.Lock()
		delete(l.inFlight, id)
		l.mu.Unlock()
	}, nil
}

// before reports whether a sorts ahead of b in store order.
func before(a, b *entity.Transaction) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// insertOrdered returns a new slice with t placed in store order.
func insertOrdered(items []*entity.Transaction, t *entity.Transaction) []*entity.Transaction {
	i := 0
	for i < len(items) && !before(t, items[i]) {
		i++
	}

	out := make([]*entity.Transaction, 0, len(items)+1)
	out = append(out, items[:i]...)
	out = append(out, t)
	return append(out, items[i:]...)
}

// removeByID returns a new slice without the transaction with the given id.
func removeByID(items []*entity.Transaction, id uuid.UUID) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(items))
	for _, t := range items {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func cloneAll(items []*entity.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, len(items))
	for i, t := range items {
		out[i] = t.Clone()
	}
	return out
}
