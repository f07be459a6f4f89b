package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/transaction"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

type fakeStore struct {
	mu      sync.Mutex
	items   []*entity.Transaction
	listErr error
	addErr  error
	updErr  error
	delErr  error
	calls   int

	// blockUpdate, when set, is received from before Update returns.
	blockUpdate chan struct{}
	updating    chan struct{}

	// blockList holds the next List after its snapshot was taken.
	blockList chan struct{}
	listing   chan struct{}
}

func (f *fakeStore) List(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	f.mu.Lock()
	listing, block := f.listing, f.blockList
	f.listing, f.blockList = nil, nil
	f.mu.Unlock()

	out, err := f.list(userID)
	if listing != nil {
		close(listing)
	}
	if block != nil {
		<-block
	}
	return out, err
}

func (f *fakeStore) list(userID uuid.UUID) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return []*entity.Transaction{}, f.listErr
	}
	out := []*entity.Transaction{}
	for _, t := range f.items {
		if t.UserID == userID {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (f *fakeStore) Add(ctx context.Context, in transaction.CreateTransactionInput) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.addErr != nil {
		return nil, f.addErr
	}
	v, err := entity.CoerceValue(in.Value)
	if err != nil {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeInvalidTransactionValue, "bad value", err)
	}
	txType, _ := entity.ParseTransactionType(in.Type)
	t := entity.NewTransaction(in.UserID, entity.TransactionDraft{
		Date: in.Date, Description: in.Description, Category: in.Category, Type: txType, Value: v,
	})
	f.items = append(f.items, t.Clone())
	return t, nil
}

func (f *fakeStore) Update(ctx context.Context, in transaction.UpdateTransactionInput) (*entity.Transaction, error) {
	if f.updating != nil {
		close(f.updating)
	}
	if f.blockUpdate != nil {
		<-f.blockUpdate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.updErr != nil {
		return nil, f.updErr
	}
	for _, t := range f.items {
		if t.ID == in.TransactionID {
			if in.Description != nil {
				t.Description = *in.Description
			}
			t.UpdatedAt = t.UpdatedAt.Add(time.Second)
			return t.Clone(), nil
		}
	}
	return nil, domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "not found", domainerror.ErrTransactionNotFound)
}

func (f *fakeStore) Delete(ctx context.Context, in transaction.DeleteTransactionInput) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.delErr != nil {
		return false, f.delErr
	}
	for i, t := range f.items {
		if t.ID == in.TransactionID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUsers struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entity.User
	bgErr       error
	findErr     error
	backgrounds map[uuid.UUID]entity.DashboardBackground
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{users: map[uuid.UUID]*entity.User{}, backgrounds: map[uuid.UUID]entity.DashboardBackground{}}
	for _, u := range users {
		f.users[u.ID] = u
		if u.Background != nil {
			f.backgrounds[u.ID] = *u.Background
		}
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) FindBackground(ctx context.Context, userID uuid.UUID) (*entity.DashboardBackground, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bgErr != nil {
		return nil, f.bgErr
	}
	bg, ok := f.backgrounds[userID]
	if !ok {
		return nil, nil
	}
	return &bg, nil
}

func (f *fakeUsers) UpdateBackground(ctx context.Context, userID uuid.UUID, bg entity.DashboardBackground) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bgErr != nil {
		return f.bgErr
	}
	f.backgrounds[userID] = bg
	return nil
}

// memoryCache is a LocalCache over a map of JSON documents.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

var errRemote = errors.New("remote unavailable")
