package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/optimistic"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// account is the state shared by every live session of one user, so a
// change made through one login is seen by all of them.
type account struct {
	id         uuid.UUID
	ledger     *Ledger
	background *optimistic.Value[entity.DashboardBackground]

	mu            sync.RWMutex
	user          entity.User
	userLoaded    bool
	backgroundErr error

	// boot serializes bootstrap runs; booted is guarded by it.
	boot   sync.Mutex
	booted bool

	// refs counts live sessions; guarded by Registry.mu.
	refs int
}

func newAccount(user entity.User, store TransactionStore) *account {
	return &account{
		id:         user.ID,
		ledger:     NewLedger(user.ID, store),
		background: optimistic.New(user.EffectiveBackground()),
		user:       user,
	}
}

func (a *account) getUser() entity.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *account) setUser(user entity.User) {
	a.mu.Lock()
	a.user = user
	a.userLoaded = true
	a.mu.Unlock()
}

func (a *account) hasUser() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userLoaded
}

func (a *account) backgroundError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.backgroundErr
}

func (a *account) setBackgroundError(err error) {
	a.mu.Lock()
	a.backgroundErr = err
	a.mu.Unlock()
}
