package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// DefaultIdleTimeout is how long a session lives without requests.
const DefaultIdleTimeout = 30 * time.Minute

// endedRetention outlives any access token.
const endedRetention = 24 * time.Hour

// Registry owns the lifecycle of sessions.
type Registry struct {
	users    adapter.UserRepository
	store    TransactionStore
	cache    adapter.LocalCache
	cacheTTL time.Duration

	mu          sync.RWMutex
	idleTimeout time.Duration
	sessions    map[uuid.UUID]*Session
	accounts    map[uuid.UUID]*account
	// ended remembers logged out sessions so their access tokens cannot rebuild them.
	ended map[uuid.UUID]time.Time
}

// NewRegistry creates a new Registry. cache may be nil.
func NewRegistry(users adapter.UserRepository, store TransactionStore, cache adapter.LocalCache, cacheTTL time.Duration) *Registry {
	return &Registry{
		users:       users,
		store:       store,
		cache:       cache,
		cacheTTL:    cacheTTL,
		idleTimeout: DefaultIdleTimeout,
		sessions:    make(map[uuid.UUID]*Session),
		accounts:    make(map[uuid.UUID]*account),
		ended:       make(map[uuid.UUID]time.Time),
	}
}

// SetIdleTimeout changes how long an unused session is kept. Zero keeps
// sessions until logout.
func (r *Registry) SetIdleTimeout(d time.Duration) {
	r.mu.Lock()
	r.idleTimeout = d
	r.mu.Unlock()
}

// Start creates a new session for a user who just logged in or registered.
// The user's transaction set and background are shared with their other
// live sessions.
func (r *Registry) Start(ctx context.Context, user *entity.User) (*Session, error) {
	r.Sweep(time.Now())

	a := r.acquire(*user)
	a.setUser(*user)

	if err := r.bootstrap(ctx, a); err != nil {
		r.release(a)
		return nil, err
	}

	s := newSession(uuid.New(), a)

	r.cacheSet(ctx, identityKey(user.ID), user.Identity())
	r.cacheSet(ctx, sessionKey(s.ID), cachedSession{ID: s.ID, UserID: user.ID, StartedAt: s.StartedAt})

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s, nil
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(sessionID uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if ok {
		s.touch(time.Now())
	}
	return s, ok
}

// Resolve returns the live session or rebuilds it from the store when the
// process restarted, or the session idled out, since the token was issued.
func (r *Registry) Resolve(ctx context.Context, sessionID, userID uuid.UUID) (*Session, error) {
	if s, ok := r.Get(sessionID); ok {
		if s.UserID() != userID {
			return nil, noSession()
		}
		return s, nil
	}
	if r.wasEnded(sessionID) {
		return nil, noSession()
	}

	a := r.acquire(entity.User{ID: userID})
	if err := r.bootstrap(ctx, a); err != nil {
		r.release(a)
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[sessionID]; ok {
		r.releaseLocked(a)
		if existing.UserID() != userID {
			return nil, noSession()
		}
		return existing, nil
	}
	if _, ended := r.ended[sessionID]; ended {
		r.releaseLocked(a)
		return nil, noSession()
	}

	s := newSession(sessionID, a)
	r.sessions[sessionID] = s

	return s, nil
}

// End discards a session and its local cache record. The cached identity
// is dropped with the user's last session.
func (r *Registry) End(ctx context.Context, sessionID uuid.UUID) {
	now := time.Now()

	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	lastOfUser := false
	if ok {
		delete(r.sessions, sessionID)
		r.releaseLocked(s.account)
		_, stillShared := r.accounts[s.UserID()]
		lastOfUser = !stillShared
	}
	r.pruneEndedLocked(now)
	r.ended[sessionID] = now
	r.mu.Unlock()

	keys := []string{sessionKey(sessionID)}
	if lastOfUser {
		keys = append(keys, identityKey(s.UserID()))
	}
	r.cacheDelete(ctx, keys...)
}

// Sweep evicts sessions idle for longer than the idle timeout and forgets
// old logouts. It returns the number of evicted sessions.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var expired []string
	if r.idleTimeout > 0 {
		for id, s := range r.sessions {
			if s.idleFor(now) <= r.idleTimeout {
				continue
			}
			delete(r.sessions, id)
			r.releaseLocked(s.account)
			expired = append(expired, sessionKey(id))
		}
	}
	r.pruneEndedLocked(now)
	r.mu.Unlock()

	if len(expired) > 0 {
		r.cacheDelete(context.Background(), expired...)
	}
	return len(expired)
}

// Run sweeps idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	slog.Info("Session sweeper started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session sweeper stopped")
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				slog.Info("Evicted idle sessions", "count", n)
			}
		}
	}
}

func (r *Registry) wasEnded(sessionID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ended[sessionID]
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// acquire returns the user's shared state, creating it for the first
// session, and counts one more reference to it.
func (r *Registry) acquire(user entity.User) *account {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[user.ID]
	if !ok {
		a = newAccount(user, r.store)
		r.accounts[user.ID] = a
		r.attach(a)
	}
	a.refs++
	return a
}

func (r *Registry) release(a *account) {
	r.mu.Lock()
	r.releaseLocked(a)
	r.mu.Unlock()
}

// releaseLocked drops one reference; the state goes with the last one.
func (r *Registry) releaseLocked(a *account) {
	a.refs--
	if a.refs <= 0 && r.accounts[a.id] == a {
		delete(r.accounts, a.id)
	}
}

func (r *Registry) pruneEndedLocked(now time.Time) {
	for id, at := range r.ended {
		if now.Sub(at) > endedRetention {
			delete(r.ended, id)
		}
	}
}

// attach mirrors every background change of a into the local cache.
func (r *Registry) attach(a *account) {
	userID := a.id
	a.background.OnChange(func(bg entity.DashboardBackground) {
		r.cacheSet(context.Background(), backgroundKey(userID), bg)
	})
}

// bootstrap fills the shared state the first time and retries whatever an
// earlier run could not read. The cached background is shown first; remote
// data is loaded concurrently and overwrites it.
func (r *Registry) bootstrap(ctx context.Context, a *account) error {
	a.boot.Lock()
	defer a.boot.Unlock()

	needUser := !a.hasUser()
	needLedger := !a.ledger.Loaded()
	needBackground := !a.booted || a.backgroundError() != nil
	if !needUser && !needLedger && !needBackground {
		return nil
	}

	if !a.booted {
		var cached entity.DashboardBackground
		if r.cacheGet(ctx, backgroundKey(a.id), &cached) && cached.Validate() == nil {
			a.background.Set(cached)
		}
	}

	var (
		user       *entity.User
		background *entity.DashboardBackground
		bgErr      error
	)

	g, gctx := errgroup.WithContext(ctx)

	if needUser {
		g.Go(func() error {
			u, err := r.users.FindByID(gctx, a.id)
			if err != nil {
				return err
			}
			user = u
			return nil
		})
	}

	if needLedger {
		g.Go(func() error {
			if err := a.ledger.Load(gctx); err != nil {
				slog.Warn("Session started without transactions", "userID", a.id, "error", err)
			}
			return nil
		})
	}

	if needBackground {
		g.Go(func() error {
			background, bgErr = r.users.FindBackground(gctx, a.id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return noSession()
		}
		return domainerror.NewAuthError(domainerror.ErrCodeAuthUnavailable, "failed to restore session", err)
	}

	if user != nil {
		a.setUser(*user)
	}
	a.booted = true

	if !needBackground {
		return nil
	}
	if bgErr != nil {
		err := domainerror.NewBackgroundError(domainerror.ErrCodeBackgroundFetchFailed, "failed to load background preference", bgErr)
		a.setBackgroundError(err)
		slog.Warn("Showing cached background", "userID", a.id, "error", err)
		return nil
	}

	a.setBackgroundError(nil)
	if background == nil {
		a.background.Set(entity.DefaultBackground())
	} else {
		a.background.Set(*background)
	}

	return nil
}

func (r *Registry) cacheGet(ctx context.Context, key string, dest any) bool {
	if r.cache == nil {
		return false
	}
	found, err := r.cache.Get(ctx, key, dest)
	if err != nil {
		slog.Warn("Local cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (r *Registry) cacheSet(ctx context.Context, key string, value any) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, value, r.cacheTTL); err != nil {
		slog.Warn("Local cache write failed", "key", key, "error", err)
	}
}

func (r *Registry) cacheDelete(ctx context.Context, keys ...string) {
	if r.cache == nil || len(keys) == 0 {
		return
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		slog.Warn("Failed to clear session cache", "keys", keys, "error", err)
	}
}

func noSession() error {
	return domainerror.NewAuthError(domainerror.ErrCodeNoActiveSession, "no active session", domainerror.ErrNoActiveSession)
}
