package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/transaction"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	err     error
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*entity.User{}} }

func (m *memUsers) Create(ctx context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memUsers) FindBackground(ctx context.Context, userID uuid.UUID) (*entity.DashboardBackground, error) {
	return nil, nil
}

func (m *memUsers) UpdateBackground(ctx context.Context, userID uuid.UUID, bg entity.DashboardBackground) error {
	return nil
}

type plainPasswords struct{}

func (plainPasswords) HashPassword(p string) (string, error) { return "hashed:" + p, nil }
func (plainPasswords) VerifyPassword(hash, p string) error {
	if hash != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens encodes claims in an in-memory table keyed by opaque token strings.
type fakeTokens struct {
	mu          sync.Mutex
	claims      map[string]adapter.TokenClaims
	invalidated map[string]bool
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{claims: map[string]adapter.TokenClaims{}, invalidated: map[string]bool{}}
}

func (f *fakeTokens) GenerateTokenPair(ctx context.Context, userID, sessionID uuid.UUID, email string) (*adapter.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	access, refresh := "a-"+uuid.NewString(), "r-"+uuid.NewString()
	c := adapter.TokenClaims{UserID: userID, SessionID: sessionID, Email: email, ExpiresAt: time.Now().Add(time.Hour)}
	f.claims[access] = c
	f.claims[refresh] = c
	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: time.Hour}, nil
}

func (f *fakeTokens) validate(token, prefix string) (*adapter.TokenClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.claims[token]
	if !ok || len(token) < 2 || token[:2] != prefix {
		return nil, domainerror.ErrInvalidToken
	}
	return &c, nil
}

func (f *fakeTokens) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return f.validate(token, "a-")
}

func (f *fakeTokens) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return f.validate(token, "r-")
}

func (f *fakeTokens) InvalidateRefreshToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated[token] = true
	return nil
}

func (f *fakeTokens) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.invalidated[token], nil
}

type noTransactions struct{}

func (noTransactions) List(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return []*entity.Transaction{}, nil
}
func (noTransactions) Add(ctx context.Context, in transaction.CreateTransactionInput) (*entity.Transaction, error) {
	return nil, errors.New("unused")
}
func (noTransactions) Update(ctx context.Context, in transaction.UpdateTransactionInput) (*entity.Transaction, error) {
	return nil, errors.New("unused")
}
func (noTransactions) Delete(ctx context.Context, in transaction.DeleteTransactionInput) (bool, error) {
	return false, errors.New("unused")
}

type recordingEmails struct {
	queued []*entity.User
	err    error
}

func (r *recordingEmails) Welcome(ctx context.Context, user *entity.User) error {
	r.queued = append(r.queued, user)
	return r.err
}

type fixture struct {
	users    *memUsers
	tokens   *fakeTokens
	registry *session.Registry
	emails   *recordingEmails
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	logout   *LogoutUserUseCase
	refresh  *RefreshTokenUseCase
	current  *CurrentSessionUseCase
}

func newFixture() *fixture {
	f := &fixture{users: newMemUsers(), tokens: newFakeTokens(), emails: &recordingEmails{}}
	f.registry = session.NewRegistry(f.users, noTransactions{}, nil, 0)
	f.register = NewRegisterUserUseCase(f.users, plainPasswords{}, f.tokens, f.registry, f.emails)
	f.login = NewLoginUserUseCase(f.users, plainPasswords{}, f.tokens, f.registry)
	f.logout = NewLogoutUserUseCase(f.tokens, f.registry)
	f.refresh = NewRefreshTokenUseCase(f.tokens)
	f.current = NewCurrentSessionUseCase(f.tokens, f.registry)
	return f
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	f := newFixture()

	out, err := f.register.Execute(context.Background(), RegisterUserInput{Name: " Ana ", Email: " Ana@Example.com ", Password: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.User.Email != "ana@example.com" || out.User.Name != "Ana" {
		t.Errorf("user = %q/%q", out.User.Email, out.User.Name)
	}
	if out.User.PasswordHash != "hashed:x" {
		t.Error("password stored without hashing")
	}
	if _, ok := f.registry.Get(out.SessionID); !ok {
		t.Error("registration did not start a session")
	}
	if len(f.emails.queued) != 1 || f.emails.queued[0].Email != "ana@example.com" {
		t.Errorf("welcome emails = %+v", f.emails.queued)
	}

	_, err = f.register.Execute(context.Background(), RegisterUserInput{Name: "Other", Email: "ana@example.com", Password: "y"})
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeEmailExists {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
	if domainerror.KindOf(err) != domainerror.KindConflict {
		t.Errorf("duplicate email kind = %s, want conflict", domainerror.KindOf(err))
	}
}

func TestRegisterUserUseCase_MissingFields(t *testing.T) {
	tests := []RegisterUserInput{
		{Email: "a@b.c", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@b.c"},
		{Name: "  ", Email: "  ", Password: ""},
	}

	for _, in := range tests {
		f := newFixture()
		_, err := f.register.Execute(context.Background(), in)
		if !domainerror.IsValidation(err) {
			t.Errorf("Execute(%+v) error = %v, want validation error", in, err)
		}
		if len(f.users.byEmail) != 0 {
			t.Errorf("Execute(%+v) created a user", in)
		}
	}
}

func TestRegisterUserUseCase_EmailFailureDoesNotFailRegistration(t *testing.T) {
	f := newFixture()
	f.emails.err = errors.New("queue down")

	if _, err := f.register.Execute(context.Background(), RegisterUserInput{Name: "A", Email: "a@b.c", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegisterUserUseCase_RemoteFailure(t *testing.T) {
	f := newFixture()
	f.users.err = errors.New("db down")

	_, err := f.register.Execute(context.Background(), RegisterUserInput{Name: "A", Email: "a@b.c", Password: "x"})
	if !domainerror.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	f := newFixture()
	reg, err := f.register.Execute(context.Background(), RegisterUserInput{Name: "A", Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		input    LoginUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{name: "valid", input: LoginUserInput{Email: "A@B.C", Password: "secret"}},
		{name: "wrong password", input: LoginUserInput{Email: "a@b.c", Password: "nope"}, wantCode: domainerror.ErrCodeInvalidCredentials},
		{name: "unknown email", input: LoginUserInput{Email: "x@y.z", Password: "secret"}, wantCode: domainerror.ErrCodeInvalidCredentials},
		{name: "empty password", input: LoginUserInput{Email: "a@b.c"}, wantCode: domainerror.ErrCodeMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.login.Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				var authErr *domainerror.AuthError
				if !errors.As(err, &authErr) || authErr.Code != tt.wantCode {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.User.ID != reg.User.ID {
				t.Error("logged in as a different user")
			}
			if out.SessionID == reg.SessionID {
				t.Error("login must start a new session")
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Name: "A", Email: "a@b.c", Password: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	s, err := f.current.Execute(ctx, CurrentSessionInput{AccessToken: reg.AccessToken})
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if s.ID != reg.SessionID || s.User().Email != "a@b.c" {
		t.Errorf("resolved session %s for %s", s.ID, s.User().Email)
	}

	refreshed, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	again, err := f.current.Execute(ctx, CurrentSessionInput{AccessToken: refreshed.AccessToken})
	if err != nil || again != s {
		t.Fatalf("refreshed token resolved %v, %v; want the same session", again, err)
	}
	if _, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: reg.RefreshToken}); !domainerror.IsAuth(err) {
		t.Errorf("reusing a rotated refresh token: %v", err)
	}

	if _, err := f.logout.Execute(ctx, LogoutUserInput{RefreshToken: refreshed.RefreshToken, SessionID: s.ID}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := f.registry.Get(s.ID); ok {
		t.Error("session survived logout")
	}
	if _, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: refreshed.RefreshToken}); !domainerror.IsAuth(err) {
		t.Errorf("refresh after logout: %v", err)
	}
}

func TestCurrentSessionUseCase_RejectsBadTokens(t *testing.T) {
	f := newFixture()

	for _, token := range []string{"", "garbage", "r-" + uuid.NewString()} {
		if _, err := f.current.Execute(context.Background(), CurrentSessionInput{AccessToken: token}); !domainerror.IsAuth(err) {
			t.Errorf("token %q: expected auth error, got %v", token, err)
		}
	}
}
