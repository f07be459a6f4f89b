package adapters

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func (m *memTokenRepo) SaveRefreshToken(ctx context.Context, token string, userID, sessionID uuid.UUID, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[string]bool{}
	}
	m.tokens[token] = true
	return nil
}

func (m *memTokenRepo) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[token], nil
}

func (m *memTokenRepo) InvalidateRefreshToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = false
	return nil
}

func (m *memTokenRepo) InvalidateSessionRefreshTokens(ctx context.Context, sessionID uuid.UUID) error {
	return nil
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &memTokenRepo{}
	svc := NewTokenService("secret", time.Minute, time.Hour, repo)
	userID, sessionID := uuid.New(), uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, sessionID, "a@b.c")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.ExpiresIn != time.Minute {
		t.Errorf("ExpiresIn = %s", pair.ExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.UserID != userID || claims.SessionID != sessionID || claims.Email != "a@b.c" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.ValidateAccessToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("refresh used as access: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Errorf("validate refresh: %v", err)
	}
	if valid, _ := svc.IsRefreshTokenValid(ctx, pair.RefreshToken); !valid {
		t.Error("fresh refresh token not stored")
	}

	again, err := svc.GenerateTokenPair(ctx, userID, sessionID, "a@b.c")
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if again.RefreshToken == pair.RefreshToken {
		t.Error("tokens minted in the same second must differ")
	}
}

func TestTokenService_Rejects(t *testing.T) {
	ctx := context.Background()
	repo := &memTokenRepo{}

	expired := NewTokenService("secret", -1, time.Hour, repo).(*tokenService)
	expired.accessDuration = -time.Minute
	old, err := expired.GenerateTokenPair(ctx, uuid.New(), uuid.New(), "a@b.c")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other, err := NewTokenService("other-secret", 0, 0, repo).GenerateTokenPair(ctx, uuid.New(), uuid.New(), "a@b.c")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc := NewTokenService("secret", 0, 0, repo)
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: old.AccessToken, want: domainerror.ErrExpiredToken},
		{name: "wrong secret", token: other.AccessToken, want: domainerror.ErrInvalidToken},
		{name: "garbage", token: "not-a-jwt", want: domainerror.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(ctx, tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(4)

	hash, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in clear text")
	}
	if err := svc.VerifyPassword(hash, "s3cret"); err != nil {
		t.Errorf("verify: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestGeminiService(t *testing.T) {
	if NewGeminiService("", "").IsAvailable() {
		t.Error("service without key reported available")
	}
	if _, err := NewGeminiService("", "").Suggest(context.Background(), "x", nil); err == nil {
		t.Error("unconfigured service answered")
	}

	prompt := buildSuggestionPrompt("Uber centro", []string{"Transporte", "Outros"})
	for _, want := range []string{"Uber centro", "- Transporte", "- Outros"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `{"category": "Transporte"}`, want: "Transporte"},
		{in: "```json\n{\"category\": \" Saúde \"}\n```", want: "Saúde"},
		{in: `{"category": ""}`, want: ""},
		{in: `Transporte`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSuggestion(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseSuggestion(%q) = %q, %v", tt.in, got, err)
		}
	}
}
