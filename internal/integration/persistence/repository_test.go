package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.TransactionModel{},
		&model.WelcomeEmailModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTxn(t *testing.T, userID uuid.UUID, day time.Time, desc, category string, typ entity.TransactionType, value string) *entity.Transaction {
	t.Helper()
	return entity.NewTransaction(userID, entity.TransactionDraft{
		Date:        day,
		Description: desc,
		Category:    category,
		Type:        typ,
		Value:       decimal.RequireFromString(value),
	})
}

func TestTransactionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	userID, otherID := uuid.New(), uuid.New()

	older := newTxn(t, userID, date(2024, 1, 10), "Mercado", "Alimentação", entity.TransactionTypeExpense, "95.50")
	newer := newTxn(t, userID, date(2024, 1, 15), "Salário", "Salário", entity.TransactionTypeIncome, "1000")
	foreign := newTxn(t, otherID, date(2024, 1, 20), "Uber", "Transporte", entity.TransactionTypeExpense, "20")
	for _, txn := range []*entity.Transaction{older, newer, foreign} {
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := repo.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("unexpected list order: %+v", list)
	}
	if !list[1].Value.Equal(decimal.RequireFromString("95.50")) {
		t.Errorf("value = %s, want 95.50", list[1].Value)
	}
	if !list[1].Date.Equal(older.Date) {
		t.Errorf("date = %s, want %s", list[1].Date, older.Date)
	}

	older.Description = "Supermercado"
	older.Value = decimal.RequireFromString("100")
	if err := repo.Update(ctx, older); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.FindByID(ctx, older.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Description != "Supermercado" || !got.Value.Equal(decimal.NewFromInt(100)) {
		t.Errorf("update not persisted: %+v", got)
	}

	deleted, err := repo.Delete(ctx, older.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, older.ID)
	if err != nil || deleted {
		t.Errorf("second delete = %v, %v; want false, nil", deleted, err)
	}
	if _, err := repo.FindByID(ctx, older.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("find deleted: %v", err)
	}
}

func TestTransactionRepository_UpdateMissing(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	txn := newTxn(t, uuid.New(), date(2024, 2, 1), "Nada", "Outros", entity.TransactionTypeExpense, "1")

	if err := repo.Update(context.Background(), txn); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("update missing: %v", err)
	}
}

func TestTransactionRepository_DistinctCategories(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	userID := uuid.New()

	for i, cat := range []string{"Pets", "Alimentação", "Pets"} {
		txn := newTxn(t, userID, date(2024, 3, i+1), "x", cat, entity.TransactionTypeExpense, "1")
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(ctx, newTxn(t, uuid.New(), date(2024, 3, 1), "x", "Viagem", entity.TransactionTypeExpense, "1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	cats, err := repo.DistinctCategories(ctx, userID)
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	if len(cats) != 2 || cats[0] != "Alimentação" || cats[1] != "Pets" {
		t.Errorf("categories = %v", cats)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := entity.NewUser("ana@example.com", "Ana", "hash")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, entity.NewUser("ana@example.com", "Other", "hash")); !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
		t.Errorf("duplicate email: %v", err)
	}

	exists, err := repo.ExistsByEmail(ctx, "ana@example.com")
	if err != nil || !exists {
		t.Errorf("exists = %v, %v", exists, err)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("find unknown: %v", err)
	}

	bg, err := repo.FindBackground(ctx, user.ID)
	if err != nil || bg != nil {
		t.Fatalf("unset background = %v, %v", bg, err)
	}

	want := entity.DashboardBackground{Type: entity.BackgroundTypeColor, Value: "#112233"}
	if err := repo.UpdateBackground(ctx, user.ID, want); err != nil {
		t.Fatalf("update background: %v", err)
	}
	bg, err = repo.FindBackground(ctx, user.ID)
	if err != nil || bg == nil || *bg != want {
		t.Errorf("background = %v, %v; want %v", bg, err, want)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.EffectiveBackground() != want {
		t.Errorf("user background = %v", found.EffectiveBackground())
	}

	if err := repo.UpdateBackground(ctx, uuid.New(), want); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("update unknown user: %v", err)
	}
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(newTestDB(t))
	userID, sessionID := uuid.New(), uuid.New()

	if err := repo.SaveRefreshToken(ctx, "live", userID, sessionID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveRefreshToken(ctx, "old", userID, sessionID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		token string
		want  bool
	}{
		{"live", true},
		{"old", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := repo.IsRefreshTokenValid(ctx, tt.token)
			if err != nil || got != tt.want {
				t.Errorf("IsRefreshTokenValid(%q) = %v, %v", tt.token, got, err)
			}
		})
	}

	if err := repo.InvalidateSessionRefreshTokens(ctx, sessionID); err != nil {
		t.Fatalf("invalidate session: %v", err)
	}
	if valid, _ := repo.IsRefreshTokenValid(ctx, "live"); valid {
		t.Error("token valid after session invalidation")
	}
}
