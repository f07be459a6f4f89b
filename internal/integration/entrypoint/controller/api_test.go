package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/CauaPrates/organiza-ai-app/config"
	"github.com/CauaPrates/organiza-ai-app/internal/infra/db"
	"github.com/CauaPrates/organiza-ai-app/internal/infra/dependency"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/cache"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "controller-test-secret"
	cfg.JWT.BcryptCost = bcrypt.MinCost
	cfg.Email.WorkerEnabled = false
	cfg.AI.GeminiAPIKey = ""

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Cache: cache.NewRedisCache(client, "test:"),
	})
	if err != nil {
		t.Fatalf("NewInjector: %v", err)
	}

	return &apiClient{t: t, engine: injector.Router.Setup(cfg.Server.Environment)}
}

func (c *apiClient) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func (c *apiClient) register(email string) {
	c.t.Helper()

	status, body := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": email, "name": "Teste", "password": "SecurePass123!",
	})
	if status != http.StatusCreated {
		c.t.Fatalf("register: status %d body %v", status, body)
	}
	c.token = body["access_token"].(string)
}

func TestAPI_TransactionLifecycle(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")

	status, created := api.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"date": "2024-01-15", "description": "Mercado", "category": "Alimentação", "type": "expense", "value": 95.5,
	})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d body %v", status, created)
	}
	if created["value"] != "95.50" {
		t.Errorf("value = %v, want 95.50", created["value"])
	}
	id := created["id"].(string)

	_, listed := api.do(http.MethodGet, "/api/v1/transactions", nil)
	if items := listed["transactions"].([]any); len(items) != 1 {
		t.Fatalf("list returned %d items", len(items))
	}

	status, updated := api.do(http.MethodPatch, "/api/v1/transactions/"+id, map[string]any{"value": "120", "type": "income"})
	if status != http.StatusOK || updated["value"] != "120.00" || updated["type"] != "income" {
		t.Fatalf("update: status %d body %v", status, updated)
	}

	_, summary := api.do(http.MethodGet, "/api/v1/dashboard/summary", nil)
	if summary["total_income"] != "120.00" || summary["total_net"] != "120.00" {
		t.Errorf("summary = %v", summary)
	}

	status, deleted := api.do(http.MethodDelete, "/api/v1/transactions/"+id, nil)
	if status != http.StatusOK || deleted["success"] != true {
		t.Fatalf("delete: status %d body %v", status, deleted)
	}

	_, view := api.do(http.MethodGet, "/api/v1/dashboard", nil)
	if items := view["transactions"].([]any); len(items) != 0 {
		t.Errorf("dashboard still shows %d items", len(items))
	}
}

func TestAPI_ErrorStatuses(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name: "invalid type", method: http.MethodPost, path: "/api/v1/transactions",
			body:       map[string]any{"date": "2024-01-15", "description": "X", "type": "transfer", "value": "1"},
			wantStatus: http.StatusBadRequest, wantCode: "TXN-010001",
		},
		{
			name: "bad date", method: http.MethodPost, path: "/api/v1/transactions",
			body:       map[string]any{"date": "15/01/2024", "description": "X", "type": "expense", "value": "1"},
			wantStatus: http.StatusBadRequest, wantCode: "TXN-010002",
		},
		{
			name: "malformed id", method: http.MethodPatch, path: "/api/v1/transactions/abc",
			body:       map[string]any{"description": "Y"},
			wantStatus: http.StatusNotFound, wantCode: "TXN-030001",
		},
		{
			name: "unknown id", method: http.MethodPatch, path: "/api/v1/transactions/" + uuid.NewString(),
			body:       map[string]any{"description": "Y"},
			wantStatus: http.StatusNotFound, wantCode: "TXN-030001",
		},
		{
			name: "bad view query", method: http.MethodGet, path: "/api/v1/dashboard?sortOrder=up",
			wantStatus: http.StatusBadRequest, wantCode: "TXN-010008",
		},
		{
			name: "bad background", method: http.MethodPut, path: "/api/v1/users/me/background",
			body:       map[string]any{"type": "color", "value": "red"},
			wantStatus: http.StatusBadRequest, wantCode: "BG-010001",
		},
		{
			name: "empty suggestion", method: http.MethodPost, path: "/api/v1/categories/suggest",
			body:       map[string]any{"description": ""},
			wantStatus: http.StatusBadRequest, wantCode: "CAT-010001",
		},
		{
			name: "duplicate email", method: http.MethodPost, path: "/api/v1/auth/register",
			body:       map[string]any{"email": "ana@example.com", "name": "Ana", "password": "x"},
			wantStatus: http.StatusConflict, wantCode: "AUTH-010001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := api.do(tt.method, tt.path, tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %v)", status, tt.wantStatus, body)
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", body["code"], tt.wantCode)
			}
		})
	}
}

func TestAPI_AuthMiddleware(t *testing.T) {
	api := newAPIClient(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			api.engine.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAPI_LogoutEndsSession(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")

	if status, _ := api.do(http.MethodPost, "/api/v1/auth/logout", map[string]string{}); status != http.StatusOK {
		t.Fatalf("logout status = %d", status)
	}
	if status, _ := api.do(http.MethodGet, "/api/v1/auth/me", nil); status != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", status)
	}
}

func TestAPI_BackgroundFollowsTheUser(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")

	status, body := api.do(http.MethodPut, "/api/v1/users/me/background", map[string]string{"type": "color", "value": "#FFF3E0"})
	if status != http.StatusOK || body["value"] != "#FFF3E0" {
		t.Fatalf("update: status %d body %v", status, body)
	}

	status, login := api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ana@example.com", "password": "SecurePass123!"})
	if status != http.StatusOK {
		t.Fatalf("login: status %d body %v", status, login)
	}
	api.token = login["access_token"].(string)

	_, me := api.do(http.MethodGet, "/api/v1/auth/me", nil)
	bg := me["background"].(map[string]any)
	if bg["value"] != "#FFF3E0" {
		t.Errorf("background after login = %v", bg)
	}

	status, reset := api.do(http.MethodDelete, "/api/v1/users/me/background", nil)
	if status != http.StatusOK || reset["value"] != "#D9E4EC" {
		t.Errorf("reset: status %d body %v", status, reset)
	}
}

func TestAPI_Health(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")

	status, body := api.do(http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["database"] != "connected" {
		t.Errorf("database = %v", body["database"])
	}
	if body["active_sessions"] != float64(1) {
		t.Errorf("active_sessions = %v, want 1", body["active_sessions"])
	}
}

func TestAPI_LoginsOfOneUserSeeTheSameData(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")
	first := api.token

	_, login := api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ana@example.com", "password": "SecurePass123!"})
	second := login["access_token"].(string)

	api.token = first
	status, created := api.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"date": "2024-02-01", "description": "Salário", "category": "Trabalho", "type": "income", "value": "100",
	})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d body %v", status, created)
	}
	if status, _ := api.do(http.MethodPut, "/api/v1/users/me/background", map[string]string{"type": "color", "value": "#000000"}); status != http.StatusOK {
		t.Fatalf("update background: status %d", status)
	}

	api.token = second
	_, summary := api.do(http.MethodGet, "/api/v1/dashboard/summary", nil)
	if summary["total_income"] != "100.00" {
		t.Errorf("other login sees total_income %v, want 100.00", summary["total_income"])
	}
	_, bg := api.do(http.MethodGet, "/api/v1/users/me/background", nil)
	if got := bg["background"].(map[string]any)["value"]; got != "#000000" || bg["stale"] != false {
		t.Errorf("other login sees background %v, stale %v", got, bg["stale"])
	}
}

func TestAPI_RejectsValuesOutsideTheColumn(t *testing.T) {
	api := newAPIClient(t)
	api.register("ana@example.com")

	for _, value := range []string{"10.005", "12345678901234567890", "1e-20000000"} {
		status, body := api.do(http.MethodPost, "/api/v1/transactions", map[string]any{
			"date": "2024-02-01", "description": "Teste", "type": "income", "value": value,
		})
		if status != http.StatusBadRequest || body["code"] != "TXN-010003" {
			t.Errorf("value %q: status %d body %v", value, status, body)
		}
	}

	_, listed := api.do(http.MethodGet, "/api/v1/transactions", nil)
	if items := listed["transactions"].([]any); len(items) != 0 {
		t.Errorf("stored %d transactions", len(items))
	}
}
