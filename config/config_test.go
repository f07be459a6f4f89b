package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_DRIVER", "CACHE_DRIVER", "CACHE_TTL", "LOG_LEVEL", "SERVER_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	// Empty values are set, so typed parsers fall back to the defaults.
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache.TTL = %s", cfg.Cache.TTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("CACHE_DRIVER", "bolt")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("SESSION_IDLE_TIMEOUT", "2h")
	t.Setenv("EMAIL_WORKER_LEASE", "30s")
	t.Setenv("AUTH_RATE_LIMIT_ATTEMPTS", "10")

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"database driver", cfg.Database.Driver, "sqlite"},
		{"cache driver", cfg.Cache.Driver, CacheDriverBolt},
		{"cache ttl", cfg.Cache.TTL, 90 * time.Minute},
		{"log level", cfg.LogLevel, slog.LevelDebug},
		{"port", cfg.Server.Port, 9090},
		{"email worker", cfg.Email.WorkerEnabled, false},
		{"session idle timeout", cfg.Session.IdleTimeout, 2 * time.Hour},
		{"session sweep interval", cfg.Session.SweepInterval, time.Minute},
		{"email worker lease", cfg.Email.Lease, 30 * time.Second},
		{"login attempts", cfg.RateLimit.MaxAttempts, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
