package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	if got := cfg.RedisAddress(); got != "cache.internal:6379" {
		t.Errorf("RedisAddress() = %q", got)
	}
	if cfg.Database.Name != "restaurants" || cfg.Queue.WarmUpCron != "@every 30m" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.Secret == "" {
		t.Error("expected development JWT secret fallback")
	}

	got, ok := GetSafe()
	if !ok || got != cfg {
		t.Error("Load() must install the configuration")
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected an error without JWT_SECRET in production")
	}
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"Production", true},
		{"staging", false},
		{"", false},
	}
	for _, tt := range tests {
		cfg := &Config{}
		cfg.App.Env = tt.env
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}
