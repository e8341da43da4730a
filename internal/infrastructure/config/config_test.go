package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	var cfg Config
	if err := process(context.Background(), envconfig.MapLookuper(nil), &cfg); err != nil {
		t.Fatalf("process: %v", err)
	}

	if cfg.Port != "8080" || cfg.Session.Store != StoreMemory || cfg.Session.Cookie != "portal_ctx" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Backend.LoginPath != "/login" || cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("unexpected backend defaults: %+v", cfg.Backend)
	}
	if cfg.Redis.KeyPrefix != "portal" {
		t.Fatalf("unexpected redis prefix %q", cfg.Redis.KeyPrefix)
	}
	if cfg.TrustProxy {
		t.Fatalf("forwarded headers must not be trusted by default")
	}
}

func TestProcess_Overrides(t *testing.T) {
	var cfg Config
	err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"BACKEND_URL":        "http://library:9000",
		"BACKEND_LOGIN_PATH": "/auth/login",
		"SESSION_STORE":      "redis",
		"SESSION_CACHE_SIZE": "16",
		"REDIS_ADDR":         "redis:6379",
		"TRUST_PROXY":        "true",
	}), &cfg)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if cfg.Backend.URL != "http://library:9000" || cfg.Backend.LoginPath != "/auth/login" {
		t.Fatalf("unexpected backend config: %+v", cfg.Backend)
	}
	if cfg.Session.Store != StoreRedis || cfg.Session.CacheSize != 16 || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("unexpected session config: %+v / %+v", cfg.Session, cfg.Redis)
	}
	if !cfg.TrustProxy {
		t.Fatalf("expected TRUST_PROXY to be honoured")
	}
}

func TestProcess_RejectsUnknownStore(t *testing.T) {
	var cfg Config
	err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_STORE": "etcd",
	}), &cfg)
	if err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

func TestProcess_DevBackendDefaults(t *testing.T) {
	var cfg DevBackendConfig
	if err := process(context.Background(), envconfig.MapLookuper(nil), &cfg); err != nil {
		t.Fatalf("process: %v", err)
	}
	if cfg.Port != "8081" || cfg.TokenTTL != 24*time.Hour || cfg.AdminUsername != "admin" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
