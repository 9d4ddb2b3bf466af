package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTPPort != ":8080" {
		t.Errorf("HTTPPort = %q", cfg.Server.HTTPPort)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("TTLSeconds = %d, want 3600", cfg.Cache.TTLSeconds)
	}
	if cfg.Cache.TTL() != time.Hour {
		t.Errorf("TTL() = %v, want 1h", cfg.Cache.TTL())
	}
	if cfg.Fetch.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Database.Enabled || cfg.Kafka.Enabled {
		t.Error("database/kafka should be disabled by default")
	}
}

func TestLoadCacheTTLEnvOverride(t *testing.T) {
	t.Setenv("CACHE_TTL", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.TTLSeconds != 120 {
		t.Errorf("TTLSeconds = %d, want 120", cfg.Cache.TTLSeconds)
	}
}

func TestLoadPrefixedEnvOverride(t *testing.T) {
	t.Setenv("ZAMAPEDIA_SERVER_HTTP_PORT", ":9999")
	t.Setenv("ZAMAPEDIA_CACHE_BACKEND", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != ":9999" {
		t.Errorf("HTTPPort = %q, want :9999", cfg.Server.HTTPPort)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		DBName: "zamapedia", SSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=zamapedia sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
