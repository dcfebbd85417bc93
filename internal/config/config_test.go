package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tasks")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "1m")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccessTokenTTL != time.Minute {
		t.Fatalf("ttl: %v", cfg.AccessTokenTTL)
	}
	if cfg.JWTRefreshSecret != "s3cret" {
		t.Fatalf("refresh secret should default to JWT_SECRET, got %q", cfg.JWTRefreshSecret)
	}
	if cfg.Issuer != "task-api" {
		t.Fatalf("issuer: %q", cfg.Issuer)
	}
	if cfg.AuthRateMax != 10 || cfg.APIRateMax != 100 {
		t.Fatalf("limiter defaults: %d %d", cfg.AuthRateMax, cfg.APIRateMax)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s3cret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tasks")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_DistinctRefreshSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JWTRefreshSecret != "b" {
		t.Fatalf("refresh secret: %q", cfg.JWTRefreshSecret)
	}
}
