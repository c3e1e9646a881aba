package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNPrefersExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://u:p@host:5432/db"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://u:p@host:5432/db" {
		t.Fatalf("DSN should be untouched, got %q", cfg.DSN)
	}
}

func TestEnsureDSNAssemblesFromParts(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5432,
		LegacyUser:     "cms",
		LegacyPassword: "secret",
		LegacyName:     "cms_content",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"postgres://", "cms:secret@db.internal:5432", "cms_content", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, want) {
			t.Fatalf("assembled DSN %q missing %q", cfg.DSN, want)
		}
	}
}

func TestEnsureDSNReportsMissingParts(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing user/name")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars, got %v", err)
	}
}

func TestRedisEnabled(t *testing.T) {
	if (RedisConfig{}).Enabled() {
		t.Fatal("empty redis config should be disabled")
	}
	if !(RedisConfig{URL: "redis://localhost:6379"}).Enabled() {
		t.Fatal("redis config with URL should be enabled")
	}
	if !(RedisConfig{Address: "localhost:6379"}).Enabled() {
		t.Fatal("redis config with address should be enabled")
	}
}
