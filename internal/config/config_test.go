package config

import (
	"reflect"
	"testing"

	"ledgerapi/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.AllowAnonymous {
		t.Error("AllowAnonymous should default to false")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	cleanup := testutil.SetTestEnv(t, map[string]string{
		"LEDGER_LISTEN_ADDR":     ":9999",
		"LEDGER_DEBUG":           "1",
		"LEDGER_ALLOW_ANONYMOUS": "true",
		"LEDGER_SHARED_SECRET":   "s3cret",
		"LEDGER_GATEWAY_SECRET":  "gw-secret",
		"LEDGER_CORS_ORIGINS":    "https://a.example, https://b.example ,",
	})
	defer cleanup()

	cfg := Load()

	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if !cfg.AllowAnonymous {
		t.Error("AllowAnonymous should be true")
	}
	if cfg.SharedSecret != "s3cret" {
		t.Errorf("SharedSecret = %q, want s3cret", cfg.SharedSecret)
	}
	if cfg.GatewaySecret != "gw-secret" {
		t.Errorf("GatewaySecret = %q, want gw-secret", cfg.GatewaySecret)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}
