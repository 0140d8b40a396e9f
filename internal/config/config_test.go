package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestDefaultGeneratesRandomJWTSecret(t *testing.T) {
	a, b := Default(), Default()
	if a.JWTSecret == "" {
		t.Fatalf("default config must carry a JWT secret")
	}
	if a.JWTSecret == b.JWTSecret {
		t.Fatalf("generated secrets must not repeat")
	}
}

func TestValidateRejectsEmptyJWTSecret(t *testing.T) {
	cfg := Default()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for empty jwt_secret")
	}
}

func TestValidateRejectsForeignDefaultChannel(t *testing.T) {
	cfg := Default()
	cfg.DefaultChannel = "nowhere"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for default channel outside the set")
	}
}

func TestValidateRejectsEmptyChannelSet(t *testing.T) {
	cfg := Default()
	cfg.Channels = nil
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for empty channel set")
	}
}

func TestLoadWritesDefaultAndAppliesEnv(t *testing.T) {
	t.Setenv("RWCI_ADDR", ":9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("env override must win over defaults, got %q", cfg.Addr)
	}
	if cfg.DefaultChannel != "general" {
		t.Fatalf("unexpected default channel: %q", cfg.DefaultChannel)
	}

	// A second load reads the file written on first run.
	cfg2, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(cfg2.Channels) != len(cfg.Channels) {
		t.Fatalf("channels lost across reload: %v vs %v", cfg2.Channels, cfg.Channels)
	}
	// The generated secret is persisted by the write-back; a restart must
	// not invalidate previously issued tokens.
	if cfg2.JWTSecret == "" || cfg2.JWTSecret != cfg.JWTSecret {
		t.Fatalf("jwt secret must survive reload: %q vs %q", cfg2.JWTSecret, cfg.JWTSecret)
	}
}
