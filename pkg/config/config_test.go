package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"tweetlang/pkg/policy"
)

func writeConfigFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweetc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want %+v", cfg, Default())
	}
	if cfg.Policy != policy.Default {
		t.Errorf("default policy = %q", cfg.Policy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfigFixture(t, `
format: json
policy: "Actions <= 10"
simplify: true
`)
	t.Setenv("TWEETLANG_FORMAT", "compact")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Format:   "compact",
		Policy:   "Actions <= 10",
		LogLevel: "info",
		Simplify: true,
	}
	if cfg != want {
		t.Errorf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfigFixture(t, "format: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}

	t.Setenv("TWEETLANG_SIMPLIFY", "maybe")
	if _, err := Load(""); err == nil {
		t.Error("expected error for malformed bool env")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Format: "xml", Policy: "Actions +", LogLevel: "loud"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}

	cfg = Default()
	cfg.Policy = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty policy should be valid: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.input, got, err)
		}
	}
}
