package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPath(t *testing.T) {
	t.Setenv("SNIPPYLOG_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := Path(); got != filepath.Join("/xdg", "snippylog", "config.toml") {
		t.Errorf("Path() = %q", got)
	}

	t.Setenv("SNIPPYLOG_CONFIG", "/etc/snippylog.toml")
	if got := Path(); got != "/etc/snippylog.toml" {
		t.Errorf("Path() with override = %q", got)
	}
}

func TestLoad_MissingReturnsDefaults(t *testing.T) {
	t.Setenv("SNIPPYLOG_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SNIPPYLOG_CONFIG", filepath.Join(t.TempDir(), "nested", "config.toml"))

	cfg := DefaultConfig()
	cfg.General.LogName = "session.log"
	cfg.General.Workers = 3
	cfg.Report.Format = "csv"
	cfg.Report.Precision = 1
	cfg.Report.Compare = false
	cfg.Export.DBPath = "/tmp/out.db"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Appearance.NoColor = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SNIPPYLOG_CONFIG", path)
	if err := os.WriteFile(path, []byte("[report]\nformat = \"json\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Report.Format)
	}
	if cfg.Report.Precision != 3 || cfg.General.LogName != "snippy.log" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad toml", "[report\n", "parsing config"},
		{"bad format", "[report]\nformat = \"xml\"\n", "unknown report format"},
		{"bad theme", "[appearance]\ntheme = \"neon\"\n", "unknown theme"},
		{"bad precision", "[report]\nprecision = 40\n", "precision"},
		{"negative workers", "[general]\nworkers = -1\n", "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			t.Setenv("SNIPPYLOG_CONFIG", path)
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
