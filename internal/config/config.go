// Package config loads and saves the snippylog TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// Formats lists the accepted report formats.
var Formats = []string{"table", "csv", "json", "yaml"}

// Themes lists the accepted appearance theme names, in the order the
// dashboard offers them. Each has a palette in internal/tui/theme.
var Themes = []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}

// Config holds all snippylog configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Report     ReportConfig     `toml:"report"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds discovery and logging preferences.
type GeneralConfig struct {
	LogName  string `toml:"log_name"`
	Workers  int    `toml:"workers"` // 0 = GOMAXPROCS
	LogLevel string `toml:"log_level"`
}

// ReportConfig holds report rendering preferences.
type ReportConfig struct {
	Format    string `toml:"format"`
	Precision int    `toml:"precision"`
	Compare   bool   `toml:"compare"`
}

// ExportConfig holds SQLite export settings.
type ExportConfig struct {
	DBPath string `toml:"db_path"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme   string `toml:"theme"`
	NoColor bool   `toml:"no_color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogName:  "snippy.log",
			LogLevel: "warn",
		},
		Report: ReportConfig{
			Format:    "table",
			Precision: 3,
			Compare:   true,
		},
		Export: ExportConfig{
			DBPath: "snippylog.db",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Validate rejects settings no command can honour.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Report.Format) {
		return fmt.Errorf("unknown report format %q (want one of %v)", c.Report.Format, Formats)
	}
	if !slices.Contains(Themes, c.Appearance.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %v)", c.Appearance.Theme, Themes)
	}
	if c.Report.Precision < 0 || c.Report.Precision > 12 {
		return fmt.Errorf("precision %d out of range 0-12", c.Report.Precision)
	}
	if c.General.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.General.Workers)
	}
	return nil
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snippylog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snippylog")
}

// Path returns the full path to the config file. SNIPPYLOG_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("SNIPPYLOG_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Keys missing from the file keep their default values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", Path(), err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
