// Package config loads and saves the kasa TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kasa-ledger/kasa/internal/category"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvDataDir  = "KASA_DATA_DIR"
	EnvLogLevel = "KASA_LOG_LEVEL"
	EnvCurrency = "KASA_CURRENCY"
)

// Config holds all kasa configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Categories CategoriesConfig `toml:"categories"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir    string `toml:"data_dir,omitempty"`
	Currency   string `toml:"currency"`
	WindowDays int    `toml:"window_days"` // default budget window length
}

// CategoriesConfig holds the closed category vocabularies.
type CategoriesConfig struct {
	Expense []string `toml:"expense"`
	Income  []string `toml:"income"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	vocab := category.Default()
	return Config{
		General: GeneralConfig{
			Currency:   "BGN",
			WindowDays: 30,
		},
		Categories: CategoriesConfig{
			Expense: vocab.Expense,
			Income:  vocab.Income,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kasa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kasa")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "kasa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "kasa")
}

// DBPath returns the ledger database path for cfg.
func DBPath(cfg Config) string {
	dir := cfg.General.DataDir
	if dir == "" {
		dir = DefaultDataDir()
	}
	return filepath.Join(dir, "kasa.db")
}

// LoadEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are not overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top.
func Load() (Config, error) {
	cfg, err := LoadFrom(Path())
	applyEnv(&cfg)
	return cfg, err
}

// LoadFrom reads the config file at path without applying the environment.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from Dir or the caller
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.Currency = strings.ToUpper(v)
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
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

// Vocabulary returns the configured category vocabulary.
func (c Config) Vocabulary() category.Vocabulary {
	return category.Vocabulary{
		Expense: c.Categories.Expense,
		Income:  c.Categories.Income,
	}
}

// Validate reports every problem found in the configuration.
func (c Config) Validate() error {
	var problems []string

	if len(c.General.Currency) != 3 {
		problems = append(problems, fmt.Sprintf("invalid currency %q: must be a 3-letter code", c.General.Currency))
	}
	if c.General.WindowDays < 1 {
		problems = append(problems, fmt.Sprintf("invalid window_days %d: must be at least 1", c.General.WindowDays))
	}
	problems = append(problems, checkLabels("expense", c.Categories.Expense)...)
	problems = append(problems, checkLabels("income", c.Categories.Income)...)

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func checkLabels(kind string, labels []string) []string {
	var problems []string
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		key := strings.ToLower(strings.TrimSpace(l))
		if key == "" {
			problems = append(problems, fmt.Sprintf("empty %s category", kind))
			continue
		}
		if _, dup := seen[key]; dup {
			problems = append(problems, fmt.Sprintf("duplicate %s category %q", kind, l))
		}
		seen[key] = struct{}{}
	}
	return problems
}
