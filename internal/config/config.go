// Package config loads and saves lifeos configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all lifeos configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Gemini     GeminiConfig     `toml:"gemini"`
	Planner    PlannerConfig    `toml:"planner"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultMode string `toml:"default_mode"`
}

// GeminiConfig holds generative model settings.
type GeminiConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	TextModel  string `toml:"text_model"`
	ImageModel string `toml:"image_model"`
}

// PlannerConfig holds the savings calculator's starting values.
type PlannerConfig struct {
	Target string `toml:"target"`
	Saved  string `toml:"saved"`
	Months int    `toml:"months"`
}

// ServerConfig holds `lifeos serve` settings.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	HabitResetCron string `toml:"habit_reset_cron"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	File        string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultMode: "general",
		},
		Gemini: GeminiConfig{
			TextModel:  "gemini-2.5-flash",
			ImageModel: "imagen-4.0-generate-001",
		},
		Planner: PlannerConfig{
			Target: "35000000",
			Saved:  "5000000",
			Months: 12,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8787",
			HabitResetCron: "0 0 * * *",
		},
		Appearance: AppearanceConfig{
			Theme: "emerald",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeos")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lifeos")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LogPath returns the log file used when the terminal is owned by the TUI.
func LogPath(cfg Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(Dir(), "lifeos.log")
}

// LoadEnv reads a .env file from the working directory if one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the config file, returning defaults if it doesn't exist.
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

	return cfg, nil
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

// GetAPIKey returns the Gemini key from GEMINI_API_KEY, API_KEY, or config, in that order.
func GetAPIKey(cfg Config) string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(cfg.Gemini.APIKey)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
