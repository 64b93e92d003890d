package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// Config holds the persisted export preferences.
type Config struct {
	Platforms     []string `json:"platforms" yaml:"platforms" env:"ICONIZER_PLATFORMS" envSeparator:","`
	Combined      bool     `json:"combined" yaml:"combined" env:"ICONIZER_COMBINED"`
	Interpolation string   `json:"interpolation" yaml:"interpolation" env:"ICONIZER_INTERPOLATION"`
	Workers       int      `json:"workers" yaml:"workers" env:"ICONIZER_WORKERS"` // 0: one per CPU
	CacheSize     int      `json:"cache_size" yaml:"cache_size" env:"ICONIZER_CACHE_SIZE"`
	LogLevel      string   `json:"log_level" yaml:"log_level" env:"ICONIZER_LOG_LEVEL"`
	JSONLog       bool     `json:"json_log" yaml:"json_log" env:"ICONIZER_JSON_LOG"`
}

var configPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configPath = filepath.Join(home, ".config", "iconizer", "config.json")
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Platforms:     platformNamesOf(allPlatforms()),
		Combined:      false,
		Interpolation: string(InterpCatmullRom),
		Workers:       0,
		CacheSize:     32,
		LogLevel:      defaultLogLevel,
	}
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	if isYAMLPath(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func encodeConfig(path string, cfg Config) ([]byte, error) {
	if isYAMLPath(path) {
		return yaml.Marshal(cfg)
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// loadConfig loads config from disk, creating a default if it doesn't exist.
// Missing fields keep their defaults since decoding goes into a pre-populated
// struct.
func loadConfig(logger hclog.Logger) Config {
	cfg := defaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := saveConfig(cfg); writeErr != nil {
				logger.Warn("failed to write default config", "path", configPath, "error", writeErr)
			} else {
				logger.Info("created default config", "path", configPath)
			}
			return cfg
		}
		logger.Warn("failed to read config", "path", configPath, "error", err)
		return cfg
	}

	if err := decodeConfig(configPath, data, &cfg); err != nil {
		logger.Warn("failed to parse config, using defaults", "path", configPath, "error", err)
		return defaultConfig()
	}

	sanitizeConfig(&cfg, logger)
	return cfg
}

// sanitizeConfig replaces invalid values with defaults and normalizes
// platform names to their canonical spelling.
func sanitizeConfig(cfg *Config, logger hclog.Logger) {
	defaults := defaultConfig()

	platforms, errs := parsePlatforms(cfg.Platforms)
	for _, err := range errs {
		logger.Warn("ignoring platform", "error", err)
	}
	cfg.Platforms = platformNamesOf(platforms)

	if !ValidInterpolation(cfg.Interpolation) {
		if cfg.Interpolation != "" {
			logger.Warn("unknown interpolation, using default", "interpolation", cfg.Interpolation, "default", defaults.Interpolation)
		}
		cfg.Interpolation = defaults.Interpolation
	}
	if cfg.Workers < 0 {
		logger.Warn("invalid workers, using default", "workers", cfg.Workers, "default", defaults.Workers)
		cfg.Workers = defaults.Workers
	}
	if cfg.CacheSize < 0 {
		logger.Warn("invalid cache_size, using default", "cache_size", cfg.CacheSize, "default", defaults.CacheSize)
		cfg.CacheSize = defaults.CacheSize
	}
	if !ValidLogLevel(cfg.LogLevel) {
		if cfg.LogLevel != "" {
			logger.Warn("unknown log_level, using default", "log_level", cfg.LogLevel, "default", defaults.LogLevel)
		}
		cfg.LogLevel = defaults.LogLevel
	}
}

// overrides holds command-line values; nil and empty mean "not set".
type overrides struct {
	Platforms     []string
	Combined      *bool
	Interpolation string
	Workers       *int
	LogLevel      string
}

// applyOverrides applies env vars and flags to config. Priority: flag > env > config file.
func applyOverrides(cfg *Config, o overrides, logger hclog.Logger) {
	next := *cfg
	next.Platforms = append([]string(nil), cfg.Platforms...)
	if err := env.Parse(&next); err != nil {
		logger.Warn("ignoring invalid ICONIZER_* environment", "error", err)
	} else {
		*cfg = next
	}

	if o.Platforms != nil {
		cfg.Platforms = o.Platforms
	}
	if o.Combined != nil {
		cfg.Combined = *o.Combined
	}
	if o.Interpolation != "" {
		cfg.Interpolation = o.Interpolation
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	sanitizeConfig(cfg, logger)
}

// saveConfig writes config to disk with restrictive permissions (0600).
func saveConfig(cfg Config) error {
	data, err := encodeConfig(configPath, cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFileSecure(configPath, data)
}

// saveSelection persists the platform selection and combined mode. Every
// other field keeps its on-disk value.
func saveSelection(cfg Config, logger hclog.Logger) error {
	stored := loadConfig(logger)
	stored.Platforms = cfg.Platforms
	stored.Combined = cfg.Combined
	return saveConfig(stored)
}

// writeFileSecure writes data to path with 0600 permissions, creating parent dirs.
func writeFileSecure(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return writeFileAtomic(path, data, 0o600)
}
