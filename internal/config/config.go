package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/scrivener/internal/credential"
)

// Config captures scrivener's settings.
type Config struct {
	APIBase        string
	CredentialPath string
	LogLevel       string
	LogFormat      string
	PollInterval   time.Duration
}

const (
	defaultConfigPath   = "~/.config/scrivener/config.toml"
	defaultAPIBase      = "http://localhost:8008"
	defaultLogLevel     = "warn"
	defaultLogFormat    = "text"
	defaultPollInterval = 5 * time.Second

	// EnvAPIBase overrides api_base from the file.
	EnvAPIBase = "SCRIVENER_API_BASE"
)

// Validation errors.
var (
	ErrInvalidLogLevel     = errors.New("invalid log_level: want debug, info, warn or error")
	ErrInvalidLogFormat    = errors.New("invalid log_format: want text or json")
	ErrInvalidPollInterval = errors.New("invalid poll_interval: must be positive")
	ErrInvalidAPIBase      = errors.New("invalid api_base: must not be empty")
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		CredentialPath: credential.DefaultPath(),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		PollInterval:   defaultPollInterval,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		CredentialPath string `toml:"credential_path"`
		LogLevel       string `toml:"log_level"`
		LogFormat      string `toml:"log_format"`
		PollInterval   string `toml:"poll_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.CredentialPath); v != "" {
		cfg.CredentialPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: poll_interval %q: %w", v, err)
		}
		cfg.PollInterval = d
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks field values Load cannot fix up on its own.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBase) == "" {
		return ErrInvalidAPIBase
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	return nil
}

// LogPath returns the file the TUI writes its log to, next to the
// credential database.
func (c Config) LogPath() string {
	dir := filepath.Dir(c.CredentialPath)
	if strings.TrimSpace(c.CredentialPath) == "" {
		dir = filepath.Dir(credential.DefaultPath())
	}
	return filepath.Join(dir, "scrivener.log")
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, expands a leading "~" and makes it absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
