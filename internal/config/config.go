// Package config loads ascent's settings from defaults, a YAML file, a .env
// file and ASCENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBackendURL is the hosted tracker backend.
const DefaultBackendURL = "https://ascent-backend-842l.onrender.com"

// Config holds all ascent configuration.
type Config struct {
	// BackendURL is the tracker backend base URL.
	BackendURL string `yaml:"backend_url"`

	// Handle is the judge handle. It is never read from or written to the
	// config file; it lives only for one process.
	Handle string `yaml:"-"`

	// DBPath is the activity journal location. Empty uses the XDG default.
	DBPath string `yaml:"db_path"`

	// LogFile is where logs are written. Empty uses the XDG default.
	LogFile string `yaml:"log_file"`

	Verbose bool `yaml:"verbose"`

	// Timeout bounds each backend request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	// SuccessWindow is how long a verification success stays on screen.
	SuccessWindow time.Duration `yaml:"success_window"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BackendURL:    DefaultBackendURL,
		SuccessWindow: 2 * time.Second,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with ASCENT_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ASCENT_BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv("ASCENT_HANDLE"); v != "" {
		c.Handle = v
	}
	if v := os.Getenv("ASCENT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ASCENT_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("ASCENT_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ASCENT_VERBOSE: %w", err)
		}
		c.Verbose = b
	}
	if v := os.Getenv("ASCENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASCENT_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("ASCENT_SUCCESS_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASCENT_SUCCESS_WINDOW: %w", err)
		}
		c.SuccessWindow = d
	}
	return nil
}

// Validate checks the backend URL and durations.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend URL %q must be an absolute http(s) URL", c.BackendURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.SuccessWindow <= 0 {
		return fmt.Errorf("success window must be positive, got %s", c.SuccessWindow)
	}
	return nil
}

// DefaultConfigPath resolves the config file path:
// 1. $XDG_CONFIG_HOME/ascent/config.yaml
// 2. ~/.config/ascent/config.yaml
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ascent", "config.yaml"), nil
}
