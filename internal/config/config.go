package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to talk to the service. Values come
// from, in increasing precedence: built-in defaults, ~/.loopa.yaml, .env /
// environment variables.
type Config struct {
	APIURL       string        `yaml:"api_url" validate:"required,url"`
	Session      string        `yaml:"session"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	PollInterval time.Duration `yaml:"poll_interval" validate:"gt=0"`
	DataDir      string        `yaml:"data_dir" validate:"required"`
}

const (
	defaultAPIURL       = "http://localhost:8080/api"
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 2500 * time.Millisecond
)

var validate = validator.New()

// LoadEnv loads environment variables from a .env file if one exists nearby.
// Missing files are fine; environment variables might be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// Load assembles the effective configuration and validates it.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:       defaultAPIURL,
		Timeout:      defaultTimeout,
		PollInterval: defaultPollInterval,
		DataDir:      defaultDataDir(),
	}

	if err := applyFile(cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFile merges ~/.loopa.yaml over the defaults when the file exists.
func applyFile(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".loopa.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

// applyEnv merges environment variables, the highest-precedence source.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LOOPA_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("LOOPA_SESSION"); v != "" {
		cfg.Session = v
	}
	if v := os.Getenv("LOOPA_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("LOOPA_POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("LOOPA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
}

// ArchivePath returns the sqlite archive location, creating the data
// directory if needed.
func (c *Config) ArchivePath() (string, error) {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir %s: %w", c.DataDir, err)
	}
	return filepath.Join(c.DataDir, "archive.db"), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".loopa"
	}
	return filepath.Join(home, ".loopa")
}
