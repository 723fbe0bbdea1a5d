// Package config manages check-secunet configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout is the per-request deadline when none is configured.
const DefaultTimeout = 10 * time.Second

const (
	OutputJSON       = "json"
	OutputPrometheus = "prometheus"
)

// Environment variables read by ApplyEnv.
const (
	EnvURL               = "KONNEKTOR_URL"
	EnvUsername          = "KONNEKTOR_USERNAME"
	EnvPassword          = "KONNEKTOR_PASSWORD"
	EnvTenant            = "KONNEKTOR_TENANT"
	EnvICCSNSmcB         = "KONNEKTOR_ICCSN_SMCB"
	EnvDisableCertVerify = "KONNEKTOR_DISABLE_CERT_VERIFY"
	EnvConfigPath        = "CHECK_SECUNET_CONFIG"
)

// Config holds the connection settings of a check run.
type Config struct {
	URL               string `yaml:"url"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password,omitempty"`
	Tenant            string `yaml:"tenant,omitempty"`
	ICCSNSmcB         string `yaml:"iccsn_smcb,omitempty"`
	DisableCertVerify bool   `yaml:"disable_cert_verify,omitempty"`
	Timeout           string `yaml:"timeout,omitempty"`
	Output            string `yaml:"output,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputJSON,
	}
}

// Load reads a config file from the given path. If the file does not exist,
// it returns the default config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Output == "" {
		cfg.Output = OutputJSON
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables already set in the environment win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with the KONNEKTOR_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvURL); ok {
		cfg.URL = v
	}
	if v, ok := os.LookupEnv(EnvUsername); ok {
		cfg.Username = v
	}
	if v, ok := os.LookupEnv(EnvPassword); ok {
		cfg.Password = v
	}
	if v, ok := os.LookupEnv(EnvTenant); ok {
		cfg.Tenant = v
	}
	if v, ok := os.LookupEnv(EnvICCSNSmcB); ok {
		cfg.ICCSNSmcB = v
	}
	if v, ok := os.LookupEnv(EnvDisableCertVerify); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvDisableCertVerify, v, err)
		}
		cfg.DisableCertVerify = b
	}
	return nil
}

// ParseTimeout returns the configured per-request timeout, or DefaultTimeout
// when none is set.
func ParseTimeout(cfg *Config) (time.Duration, error) {
	if cfg.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", cfg.Timeout)
	}
	return d, nil
}

// ConfigDir returns the default config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".check-secunet"), nil
}

// ConfigPath returns the config file path, respecting the CHECK_SECUNET_CONFIG env var.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
