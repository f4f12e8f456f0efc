package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	SourceGoogleNews = "googlenews"
	SourceNaver      = "naver"

	defaultRefreshInterval = 30 * time.Minute
)

type NaverAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

type Config struct {
	// Source selects the search backend: "googlenews" (no credentials)
	// or "naver" (requires an Open API client id/secret).
	Source          string     `yaml:"source"`
	RefreshInterval string     `yaml:"refresh_interval"`
	Naver           *NaverAuth `yaml:"naver,omitempty"`
}

func defaults() *Config {
	return &Config{
		Source:          SourceGoogleNews,
		RefreshInterval: defaultRefreshInterval.String(),
	}
}

// RefreshDuration returns the configured auto-refresh interval. "off"
// disables the timer; anything unparseable falls back to the default.
func (c *Config) RefreshDuration() time.Duration {
	if c.RefreshInterval == "off" {
		return 0
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return defaultRefreshInterval
	}
	return d
}

// NaverClientID resolves the Naver client id, preferring the environment
// over the config file so the credential pair can stay out of it entirely.
func (c *Config) NaverClientID() string {
	if v := os.Getenv("NEWSDECK_NAVER_ID"); v != "" {
		return v
	}
	if c.Naver != nil {
		return c.Naver.ClientID
	}
	return ""
}

func (c *Config) NaverClientSecret() string {
	if v := os.Getenv("NEWSDECK_NAVER_SECRET"); v != "" {
		return v
	}
	if c.Naver != nil {
		return c.Naver.ClientSecret
	}
	return ""
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdeck", "config.yaml")
}

func StatePath() string {
	return filepath.Join(xdg.DataHome, "newsdeck", "state.db")
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaults()
			// Write defaults on first run so the file is there to edit.
			// Failing to write is non-fatal: run with in-memory defaults.
			_ = writeDefaults(path, cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	switch cfg.Source {
	case SourceGoogleNews, SourceNaver:
	default:
		return fmt.Errorf("unknown source %q (valid: %s, %s)",
			cfg.Source, SourceGoogleNews, SourceNaver)
	}
	if cfg.Source == SourceNaver && (cfg.NaverClientID() == "" || cfg.NaverClientSecret() == "") {
		return fmt.Errorf("source %q needs naver.client_id/client_secret in the config or NEWSDECK_NAVER_ID/NEWSDECK_NAVER_SECRET in the environment", SourceNaver)
	}
	return nil
}
