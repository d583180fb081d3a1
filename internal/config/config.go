package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/matheuskafuri/newsai/internal/theme"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	envAPIURL = "NEWSAI_API_URL"
	envTheme  = "NEWSAI_THEME"

	maxPageSize = 100
)

type Config struct {
	APIURL     string   `yaml:"api_url"`
	PageSize   int      `yaml:"page_size,omitempty"`
	Theme      string   `yaml:"theme,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
}

// GetPageSize returns the page size, defaulting to 20.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 20
	}
	return c.PageSize
}

// ThemeMode returns the configured starting theme. Validation has already
// rejected unknown names.
func (c *Config) ThemeMode() theme.Mode {
	m, _ := theme.Parse(c.Theme)
	return m
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsai", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (DefaultConfigPath when empty). A missing
// file is created from the embedded defaults. Keys absent from the file
// keep their default values. NEWSAI_API_URL and NEWSAI_THEME override the
// file.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: just use embedded defaults
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(envTheme); v != "" {
		cfg.Theme = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks a config assembled outside Load, e.g. after flag overrides.
func Validate(cfg *Config) error {
	return validate(cfg)
}

func validate(cfg *Config) error {
	if cfg.APIURL != "" {
		u, err := url.Parse(cfg.APIURL)
		if err != nil {
			return fmt.Errorf("api_url: invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme)
		}
	}
	if cfg.PageSize < 0 || cfg.PageSize > maxPageSize {
		return fmt.Errorf("page_size: must be between 1 and %d, got %d", maxPageSize, cfg.PageSize)
	}
	if _, err := theme.Parse(cfg.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	seen := make(map[string]bool, len(cfg.Categories))
	for i, c := range cfg.Categories {
		if c == "" {
			return fmt.Errorf("categories: entry %d is empty", i)
		}
		if seen[c] {
			return fmt.Errorf("categories: %q listed twice", c)
		}
		seen[c] = true
	}
	return nil
}
