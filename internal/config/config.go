package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (MARQUEE_CATALOG_ACCESS_TOKEN, ...)
const EnvPrefix = "MARQUEE"

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Identity IdentityConfig `mapstructure:"identity"`
	Session  SessionConfig  `mapstructure:"session"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig holds upstream catalog settings.
// APIKey and AccessToken must come from the config file or environment.
type CatalogConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	APIKey       string        `mapstructure:"api_key"`      // v3 api_key query parameter
	AccessToken  string        `mapstructure:"access_token"` // v4 bearer token
	AccountID    string        `mapstructure:"account_id"`   // watchlist account
	Timeout      time.Duration `mapstructure:"timeout"`
}

// IdentityConfig holds identity provider settings
type IdentityConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds persisted session settings
type SessionConfig struct {
	StorePath string `mapstructure:"store_path"` // empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView string `mapstructure:"default_view"` // route to land on after sign-in
	ImageSize   string `mapstructure:"image_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Timeout:      30 * time.Second,
		},
		Identity: IdentityConfig{
			BaseURL: "https://identitytoolkit.googleapis.com/v1",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			StorePath: filepath.Join(defaultDataPath(), "session.db"),
		},
		UI: UIConfig{
			DefaultView: "/home",
			ImageSize:   "w500",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// LoadConfig loads configuration from .env files, the config file and the environment.
// An explicit configFile overrides the default search path.
func LoadConfig(configFile string) (*Config, error) {
	// .env files are optional; real environment variables win over them
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("error reading %s: %w", f, err)
			}
		}
	}

	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configFile == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Session.StorePath = expandHome(cfg.Session.StorePath)
	return cfg, nil
}

// newViper builds a viper instance seeded with defaults and env bindings
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("catalog.base_url", def.Catalog.BaseURL)
	v.SetDefault("catalog.image_base_url", def.Catalog.ImageBaseURL)
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.access_token", "")
	v.SetDefault("catalog.account_id", "")
	v.SetDefault("catalog.timeout", def.Catalog.Timeout)

	v.SetDefault("identity.base_url", def.Identity.BaseURL)
	v.SetDefault("identity.api_key", "")
	v.SetDefault("identity.timeout", def.Identity.Timeout)

	v.SetDefault("session.store_path", def.Session.StorePath)

	v.SetDefault("ui.default_view", def.UI.DefaultView)
	v.SetDefault("ui.image_size", def.UI.ImageSize)

	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides (defaults above make every key bindable)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SaveConfig writes a config file without credentials.
// Secrets are expected in the environment or a .env file.
func SaveConfig(cfg *Config, configFile string) error {
	if configFile == "" {
		configFile = filepath.Join(DefaultConfigPath(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.Set("catalog.account_id", cfg.Catalog.AccountID)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("identity.base_url", cfg.Identity.BaseURL)
	v.Set("identity.timeout", cfg.Identity.Timeout.String())
	v.Set("session.store_path", cfg.Session.StorePath)
	v.Set("ui.default_view", cfg.UI.DefaultView)
	v.Set("ui.image_size", cfg.UI.ImageSize)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports missing runtime credentials
func (c *Config) Validate() error {
	var missing []string
	if c.Catalog.APIKey == "" && c.Catalog.AccessToken == "" {
		missing = append(missing, "catalog.api_key or catalog.access_token")
	}
	if c.Identity.APIKey == "" {
		missing = append(missing, "identity.api_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s (set them in config.yaml, .env or %s_* environment variables)",
			strings.Join(missing, ", "), EnvPrefix)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
