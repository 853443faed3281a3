package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppName names the config directory, the env prefix and the keyring service
const AppName = "tvdb-episodes"

const envPrefix = "TVDB_EPISODES"

// Dir returns the per-user config directory
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, AppName)
}

// DefaultFile returns the config file written when none exists yet
func DefaultFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load loads the configuration from file and environment.
// A missing config file is not an error unless configPath names it explicitly.
func Load(fs afero.Fs, configPath string) (*Config, error) {
	v := newViper(fs)

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.File = v.ConfigFileUsed()
	if cfg.File == "" {
		cfg.File = DefaultFile()
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// SaveAPIKey writes the API key into the config file at path, keeping its other settings
func SaveAPIKey(fs afero.Fs, path, apiKey string) error {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config: %w", err)
		}
	} else if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v.Set("tvdb.api_key", apiKey)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TheTVDB defaults
	v.SetDefault("tvdb.url", "https://api.thetvdb.com")
	v.SetDefault("tvdb.api_key", "")
	v.SetDefault("tvdb.timeout", 30*time.Second)
	v.SetDefault("tvdb.max_pages", 1000)
	v.SetDefault("tvdb.language", "en")
	v.SetDefault("tvdb.ordering", "aired")

	v.SetDefault("credentials.store", StoreConfig)

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TVDB.URL == "" {
		return fmt.Errorf("tvdb.url is required")
	}

	if cfg.TVDB.Timeout <= 0 {
		return fmt.Errorf("tvdb.timeout must be positive")
	}

	if cfg.TVDB.MaxPages < 1 {
		return fmt.Errorf("tvdb.max_pages must be at least 1")
	}

	validOrderings := map[string]bool{
		"aired": true,
		"dvd":   true,
	}
	if !validOrderings[strings.ToLower(cfg.TVDB.Ordering)] {
		return fmt.Errorf("invalid tvdb.ordering: %s (must be 'aired' or 'dvd')", cfg.TVDB.Ordering)
	}

	validStores := map[string]bool{
		StoreConfig:  true,
		StoreKeyring: true,
	}
	if !validStores[cfg.Credentials.Store] {
		return fmt.Errorf("invalid credentials.store: %s (must be 'config' or 'keyring')", cfg.Credentials.Store)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
