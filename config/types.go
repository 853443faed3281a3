package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TVDB        TVDBConfig        `mapstructure:"tvdb"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Logging     LoggingConfig     `mapstructure:"logging"`

	// File is the config file that was read, or the default location when none was found
	File string `mapstructure:"-"`
}

// TVDBConfig holds TheTVDB API connection details and listing defaults
type TVDBConfig struct {
	URL      string        `mapstructure:"url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxPages int           `mapstructure:"max_pages"`
	Language string        `mapstructure:"language"`
	Ordering string        `mapstructure:"ordering"`
}

// CredentialsConfig selects where the API key is kept
type CredentialsConfig struct {
	Store string `mapstructure:"store"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Credential stores
const (
	StoreConfig  = "config"
	StoreKeyring = "keyring"
)
