// Package credentials persists the TheTVDB API key in the config file or the system keyring.
package credentials

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/zalando/go-keyring"

	"github.com/s0up4200/tvdb-episodes/config"
)

const keyringUser = "api-key"

// ErrNoAPIKey means no API key has been stored yet
var ErrNoAPIKey = errors.New("no API key configured, set one with --key")

// Store reads and writes the API key
type Store interface {
	Get() (string, error)
	Set(apiKey string) error
}

// New returns the store selected by credentials.store
func New(cfg *config.Config, fs afero.Fs) (Store, error) {
	switch cfg.Credentials.Store {
	case config.StoreKeyring:
		return KeyringStore{Service: config.AppName}, nil
	case config.StoreConfig, "":
		return &ConfigStore{fs: fs, path: cfg.File, apiKey: cfg.TVDB.APIKey}, nil
	default:
		return nil, fmt.Errorf("unknown credential store: %s", cfg.Credentials.Store)
	}
}

// KeyringStore keeps the key in the OS keyring
type KeyringStore struct {
	Service string
}

// Get retrieves the API key from the keyring
func (s KeyringStore) Get() (string, error) {
	apiKey, err := keyring.Get(s.Service, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", fmt.Errorf("failed to read API key from keyring: %w", err)
	}
	return apiKey, nil
}

// Set stores the API key in the keyring
func (s KeyringStore) Set(apiKey string) error {
	if err := keyring.Set(s.Service, keyringUser, apiKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// ConfigStore keeps the key in the tvdb.api_key setting of the config file
type ConfigStore struct {
	fs     afero.Fs
	path   string
	apiKey string
}

// Get returns the key loaded with the configuration
func (s *ConfigStore) Get() (string, error) {
	if s.apiKey == "" {
		return "", ErrNoAPIKey
	}
	return s.apiKey, nil
}

// Set writes the key to the config file
func (s *ConfigStore) Set(apiKey string) error {
	if err := config.SaveAPIKey(s.fs, s.path, apiKey); err != nil {
		return err
	}
	s.apiKey = apiKey
	return nil
}
