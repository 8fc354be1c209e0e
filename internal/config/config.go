// Package config loads and persists the Azure AD application credentials
// used to reach Microsoft Graph. Values come from a TOML file, with
// environment variables taking precedence so the secret can be injected
// at runtime instead of written to disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables overriding the config file.
const (
	EnvTenantID     = "TENANT_ID"
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvUserEmail    = "USER_EMAIL"
)

// Validation errors for missing required fields.
var (
	ErrMissingTenantID     = errors.New("config: tenant_id is required")
	ErrMissingClientID     = errors.New("config: client_id is required")
	ErrMissingClientSecret = errors.New("config: client_secret is required")
	ErrMissingUserEmail    = errors.New("config: user_email is required")
)

// Config holds the app registration credentials and the target user.
type Config struct {
	// TenantID is the Azure AD directory (tenant) ID.
	TenantID string `toml:"tenant_id"`
	// ClientID is the application (client) ID of the app registration.
	ClientID string `toml:"client_id"`
	// ClientSecret is the client secret issued for the app registration.
	ClientSecret string `toml:"client_secret"`
	// UserEmail is the user principal name of the drive owner.
	UserEmail string `toml:"user_email"`
}

// DefaultPath returns the default config file location,
// ~/.onedrive-cli/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".onedrive-cli", "config.toml"), nil
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error: the environment alone can provide a
// complete configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Environment-only configuration.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config to path as TOML, readable only by the owner.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports the first missing required field.
func (c *Config) Validate() error {
	if c.TenantID == "" {
		return ErrMissingTenantID
	}
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	if c.UserEmail == "" {
		return ErrMissingUserEmail
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTenantID); v != "" {
		c.TenantID = v
	}
	if v := os.Getenv(EnvClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv(EnvUserEmail); v != "" {
		c.UserEmail = v
	}
}
