// Package config loads application configuration that is richer than a single
// environment variable: the YAML security file and the AI provider settings.
package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	envconfig "newsroom/pkg/config"
)

// SecurityConfig represents security configuration.
type SecurityConfig struct {
	Security struct {
		Session struct {
			SecretEnv   string `yaml:"secret_env"`
			CookieName  string `yaml:"cookie_name"`
			ExpiryHours int    `yaml:"expiry_hours"`
			Secure      bool   `yaml:"secure"`
		} `yaml:"session"`
		Password struct {
			MinLength     int      `yaml:"min_length"`
			BcryptCost    int      `yaml:"bcrypt_cost"`
			WeakPasswords []string `yaml:"weak_passwords"`
		} `yaml:"password"`
		AdminBypass bool `yaml:"admin_bypass"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the settings used when no file is configured.
func DefaultSecurityConfig() *SecurityConfig {
	var c SecurityConfig
	c.Security.Session.SecretEnv = "SESSION_SECRET"
	c.Security.Session.CookieName = "session"
	c.Security.Session.ExpiryHours = 24 * 7
	c.Security.Session.Secure = true
	c.Security.Password.MinLength = 8
	c.Security.Password.BcryptCost = bcrypt.DefaultCost
	return &c
}

// LoadSecurityConfig loads security configuration from YAML file.
// Keys missing from the file keep their defaults.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (env or CLI), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSecurityConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// LoadSecurityConfigFromEnv reads SECURITY_CONFIG_PATH when set, then applies
// COOKIE_SECURE, SESSION_TTL and ADMIN_BYPASS_ENABLED overrides.
func LoadSecurityConfigFromEnv() (*SecurityConfig, error) {
	config := DefaultSecurityConfig()
	if path := envconfig.GetEnvString("SECURITY_CONFIG_PATH", ""); path != "" {
		loaded, err := LoadSecurityConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	config.Security.Session.Secure = envconfig.GetEnvBool("COOKIE_SECURE", config.Security.Session.Secure)
	if ttl := envconfig.GetEnvDuration("SESSION_TTL", 0); ttl >= time.Hour {
		config.Security.Session.ExpiryHours = int(ttl / time.Hour)
	}
	config.Security.AdminBypass = envconfig.GetEnvBool("ADMIN_BYPASS_ENABLED", config.Security.AdminBypass)

	if err := validateSecurityConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func validateSecurityConfig(config *SecurityConfig) error {
	s := config.Security
	if s.Session.SecretEnv == "" {
		return fmt.Errorf("session secret_env is required")
	}
	if s.Session.CookieName == "" {
		return fmt.Errorf("session cookie_name is required")
	}
	if s.Session.ExpiryHours <= 0 {
		return fmt.Errorf("session expiry_hours must be positive")
	}
	if s.Password.MinLength < 8 {
		return fmt.Errorf("password min_length must be at least 8")
	}
	if s.Password.BcryptCost < bcrypt.MinCost || s.Password.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("password bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// SessionTTL returns the session lifetime.
func (c *SecurityConfig) SessionTTL() time.Duration {
	return time.Duration(c.Security.Session.ExpiryHours) * time.Hour
}

// SessionSecret reads the signing secret from the configured environment variable.
func (c *SecurityConfig) SessionSecret() string {
	return os.Getenv(c.Security.Session.SecretEnv)
}
