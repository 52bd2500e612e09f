package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port    string `yaml:"port" env:"SERVER_PORT"`
		Mode    string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	Store struct {
		Driver          string `yaml:"driver" env:"STORE_DRIVER"`
		ProjectID       string `yaml:"project_id" env:"STORE_PROJECT_ID"`
		CredentialsFile string `yaml:"credentials_file" env:"STORE_CREDENTIALS_FILE"`
	} `yaml:"store"`

	Storage struct {
		Driver    string `yaml:"driver" env:"STORAGE_DRIVER"`
		Bucket    string `yaml:"bucket" env:"STORAGE_BUCKET"`
		LocalPath string `yaml:"local_path" env:"STORAGE_LOCAL_PATH"`
	} `yaml:"storage"`

	Admin struct {
		Email        string `yaml:"email" env:"ADMIN_EMAIL"`
		PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	} `yaml:"admin"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	SMTP struct {
		Host         string `yaml:"host" env:"SMTP_HOST"`
		Port         int    `yaml:"port" env:"SMTP_PORT"`
		Username     string `yaml:"username" env:"SMTP_USERNAME"`
		Password     string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName     string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail    string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		PollInterval string `yaml:"poll_interval" env:"SMTP_POLL_INTERVAL"`
	} `yaml:"smtp"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:8080"

	// Store defaults
	config.Store.Driver = "firestore"

	// Storage defaults
	config.Storage.Driver = "local"
	config.Storage.LocalPath = "uploads"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "event-portal"

	// SMTP defaults
	config.SMTP.Port = 587
	config.SMTP.PollInterval = "1m"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case "firestore":
		if config.Store.ProjectID == "" && config.Store.CredentialsFile == "" {
			return fmt.Errorf("firestore store requires a project ID or credentials file")
		}
	case "memory":
		// No further settings required.
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	switch config.Storage.Driver {
	case "gcs":
		if config.Storage.Bucket == "" {
			return fmt.Errorf("gcs storage requires a bucket name")
		}
	case "local":
		if config.Storage.LocalPath == "" {
			return fmt.Errorf("local storage requires a path")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Admin.Email == "" || config.Admin.PasswordHash == "" {
		return fmt.Errorf("admin email and password hash are required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.SMTP.Host != "" {
		if _, err := time.ParseDuration(config.SMTP.PollInterval); err != nil {
			return fmt.Errorf("invalid SMTP poll interval format: %w", err)
		}
	}

	return nil
}

// MailerEnabled reports whether the outbox mailer should run
func (c *Config) MailerEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.FromEmail != ""
}
