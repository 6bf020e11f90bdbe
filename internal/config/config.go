package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	JWT        JWTConfig        `yaml:"jwt"`
	Email      EmailConfig      `yaml:"email"`
	Log        LogConfig        `yaml:"log"`
	Onboarding OnboardingConfig `yaml:"onboarding"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// AuthConfig selects the identity provider used to validate bearer tokens.
type AuthConfig struct {
	Provider            string `yaml:"provider"` // "jwt" or "firebase"
	FirebaseCredentials string `yaml:"firebase_credentials"`
	FirebaseProjectID   string `yaml:"firebase_project_id"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// OnboardingConfig contains onboarding session settings
type OnboardingConfig struct {
	SessionTTLHours int `yaml:"session_ttl_hours"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PurgeExpiredSessions    string `yaml:"purge_expired_sessions"`
	ExpireSubscriptions     string `yaml:"expire_subscriptions"`
	SendExpiryReminders     string `yaml:"send_expiry_reminders"`
	CleanupRevokedRoleGrants string `yaml:"cleanup_revoked_role_grants"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Auth
	if val := os.Getenv("AUTH_PROVIDER"); val != "" {
		c.Auth.Provider = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS"); val != "" {
		c.Auth.FirebaseCredentials = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Auth.FirebaseProjectID = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Auth validation
	if c.Auth.Provider == "" {
		c.Auth.Provider = "jwt"
	}
	if c.Auth.Provider != "jwt" && c.Auth.Provider != "firebase" {
		return fmt.Errorf("unsupported auth provider: %s", c.Auth.Provider)
	}
	if c.Auth.Provider == "firebase" && c.Auth.FirebaseCredentials == "" {
		return fmt.Errorf("firebase credentials file is required for firebase auth")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 60 * 24 * 7
	}

	// Onboarding defaults
	if c.Onboarding.SessionTTLHours == 0 {
		c.Onboarding.SessionTTLHours = 24
	}

	// Scheduler defaults
	if c.Scheduler.PurgeExpiredSessions == "" {
		c.Scheduler.PurgeExpiredSessions = "0 0 * * * *" // hourly
	}
	if c.Scheduler.ExpireSubscriptions == "" {
		c.Scheduler.ExpireSubscriptions = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.SendExpiryReminders == "" {
		c.Scheduler.SendExpiryReminders = "0 0 9 * * *" // 9 AM UTC
	}
	if c.Scheduler.CleanupRevokedRoleGrants == "" {
		c.Scheduler.CleanupRevokedRoleGrants = "0 30 2 * * 0" // Sundays 2:30 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
