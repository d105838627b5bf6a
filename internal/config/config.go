package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Config holds everything the session needs at startup.
type Config struct {
	// Database configuration
	DBType      string // mysql, postgres, sqlite
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBDatabase  string // file path for sqlite
	DatabaseURL string // full DSN, overrides the fields above
	DBDebug     bool

	Tables Tables

	// AdminPasswordHash is the stored admin credential: hex SHA-256 or a
	// bcrypt hash. Empty disables the admin role.
	AdminPasswordHash string

	// PromptMaxAttempts bounds rejected entries per prompt; 0 is unbounded.
	PromptMaxAttempts int

	LogLevel  string
	LogFormat string
}

// Tables names the three entity tables.
type Tables struct {
	Apartment string
	Tenant    string
	Parking   string
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBType:      strings.ToLower(getEnv("DB_TYPE", "mysql")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", ""),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBDatabase:  getEnv("DB_DATABASE", "Apartment"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBDebug:     getEnvAsBool("DB_DEBUG", false),
		Tables: Tables{
			Apartment: getEnv("TABLE_APARTMENT", "ApartmentUnit"),
			Tenant:    getEnv("TABLE_TENANT", "TenantOwner"),
			Parking:   getEnv("TABLE_PARKING", "Parking"),
		},
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		PromptMaxAttempts: getEnvAsInt("PROMPT_MAX_ATTEMPTS", 0),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields that would otherwise fail deep inside a session.
func (c *Config) Validate() error {
	switch c.DBType {
	case "mysql", "mariadb", "postgres", "postgresql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}

	if c.DBType == "sqlite" && c.DBDatabase == "" && c.DatabaseURL == "" {
		return fmt.Errorf("DB_DATABASE is required for sqlite")
	}

	for env, name := range map[string]string{
		"TABLE_APARTMENT": c.Tables.Apartment,
		"TABLE_TENANT":    c.Tables.Tenant,
		"TABLE_PARKING":   c.Tables.Parking,
	} {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("%s must be a plain SQL identifier, got %q", env, name)
		}
	}

	if c.PromptMaxAttempts < 0 {
		return fmt.Errorf("PROMPT_MAX_ATTEMPTS must not be negative")
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT: %s", c.LogFormat)
	}

	return nil
}

func defaultPort(dbType string) string {
	switch dbType {
	case "postgres", "postgresql":
		return "5432"
	default:
		return "3306"
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
