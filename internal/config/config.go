package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Port string
	Env  string

	LogLevel  string
	LogFormat string

	StorageDriver string
	SeedFixtures  bool
	Database      DatabaseConfig

	RabbitMQURL    string
	EventsExchange string

	AI   AIConfig
	Auth AuthConfig
}

// DatabaseConfig holds the postgres connection and pool settings.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AIConfig holds the text generation credential and model.
type AIConfig struct {
	APIKey string
	Model  string
}

// AuthConfig holds the back-office operator credentials. An empty Secret disables auth.
type AuthConfig struct {
	Secret       string
	AdminEmail   string
	PasswordHash string
}

// Load reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil

	cfg := &Config{
		Port:          getEnv("APP_PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		SeedFixtures:  getBool("SEED_FIXTURES", true),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		EventsExchange: getEnv("EVENTS_EXCHANGE", "backoffice_events"),
		AI: AIConfig{
			APIKey: os.Getenv("AI_API_KEY"),
			Model:  getEnv("AI_MODEL", "gemini-2.5-flash"),
		},
		Auth: AuthConfig{
			Secret:       os.Getenv("AUTH_SECRET"),
			AdminEmail:   os.Getenv("ADMIN_EMAIL"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
	}
	return cfg, found
}

// Validate checks settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	if err := ValidatePort(c.Port); err != nil {
		return err
	}
	switch c.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (allowed: memory, postgres)", c.StorageDriver)
	}
	if c.Auth.Secret != "" && (c.Auth.AdminEmail == "" || c.Auth.PasswordHash == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required when AUTH_SECRET is set")
	}
	return nil
}

// ValidatePort checks that port is a number in 1-65535.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New("port cannot be empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number '%s': must be a number", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port number %d is out of range: must be between 1 and 65535", n)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
