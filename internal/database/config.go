package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/logger"
)

// Config holds the PostgreSQL connection settings, read from DB_*
// environment variables with local-development defaults.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig loads connection settings from the environment, consulting
// a .env file first when one is present.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, relying on environment variables")
	}

	return &Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     envOr("DB_USER", "fintrack"),
		Password: envOr("DB_PASSWORD", "fintrack"),
		DBName:   envOr("DB_NAME", "fintrack"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}, nil
}

// DSN returns the keyword/value connection string used by the GORM driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// URL form expected by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
