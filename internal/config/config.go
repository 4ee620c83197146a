// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Blob     BlobConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds the connection settings of the sqlite and postgres drivers.
type DatabaseConfig struct {
	Driver     string // memory | sqlite | postgres
	SQLitePath string
	URL        string // DATABASE_DSN, takes precedence over the discrete fields
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

// StoreConfig holds record store settings.
type StoreConfig struct {
	KeyPrefix string
}

// BlobConfig selects where delivery and route photos are kept.
type BlobConfig struct {
	Driver      string // memory | fs | s3
	FSRoot      string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev              bool
	Migrations       bool
	SimulatedLatency time.Duration
	ResetTokenTTL    time.Duration
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
			SQLitePath: getEnv("SQLITE_PATH", "dairy.db"),
			URL:        os.Getenv("DATABASE_DSN"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "dairy"),
			Password:   getEnv("DB_PASSWORD", "dairy123"),
			DBName:     getEnv("DB_NAME", "dairy"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Store: StoreConfig{
			KeyPrefix: getEnv("STORE_KEY_PREFIX", "yd-"),
		},
		Blob: BlobConfig{
			Driver:      strings.ToLower(getEnv("BLOB_DRIVER", "fs")),
			FSRoot:      getEnv("BLOB_FS_ROOT", "./blobdata"),
			S3Bucket:    os.Getenv("BLOB_S3_BUCKET"),
			S3Region:    getEnv("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:  os.Getenv("BLOB_S3_ENDPOINT"),
			S3PathStyle: getEnvBool("BLOB_S3_PATH_STYLE", false),
		},
		App: AppConfig{
			Dev:              getEnvBool("DEV", true),
			Migrations:       getEnvBool("MIGRATIONS", true),
			SimulatedLatency: getEnvDuration("SIMULATED_LATENCY", 0),
			ResetTokenTTL:    getEnvDuration("RESET_TOKEN_TTL", 5*time.Minute),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

// getEnvDuration parses values like "300ms" or "5m"; a bare integer is read as milliseconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
