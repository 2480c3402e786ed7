package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	APIPrefix string
	// CORSOrigin is passed to the CORS middleware as AllowOrigins
	CORSOrigin string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBSlowQueryMs   int
	DBLogQueries    bool
	DefaultPageSize int

	LogDir        string
	IntegrityCron string // empty disables the sweep
}

// LoadConfig reads configuration from a .env file if present, then from the environment
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "3000"),
		APIPrefix:  getEnv("API_PREFIX", "/api/v1"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "course_service"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "course_service.db"),

		DBMaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBSlowQueryMs:   getEnvInt("DB_SLOW_QUERY_MS", 200),
		DBLogQueries:    getEnvBool("DB_LOG_QUERIES", false),
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_LIMIT", 10),

		LogDir:        getEnv("LOG_DIR", "logs"),
		IntegrityCron: os.Getenv("INTEGRITY_CRON"),
	}
	if _, set := os.LookupEnv("INTEGRITY_CRON"); !set {
		cfg.IntegrityCron = "@every 1h"
	}

	if cfg.DBPassword == "" && cfg.DBDriver != "sqlite" {
		log.Println("Warning: DB_PASSWORD is empty. Update it in your environment.")
	}
	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
