package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv                 string
	LogLevel               slog.Level
	ApiServicePort         string
	PostgreSQLHost         string
	PostgreSQLPort         int64
	PostgreSQLUser         string
	PostgreSQLPassword     string
	PostgreSQLDatabase     string
	JWTAccessSecret        string
	JWTRefreshSecret       string
	AccessTokenExpiration  int64
	RefreshTokenExpiration int64
	TokenSweepInterval     int64 // Expired refresh token sweep interval in seconds
	RedisHost              string
	RedisPort              int64
	RedisPassword          string
	RedisDatabase          int64
	EntryCacheTTL          int64 // Entry list cache TTL in seconds
}

func LoadConfig() *Config {
	// Optional .env file for local development
	_ = godotenv.Load()

	return &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),                  // Default development
		LogLevel:               getLogLevel(),                                     // Default INFO
		ApiServicePort:         getEnv("API_SERVICE_PORT", "8080"),                // Default 8080
		PostgreSQLHost:         getEnv("POSTGRESQL_HOST", "db"),                   // Default db
		PostgreSQLPort:         getEnvAsInt64("POSTGRESQL_PORT", 5432),            // Default 5432
		PostgreSQLUser:         getEnv("POSTGRESQL_USER", "journal_user"),         // Default user
		PostgreSQLPassword:     getEnv("POSTGRESQL_PASSWORD", "journal_password"), // Default password
		PostgreSQLDatabase:     getEnv("POSTGRESQL_DATABASE", "journal_db"),       // Default database name
		JWTAccessSecret:        getEnv("JWT_ACCESS_SECRET", "journal_access"),     // Access token signing key
		JWTRefreshSecret:       getEnv("JWT_REFRESH_SECRET", "journal_refresh"),   // Refresh token signing key
		AccessTokenExpiration:  getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),     // Default 15 minutes
		RefreshTokenExpiration: getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800), // Default 7 days
		TokenSweepInterval:     getEnvAsInt64("TOKEN_SWEEP_INTERVAL", 3600),       // Default 1 hour
		RedisHost:              getEnv("REDIS_HOST", "redis"),                     // Default redis
		RedisPort:              getEnvAsInt64("REDIS_PORT", 6379),                 // Default 6379
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),                      // Default empty
		RedisDatabase:          getEnvAsInt64("REDIS_DATABASE", 0),                // Default 0
		EntryCacheTTL:          getEnvAsInt64("ENTRY_CACHE_TTL", 300),             // Default 5 minutes
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
