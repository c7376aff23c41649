// internal/config/config.go
//
// Environment configuration for the Word Scramble server.
// Every setting has a default, so the server starts with no environment at
// all; main loads a .env file (godotenv) before calling Load.
//
// Groups:
//   - Server: listen address, client origin for CORS, token secret.
//   - Game: root word file, session TTL, daily salt.
//   - Dictionary: language, word file, SQLite path, cache size.
//   - Logging: level and output format.

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Game       GameConfig
	Dictionary DictionaryConfig
	Logging    LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string
	Host         string
	Env          string // "development" or "production"
	ClientOrigin string
	JWTSecret    string
}

// GameConfig holds game-related configuration
type GameConfig struct {
	StartWordsFile string        // empty = embedded list
	SessionTTL     time.Duration // idle sessions are pruned after this
	DailySalt      string
}

// DictionaryConfig selects and tunes the dictionary checker
type DictionaryConfig struct {
	Language  string // BCP 47 tag, e.g. "en"
	File      string // one word per line; empty = embedded list
	DBPath    string // SQLite file; when set, takes precedence over File
	CacheSize int    // LRU entries in front of the checker; 0 disables
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			Host:         getEnv("HOST", ""),
			Env:          getEnv("ENV", "development"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		},
		Game: GameConfig{
			StartWordsFile: getEnv("WORDS_START_FILE", ""),
			SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
			DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		},
		Dictionary: DictionaryConfig{
			Language:  getEnv("DICTIONARY_LANG", "en"),
			File:      getEnv("DICTIONARY_FILE", ""),
			DBPath:    getEnv("DICTIONARY_DB", ""),
			CacheSize: getEnvInt("DICTIONARY_CACHE_SIZE", 4096),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
