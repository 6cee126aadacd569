package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// History backend identifiers accepted by HISTORY_BACKEND.
const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
// It is built once in main and never mutated afterwards.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr   string
	BaseURL      string
	CORSOrigins  string // Comma-separated allowed origins
	RateLimitMax int    // Requests per minute per IP

	// Content safety
	EnableProfanityFilter bool
	ProfanityWordList     string // Optional extra word list file

	// Lexicon
	WordNetDir       string // WordNet dict/ directory, empty for the built-in demo seed (a few lemmas only)
	LexiconCacheSize int

	// History
	HistoryBackend         string
	HistoryDir             string
	HistoryMaxEntries      int
	HistoryCleanupInterval time.Duration

	// Backends
	DatabaseURL string
	RedisURL    string

	// Logging
	LogLevel string

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "Verbum"

	// Optional YAML settings, nil when no file exists.
	YAML *YAMLConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   net.JoinHostPort(getEnv("HOST", "127.0.0.1"), getEnv("PORT", "5020")),
		BaseURL:      getEnv("BASE_URL", "http://localhost:5020"),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		EnableProfanityFilter: parseBool(getEnv("ENABLE_PROFANITY_FILTER", "true"), true),
		ProfanityWordList:     getEnv("PROFANITY_WORDLIST", ""),

		WordNetDir:       getEnv("WORDNET_DIR", ""),
		LexiconCacheSize: getEnvInt("LEXICON_CACHE_SIZE", 1024),

		HistoryBackend:         strings.ToLower(getEnv("HISTORY_BACKEND", BackendFile)),
		HistoryDir:             getEnv("HISTORY_DIR", "data"),
		HistoryMaxEntries:      getEnvInt("HISTORY_MAX_ENTRIES", 100),
		HistoryCleanupInterval: getEnvDuration("HISTORY_CLEANUP_INTERVAL", 300*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/verbum?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		SiteTitle: getEnv("SITE_TITLE", "Verbum"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	// Bare numbers are seconds.
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

// parseBool accepts the usual spellings of on/off toggles.
func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HistoryFile returns the path of the JSON history file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.HistoryDir, "search_history.json")
}

// HistoryBoltFile returns the path of the bbolt history database.
func (c *Config) HistoryBoltFile() string {
	return filepath.Join(c.HistoryDir, "search_history.db")
}

// AllowedOrigins returns the CORS origins, falling back to BaseURL.
func (c *Config) AllowedOrigins() []string {
	origins := c.BaseURL
	if c.CORSOrigins != "" {
		origins = c.CORSOrigins
	}
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
