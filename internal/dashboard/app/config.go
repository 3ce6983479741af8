package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	SessionSecret string // Required: HS256 secret for session tokens
	SessionIssuer string // Optional: issuer claim for session tokens (default: yt-dashboard)

	GoogleClientID     string // Required: OAuth2 client id
	GoogleClientSecret string // Required: OAuth2 client secret
	GoogleRedirectURI  string // Required: OAuth2 redirect URI registered with Google

	YouTubeAPIKey    string // Required: API key for read-only YouTube calls
	TokenSealKeyFile string // Optional: path to the token sealing key file

	DatabaseFile string   // Optional: path to SQLite database file (default: ./dashboard.db)
	FrontendURLs []string // Optional: allowed CORS origins (default: http://localhost:5173)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Event pruning interval (default: 1h)
	EventRetention       time.Duration // How long activity-log entries are kept (default: 30 days)
}

func LoadConfig() Config {
	cfg := Config{
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionIssuer:        getEnvOrDefault("SESSION_ISSUER", "yt-dashboard"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:    os.Getenv("GOOGLE_REDIRECT_URI"),
		YouTubeAPIKey:        os.Getenv("YOUTUBE_API_KEY"),
		TokenSealKeyFile:     os.Getenv("TOKEN_SEAL_KEY_FILE"), // Optional
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "dashboard.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		EventRetention:       getEnvDurationOrDefault("EVENT_RETENTION", 30*24*time.Hour),
	}

	// FRONTEND_URL accepts a comma-separated list for multi-origin setups.
	frontend := getEnvOrDefault("FRONTEND_URL", "http://localhost:5173")
	for _, origin := range strings.Split(frontend, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.FrontendURLs = append(cfg.FrontendURLs, origin)
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
