// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultVendorID is stamped on records when VENDOR_ID is not set. It is a
// stopgap until the webhook carries an authenticated seller identity.
const DefaultVendorID = "5WNxFf3NQzdPO6L1LREz80gBQ1h1"

// Config aggregates every tunable of the service.
type Config struct {
	Server ServerConfig
	Twilio TwilioConfig
	Dynamo DynamoConfig
	Redis  RedisConfig
	Form   FormConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// TwilioConfig covers webhook authentication. An empty AuthToken disables
// signature validation.
type TwilioConfig struct {
	AuthToken     string
	PublicBaseURL string
}

// DynamoConfig locates the visits table.
type DynamoConfig struct {
	Table  string
	Region string
}

// RedisConfig is optional; an empty Addr means no dedup backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// FormConfig holds the conversation-engine tunables.
type FormConfig struct {
	VendorID    string
	CatalogFile string
	SessionTTL  time.Duration
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	table := strings.TrimSpace(os.Getenv("VISITS_TABLE"))
	if table == "" {
		return nil, fmt.Errorf("VISITS_TABLE is required")
	}

	redisDB, err := parseIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Twilio: TwilioConfig{
			AuthToken:     strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")),
			PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/"),
		},
		Dynamo: DynamoConfig{
			Table:  table,
			Region: strings.TrimSpace(os.Getenv("AWS_REGION")),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Form: FormConfig{
			VendorID:    getEnvOrDefault("VENDOR_ID", DefaultVendorID),
			CatalogFile: strings.TrimSpace(os.Getenv("CATALOG_FILE")),
			SessionTTL:  sessionTTL,
		},
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, ":") {
		// Allow ":5000" or "127.0.0.1:5000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}
