package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey string // API key for authentication

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored.
	TrustedProxies []string

	// Reference coordinates for the weather provider (a fixed location,
	// the service is single-region).
	WeatherLatitude  float64
	WeatherLongitude float64
	WeatherCacheTTL  time.Duration

	// CropSeedPath points at the JSON catalog synced to the database at boot.
	CropSeedPath string

	// NotifyWebhookURL receives fire-and-forget field/task notifications.
	// Empty disables the webhook sink.
	NotifyWebhookURL string

	// ActiveFarmerWindow is the cutoff for the active-farmer count,
	// computed on read.
	ActiveFarmerWindow time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		ServiceName:      getEnv("SERVICE_NAME", "sakahan-api"),
		Version:          getEnv("VERSION", "dev"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", "sakahan"),
		APIKey:           getEnv("API_KEY", ""),
		CropSeedPath:     getEnv("CROP_SEED_PATH", "configs/crops.json"),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	lat, err := strconv.ParseFloat(getEnv("WEATHER_LATITUDE", "14.0833"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_LATITUDE value: %w", err)
	}
	cfg.WeatherLatitude = lat

	lon, err := strconv.ParseFloat(getEnv("WEATHER_LONGITUDE", "121.1500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_LONGITUDE value: %w", err)
	}
	cfg.WeatherLongitude = lon

	cacheTTL, err := time.ParseDuration(getEnv("WEATHER_CACHE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_CACHE_TTL value: %w", err)
	}
	cfg.WeatherCacheTTL = cacheTTL

	activeWindow, err := time.ParseDuration(getEnv("ACTIVE_FARMER_WINDOW", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVE_FARMER_WINDOW value: %w", err)
	}
	cfg.ActiveFarmerWindow = activeWindow

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
