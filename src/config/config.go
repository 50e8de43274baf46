package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/username/hogiahlang/src/models"
)

type AppConfig struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// APIToken protects the HTTP API. Requests must carry it as a bearer token.
	APIToken string

	RatesAPIBaseURL string
	RatesCacheTTL   time.Duration

	DefaultReportingCurrency string
	DefaultUserID            int64

	AllowedOrigin string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	apiToken := getEnv("API_TOKEN", "dev-token-change-me")
	if apiToken == "dev-token-change-me" {
		log.Println("WARNING: Using default insecure API_TOKEN. Set API_TOKEN environment variable for production.")
	}

	reportingCurrency := getEnv("DEFAULT_REPORTING_CURRENCY", models.DefaultCurrency)
	if !models.IsSupportedCurrency(reportingCurrency) {
		log.Printf("WARNING: Unsupported DEFAULT_REPORTING_CURRENCY '%s'. Using %s.", reportingCurrency, models.DefaultCurrency)
		reportingCurrency = models.DefaultCurrency
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./hogiahlang.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		APIToken: apiToken,

		RatesAPIBaseURL: getEnv("RATES_API_BASE_URL", "https://api.exchangerate-api.com/v4/latest"),
		RatesCacheTTL:   getEnvAsDuration("RATES_CACHE_TTL", 30*time.Minute),

		DefaultReportingCurrency: reportingCurrency,
		DefaultUserID:            getEnvAsInt64("DEFAULT_USER_ID", 1),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, RatesAPI=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.RatesAPIBaseURL)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
