package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data source modes
const (
	ModeLocal  = "local"
	ModeDirect = "direct"
)

// APIKeyVars are the environment variables checked for the provider key, in order
var APIKeyVars = []string{"OPENWEATHER_API_KEY", "WEATHER_API_KEY"}

// Fetch configures the weather data source
type Fetch struct {
	Mode            string
	LocalBackendURL string
	ProviderBaseURL string
	APIKey          string
	Timeout         time.Duration
}

// Config holds all runtime settings
type Config struct {
	Port          string
	Env           string
	DatabaseURL   string
	UpstreamRPS   float64
	UpstreamBurst int
	Fetch         Fetch
}

// Load reads an optional .env file, then the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	env := getEnv("GO_ENV", "development")

	defaultMode := ModeDirect
	if env == "development" {
		defaultMode = ModeLocal
	}

	return &Config{
		Port:          getEnv("PORT", "8000"),
		Env:           env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		UpstreamRPS:   getEnvFloat("UPSTREAM_RPS", 0),
		UpstreamBurst: getEnvInt("UPSTREAM_BURST", 1),
		Fetch: Fetch{
			Mode:            getEnv("WEATHER_MODE", defaultMode),
			LocalBackendURL: getEnv("LOCAL_BACKEND_URL", "http://localhost:8000"),
			ProviderBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			APIKey:          firstEnv(APIKeyVars...),
			Timeout:         getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("[WARN] %s=%q is not an integer, using %d", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[WARN] %s=%q is not a number, using %g", key, v, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[WARN] %s=%q is not a duration, using %s", key, v, defaultValue)
	}
	return defaultValue
}
