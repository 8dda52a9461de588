package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every externally supplied setting. It is built once in main
// and handed to the components that need it instead of being read ad hoc.
type Config struct {
	Port     string
	BaseURL  string
	Env      string // development or production
	MongoURI string
	RedisURI string

	JWTSecret string

	GeminiAPIKey string
	GeminiModel  string

	RapidAPIKey       string
	OpenWeatherAPIKey string

	// Generation bounds
	MaxGenerateRetries int
	GenerateTimeout    time.Duration

	DefaultHotelPrice float64
}

const (
	defaultModel      = "gemini-2.5-flash"
	defaultHotelPrice = 3500.0
)

// Load reads .env (if present) and the environment and validates required
// settings. Missing optional keys only log a warning so the affected feature
// can degrade instead of blocking startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := &Config{
		Port:               envOr("PORT", "8080"),
		BaseURL:            envOr("BASE_URL", "http://localhost:8080"),
		Env:                envOr("APP_ENV", "development"),
		MongoURI:           envOr("MONGODB_URI", "mongodb://localhost:27017"),
		RedisURI:           envOr("REDIS_URI", "localhost:6379"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        envOr("GEMINI_MODEL", defaultModel),
		RapidAPIKey:        os.Getenv("RAPIDAPI_KEY"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		MaxGenerateRetries: envIntOr("MAX_GENERATE_RETRIES", 3),
		GenerateTimeout:    time.Duration(envIntOr("GENERATE_TIMEOUT_SECONDS", 90)) * time.Second,
		DefaultHotelPrice:  defaultHotelPrice,
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("WARNING: JWT_SECRET not set; using development secret")
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	// Optional keys: warn and degrade.
	if cfg.RapidAPIKey == "" {
		log.Println("WARNING: RAPIDAPI_KEY not set. Hotel pricing will use default values")
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("WARNING: OPENWEATHER_API_KEY not set. Weather features will be disabled")
	}

	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
