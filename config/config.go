package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Store    StoreConfig
	Redis    RedisConfig
	Cache    CacheConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type FirebaseConfig struct {
	// One of CredentialsPath or CredentialsBase64 must be set when the
	// firestore store driver is selected or token verification is enabled.
	CredentialsPath   string
	CredentialsBase64 string
	ProjectID         string
	// WebAPIKey is the browser API key used by the identity REST endpoints
	// (sign-in, sign-up, token refresh).
	WebAPIKey string
}

type StoreConfig struct {
	// Driver selects the project store implementation: "memory" or "firestore".
	Driver     string
	Collection string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	ViewTTL      time.Duration
	WarmInterval string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath:   getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			CredentialsBase64: getEnv("FIREBASE_SERVICE_ACCOUNT_BASE64", ""),
			ProjectID:         getEnv("FIREBASE_PROJECT_ID", ""),
			WebAPIKey:         getEnv("FIREBASE_WEB_API_KEY", ""),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", "firestore"),
			Collection: getEnv("STORE_COLLECTION", "projects"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			ViewTTL:      time.Duration(getEnvAsInt("CACHE_VIEW_TTL_SECONDS", 300)) * time.Second,
			WarmInterval: getEnv("CACHE_WARM_SPEC", "0 */5 * * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case "memory", "firestore":
	default:
		return fmt.Errorf("STORE_DRIVER must be \"memory\" or \"firestore\", got %q", c.Store.Driver)
	}

	if c.Store.Driver == "firestore" {
		if c.Firebase.CredentialsPath == "" && c.Firebase.CredentialsBase64 == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH or FIREBASE_SERVICE_ACCOUNT_BASE64 is required for the firestore driver")
		}
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore driver")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
