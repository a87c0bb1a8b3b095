package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SlotBackendDatabase = "database"
	SlotBackendRedis    = "redis"
)

type Config struct {
	Port          string
	Mode          string
	DatabaseURL   string
	SlotBackend   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RemoteBaseURL string
	RemoteTimeout time.Duration
	AllowOrigins  []string
	StorageBucket string
}

// LoadEnv loads .env into the environment when the file exists. A missing
// .env is fine: in deployment the variables are set directly.
func LoadEnv() {
	_ = godotenv.Load()
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if os.Getenv("REMOTE_API_BASE_URL") == "" {
		missing = append(missing, "REMOTE_API_BASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if backend := os.Getenv("SLOT_BACKEND"); backend != "" && backend != SlotBackendDatabase && backend != SlotBackendRedis {
		return fmt.Errorf("SLOT_BACKEND must be %q or %q, got %q", SlotBackendDatabase, SlotBackendRedis, backend)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
		log.Println("WARNING: FIREBASE_STORAGE_BUCKET not set - promotion video uploads are disabled")
	}
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("WARNING: GOOGLE_APPLICATION_CREDENTIALS not set - Firebase will use default credentials")
	}
	if os.Getenv("ADMIN_URL") == "" {
		log.Println("WARNING: ADMIN_URL not set - CORS defaults to http://localhost:5173")
	}
	if os.Getenv("DATABASE_URL") == "" && GetEnv("SLOT_BACKEND", SlotBackendDatabase) == SlotBackendDatabase {
		log.Println("WARNING: DATABASE_URL not set - using local SQLite file admin_console.db")
	}

	return nil
}

// Load reads the process environment into a Config.
func Load() *Config {
	var origins []string
	for _, o := range strings.Split(GetEnv("ADMIN_URL", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:          GetEnv("PORT", "8080"),
		Mode:          GetEnv("APP_MODE", "development"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SlotBackend:   GetEnv("SLOT_BACKEND", SlotBackendDatabase),
		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),
		RemoteBaseURL: strings.TrimRight(os.Getenv("REMOTE_API_BASE_URL"), "/"),
		RemoteTimeout: GetEnvAsDuration("REMOTE_API_TIMEOUT", 15*time.Second),
		AllowOrigins:  origins,
		StorageBucket: os.Getenv("FIREBASE_STORAGE_BUCKET"),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsDuration accepts Go duration strings ("20s") or a plain number of seconds.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
