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
	ReorderBestEffort   = "best_effort"
	ReorderAllOrNothing = "all_or_nothing"
)

type Config struct {
	// Supabase
	SupabaseURL    string
	SupabaseKey    string
	SupabaseSchema string
	ProjectsBucket string
	ResumeBucket   string

	// S3-compatible object storage (optional, overrides Supabase buckets)
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3UseSSL    bool
	S3PublicURL string

	// Database (migrations only)
	DatabaseURL string

	// Admin sessions
	RedisURL           string
	AdminJWTSecret     string
	AdminSessionTTL    time.Duration
	LoginRatePerMinute int

	// Projects
	ReorderPolicy string

	// Server
	Port        string
	Environment string
	BaseURL     string
	CORSOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		SupabaseURL:    getEnv("SUPABASE_URL", ""),
		SupabaseKey:    getEnv("SUPABASE_ANON_KEY", getEnv("SUPABASE_PUBLISHABLE_KEY", "")),
		SupabaseSchema: getEnv("SUPABASE_SCHEMA", "public"),
		ProjectsBucket: getEnv("PROJECTS_BUCKET", "projects"),
		ResumeBucket:   getEnv("RESUME_BUCKET", "resume"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3UseSSL:    getEnvAsBool("S3_USE_SSL", true),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:           getEnv("REDIS_URL", ""),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		AdminSessionTTL:    getEnvAsDuration("ADMIN_SESSION_TTL", 2*time.Hour),
		LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),

		ReorderPolicy: strings.ToLower(getEnv("REORDER_POLICY", ReorderBestEffort)),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that would make the server misbehave. A missing
// or malformed SUPABASE_URL is not one of them: the store degrades instead.
func (c *Config) Validate() error {
	switch c.ReorderPolicy {
	case ReorderBestEffort, ReorderAllOrNothing:
	default:
		return fmt.Errorf("REORDER_POLICY must be %q or %q, got %q", ReorderBestEffort, ReorderAllOrNothing, c.ReorderPolicy)
	}
	if c.AdminSessionTTL <= 0 {
		return fmt.Errorf("ADMIN_SESSION_TTL must be positive")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	if c.IsProduction() && c.AdminJWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// S3Enabled reports whether buckets should be served from S3-compatible storage.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != ""
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimRight(strings.TrimSpace(part), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
