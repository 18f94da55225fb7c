package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds for the listings document.
const (
	SourceHTTP     = "http"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Source       string
	ListingsURL  string
	ListingsPath string
	FetchTimeout time.Duration
	MaxRetries   int

	S3Bucket   string
	S3Key      string
	S3Region   string
	S3Endpoint string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
	CacheTTL      time.Duration

	HTTPAddr        string
	CORSOrigins     []string
	RefreshInterval time.Duration
	QueryCacheSize  int

	SubmitAddress string

	LogLevel string
	LogColor bool
	LogJSON  bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Source:       strings.ToLower(getEnv("LISTINGS_SOURCE", SourceFile)),
		ListingsURL:  getEnv("LISTINGS_URL", "http://localhost:8000/data/listings.json"),
		ListingsPath: getEnv("LISTINGS_PATH", "./data/listings.json"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		MaxRetries:   getEnvInt("MAX_RETRIES", 3),

		S3Bucket:   getEnv("S3_BUCKET", ""),
		S3Key:      getEnv("S3_KEY", "data/listings.json"),
		S3Region:   getEnv("AWS_REGION", "eu-west-1"),
		S3Endpoint: getEnv("S3_ENDPOINT", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "fairhuur"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "fairhuur"),
		PostgresDB:       getEnv("POSTGRES_DB", "fairhuur"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisKey:      getEnv("REDIS_KEY", "fairhuur:listings"),
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Minute),

		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 0),
		QueryCacheSize:  getEnvInt("QUERY_CACHE_SIZE", 256),

		SubmitAddress: getEnv("SUBMIT_ADDRESS", "plaatsing@fairhuur.ai"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogColor: getEnvBool("LOG_COLOR", true),
		LogJSON:  getEnvBool("LOG_JSON", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// CacheEnabled reports whether fetched documents go through Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.Source != SourcePostgres
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
