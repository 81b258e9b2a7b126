package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	GRPCHealthPort     string
	MongoURI           string
	MongoDBName        string
	RedisAddr          string
	RedisPassword      string
	KafkaBrokers       []string
	CatalogBaseURL     string
	UploadEndpoint     string
	UploadPreset       string
	CORSOrigins        []string
	LogLevel           string
	OTLPEndpoint       string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	// Storefront client
	StorefrontAPIURL string
	SessionName      string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "5000"),
		GRPCHealthPort:     getEnv("GRPC_HEALTH_PORT", "50070"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "foodcart"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "")),
		CatalogBaseURL:     getEnv("CATALOG_BASE_URL", "https://dummyjson.com"),
		UploadEndpoint:     getEnv("UPLOAD_ENDPOINT", ""),
		UploadPreset:       getEnv("UPLOAD_PRESET", ""),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: getInt64("MAX_REQUEST_BODY_BYTES", 1<<20), // 1MB
		StorefrontAPIURL:   getEnv("STOREFRONT_API_URL", "http://localhost:5000"),
		SessionName:        getEnv("STOREFRONT_SESSION", "default"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

func getInt64(key string, defaultValue int64) int64 {
	n, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
