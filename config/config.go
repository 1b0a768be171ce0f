package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HttpPort     string
	AppEnv       string
	AllowOrigins string

	// event log source: "http" or "postgres"
	SourceType   string
	DuuiAPIURL   string
	DuuiAPIKey   string
	FetchTimeout time.Duration

	// S3/MinIO, used to list input documents
	BucketEndpoint  string
	BucketAccessID  string
	BucketAccessKey string
	BucketRegion    string
	UseSSL          bool   // MinIO: false, S3: true
	StorageType     string //"minio", "s3" or empty

	// Redis
	RedisURL      string
	RedisPassword string

	// Postgres
	Host     string
	User     string
	Password string
	DBName   string
	Port     string

	// monitor
	PollInterval   time.Duration
	ActiveTTL      time.Duration
	TerminalTTL    time.Duration
	TerminalPolicy string

	// grpc
	GrpcHealthPort string
}

func LoadConfig() *Config {
	return &Config{
		HttpPort:        getEnv("PORT", "3000"),
		AppEnv:          os.Getenv("APP_ENV"),
		AllowOrigins:    getEnv("ALLOWORIGINS", "*"),
		SourceType:      getEnv("SOURCE_TYPE", "http"),
		DuuiAPIURL:      os.Getenv("DUUI_API_URL"),
		DuuiAPIKey:      os.Getenv("DUUI_API_KEY"),
		FetchTimeout:    getDuration("FETCH_TIMEOUT", 10*time.Second),
		BucketEndpoint:  os.Getenv("BUCKET_ENDPOINT"),
		BucketAccessID:  os.Getenv("BUCKET_ACCESS_ID"),
		BucketAccessKey: os.Getenv("BUCKET_ACCESS_KEY"),
		BucketRegion:    os.Getenv("BUCKET_REGION"),
		UseSSL:          os.Getenv("BUCKET_USE_SSL") == "true",
		StorageType:     os.Getenv("STORAGE_TYPE"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		Host:            os.Getenv("PG_HOST"),
		User:            os.Getenv("PG_USER"),
		Password:        os.Getenv("PG_PASSWORD"),
		DBName:          os.Getenv("PG_DB"),
		Port:            os.Getenv("PG_PORT"),
		PollInterval:    getDuration("POLL_INTERVAL", 2*time.Second),
		ActiveTTL:       getDuration("SNAPSHOT_TTL", time.Second),
		TerminalTTL:     getDuration("TERMINAL_SNAPSHOT_TTL", 10*time.Minute),
		TerminalPolicy:  getEnv("TERMINAL_POLICY", "inherit"),
		GrpcHealthPort:  os.Getenv("GRPC_HEALTH_PORT"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("2s") or plain milliseconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
