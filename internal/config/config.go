package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for uploaded source documents.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PresignExpiry time.Duration
}

// AnnotatorConfig selects the linguistic annotation backend. An empty URL means the
// in-process lexicon annotator is used.
type AnnotatorConfig struct {
	URL        string
	TimeoutSec int
}

// Timeout returns the per-call annotation deadline.
func (a AnnotatorConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string // json or pretty
}

// RulesConfig points at an optional YAML file overriding the parser heuristics.
type RulesConfig struct {
	File string
}

// UploadConfig limits multipart uploads.
type UploadConfig struct {
	MaxMB int
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int {
	return u.MaxMB << 20
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Timezone  string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Annotator AnnotatorConfig
	Log       LogConfig
	Rules     RulesConfig
	Upload    UploadConfig
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("TZ", "UTC"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PresignExpiry: time.Duration(getEnvInt("MINIO_PRESIGN_EXPIRY_SEC", 900)) * time.Second,
		},
		Annotator: AnnotatorConfig{
			URL:        getEnv("ANNOTATOR_URL", ""),
			TimeoutSec: getEnvInt("ANNOTATOR_TIMEOUT_SEC", 10),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Rules: RulesConfig{
			File: getEnv("PARSER_RULES_FILE", ""),
		},
		Upload: UploadConfig{
			MaxMB: getEnvInt("UPLOAD_MAX_MB", 10),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
