package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	Upload UploadConfig
	LLM    LLMConfig
	Review ReviewConfig
	CORS   CORSConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for the contract archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UploadConfig holds contract upload limits.
type UploadConfig struct {
	MaxFileSizeKB int64 `mapstructure:"max_file_size_kb"`
}

// LLMConfig holds completion endpoint settings.
type LLMConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ReviewConfig holds chunking and analysis settings.
type ReviewConfig struct {
	MaxTokens   int `mapstructure:"max_tokens"`
	Concurrency int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds review-notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the CLAUSESYNC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAUSESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "clausesync")
	v.SetDefault("db.password", "clausesync_secret")
	v.SetDefault("db.name", "clausesync_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "clausesync")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "clausesync-contracts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Upload defaults: contracts are small text documents
	v.SetDefault("upload.max_file_size_kb", 200)

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.timeout_secs", 120)

	// Review defaults: 4000-token budget, one chunk request at a time
	v.SetDefault("review.max_tokens", 4000)
	v.SetDefault("review.concurrency", 1)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@clausesync.com")
	v.SetDefault("email.from_name", "ClauseSync")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "CLAUSESYNC_SERVER_PORT",
		"server.read_timeout":   "CLAUSESYNC_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "CLAUSESYNC_SERVER_WRITE_TIMEOUT",
		"server.environment":    "CLAUSESYNC_SERVER_ENVIRONMENT",
		"db.host":               "CLAUSESYNC_DB_HOST",
		"db.port":               "CLAUSESYNC_DB_PORT",
		"db.user":               "CLAUSESYNC_DB_USER",
		"db.password":           "CLAUSESYNC_DB_PASSWORD",
		"db.name":               "CLAUSESYNC_DB_NAME",
		"db.sslmode":            "CLAUSESYNC_DB_SSLMODE",
		"db.max_open":           "CLAUSESYNC_DB_MAX_OPEN",
		"db.max_idle":           "CLAUSESYNC_DB_MAX_IDLE",
		"jwt.secret":            "CLAUSESYNC_JWT_SECRET",
		"jwt.access_expiry":     "CLAUSESYNC_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":    "CLAUSESYNC_JWT_REFRESH_EXPIRY",
		"jwt.issuer":            "CLAUSESYNC_JWT_ISSUER",
		"s3.region":             "CLAUSESYNC_S3_REGION",
		"s3.bucket":             "CLAUSESYNC_S3_BUCKET",
		"s3.endpoint":           "CLAUSESYNC_S3_ENDPOINT",
		"s3.access_key":         "CLAUSESYNC_S3_ACCESS_KEY",
		"s3.secret_key":         "CLAUSESYNC_S3_SECRET_KEY",
		"s3.presign_expiry":     "CLAUSESYNC_S3_PRESIGN_EXPIRY",
		"log.level":             "CLAUSESYNC_LOG_LEVEL",
		"log.format":            "CLAUSESYNC_LOG_FORMAT",
		"upload.max_file_size_kb": "CLAUSESYNC_UPLOAD_MAX_FILE_SIZE_KB",
		"llm.api_key":           "CLAUSESYNC_LLM_API_KEY",
		"llm.model":             "CLAUSESYNC_LLM_MODEL",
		"llm.endpoint":          "CLAUSESYNC_LLM_ENDPOINT",
		"llm.timeout_secs":      "CLAUSESYNC_LLM_TIMEOUT_SECS",
		"review.max_tokens":     "CLAUSESYNC_REVIEW_MAX_TOKENS",
		"review.concurrency":    "CLAUSESYNC_REVIEW_CONCURRENCY",
		"cors.allowed_origins":  "CLAUSESYNC_CORS_ALLOWED_ORIGINS",
		"email.provider":        "CLAUSESYNC_EMAIL_PROVIDER",
		"email.region":          "CLAUSESYNC_EMAIL_REGION",
		"email.from_address":    "CLAUSESYNC_EMAIL_FROM_ADDRESS",
		"email.from_name":       "CLAUSESYNC_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAUSESYNC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAUSESYNC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeKB: v.GetInt64("upload.max_file_size_kb"),
	}
	cfg.LLM = LLMConfig{
		APIKey:      v.GetString("llm.api_key"),
		Model:       v.GetString("llm.model"),
		Endpoint:    v.GetString("llm.endpoint"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}
	cfg.Review = ReviewConfig{
		MaxTokens:   v.GetInt("review.max_tokens"),
		Concurrency: v.GetInt("review.concurrency"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
