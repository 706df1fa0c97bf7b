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
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Report ReportConfig
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
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpen         int           `mapstructure:"max_open"`
	MaxIdle         int           `mapstructure:"max_idle"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for shared statements.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ReportConfig holds statement rendering settings.
type ReportConfig struct {
	CompanyName string `mapstructure:"company_name"`
	Currency    string `mapstructure:"currency"`
}

// Load reads configuration from environment variables with the PLOTBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLOTBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "plotbook")
	v.SetDefault("db.password", "plotbook_secret")
	v.SetDefault("db.name", "plotbook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "plotbook-statements")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "statements")
	v.SetDefault("s3.presign_expiry", 86400)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "statements@plotbook.local")
	v.SetDefault("email.from_name", "Plotbook")

	// Report defaults
	v.SetDefault("report.company_name", "Plotbook")
	v.SetDefault("report.currency", "Rs.")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "PLOTBOOK_SERVER_PORT",
		"server.read_timeout":  "PLOTBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout": "PLOTBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":   "PLOTBOOK_SERVER_ENVIRONMENT",
		"db.host":              "PLOTBOOK_DB_HOST",
		"db.port":              "PLOTBOOK_DB_PORT",
		"db.user":              "PLOTBOOK_DB_USER",
		"db.password":          "PLOTBOOK_DB_PASSWORD",
		"db.name":              "PLOTBOOK_DB_NAME",
		"db.sslmode":           "PLOTBOOK_DB_SSLMODE",
		"db.max_open":          "PLOTBOOK_DB_MAX_OPEN",
		"db.max_idle":          "PLOTBOOK_DB_MAX_IDLE",
		"db.conn_max_lifetime": "PLOTBOOK_DB_CONN_MAX_LIFETIME",
		"s3.region":            "PLOTBOOK_S3_REGION",
		"s3.bucket":            "PLOTBOOK_S3_BUCKET",
		"s3.endpoint":          "PLOTBOOK_S3_ENDPOINT",
		"s3.access_key":        "PLOTBOOK_S3_ACCESS_KEY",
		"s3.secret_key":        "PLOTBOOK_S3_SECRET_KEY",
		"s3.key_prefix":        "PLOTBOOK_S3_KEY_PREFIX",
		"s3.presign_expiry":    "PLOTBOOK_S3_PRESIGN_EXPIRY",
		"log.level":            "PLOTBOOK_LOG_LEVEL",
		"log.format":           "PLOTBOOK_LOG_FORMAT",
		"cors.allowed_origins": "PLOTBOOK_CORS_ALLOWED_ORIGINS",
		"email.provider":       "PLOTBOOK_EMAIL_PROVIDER",
		"email.region":         "PLOTBOOK_EMAIL_REGION",
		"email.from_address":   "PLOTBOOK_EMAIL_FROM_ADDRESS",
		"email.from_name":      "PLOTBOOK_EMAIL_FROM_NAME",
		"report.company_name":  "PLOTBOOK_REPORT_COMPANY_NAME",
		"report.currency":      "PLOTBOOK_REPORT_CURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if PLOTBOOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PLOTBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:            v.GetString("db.host"),
		Port:            v.GetInt("db.port"),
		User:            v.GetString("db.user"),
		Password:        v.GetString("db.password"),
		Name:            v.GetString("db.name"),
		SSLMode:         v.GetString("db.sslmode"),
		MaxOpen:         v.GetInt("db.max_open"),
		MaxIdle:         v.GetInt("db.max_idle"),
		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		KeyPrefix:     v.GetString("s3.key_prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Report = ReportConfig{
		CompanyName: v.GetString("report.company_name"),
		Currency:    v.GetString("report.currency"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
