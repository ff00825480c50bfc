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
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Roster     RosterConfig
	Reports    ReportsConfig
	Processing ProcessingConfig
	Email      EmailConfig
}

// EmailConfig holds weekly summary delivery settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RosterConfig selects and locates the roster backend.
type RosterConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	SheetKey string `mapstructure:"sheet_key"`
}

// ReportsConfig selects where weekly workbooks are kept.
type ReportsConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	Prefix  string `mapstructure:"prefix"`
}

// ProcessingConfig tunes the attendance pipeline.
type ProcessingConfig struct {
	RowTolerance      float64 `mapstructure:"row_tolerance"`
	Concurrency       int     `mapstructure:"concurrency"`
	MaxFileSizeMB     int64   `mapstructure:"max_file_size_mb"`
	DateSuffixHeaders bool    `mapstructure:"date_suffix_headers"`
}

// MaxFileSize returns the per-document upload limit in bytes.
func (p *ProcessingConfig) MaxFileSize() int64 {
	return p.MaxFileSizeMB << 20
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

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the ROLLCALL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ROLLCALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rollcall")
	v.SetDefault("db.password", "rollcall_secret")
	v.SetDefault("db.name", "rollcall_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "rollcall-reports")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Roster defaults
	v.SetDefault("roster.backend", "text")
	v.SetDefault("roster.path", "data/roster.txt")
	v.SetDefault("roster.sheet_key", "roster/roster.xlsx")

	// Report defaults
	v.SetDefault("reports.backend", "local")
	v.SetDefault("reports.dir", "data/reports")
	v.SetDefault("reports.prefix", "reports")

	// Processing defaults
	v.SetDefault("processing.row_tolerance", 3.0)
	v.SetDefault("processing.concurrency", 4)
	v.SetDefault("processing.max_file_size_mb", 20)
	v.SetDefault("processing.date_suffix_headers", true)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@rollcall.local")
	v.SetDefault("email.from_name", "Rollcall")
	v.SetDefault("email.recipients", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "ROLLCALL_SERVER_PORT",
		"server.read_timeout":            "ROLLCALL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "ROLLCALL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "ROLLCALL_SERVER_ENVIRONMENT",
		"db.host":                        "ROLLCALL_DB_HOST",
		"db.port":                        "ROLLCALL_DB_PORT",
		"db.user":                        "ROLLCALL_DB_USER",
		"db.password":                    "ROLLCALL_DB_PASSWORD",
		"db.name":                        "ROLLCALL_DB_NAME",
		"db.sslmode":                     "ROLLCALL_DB_SSLMODE",
		"db.max_open":                    "ROLLCALL_DB_MAX_OPEN",
		"db.max_idle":                    "ROLLCALL_DB_MAX_IDLE",
		"s3.region":                      "ROLLCALL_S3_REGION",
		"s3.bucket":                      "ROLLCALL_S3_BUCKET",
		"s3.endpoint":                    "ROLLCALL_S3_ENDPOINT",
		"s3.access_key":                  "ROLLCALL_S3_ACCESS_KEY",
		"s3.secret_key":                  "ROLLCALL_S3_SECRET_KEY",
		"log.level":                      "ROLLCALL_LOG_LEVEL",
		"log.format":                     "ROLLCALL_LOG_FORMAT",
		"cors.allowed_origins":           "ROLLCALL_CORS_ALLOWED_ORIGINS",
		"roster.backend":                 "ROLLCALL_ROSTER_BACKEND",
		"roster.path":                    "ROLLCALL_ROSTER_PATH",
		"roster.sheet_key":               "ROLLCALL_ROSTER_SHEET_KEY",
		"reports.backend":                "ROLLCALL_REPORTS_BACKEND",
		"reports.dir":                    "ROLLCALL_REPORTS_DIR",
		"reports.prefix":                 "ROLLCALL_REPORTS_PREFIX",
		"processing.row_tolerance":       "ROLLCALL_PROCESSING_ROW_TOLERANCE",
		"processing.concurrency":         "ROLLCALL_PROCESSING_CONCURRENCY",
		"processing.max_file_size_mb":    "ROLLCALL_PROCESSING_MAX_FILE_SIZE_MB",
		"processing.date_suffix_headers": "ROLLCALL_PROCESSING_DATE_SUFFIX_HEADERS",
		"email.provider":                 "ROLLCALL_EMAIL_PROVIDER",
		"email.region":                   "ROLLCALL_EMAIL_REGION",
		"email.from_address":             "ROLLCALL_EMAIL_FROM_ADDRESS",
		"email.from_name":                "ROLLCALL_EMAIL_FROM_NAME",
		"email.recipients":               "ROLLCALL_EMAIL_RECIPIENTS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ROLLCALL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ROLLCALL_SERVER_PORT") == "" {
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
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Roster = RosterConfig{
		Backend:  strings.ToLower(v.GetString("roster.backend")),
		Path:     v.GetString("roster.path"),
		SheetKey: v.GetString("roster.sheet_key"),
	}
	cfg.Reports = ReportsConfig{
		Backend: strings.ToLower(v.GetString("reports.backend")),
		Dir:     v.GetString("reports.dir"),
		Prefix:  v.GetString("reports.prefix"),
	}
	cfg.Processing = ProcessingConfig{
		RowTolerance:      v.GetFloat64("processing.row_tolerance"),
		Concurrency:       v.GetInt("processing.concurrency"),
		MaxFileSizeMB:     v.GetInt64("processing.max_file_size_mb"),
		DateSuffixHeaders: v.GetBool("processing.date_suffix_headers"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		Recipients:  splitList(v.GetString("email.recipients")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Roster.Backend {
	case "text", "json", "postgres", "sheet":
	default:
		return fmt.Errorf("config: unknown roster backend %q", c.Roster.Backend)
	}
	switch c.Reports.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("config: unknown reports backend %q", c.Reports.Backend)
	}
	if c.Processing.Concurrency < 1 {
		return fmt.Errorf("config: processing.concurrency must be at least 1")
	}
	if c.Processing.MaxFileSizeMB < 1 {
		return fmt.Errorf("config: processing.max_file_size_mb must be at least 1")
	}
	return nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
