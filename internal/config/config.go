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
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Upload    UploadConfig
	Extractor ExtractorConfig
	Archive   ArchiveConfig
	Payroll   PayrollConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig bounds accepted declaration uploads.
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// ExtractorConfig selects and tunes the text extraction strategies.
type ExtractorConfig struct {
	Strategy    string `mapstructure:"strategy"`
	OCREnabled  bool   `mapstructure:"ocr_enabled"`
	Pdftoppm    string `mapstructure:"pdftoppm"`
	Tesseract   string `mapstructure:"tesseract"`
	Lang        string `mapstructure:"lang"`
	TessdataDir string `mapstructure:"tessdata_dir"`
	DPI         int    `mapstructure:"dpi"`
	MaxPages    int    `mapstructure:"max_pages"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the per-document optical extraction timeout.
func (e *ExtractorConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// ArchiveConfig toggles persistence of parsed declarations.
type ArchiveConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// PayrollConfig holds payroll reconciliation settings.
type PayrollConfig struct {
	Tolerance string `mapstructure:"tolerance"`
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
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration from environment variables with the TRIBUTO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIBUTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tributo")
	v.SetDefault("db.password", "tributo_secret")
	v.SetDefault("db.name", "tributo_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "tributo-declarations")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.service_name", "tributo")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults: 10 MiB
	v.SetDefault("upload.max_bytes", 10<<20)

	// Extractor defaults
	v.SetDefault("extractor.strategy", "auto")
	v.SetDefault("extractor.ocr_enabled", false)
	v.SetDefault("extractor.pdftoppm", "pdftoppm")
	v.SetDefault("extractor.tesseract", "tesseract")
	v.SetDefault("extractor.lang", "spa")
	v.SetDefault("extractor.tessdata_dir", "")
	v.SetDefault("extractor.dpi", 300)
	v.SetDefault("extractor.max_pages", 4)
	v.SetDefault("extractor.timeout_secs", 60)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("payroll.tolerance", "0.01")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "TRIBUTO_SERVER_PORT",
		"server.read_timeout":    "TRIBUTO_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "TRIBUTO_SERVER_WRITE_TIMEOUT",
		"server.environment":     "TRIBUTO_SERVER_ENVIRONMENT",
		"db.host":                "TRIBUTO_DB_HOST",
		"db.port":                "TRIBUTO_DB_PORT",
		"db.user":                "TRIBUTO_DB_USER",
		"db.password":            "TRIBUTO_DB_PASSWORD",
		"db.name":                "TRIBUTO_DB_NAME",
		"db.sslmode":             "TRIBUTO_DB_SSLMODE",
		"db.max_open":            "TRIBUTO_DB_MAX_OPEN",
		"db.max_idle":            "TRIBUTO_DB_MAX_IDLE",
		"s3.region":              "TRIBUTO_S3_REGION",
		"s3.bucket":              "TRIBUTO_S3_BUCKET",
		"s3.endpoint":            "TRIBUTO_S3_ENDPOINT",
		"s3.access_key":          "TRIBUTO_S3_ACCESS_KEY",
		"s3.secret_key":          "TRIBUTO_S3_SECRET_KEY",
		"s3.presign_expiry":      "TRIBUTO_S3_PRESIGN_EXPIRY",
		"log.level":              "TRIBUTO_LOG_LEVEL",
		"log.format":             "TRIBUTO_LOG_FORMAT",
		"log.service_name":       "TRIBUTO_LOG_SERVICE_NAME",
		"cors.allowed_origins":   "TRIBUTO_CORS_ALLOWED_ORIGINS",
		"upload.max_bytes":       "TRIBUTO_UPLOAD_MAX_BYTES",
		"extractor.strategy":     "TRIBUTO_EXTRACTOR_STRATEGY",
		"extractor.ocr_enabled":  "TRIBUTO_EXTRACTOR_OCR_ENABLED",
		"extractor.pdftoppm":     "TRIBUTO_EXTRACTOR_PDFTOPPM",
		"extractor.tesseract":    "TRIBUTO_EXTRACTOR_TESSERACT",
		"extractor.lang":         "TRIBUTO_EXTRACTOR_LANG",
		"extractor.tessdata_dir": "TRIBUTO_EXTRACTOR_TESSDATA_DIR",
		"extractor.dpi":          "TRIBUTO_EXTRACTOR_DPI",
		"extractor.max_pages":    "TRIBUTO_EXTRACTOR_MAX_PAGES",
		"extractor.timeout_secs": "TRIBUTO_EXTRACTOR_TIMEOUT_SECS",
		"archive.enabled":        "TRIBUTO_ARCHIVE_ENABLED",
		"payroll.tolerance":      "TRIBUTO_PAYROLL_TOLERANCE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if TRIBUTO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRIBUTO_SERVER_PORT") == "" {
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
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:       v.GetString("log.level"),
		Format:      v.GetString("log.format"),
		ServiceName: v.GetString("log.service_name"),
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
	cfg.Upload = UploadConfig{
		MaxBytes: v.GetInt64("upload.max_bytes"),
	}
	cfg.Extractor = ExtractorConfig{
		Strategy:    v.GetString("extractor.strategy"),
		OCREnabled:  v.GetBool("extractor.ocr_enabled"),
		Pdftoppm:    v.GetString("extractor.pdftoppm"),
		Tesseract:   v.GetString("extractor.tesseract"),
		Lang:        v.GetString("extractor.lang"),
		TessdataDir: v.GetString("extractor.tessdata_dir"),
		DPI:         v.GetInt("extractor.dpi"),
		MaxPages:    v.GetInt("extractor.max_pages"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled: v.GetBool("archive.enabled"),
	}
	cfg.Payroll = PayrollConfig{
		Tolerance: v.GetString("payroll.tolerance"),
	}

	if cfg.Upload.MaxBytes <= 0 {
		return nil, fmt.Errorf("config: upload.max_bytes must be positive, got %d", cfg.Upload.MaxBytes)
	}

	return cfg, nil
}
