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
	Server  ServerConfig
	Upload  UploadConfig
	CORS    CORSConfig
	Log     LogConfig
	Extract ExtractConfig
	Store   StoreConfig
	DB      DBConfig
	Storage StorageConfig
	S3      S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// StaticDir is a built frontend served for unknown GET routes. Empty disables it.
	StaticDir string `mapstructure:"static_dir"`
}

// UploadConfig holds settings for transient uploaded files.
type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload size limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractConfig holds question segmentation settings.
type ExtractConfig struct {
	// AnchorMode is "search" or "offset".
	AnchorMode string `mapstructure:"anchor_mode"`
}

// StoreConfig selects the extraction repository.
type StoreConfig struct {
	Provider string `mapstructure:"provider"` // memory | postgres
	// MemoryMaxEntries caps the memory store; the oldest extraction is evicted first.
	MemoryMaxEntries int `mapstructure:"memory_max_entries"`
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

// StorageConfig selects where uploaded sources and results are archived.
type StorageConfig struct {
	Provider string `mapstructure:"provider"` // none | s3
}

// Enabled reports whether an archive backend is configured.
func (s *StorageConfig) Enabled() bool {
	return s.Provider != "" && s.Provider != "none"
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

// Load reads configuration from environment variables with the EXAMPARSE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EXAMPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.static_dir", "")

	// Upload defaults
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size_mb", 50)

	// CORS defaults (the React dev server)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("extract.anchor_mode", "search")

	v.SetDefault("store.provider", "memory")
	v.SetDefault("store.memory_max_entries", 500)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "examparse")
	v.SetDefault("db.password", "examparse_secret")
	v.SetDefault("db.name", "examparse_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Archive defaults
	v.SetDefault("storage.provider", "none")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "examparse-archive")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "EXAMPARSE_SERVER_PORT",
		"server.read_timeout":      "EXAMPARSE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "EXAMPARSE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "EXAMPARSE_SERVER_ENVIRONMENT",
		"server.static_dir":        "EXAMPARSE_SERVER_STATIC_DIR",
		"upload.dir":               "EXAMPARSE_UPLOAD_DIR",
		"upload.max_file_size_mb":  "EXAMPARSE_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":     "EXAMPARSE_CORS_ALLOWED_ORIGINS",
		"log.level":                "EXAMPARSE_LOG_LEVEL",
		"log.format":               "EXAMPARSE_LOG_FORMAT",
		"extract.anchor_mode":      "EXAMPARSE_EXTRACT_ANCHOR_MODE",
		"store.provider":           "EXAMPARSE_STORE_PROVIDER",
		"store.memory_max_entries": "EXAMPARSE_STORE_MEMORY_MAX_ENTRIES",
		"db.host":                  "EXAMPARSE_DB_HOST",
		"db.port":                  "EXAMPARSE_DB_PORT",
		"db.user":                  "EXAMPARSE_DB_USER",
		"db.password":              "EXAMPARSE_DB_PASSWORD",
		"db.name":                  "EXAMPARSE_DB_NAME",
		"db.sslmode":               "EXAMPARSE_DB_SSLMODE",
		"db.max_open":              "EXAMPARSE_DB_MAX_OPEN",
		"db.max_idle":              "EXAMPARSE_DB_MAX_IDLE",
		"storage.provider":         "EXAMPARSE_STORAGE_PROVIDER",
		"s3.region":                "EXAMPARSE_S3_REGION",
		"s3.bucket":                "EXAMPARSE_S3_BUCKET",
		"s3.endpoint":              "EXAMPARSE_S3_ENDPOINT",
		"s3.access_key":            "EXAMPARSE_S3_ACCESS_KEY",
		"s3.secret_key":            "EXAMPARSE_S3_SECRET_KEY",
		"s3.presign_expiry":        "EXAMPARSE_S3_PRESIGN_EXPIRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless EXAMPARSE_SERVER_PORT is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EXAMPARSE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		StaticDir:    v.GetString("server.static_dir"),
	}
	cfg.Upload = UploadConfig{
		Dir:           v.GetString("upload.dir"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extract = ExtractConfig{
		AnchorMode: v.GetString("extract.anchor_mode"),
	}
	cfg.Store = StoreConfig{
		Provider:         strings.ToLower(v.GetString("store.provider")),
		MemoryMaxEntries: v.GetInt("store.memory_max_entries"),
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
	cfg.Storage = StorageConfig{
		Provider: strings.ToLower(v.GetString("storage.provider")),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Provider {
	case "memory", "postgres":
	default:
		return fmt.Errorf("store.provider: unknown provider %q", c.Store.Provider)
	}
	if c.Store.MemoryMaxEntries <= 0 {
		return fmt.Errorf("store.memory_max_entries must be positive, got %d", c.Store.MemoryMaxEntries)
	}
	switch c.Storage.Provider {
	case "none", "s3":
	default:
		return fmt.Errorf("storage.provider: unknown provider %q", c.Storage.Provider)
	}
	if c.Upload.MaxFileSizeMB <= 0 {
		return fmt.Errorf("upload.max_file_size_mb must be positive, got %d", c.Upload.MaxFileSizeMB)
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty entries.
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
