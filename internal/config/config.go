package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "atrium.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "12h"
	defaultLogLevel        = "info"
	defaultStorageProvider = "local"
	defaultStorageDir      = "./storage"
	defaultMaxUploadMB     = 50
	defaultExpiryWarning   = 30
)

type StorageConfig struct {
	Provider  string `yaml:"provider"`
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type Config struct {
	AppEnv            string        `yaml:"app_env"`
	HTTPAddr          string        `yaml:"http_addr"`
	DatabaseURL       string        `yaml:"database_url"`
	JWTSecret         string        `yaml:"jwt_secret"`
	JWTTTL            time.Duration `yaml:"-"`
	JWTTTLRaw         string        `yaml:"jwt_ttl"`
	CORSOrigins       []string      `yaml:"cors_allowed_origins"`
	LogLevel          string        `yaml:"log_level"`
	Storage           StorageConfig `yaml:"storage"`
	MaxUploadMB       int64         `yaml:"max_upload_mb"`
	ExpiryWarningDays int           `yaml:"expiry_warning_days"`
}

// Load reads .env (when present), then the optional YAML file named by
// CONFIG_FILE, then environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s storage=%s", cfg.AppEnv, cfg.HTTPAddr, cfg.Storage.Provider)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		AppEnv:      "dev",
		HTTPAddr:    defaultHTTPAddr,
		DatabaseURL: defaultDatabaseURL,
		JWTSecret:   defaultJWTSecret,
		JWTTTLRaw:   defaultJWTTTL,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		LogLevel: defaultLogLevel,
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
			Dir:      defaultStorageDir,
		},
		MaxUploadMB:       defaultMaxUploadMB,
		ExpiryWarningDays: defaultExpiryWarning,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.AppEnv = strings.ToLower(getEnv("APP_ENV", c.AppEnv))
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", c.JWTSecret))
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		c.CORSOrigins = splitList(extra)
	}

	c.Storage.Provider = strings.ToLower(getEnv("STORAGE_PROVIDER", c.Storage.Provider))
	c.Storage.Dir = getEnv("STORAGE_DIR", c.Storage.Dir)
	c.Storage.Bucket = getEnv("S3_BUCKET", c.Storage.Bucket)
	c.Storage.Region = getEnv("S3_REGION", c.Storage.Region)
	c.Storage.Endpoint = getEnv("S3_ENDPOINT", c.Storage.Endpoint)
	c.Storage.AccessKey = getEnv("S3_ACCESS_KEY", c.Storage.AccessKey)
	c.Storage.SecretKey = getEnv("S3_SECRET_KEY", c.Storage.SecretKey)

	var err error
	c.JWTTTL, err = parseDurationEnv("JWT_TTL", c.JWTTTLRaw)
	if err != nil {
		return err
	}
	if c.MaxUploadMB, err = parseIntEnv("MAX_UPLOAD_MB", c.MaxUploadMB); err != nil {
		return err
	}
	days, err := parseIntEnv("EXPIRY_WARNING_DAYS", int64(c.ExpiryWarningDays))
	if err != nil {
		return err
	}
	c.ExpiryWarningDays = int(days)
	return nil
}

// MaxUploadBytes is the per-file upload limit.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// ExpiryWarning is the window before expiry in which a document is reported as expiring.
func (c *Config) ExpiryWarning() time.Duration {
	return time.Duration(c.ExpiryWarningDays) * 24 * time.Hour
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be > 0")
	}
	if cfg.ExpiryWarningDays < 0 {
		return fmt.Errorf("EXPIRY_WARNING_DAYS must be >= 0")
	}
	switch cfg.Storage.Provider {
	case "local":
		if strings.TrimSpace(cfg.Storage.Dir) == "" {
			return fmt.Errorf("STORAGE_DIR must not be empty for local storage")
		}
	case "s3":
		if cfg.Storage.Bucket == "" || cfg.Storage.Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", cfg.Storage.Provider)
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
