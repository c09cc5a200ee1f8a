package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Payroll   PayrollConfig
	Storage   StorageConfig
	CORS      CORSConfig
	Bootstrap BootstrapConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Version  string
}

// RedisConfig holds the optional shared cache backend.
// When disabled the process keeps cache entries and version counters in memory.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ListTTL         time.Duration
	ReportTTL       time.Duration
	JanitorInterval time.Duration
}

// PayrollConfig holds draft generation defaults
type PayrollConfig struct {
	OvertimeFactor decimal.Decimal
	Workers        int
}

type StorageConfig struct {
	Driver       string // "local" or "s3"
	LocalPath    string
	BaseURL      string
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PresignTTL   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// BootstrapConfig describes the admin account ensured at startup
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "payroll"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
	}

	// Redis configuration
	redisPort, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", false),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     redisPort,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Cache configuration
	listTTL, err := time.ParseDuration(getEnv("CACHE_LIST_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_LIST_TTL: %w", err)
	}
	reportTTL, err := time.ParseDuration(getEnv("CACHE_REPORT_TTL", "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_REPORT_TTL: %w", err)
	}
	janitorInterval, err := time.ParseDuration(getEnv("CACHE_JANITOR_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_JANITOR_INTERVAL: %w", err)
	}

	config.Cache = CacheConfig{
		ListTTL:         listTTL,
		ReportTTL:       reportTTL,
		JanitorInterval: janitorInterval,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	// Payroll configuration
	overtimeFactor, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_FACTOR", "1.5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_FACTOR: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("PAYROLL_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKERS: %w", err)
	}

	config.Payroll = PayrollConfig{
		OvertimeFactor: overtimeFactor,
		Workers:        workers,
	}

	// Storage configuration
	presignTTL, err := time.ParseDuration(getEnv("STORAGE_PRESIGN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_PRESIGN_TTL: %w", err)
	}

	config.Storage = StorageConfig{
		Driver:       getEnv("STORAGE_DRIVER", "local"),
		LocalPath:    getEnv("STORAGE_LOCAL_PATH", "./storage"),
		BaseURL:      getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
		Endpoint:     getEnv("S3_ENDPOINT", ""),
		Region:       getEnv("S3_REGION", "us-east-1"),
		Bucket:       getEnv("S3_BUCKET", ""),
		AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		SecretKey:    getEnv("S3_SECRET_KEY", ""),
		UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", true),
		PresignTTL:   presignTTL,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	}

	config.Bootstrap = BootstrapConfig{
		AdminUsername: getEnv("BOOTSTRAP_ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Payroll.Workers <= 0 {
		return fmt.Errorf("PAYROLL_WORKERS must be positive")
	}
	if !c.Payroll.OvertimeFactor.IsPositive() {
		return fmt.Errorf("PAYROLL_OVERTIME_FACTOR must be positive")
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RedisAddr returns host:port for the redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
