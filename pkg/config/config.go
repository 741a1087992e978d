package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Stats    StatsConfig
	Imports  ImportsConfig
	Backups  BackupsConfig
}

// StorageConfig selects the key-value backend holding the record snapshots.
type StorageConfig struct {
	Driver        string
	KeyPrefix     string
	SQLitePath    string
	SeedGraduates bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StatsConfig governs caching of computed graduate statistics.
type StatsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ImportsConfig bounds spreadsheet uploads.
type ImportsConfig struct {
	MaxFileSizeBytes int64
}

// BackupsConfig controls archived backup files and their signed download links.
type BackupsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Storage = StorageConfig{
		Driver:        strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		KeyPrefix:     v.GetString("STORAGE_KEY_PREFIX"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		SeedGraduates: v.GetBool("SEED_GRADUATES"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 8*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Stats = StatsConfig{
		CacheEnabled: v.GetBool("ENABLE_STATS_CACHE"),
		CacheTTL:     parseDuration(v.GetString("STATS_CACHE_TTL"), 5*time.Minute),
	}

	maxImportSize := v.GetInt64("IMPORT_MAX_FILE_SIZE")
	if maxImportSize <= 0 {
		maxImportSize = 10 * 1024 * 1024
	}
	cfg.Imports = ImportsConfig{MaxFileSizeBytes: maxImportSize}

	cfg.Backups = BackupsConfig{
		StorageDir:      v.GetString("BACKUPS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("BACKUPS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("BACKUPS_SIGNED_URL_TTL"), 30*time.Minute),
		CleanupInterval: parseDuration(v.GetString("BACKUPS_CLEANUP_INTERVAL"), time.Hour),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("STORAGE_KEY_PREFIX", "")
	v.SetDefault("SQLITE_PATH", "./data/ppgee.db")
	v.SetDefault("SEED_GRADUATES", true)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ppgee_dashboard")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "8h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_STATS_CACHE", false)
	v.SetDefault("STATS_CACHE_TTL", "5m")

	v.SetDefault("IMPORT_MAX_FILE_SIZE", 10*1024*1024)

	v.SetDefault("BACKUPS_STORAGE_DIR", "./backups")
	v.SetDefault("BACKUPS_SIGNED_URL_SECRET", "dev_backups_secret")
	v.SetDefault("BACKUPS_SIGNED_URL_TTL", "30m")
	v.SetDefault("BACKUPS_CLEANUP_INTERVAL", "1h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
