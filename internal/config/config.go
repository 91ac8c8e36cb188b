package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env             string
	LogLevel        string
	HTTPPort        string
	DBDriver        string
	DatabasePath    string
	DatabaseURL     string
	LevelMin        int
	LevelMax        int
	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
	MaxUploadSizeMB int64
	BackupDir       string
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("config: не удалось прочитать .env: %v", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию из уже установленных переменных окружения.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:          env,
		LogLevel:     getEnv("LOG_LEVEL", defaultLogLevel(env)),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabasePath: getEnv("DATABASE_PATH", "data/skill_matrix.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		BackupDir:    getEnv("BACKUP_DIR", "data/backups"),
	}

	var err error
	if cfg.LevelMin, err = parseInt(getEnv("LEVEL_MIN", "1")); err != nil {
		return nil, fmt.Errorf("config: LEVEL_MIN: %w", err)
	}
	if cfg.LevelMax, err = parseInt(getEnv("LEVEL_MAX", "5")); err != nil {
		return nil, fmt.Errorf("config: LEVEL_MAX: %w", err)
	}
	if cfg.RateLimitLimit, err = strconv.ParseInt(getEnv("RATE_LIMIT_LIMIT", "300"), 10, 64); err != nil {
		return nil, fmt.Errorf("config: RATE_LIMIT_LIMIT: %w", err)
	}
	if cfg.RateLimitPeriod, err = time.ParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m")); err != nil {
		return nil, fmt.Errorf("config: RATE_LIMIT_PERIOD: %w", err)
	}
	if cfg.MaxUploadSizeMB, err = strconv.ParseInt(getEnv("EXPORT_MAX_UPLOAD_MB", "10"), 10, 64); err != nil {
		return nil, fmt.Errorf("config: EXPORT_MAX_UPLOAD_MB: %w", err)
	}

	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		// Локальный UI по умолчанию
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("config: DATABASE_PATH обязателен для sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL обязателен для postgres")
		}
	default:
		return fmt.Errorf("config: неизвестный DB_DRIVER %q", c.DBDriver)
	}

	if c.LevelMin < 0 || c.LevelMax > 5 || c.LevelMin >= c.LevelMax {
		return fmt.Errorf("config: диапазон уровней %d..%d должен лежать в 0..5", c.LevelMin, c.LevelMax)
	}
	if c.RateLimitLimit <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_LIMIT должен быть положительным")
	}
	return nil
}

// IsDevelopment сообщает, запущено ли приложение в режиме разработки.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func defaultLogLevel(env string) string {
	if env == "development" {
		return "debug"
	}
	return "info"
}

func parseInt(v string) (int, error) {
	num, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("не удалось распарсить число %q: %w", v, err)
	}
	return num, nil
}
