// Файл: pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SheetsBackendGoogle   = "google"
	SheetsBackendWorkbook = "workbook"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type LogConfig struct {
	Level    string
	FilePath string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
}

type SheetsConfig struct {
	Backend           string
	CredentialsJSON   string
	SpreadsheetID     string
	WorkbookPath      string
	RequestsPerMinute int
}

type RetryConfig struct {
	MaxRetries uint64
	BaseDelay  time.Duration
}

type CacheConfig struct {
	Backend string
	TTL     time.Duration
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

type AdminSeedConfig struct {
	Username string
	Password string
}

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Sheets   SheetsConfig
	Retry    RetryConfig
	Cache    CacheConfig
	Session  SessionConfig
	Admin    AdminSeedConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", "./logs/app.log"),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Sheets: SheetsConfig{
			Backend:           strings.ToLower(getEnv("SHEETS_BACKEND", SheetsBackendGoogle)),
			CredentialsJSON:   getEnv("GOOGLE_CREDS_JSON", ""),
			SpreadsheetID:     getEnv("GOOGLE_SHEET_ID", ""),
			WorkbookPath:      getEnv("SHEETS_WORKBOOK_PATH", ""),
			RequestsPerMinute: getEnvInt("SHEETS_REQUESTS_PER_MINUTE", 60),
		},
		Retry: RetryConfig{
			MaxRetries: uint64(getEnvInt("SHEETS_MAX_RETRIES", 3)),
			BaseDelay:  getEnvDuration("SHEETS_RETRY_BASE_DELAY", time.Second),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
			TTL:     getEnvDuration("CACHE_TTL", 300*time.Second),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", ""),
			TTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
			SecureCookie: getEnv("SESSION_COOKIE_SECURE", "true") == "true",
		},
		Admin: AdminSeedConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}
}

// Validate проверяет обязательные параметры. Ошибка здесь фатальна для запуска.
func (c *Config) Validate() error {
	var errs []error

	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("DATABASE_URL не задан"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET не задан"))
	}

	switch c.Sheets.Backend {
	case SheetsBackendGoogle:
		if c.Sheets.CredentialsJSON == "" {
			errs = append(errs, errors.New("GOOGLE_CREDS_JSON не задан"))
		} else if _, err := c.GoogleCredentials(); err != nil {
			errs = append(errs, err)
		}
		if c.Sheets.SpreadsheetID == "" {
			errs = append(errs, errors.New("GOOGLE_SHEET_ID не задан"))
		}
	case SheetsBackendWorkbook:
		if c.Sheets.WorkbookPath == "" {
			errs = append(errs, errors.New("SHEETS_WORKBOOK_PATH не задан"))
		}
	default:
		errs = append(errs, fmt.Errorf("неизвестный SHEETS_BACKEND %q", c.Sheets.Backend))
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		errs = append(errs, fmt.Errorf("неизвестный CACHE_BACKEND %q", c.Cache.Backend))
	}

	return errors.Join(errs...)
}

// GoogleCredentials возвращает JSON сервисного аккаунта с восстановленными
// переводами строк в private_key (в переменных окружения они приходят как "\n").
func (c *Config) GoogleCredentials() ([]byte, error) {
	var creds map[string]interface{}
	if err := json.Unmarshal([]byte(c.Sheets.CredentialsJSON), &creds); err != nil {
		return nil, fmt.Errorf("GOOGLE_CREDS_JSON не является корректным JSON: %w", err)
	}
	if key, ok := creds["private_key"].(string); ok {
		creds["private_key"] = strings.ReplaceAll(key, `\n`, "\n")
	}
	return json.Marshal(creds)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Предупреждение: %s=%q не число, используется %d", key, value, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Предупреждение: %s=%q не длительность, используется %s", key, value, fallback)
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
