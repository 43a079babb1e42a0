package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Store drivers selectable through STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverJSONBin  = "jsonbin"
	StoreDriverMemory   = "memory"
)

// ErrMissing is matched (errors.Is) by every MissingError.
var ErrMissing = errors.New("required configuration missing")

// MissingError names the environment variables a component needed but did not get.
// It is returned when the component is used, not when the process starts.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("Missing %s environment variable(s)", strings.Join(e.Keys, " or "))
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// DBPool sizes the PostgreSQL connection pool. The tracker reads and writes
// one document per call, so a handful of connections is plenty.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AppConfig holds all configuration for the application
type AppConfig struct {
	LogLevel    string
	Environment string
	HTTPAddr    string
	Location    *time.Location

	StoreDriver    string
	DatabaseURL    string
	DBPool         DBPool
	JSONBinAPIKey  string
	JSONBinBinID   string
	JSONBinBaseURL string

	EmailUser string
	EmailPass string
	EmailFrom string
	SMTPHost  string
	SMTPPort  int

	AdminEmail       string // fallback when the stored settings have no address
	OrganizationName string

	CronSpecReminder   string
	ReminderRunOnStart bool

	TelegramToken   string
	AdminTelegramID int64
}

// Load reads configuration from environment variables and .env file (if present).
// Only malformed values fail here; absent credentials are reported by the
// component that needs them (see Require* methods).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.LogLevel = strings.ToLower(getOr("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getOr("ENVIRONMENT", "development"))
	cfg.HTTPAddr = getOr("HTTP_ADDR", ":8080")

	tz := getOr("TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(getOr("STORE_DRIVER", StoreDriverPostgres))
	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverJSONBin, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want postgres, jsonbin or memory", cfg.StoreDriver)
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DBPool.MaxOpenConns, err = strconv.Atoi(getOr("DB_MAX_OPEN_CONNS", "5")); err != nil || cfg.DBPool.MaxOpenConns < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: want a positive integer")
	}
	if cfg.DBPool.MaxIdleConns, err = strconv.Atoi(getOr("DB_MAX_IDLE_CONNS", "2")); err != nil || cfg.DBPool.MaxIdleConns < 0 {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: want zero or a positive integer")
	}
	if cfg.DBPool.ConnMaxLifetime, err = time.ParseDuration(getOr("DB_CONN_MAX_LIFETIME", "5m")); err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}
	cfg.JSONBinAPIKey = os.Getenv("JSONBIN_API_KEY")
	cfg.JSONBinBinID = os.Getenv("JSONBIN_BIN_ID")
	cfg.JSONBinBaseURL = strings.TrimRight(getOr("JSONBIN_BASE_URL", "https://api.jsonbin.io"), "/")

	cfg.EmailUser = os.Getenv("EMAIL_USER")
	cfg.EmailPass = os.Getenv("EMAIL_PASS")
	cfg.EmailFrom = getOr("EMAIL_FROM", cfg.EmailUser)
	cfg.SMTPHost = getOr("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTPPort, err = strconv.Atoi(getOr("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.AdminEmail = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	cfg.OrganizationName = getOr("ORGANIZATION_NAME", "Birthday Tracker")

	cfg.CronSpecReminder = getOr("CRON_SPEC_REMINDER", "0 7 * * *") // Default: 07:00 daily
	if _, err := cron.ParseStandard(cfg.CronSpecReminder); err != nil {
		return nil, fmt.Errorf("invalid CRON_SPEC_REMINDER: %w", err)
	}
	if v := os.Getenv("REMINDER_RUN_ON_START"); v != "" {
		cfg.ReminderRunOnStart, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_RUN_ON_START: %w", err)
		}
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID"); adminIDStr != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	return cfg, nil
}

// RequireStore reports which credentials the selected store driver lacks.
func (c *AppConfig) RequireStore() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return &MissingError{Keys: []string{"DATABASE_URL"}}
		}
	case StoreDriverJSONBin:
		if c.JSONBinAPIKey == "" || c.JSONBinBinID == "" {
			return &MissingError{Keys: []string{"JSONBIN_API_KEY", "JSONBIN_BIN_ID"}}
		}
	}
	return nil
}

// RequireMail reports whether the mail account credentials are present.
func (c *AppConfig) RequireMail() error {
	if c.EmailUser == "" || c.EmailPass == "" {
		return &MissingError{Keys: []string{"EMAIL_USER", "EMAIL_PASS"}}
	}
	return nil
}

// TelegramEnabled is true when both the bot token and the admin chat are set.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.AdminTelegramID != 0
}

func getOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
