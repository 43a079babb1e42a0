package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "ENVIRONMENT", "HTTP_ADDR", "TIMEZONE", "STORE_DRIVER", "DATABASE_URL",
		"JSONBIN_API_KEY", "JSONBIN_BIN_ID", "JSONBIN_BASE_URL", "EMAIL_USER", "EMAIL_PASS",
		"EMAIL_FROM", "SMTP_HOST", "SMTP_PORT", "ADMIN_EMAIL", "ORGANIZATION_NAME",
		"CRON_SPEC_REMINDER", "REMINDER_RUN_ON_START", "TELEGRAM_TOKEN", "ADMIN_TELEGRAM_ID",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Errorf("StoreDriver = %q, want postgres", cfg.StoreDriver)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Errorf("SMTP = %s:%d, want smtp.gmail.com:587", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.CronSpecReminder != "0 7 * * *" {
		t.Errorf("CronSpecReminder = %q", cfg.CronSpecReminder)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("Location = %s, want UTC", cfg.Location)
	}
	if cfg.TelegramEnabled() {
		t.Error("TelegramEnabled() = true without token")
	}
	if cfg.DBPool != (DBPool{MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: 5 * time.Minute}) {
		t.Errorf("DBPool = %+v", cfg.DBPool)
	}
}

func TestLoadDBPool(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "12")
	t.Setenv("DB_MAX_IDLE_CONNS", "0")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DBPool != (DBPool{MaxOpenConns: 12, MaxIdleConns: 0, ConnMaxLifetime: 90 * time.Second}) {
		t.Errorf("DBPool = %+v", cfg.DBPool)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Unknown driver", "STORE_DRIVER", "sqlite"},
		{"Bad port", "SMTP_PORT", "twenty"},
		{"Bad cron spec", "CRON_SPEC_REMINDER", "every morning"},
		{"Bad timezone", "TIMEZONE", "Mars/Olympus"},
		{"Bad admin id", "ADMIN_TELEGRAM_ID", "admin"},
		{"Bad bool", "REMINDER_RUN_ON_START", "maybe"},
		{"Zero open conns", "DB_MAX_OPEN_CONNS", "0"},
		{"Bad idle conns", "DB_MAX_IDLE_CONNS", "-1"},
		{"Bad lifetime", "DB_CONN_MAX_LIFETIME", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error", tt.key, tt.value)
			}
		})
	}
}

func TestRequireStore(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{"Postgres without URL", AppConfig{StoreDriver: StoreDriverPostgres}, true},
		{"Postgres with URL", AppConfig{StoreDriver: StoreDriverPostgres, DatabaseURL: "postgres://x"}, false},
		{"JSONBin missing bin", AppConfig{StoreDriver: StoreDriverJSONBin, JSONBinAPIKey: "k"}, true},
		{"JSONBin complete", AppConfig{StoreDriver: StoreDriverJSONBin, JSONBinAPIKey: "k", JSONBinBinID: "b"}, false},
		{"Memory needs nothing", AppConfig{StoreDriver: StoreDriverMemory}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequireStore()
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequireStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMissing) {
				t.Errorf("RequireStore() error %v does not match ErrMissing", err)
			}
		})
	}
}

func TestRequireMail(t *testing.T) {
	cfg := AppConfig{EmailUser: "tracker@example.org"}
	err := cfg.RequireMail()
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("RequireMail() = %v, want ErrMissing", err)
	}
	if err.Error() != "Missing EMAIL_USER or EMAIL_PASS environment variable(s)" {
		t.Errorf("Error() = %q", err.Error())
	}

	cfg.EmailPass = "secret"
	if err := cfg.RequireMail(); err != nil {
		t.Errorf("RequireMail() = %v, want nil", err)
	}
}
