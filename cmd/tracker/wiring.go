package main

import (
	"context"
	"database/sql"
	"time"

	"birthday_tracker/internal/app"
	"birthday_tracker/internal/domain/document"
	"birthday_tracker/internal/domain/notify"
	"birthday_tracker/internal/infra/config"
	idb "birthday_tracker/internal/infra/database"
	"birthday_tracker/internal/infra/jsonbin"
	"birthday_tracker/internal/infra/logger"
	"birthday_tracker/internal/infra/mailer"
	"birthday_tracker/internal/infra/memstore"
	"birthday_tracker/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const connectTimeout = 10 * time.Second

// application is everything the commands share once the store is open.
type application struct {
	cfg       *config.AppConfig
	db        *sql.DB // nil unless the postgres driver is in use
	bot       *telebot.Bot
	birthdays *app.BirthdayService
	settings  *app.SettingsService
	reminders *app.ReminderService
}

func (a *application) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// openStore builds the document store for the configured driver. When the
// driver's credentials are missing, a store that fails every call is returned
// so the problem is reported per request instead of at startup.
func openStore(ctx context.Context, cfg *config.AppConfig) (document.Store, *sql.DB, error) {
	log := logger.Component("store")

	if err := cfg.RequireStore(); err != nil {
		log.WithError(err).Warn("Store is not configured, every request will fail")
		return document.Unavailable{Err: err}, nil, nil
	}

	switch cfg.StoreDriver {
	case config.StoreDriverJSONBin:
		log.Info("Using JSONBin document store")
		return jsonbin.NewStore(cfg.JSONBinBaseURL, cfg.JSONBinBinID, cfg.JSONBinAPIKey), nil, nil
	case config.StoreDriverMemory:
		log.Warn("Using in-memory document store, data is lost on exit")
		return memstore.New(), nil, nil
	default:
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		db, err := idb.NewPostgresConnection(connCtx, cfg.DatabaseURL, cfg.DBPool)
		if err != nil {
			return nil, nil, err
		}
		store := idb.NewPostgresDocumentStore(db)
		if err := store.EnsureSchema(connCtx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Database connection established successfully.")
		return store, db, nil
	}
}

// newBot creates the admin bot, or returns nil when Telegram is not configured
// or the bot cannot be created.
func newBot(cfg *config.AppConfig, offline bool) *telebot.Bot {
	if !cfg.TelegramEnabled() {
		return nil
	}
	log := logger.Component("telegram")

	pref := telebot.Settings{
		Token:   cfg.TelegramToken,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		Offline: offline,
		OnError: func(err error, c telebot.Context) {
			entry := log.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"message":   c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Error("Could not create Telegram bot, continuing without it")
		return nil
	}
	return bot
}

func buildApplication(ctx context.Context, cfg *config.AppConfig, offlineBot bool) (*application, error) {
	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	birthdayRepo := idb.NewBirthdayRepository(store)
	settingsRepo := idb.NewSettingsRepository(store)

	a := &application{cfg: cfg, db: db, bot: newBot(cfg, offlineBot)}

	var mirror notify.ChatMirror
	if a.bot != nil {
		mirror = telegram.NewTelebotAdapter(a.bot, cfg.AdminTelegramID)
	}

	a.birthdays = app.NewBirthdayService(birthdayRepo, logger.Component("birthdays"))
	a.settings = app.NewSettingsService(settingsRepo, logger.Component("settings"))
	a.reminders = app.NewReminderService(
		birthdayRepo,
		settingsRepo,
		mailer.NewSMTPNotifier(cfg),
		mirror,
		cfg.AdminEmail,
		cfg.OrganizationName,
		logger.Component("reminders"),
	)
	return a, nil
}
