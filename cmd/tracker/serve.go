package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"birthday_tracker/internal/infra/config"
	"birthday_tracker/internal/infra/httpapi"
	"birthday_tracker/internal/infra/logger"
	"birthday_tracker/internal/infra/scheduler"
	"birthday_tracker/internal/infra/telegram"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(cfg func() *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the daily reminder job and the optional Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg())
		},
	}
}

func serve(parent context.Context, cfg *config.AppConfig) error {
	log := logger.Component("main")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApplication(ctx, cfg, false)
	if err != nil {
		log.WithError(err).Error("Could not initialize application")
		return err
	}
	defer a.Close()

	reminderScheduler := scheduler.NewReminderScheduler(a.reminders, logger.Component("scheduler"), cfg.CronSpecReminder, cfg.Location)
	if err := reminderScheduler.Start(cfg.ReminderRunOnStart); err != nil {
		log.WithError(err).Error("Could not start reminder scheduler")
		return err
	}

	if a.bot != nil {
		botLogger := logger.Component("telegram")
		telegram.RegisterBotCommands(a.bot, cfg.AdminTelegramID, botLogger)
		telegram.RegisterAdminHandlers(ctx, a.bot, telegram.AdminServices{
			Birthdays: a.birthdays,
			Reminders: a.reminders,
			Location:  cfg.Location,
		}, cfg.AdminTelegramID, botLogger)
		telegram.RegisterPostedButtonHandler(ctx, a.bot, a.birthdays, cfg.AdminTelegramID, botLogger)
		log.Info("Telegram handlers registered.")

		go a.bot.Start()
	}

	server := httpapi.NewServer(httpapi.Services{
		Birthdays: a.birthdays,
		Settings:  a.settings,
		Reminders: a.reminders,
	}, cfg.Location, logger.Component("http"))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(cfg.HTTPAddr)
	}()

	log.Info("Application setup complete. HTTP server and scheduler are running...")

	select {
	case <-ctx.Done():
		err = nil
	case err = <-serverErr:
		if err != nil {
			log.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}

	log.Info("Shutting down application...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.WithError(shutdownErr).Warn("HTTP server did not shut down cleanly")
	}
	if a.bot != nil {
		a.bot.Stop()
	}
	reminderScheduler.Stop()
	log.Info("Application shut down gracefully.")

	return err
}
