package main

import (
	"context"
	"time"

	"birthday_tracker/internal/app"
	"birthday_tracker/internal/infra/config"
	"birthday_tracker/internal/infra/logger"
	"birthday_tracker/internal/infra/scheduler"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const remindTimeout = 5 * time.Minute

func newRemindCommand(cfg func() *config.AppConfig) *cobra.Command {
	var scheduled bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run one reminder dispatch and exit",
		Long: "Run one reminder dispatch and exit. By default only the configured reminder " +
			"days are checked; --scheduled also checks tomorrow, like the daily job.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return remind(cmd.Context(), cfg(), scheduled)
		},
	}
	cmd.Flags().BoolVar(&scheduled, "scheduled", false, "check the reminder days and tomorrow, as the daily job does")
	return cmd
}

func remind(parent context.Context, cfg *config.AppConfig, scheduled bool) error {
	ctx, cancel := context.WithTimeout(parent, remindTimeout)
	defer cancel()

	a, err := buildApplication(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if scheduled {
		// Same path as the cron job so the status line matches the service logs.
		s := scheduler.NewReminderScheduler(a.reminders, logger.Component("scheduler"), cfg.CronSpecReminder, cfg.Location)
		_, err := s.RunOnce(ctx)
		return err
	}

	report, err := a.reminders.Dispatch(ctx, time.Now().In(cfg.Location), app.ModeOnDemand)
	if err != nil {
		return err
	}
	logger.Component("remind").WithFields(logrus.Fields{
		"notifications": report.Notifications,
		"records":       report.Records,
	}).Info("Reminder dispatch finished")
	return nil
}
