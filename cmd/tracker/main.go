package main

import (
	"fmt"
	"os"

	"birthday_tracker/internal/infra/config"
	"birthday_tracker/internal/infra/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg *config.AppConfig

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Birthday tracker: record store, HTTP API and daily reminder mails",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("could not load application configuration: %w", err)
			}
			logger.Init(cfg)
			logger.Log.WithFields(logrus.Fields{
				"environment":  cfg.Environment,
				"store_driver": cfg.StoreDriver,
				"timezone":     cfg.Location.String(),
			}).Info("Configuration loaded")
			return nil
		},
	}

	loaded := func() *config.AppConfig { return cfg }
	root.AddCommand(
		newServeCommand(loaded),
		newRemindCommand(loaded),
		newMigrateCommand(loaded),
	)
	return root
}
