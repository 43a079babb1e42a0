package main

import (
	"context"
	"fmt"

	"birthday_tracker/internal/infra/config"
	idb "birthday_tracker/internal/infra/database"
	"birthday_tracker/internal/infra/logger"

	"github.com/spf13/cobra"
)

func newMigrateCommand(cfg func() *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the documents table in PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), cfg())
		},
	}
}

func migrate(parent context.Context, cfg *config.AppConfig) error {
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate only applies to the postgres store, STORE_DRIVER is %q", cfg.StoreDriver)
	}
	if err := cfg.RequireStore(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, connectTimeout)
	defer cancel()

	db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL, cfg.DBPool)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := idb.NewPostgresDocumentStore(db).EnsureSchema(ctx); err != nil {
		return err
	}
	logger.Component("migrate").Info("Documents table is ready")
	return nil
}
