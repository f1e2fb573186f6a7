package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lernapp-2025/studycards-v3/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, logCloser := setupLogger(cmd, cfg)
			defer func() { _ = logCloser.Close() }()

			if cfg.Store.Backend == "postgrest" {
				return fmt.Errorf("migrate needs store.backend sql; the postgrest schema is managed by its host")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := database.Connect(ctx, cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() { _ = db.Close() }()

			applied, err := database.Migrate(ctx, db, logger)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, err = fmt.Fprintln(out, "Database is up to date.")
				return err
			}
			for _, name := range applied {
				if _, err := fmt.Fprintf(out, "applied %s\n", name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
