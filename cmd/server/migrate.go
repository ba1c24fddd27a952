package main

import (
	"context"
	"fmt"
	"time"

	"estagios/internal/database"
	"estagios/internal/database/migration"
	"estagios/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(func(ctx context.Context, r migration.Runner, db database.DB) error {
			return r.Up(ctx, db.SQLDB())
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(func(ctx context.Context, r migration.Runner, db database.DB) error {
			return r.Down(ctx, db.SQLDB())
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of every migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(func(ctx context.Context, r migration.Runner, db database.DB) error {
			items, err := r.Status(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, it := range items {
				state := "pending"
				if it.Applied {
					state = "applied"
				}
				fmt.Fprintf(out, "%05d  %-8s %s\n", it.Version, state, it.Path)
			}
			return nil
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func withMigrations(fn func(ctx context.Context, r migration.Runner, db database.DB) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := connectDB(cfg.Database)
	if err != nil {
		log.Error("migration aborted", zap.Error(err))
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := fn(ctx, migration.Runner{FS: migrations.FS, Logger: log}, db); err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}
	return nil
}
