package main

import (
	"context"
	"time"

	"estagios/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default departments and the bootstrap admin account",
	Long: "Insert the default departments. When SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD " +
		"are set, the admin account is created as well. Existing rows are left untouched.",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := connectDB(cfg.Database)
		if err != nil {
			log.Error("seed aborted", zap.Error(err))
			return err
		}
		defer func() { _ = db.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		r := seeder.Runner{Seeders: seeder.Defaults(cfg.Seed), Logger: log}
		if err := r.Run(ctx, db); err != nil {
			log.Error("seed failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
