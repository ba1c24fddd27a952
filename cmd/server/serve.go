package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"estagios/internal/app"
	"estagios/internal/config"
	"estagios/internal/database/migration"
	"estagios/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the websocket server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		return serve(migrate)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("migrate", false, "apply pending migrations before serving")
}

func serve(migrate bool) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if migrate {
		if err := migrateUp(cfg, log); err != nil {
			return err
		}
	}

	a, cleanup, err := app.Bootstrap(cfg, log)
	if err != nil {
		log.Error("failed to bootstrap app", zap.Error(err))
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting the API",
		zap.String("app", cfg.App.AppName),
		zap.String("env", cfg.App.Environment),
		zap.String("version", version),
	)
	return a.Run(ctx)
}

func migrateUp(cfg config.Config, log *zap.Logger) error {
	db, err := connectDB(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	r := migration.Runner{FS: migrations.FS, Logger: log}
	if err := r.Up(ctx, db.SQLDB()); err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}
	return nil
}
