package main

import (
	"context"
	"fmt"
	"time"

	"estagios/internal/config"
	"estagios/internal/database"
	dbpostgres "estagios/internal/database/postgres"
	"estagios/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "estagios"

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "estagios serves the internship proposal platform API",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	config.LoadDotEnv(envFile)
}

// setup loads the configuration and builds the process logger.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFrom(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}

func connectDB(cfg config.DatabaseConfig) (database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
