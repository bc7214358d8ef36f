package main

import (
	"context"

	"github.com/lshigami/Surveyor/config"
	"github.com/lshigami/Surveyor/database"
	"github.com/lshigami/Surveyor/internal/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	skipMigrate bool

	rootCmd = &cobra.Command{
		Use:   "surveyor",
		Short: "Survey authoring and response collection service",
		// Plain `surveyor` serves.
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE:  runMigrate,
	}
)

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := appOptions()
	if !skipMigrate {
		opts = append(opts, fx.Invoke(database.AutoMigrate))
	}
	opts = append(opts, serverInvokes())

	app := fx.New(opts...)
	if err := app.Start(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}

	sig := <-app.Wait()
	log.Info().Str("signal", sig.Signal.String()).Msg("Application shutting down gracefully...")
	return app.Stop(context.Background())
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := database.NewDatabase(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.AutoMigrate(db)
}
