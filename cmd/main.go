package main

import (
	"context"
	"fmt"
	"os"

	"go-hospital-booking/cmd/bootstrap"
	"go-hospital-booking/config"
	"go-hospital-booking/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "hospital-booking",
		Short: "Hospital appointment booking API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional env file")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))
	rootCmd.AddCommand(seedCmd(&envFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(envFile string) (*config.Config, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	bootstrap.SetupLogger(cfg.App.LogLevel)
	return cfg, nil
}

func runServer(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Initialize application with all dependencies
	app, err := bootstrap.New(cfg)
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return err
	}

	// Run the application
	return app.Run()
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*envFile)
		},
	}
}

func migrateCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DB)
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DB, steps)
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	return cmd
}

func seedCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sample doctors, patient and admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			}()

			result, err := bootstrap.SeedDatabase(context.Background(), db, cfg.Seed, logrus.StandardLogger())
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"created": result.Created,
				"skipped": result.Skipped,
			}).Info("Seeding complete")
			return nil
		},
	}
}
