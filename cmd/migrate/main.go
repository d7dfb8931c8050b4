package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/smartshelf-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartshelf-api/pkg/config"
	"github.com/jhoicas/smartshelf-api/pkg/logger"
)

// migrate: CLI para aplicar o revertir el esquema de PostgreSQL fuera del arranque de la API.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate version
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones del esquema de SmartShelf",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "connection string (por defecto DATABASE_URL o DB_*)")

	withMigrator := func(run func(*postgres.Migrator, *logger.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			log := logger.New(logger.Config{Env: "development", Output: cmd.OutOrStdout()})
			target := dsn
			if target == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				target = cfg.DB.ConnectionString()
			}
			mg, err := postgres.NewMigrator(target)
			if err != nil {
				return err
			}
			defer mg.Close()
			return run(mg, log)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(mg *postgres.Migrator, log *logger.Logger) error {
				if err := mg.Up(); err != nil {
					return err
				}
				return logVersion(mg, log)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(mg *postgres.Migrator, log *logger.Logger) error {
				if err := mg.Down(); err != nil {
					return err
				}
				return logVersion(mg, log)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión actual del esquema",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(mg *postgres.Migrator, log *logger.Logger) error {
				return logVersion(mg, log)
			}),
		},
	)
	return root
}

func logVersion(mg *postgres.Migrator, log *logger.Logger) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("esquema")
	return nil
}
