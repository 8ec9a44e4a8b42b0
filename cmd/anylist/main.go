package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/erazemk/anylist/internal/config"
	"github.com/erazemk/anylist/internal/db"
	"github.com/erazemk/anylist/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	closeLog func()
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		a          app
	)

	rootCmd := &cobra.Command{
		Use:           "anylist",
		Short:         "Shopping list server",
		Long:          "anylist serves the shopping list API backed by a SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg.SlogLevel(), cfg.LogFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a = app{cfg: cfg, log: log, closeLog: closeLog}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("ANYLIST_CONFIG"), "YAML config file (env overrides it)")

	rootCmd.AddCommand(
		newServeCmd(&a),
		newMigrateCmd(&a),
		newSeedCmd(&a),
	)
	return rootCmd
}

// openStore opens the database, applies pending migrations and wraps it in
// a store. The caller closes the returned database.
func (a *app) openStore() (*bun.DB, *store.Store, error) {
	database, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(database.DB); err != nil {
		database.Close()
		return nil, nil, err
	}

	version, err := db.Version(database.DB)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	a.log.Info("database ready", "path", a.cfg.DBPath, "schema_version", version)
	return database, store.New(database, a.log), nil
}

// jwtSecret returns the configured secret or the one persisted in the
// database, generating it on first use.
func (a *app) jwtSecret(ctx context.Context, st *store.Store) (string, error) {
	if a.cfg.JWTSecret != "" {
		return a.cfg.JWTSecret, nil
	}
	return st.Settings.JWTSecret(ctx)
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, _, err := a.openStore()
			if err != nil {
				return err
			}
			return database.Close()
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			res, err := newSeeder(a, st).Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d items, %d lists, %d list items.\n",
				res.Users, res.Items, res.Lists, res.ListItems)
			return nil
		},
	}
}
