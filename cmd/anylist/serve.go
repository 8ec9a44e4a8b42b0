package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/anylist/internal/api"
	"github.com/erazemk/anylist/internal/auth"
	"github.com/erazemk/anylist/internal/service"
	"github.com/erazemk/anylist/internal/store"
)

func newSeeder(a *app, st *store.Store) *service.Seeder {
	return service.NewSeeder(st, a.cfg.IsProduction(), a.log)
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	database, st, err := a.openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	secret, err := a.jwtSecret(ctx, st)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokens(secret, a.cfg.JWTTTL)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Services{
		Accounts: service.NewAccounts(st, tokens, a.log),
		Items:    service.NewItems(st, a.log),
		Lists:    service.NewLists(st, a.log),
		Seeder:   newSeeder(a, st),
	}, api.RouterOptions{
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
		AuthRateRPS:    a.cfg.AuthRateLimitRPS,
		AuthRateBurst:  a.cfg.AuthRateLimitBurst,
	}, a.log)

	server := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.log.Info("server started", "addr", a.cfg.ListenAddr, "config", a.cfg.String())
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server forced to shutdown", "error", err)
		return err
	}

	a.log.Info("server stopped, closing database")
	return nil
}
