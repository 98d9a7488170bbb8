package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yz4230/repowatch/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Receive GitHub webhooks and store them",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !app.VerificationEnabled() {
			ev := log.Warn()
			if !app.IsLocalDevelopment() {
				ev = log.Error()
			}
			ev.Str("env", app.Environment).Msg("GITHUB_WEBHOOK_SECRET is not set, webhook signatures will not be verified")
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		cfg := &server.Config{App: app, Logger: log.Logger}
		srv, err := server.New(ctx, cfg)
		if err != nil {
			return err
		}
		chSignal := make(chan os.Signal, 1)
		signal.Notify(chSignal, os.Interrupt, syscall.SIGTERM)

		wg := &sync.WaitGroup{}
		wg.Go(func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cfg.Logger.Fatal().Err(err).Msg("server error")
			}
		})

		sig := <-chSignal
		cfg.Logger.Info().Str("signal", sig.String()).Msg("shutting down server...")
		stopCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Stop(stopCtx); err != nil {
			cfg.Logger.Error().Err(err).Msg("error during server shutdown")
		}

		wg.Wait()
		cfg.Logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "Host to listen on")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("db-uri", "data", "Directory holding the SQLite database, or :memory:")
}
