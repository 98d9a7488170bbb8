package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yz4230/repowatch/internal/display"
	"github.com/yz4230/repowatch/internal/repository"
	"github.com/yz4230/repowatch/internal/server"
	"github.com/yz4230/repowatch/internal/usecase"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Poll the record store and print new records",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		injector := do.New()
		defer func() {
			if err := injector.Shutdown(); err != nil {
				log.Error().Err(err).Msg("failed to release store")
			}
		}()
		server.InjectDependencies(ctx, injector, &server.Config{App: app, Logger: log.Logger})
		db, err := do.Invoke[*repository.Database](injector)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		out := cmd.OutOrStdout()
		rule := strings.Repeat("-", 60)
		fmt.Fprintln(out, "Database connection successful")
		fmt.Fprintf(out, "Polling interval: %s\n", app.Display.PollInterval)
		fmt.Fprintf(out, "Database: %s (table %s)\n", app.Database.URI, db.TableName())
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, "Displaying recent data from database:")

		poller := display.NewPoller(
			do.MustInvoke[usecase.ListRecentRecordsUsecase](injector),
			do.MustInvoke[usecase.ListRecordsSinceUsecase](injector),
			app.Display.PollInterval,
			out,
			log.Logger,
		)
		if err := poller.ShowRecent(ctx); err != nil {
			log.Error().Err(err).Msg("failed to display recent records")
		}
		fmt.Fprintf(out, "\nStarting live polling (every %s)...\n", app.Display.PollInterval)
		fmt.Fprintln(out, "Press Ctrl+C to stop")
		fmt.Fprintln(out, rule)

		if err := poller.Run(ctx); err != nil {
			return err
		}
		log.Info().Msg("display stopped")
		return nil
	},
}

func init() {
	displayCmd.Flags().String("db-uri", "data", "Directory holding the SQLite database, or :memory:")
	displayCmd.Flags().Duration("interval", 15*time.Second, "Poll interval")
}
