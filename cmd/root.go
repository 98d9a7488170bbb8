package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yz4230/repowatch/cmd/send"
	"github.com/yz4230/repowatch/internal/config"
)

var rootFlags struct {
	verbose bool
	envFile string
}

var rootCmd = &cobra.Command{
	Use:           "repowatch",
	Short:         "Record GitHub push and pull request webhooks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(rootFlags.envFile); err != nil {
			return err
		}
		setupLogger("console", zerolog.InfoLevel)
		return nil
	},
}

// setupLogger replaces the global logger. --verbose forces debug output.
func setupLogger(format string, level zerolog.Level) {
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if format == "json" {
		w = os.Stderr
	}
	if rootFlags.verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

// loadConfig reads configuration for cmd and applies its log settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	setupLogger(cfg.Log.Format, cfg.Log.Level)
	return cfg, nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.envFile, "env-file", "", "Path to a .env file (default: ./.env when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(displayCmd)
	rootCmd.AddCommand(send.SendCmd)
}
