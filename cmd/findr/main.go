package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/findr-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "findr",
	Short: "Campus lost-and-found API",
	Long:  `findr runs the lost-and-found HTTP API and its supporting maintenance tasks.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			// Logger is not configured yet; this goes out on the default writer.
			log.Debug().Msg("no .env file found, reading from environment")
		}
		cfg = config.Load()
		setupLogger(cfg)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, bootstrapCmd, tokenCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setupLogger installs the global logger: human-readable in development,
// JSON everywhere else.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	// Services log through log.Ctx; outside a request they fall back here.
	zerolog.DefaultContextLogger = &log.Logger
}
