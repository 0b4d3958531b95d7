package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"fileshare/internal/infrastructure/config"
	"fileshare/internal/infrastructure/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the file sharing server",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()

		logger, logWriter, err := logging.New(settings.LogDir, settings.LogLevel)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logWriter.Close()
		slog.SetDefault(logger)

		ctx, stop := signalContext()
		defer stop()

		a, err := newApp(ctx, settings, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
