// Package cli implements the fileshare command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fileshare/internal/app"
	"fileshare/internal/infrastructure/config"
	"fileshare/internal/infrastructure/logging"
)

var rootCmd = &cobra.Command{
	Use:           "fileshare",
	Short:         "Local network file sharing server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newApp opens the application. The caller must defer app.Close().
func newApp(ctx context.Context, settings *config.Settings, logger *slog.Logger) (*app.App, error) {
	a, err := app.New(ctx, settings, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// consoleLogger logs warnings and above to stderr for the offline commands.
func consoleLogger() *slog.Logger {
	return logging.NewWriter(os.Stderr, "warn")
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// readPassword prompts on the terminal without echo.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal to prompt for a password, pass it with a flag")
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}
