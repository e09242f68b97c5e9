// main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mentora-hub/config"
	"mentora-hub/logger"
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg config.App

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mentora",
		Short:        "Mentora Hub - student support portal",
		Long:         `Serves the support pages, the agent webhook and the admin dashboard, and edits user roles out-of-band.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(promoteCmd())
	rootCmd.AddCommand(demoteCmd())
	return rootCmd
}

// initApp loads configuration and sets up the logger for the environment.
func initApp() error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.InitLogger(loaded.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg = loaded
	logger.Info.Printf("[initApp] environment %s, store %s, auth %s", cfg.Env, cfg.StoreBackend, cfg.AuthBackend)
	return nil
}
