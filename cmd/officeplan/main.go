package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/officeplan/internal/config"
	"github.com/mmynk/officeplan/pkg/logging"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "officeplan",
		Short: "Track who is in the office, and with which dog",
		Long: `officeplan records a daily attendance status per employee for a small
office: absent, present, or present with dog. Several anonymous devices
share one ledger; an entry can only be changed from the device that created
it, unless it was protected with a password.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, sweepCmd, resetCmd, clearCmd, deviceCmd, clickCmd, weekCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
