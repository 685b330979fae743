package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/shadowing-backend/internal/app"
	"github.com/heartmarshall/shadowing-backend/internal/config"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "shadowing",
		Short:        "Shadowing practice scoring tools",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			app.NewLogger(config.LogConfig{Level: logLevel, Format: "text"})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.SetErr(os.Stderr)

	root.AddCommand(newScoreCmd(), newBatchCmd(), newTokenCmd())
	return root
}
