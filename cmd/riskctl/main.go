// Package main implements riskctl, the operator CLI for the credit risk
// scoring engine.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bibbank/creditrisk/pkg/observability"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "riskctl",
		Short:         "Credit risk scoring CLI",
		Long:          "riskctl scores applicants locally or against a running credit-risk-service, validates parameter artifacts, and tails decision events.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	logger := func(cmd *cobra.Command) *slog.Logger {
		return observability.InitLogger(observability.LogConfig{
			Output:      cmd.ErrOrStderr(),
			Level:       logLevel,
			Format:      "text",
			ServiceName: "riskctl",
		})
	}

	rootCmd.AddCommand(
		newScoreCmd(logger),
		newValidateModelCmd(),
		newGenCertCmd(),
		newWatchCmd(logger),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printJSONLine(w io.Writer, data []byte) error {
	_, err := fmt.Fprintln(w, string(data))
	return err
}
