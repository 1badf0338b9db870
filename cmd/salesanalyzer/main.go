package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"salesanalyzer/internal/analyzer"
	"salesanalyzer/internal/config"
	"salesanalyzer/internal/logging"
)

const prompt = "Enter the path to your sales data CSV file: "

func main() {
	os.Exit(execute())
}

func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var logger *zap.Logger
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "salesanalyzer",
		Short:         "Summarize a sales CSV and chart it",
		Long:          "Prompts for a sales CSV, prints totals and the top 5 products, and saves top_products.png and daily_sales.png in the current directory.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load("."); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logger, err = logging.New(cfg.LogLevel, cfg.LogFormat); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, prompt)
			path, err := readLine(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read path: %w", err)
			}

			// The outcome is already printed; the process still exits 0.
			analyzer.New(logger, out).Run(cmd.Context(), path)
			return nil
		},
	}

	rootCmd.AddCommand(newServeCmd(func() (*zap.Logger, *config.Config) { return logger, cfg }))
	return rootCmd
}

// readLine returns one line without its line terminator. A final line
// without a newline is accepted.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
