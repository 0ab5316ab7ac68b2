package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay120/duckling-1/cmd/sereval/commands"
	"github.com/vijay120/duckling-1/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sereval",
	Short: "Evaluate system entity recognizers against a labeled corpus",
	Long: `sereval - System entity recognition evaluation harness.

Fetches entity predictions from Duckling and Mallard over a labeled
query corpus, caches them in SQLite, and scores each system against
the ground-truth spans embedded in the corpus markup.

Available commands:
  am      - Manage harness configuration
  fetch   - Run recognizers over the corpus and cache predictions
  eval    - Score cached runs against ground truth
  spans   - Extract and inspect ground-truth spans
  runs    - List cached recognizer runs

Examples:
  sereval am init               # Write a default config file
  sereval fetch --system both   # Fetch predictions from both systems
  sereval eval                  # Score the latest run of each system
  sereval spans --index 42      # Show ground truth for one query`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.InitializeWithLevel(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output machine-readable JSON")

	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.FetchCmd)
	rootCmd.AddCommand(commands.EvalCmd)
	rootCmd.AddCommand(commands.SpansCmd)
	rootCmd.AddCommand(commands.RunsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
