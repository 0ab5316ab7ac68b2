package commands

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vijay120/duckling-1/db"
	"github.com/vijay120/duckling-1/display"
	"github.com/vijay120/duckling-1/logger"
)

var runsDBPath string

// RunsCmd lists cached recognizer runs
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List cached recognizer runs",
	Long:  "List all cached recognizer runs, newest first.",
	RunE:  runRuns,
}

func init() {
	RunsCmd.Flags().StringVar(&runsDBPath, "db", "", "Database path (defaults to config)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(runsDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	store := db.NewRunStore(database, logger.Logger)
	runs, err := store.ListRuns()
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(runs)
	}

	if len(runs) == 0 {
		pterm.Info.Printf("No cached runs; use 'sereval fetch' first")
		return nil
	}

	table := pterm.TableData{{"Run ID", "System", "Endpoint", "Queries", "Created"}}
	for _, run := range runs {
		table = append(table, []string{
			run.ID,
			run.System,
			run.Endpoint,
			strconv.Itoa(run.QueryCount),
			run.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}
