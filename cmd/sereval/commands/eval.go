package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vijay120/duckling-1/am"
	"github.com/vijay120/duckling-1/db"
	"github.com/vijay120/duckling-1/display"
	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/eval"
	"github.com/vijay120/duckling-1/logger"
	"github.com/vijay120/duckling-1/ser"
)

var (
	evalDBPath      string
	evalClean       string
	evalLabeled     string
	evalDucklingRun string
	evalMallardRun  string
	evalReportPath  string
)

// EvalCmd scores cached recognizer runs against ground truth
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score cached runs against ground truth",
	Long: `Score a Duckling run and a Mallard run against the ground-truth spans
extracted from the labeled corpus.

Reports per-system correctness, queries Mallard resolves that Duckling
does not (regressions), entities Duckling omits outright on those
queries, cross-system agreement, and label confusions. By default the
latest cached run of each system is scored.

Examples:
  sereval eval                           # Latest run of each system
  sereval eval --duckling-run <id>       # Pin a specific Duckling run
  sereval eval --report misses.txt       # Write the missed-entities report`,
	RunE: runEval,
}

func init() {
	EvalCmd.Flags().StringVar(&evalDBPath, "db", "", "Database path (defaults to config)")
	EvalCmd.Flags().StringVar(&evalClean, "clean", "", "Clean corpus path (defaults to config)")
	EvalCmd.Flags().StringVar(&evalLabeled, "labeled", "", "Labeled corpus path (defaults to config)")
	EvalCmd.Flags().StringVar(&evalDucklingRun, "duckling-run", "", "Duckling run id (defaults to latest)")
	EvalCmd.Flags().StringVar(&evalMallardRun, "mallard-run", "", "Mallard run id (defaults to latest)")
	EvalCmd.Flags().StringVar(&evalReportPath, "report", "", "Missed-entities report path (defaults to config)")
}

// evalResult is the machine-readable shape of one evaluation.
type evalResult struct {
	display.Summary
	RegressionIndices []int                     `json:"regression_indices"`
	Confusions        map[string]map[string]int `json:"confusions"`
	ConfusionTotals   map[string]int            `json:"confusion_totals"`
}

// loadRunPredictions resolves a run (pinned id or latest for the
// system) and loads its corpus-aligned predictions.
func loadRunPredictions(store *db.RunStore, system, runID string, queries int) (*db.Run, []ser.Annotation, error) {
	var run *db.Run
	var err error
	if runID != "" {
		run, err = store.GetRun(runID)
	} else {
		run, err = store.LatestRun(system)
	}
	if err != nil {
		return nil, nil, err
	}

	if run.QueryCount != queries {
		return nil, nil, errors.NewAlignmentError("run "+run.ID, queries, run.QueryCount)
	}

	preds, err := store.LoadPredictions(run.ID)
	if err != nil {
		return nil, nil, err
	}
	return run, preds, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	corpus, err := loadCorpus(cfg, evalClean, evalLabeled)
	if err != nil {
		return err
	}

	database, err := openDatabase(evalDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	store := db.NewRunStore(database, logger.Logger)

	ducklingRun, ducklingPreds, err := loadRunPredictions(store, "duckling", evalDucklingRun, corpus.Len())
	if err != nil {
		return err
	}
	mallardRun, mallardPreds, err := loadRunPredictions(store, "mallard", evalMallardRun, corpus.Len())
	if err != nil {
		return err
	}
	logger.Infow("Scoring runs",
		"duckling_run", ducklingRun.ID,
		"mallard_run", mallardRun.ID,
		"queries", corpus.Len(),
	)

	ducklingScore, err := eval.Classify(ducklingPreds, corpus.Truth)
	if err != nil {
		return errors.Wrap(err, "score duckling")
	}
	mallardScore, err := eval.Classify(mallardPreds, corpus.Truth)
	if err != nil {
		return errors.Wrap(err, "score mallard")
	}

	// Queries Mallard resolves exactly that Duckling does not.
	regressions := eval.Regressions(mallardScore.Correct, ducklingScore.Incorrect)

	misses, err := eval.MissedEntities(mallardScore.Correct, ducklingScore.Incorrect,
		corpus.Truth, ducklingPreds, corpus.Labeled)
	if err != nil {
		return errors.Wrap(err, "collect missed entities")
	}
	confusions := eval.Confusions(misses)

	// Every span Duckling predicts must appear in Mallard's output;
	// ignored labels (amount-of-money, which Mallard never emits) are
	// skipped on Duckling's side.
	agree, disagree, err := eval.Agreement(mallardPreds, ducklingPreds, cfg.Eval.IgnoreLabels)
	if err != nil {
		return errors.Wrap(err, "cross-system agreement")
	}

	conflicts := eval.Conflicts(ducklingPreds)
	for idx, spans := range eval.Conflicts(mallardPreds) {
		if _, ok := conflicts[idx]; !ok {
			conflicts[idx] = spans
		}
	}

	summary := display.Summary{
		Queries: corpus.Len(),
		Systems: []display.SystemSummary{
			{System: "duckling", Correct: len(ducklingScore.Correct), Incorrect: len(ducklingScore.Incorrect)},
			{System: "mallard", Correct: len(mallardScore.Correct), Incorrect: len(mallardScore.Incorrect)},
		},
		Regressions:    len(regressions),
		MissedEntities: len(misses),
		Agree:          len(agree),
		Disagree:       len(disagree),
		Conflicts:      len(conflicts),
	}

	reportPath := evalReportPath
	if reportPath == "" {
		reportPath = cfg.Eval.MissedReportPath
	}
	if reportPath != "" && len(misses) > 0 {
		if err := writeMissedReport(reportPath, misses); err != nil {
			return err
		}
		pterm.Info.Printf("Wrote missed-entities report to %s", reportPath)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(evalResult{
			Summary:           summary,
			RegressionIndices: regressions,
			Confusions:        confusions,
			ConfusionTotals:   eval.ConfusionTotals(confusions),
		})
	}

	if err := display.RenderSummary(summary); err != nil {
		return err
	}
	pterm.Println()
	return display.RenderConfusions(confusions)
}

func writeMissedReport(path string, misses []eval.Miss) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer f.Close()

	if err := display.WriteMissedEntities(f, misses); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}
