package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vijay120/duckling-1/am"
	"github.com/vijay120/duckling-1/db"
	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/logger"
	"github.com/vijay120/duckling-1/recognizer"
)

var (
	fetchSystem  string
	fetchDBPath  string
	fetchClean   string
	fetchLabeled string
)

// FetchCmd runs recognizers over the corpus and caches their predictions
var FetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run recognizers over the corpus and cache predictions",
	Long: `Send every corpus query to the selected recognizer(s) and cache the
predicted entity spans as a run in the SQLite database.

Each fetch produces a new run; eval scores the latest run per system
unless told otherwise.

Examples:
  sereval fetch                      # Fetch from both systems
  sereval fetch --system duckling    # Fetch from Duckling only
  sereval fetch --clean q_clean.txt --labeled q.txt`,
	RunE: runFetch,
}

func init() {
	FetchCmd.Flags().StringVar(&fetchSystem, "system", "both", "Recognizer to fetch: duckling, mallard, or both")
	FetchCmd.Flags().StringVar(&fetchDBPath, "db", "", "Database path (defaults to config)")
	FetchCmd.Flags().StringVar(&fetchClean, "clean", "", "Clean corpus path (defaults to config)")
	FetchCmd.Flags().StringVar(&fetchLabeled, "labeled", "", "Labeled corpus path (defaults to config)")
}

// fetchTarget pairs a recognizer with the endpoint recorded on its runs.
type fetchTarget struct {
	rec      recognizer.Recognizer
	endpoint string
}

func selectTargets(cfg *am.Config, system string) ([]fetchTarget, error) {
	duckling := fetchTarget{
		rec:      recognizer.NewDuckling(cfg.Duckling.Endpoint, cfg.DucklingTimeout(), logger.Logger),
		endpoint: cfg.Duckling.Endpoint,
	}
	mallard := fetchTarget{
		rec:      recognizer.NewMallard(cfg.Mallard.Endpoint, cfg.Mallard.Language, cfg.MallardTimeout(), logger.Logger),
		endpoint: cfg.Mallard.Endpoint,
	}

	switch system {
	case "duckling":
		return []fetchTarget{duckling}, nil
	case "mallard":
		return []fetchTarget{mallard}, nil
	case "both":
		return []fetchTarget{duckling, mallard}, nil
	default:
		return nil, errors.Newf("unknown system %q (expected duckling, mallard, or both)", system)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	corpus, err := loadCorpus(cfg, fetchClean, fetchLabeled)
	if err != nil {
		return err
	}

	targets, err := selectTargets(cfg, fetchSystem)
	if err != nil {
		return err
	}

	database, err := openDatabase(fetchDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	store := db.NewRunStore(database, logger.Logger)
	batchCfg := recognizer.BatchConfig{
		Workers:           cfg.Fetch.Workers,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		ProgressEvery:     cfg.Fetch.ProgressEvery,
	}

	ctx := cmd.Context()
	for _, target := range targets {
		pterm.Info.Printf("Fetching %d queries from %s (%s)", corpus.Len(), target.rec.Name(), target.endpoint)

		preds, err := recognizer.FetchAll(ctx, target.rec, corpus.Clean, batchCfg, logger.Logger)
		if err != nil {
			return errors.Wrapf(err, "fetch from %s", target.rec.Name())
		}

		runID, err := store.SaveRun(target.rec.Name(), target.endpoint, preds)
		if err != nil {
			return errors.Wrapf(err, "save %s run", target.rec.Name())
		}
		pterm.Success.Printf("Cached %s run %s (%d queries)", target.rec.Name(), runID, len(preds))
	}
	return nil
}
