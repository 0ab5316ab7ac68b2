package commands

import (
	"github.com/vijay120/duckling-1/am"
	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/logger"
	"github.com/vijay120/duckling-1/ser"
)

// loadCorpus reads the clean and labeled query files, preferring
// explicit path flags over am config.
func loadCorpus(cfg *am.Config, cleanPath, labeledPath string) (*ser.Corpus, error) {
	if cleanPath == "" {
		cleanPath = cfg.Corpus.CleanPath
	}
	if labeledPath == "" {
		labeledPath = cfg.Corpus.LabeledPath
	}

	corpus, err := ser.LoadCorpus(cleanPath, labeledPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load corpus (%s, %s)", cleanPath, labeledPath)
	}

	logger.Debugw("Loaded corpus",
		"clean", cleanPath,
		"labeled", labeledPath,
		"queries", corpus.Len(),
	)
	return corpus, nil
}
