package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/ser"
)

// Run describes one cached recognizer pass over the corpus.
type Run struct {
	ID         string    `json:"id"`
	System     string    `json:"system"`
	Endpoint   string    `json:"endpoint"`
	QueryCount int       `json:"query_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Query constants
const (
	runInsertQuery = `
		INSERT INTO runs (id, system, endpoint, query_count, created_at)
		VALUES (?, ?, ?, ?, ?)`

	predictionInsertQuery = `
		INSERT INTO predictions (run_id, query_idx, spans)
		VALUES (?, ?, ?)`

	runSelectQuery = `
		SELECT id, system, endpoint, query_count, created_at
		FROM runs WHERE id = ?`

	runLatestQuery = `
		SELECT id, system, endpoint, query_count, created_at
		FROM runs WHERE system = ?
		ORDER BY created_at DESC, id LIMIT 1`

	runListQuery = `
		SELECT id, system, endpoint, query_count, created_at
		FROM runs ORDER BY created_at DESC`

	predictionSelectQuery = `
		SELECT query_idx, spans FROM predictions
		WHERE run_id = ? ORDER BY query_idx`
)

// RunStore persists recognizer runs and their per-query predictions.
type RunStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewRunStore creates a run store backed by an open database.
func NewRunStore(database *sql.DB, logger *zap.SugaredLogger) *RunStore {
	return &RunStore{
		db:     database,
		logger: logger,
	}
}

// SaveRun stores one recognizer pass atomically and returns its id.
// Predictions are written per query index so later loads reproduce the
// exact corpus alignment.
func (s *RunStore) SaveRun(system, endpoint string, preds []ser.Annotation) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", errors.Wrap(err, "begin run tx")
	}

	if _, err := tx.Exec(runInsertQuery, runID, system, endpoint, len(preds), time.Now().UTC()); err != nil {
		tx.Rollback()
		return "", errors.Wrap(err, "insert run")
	}

	for i, spans := range preds {
		if spans == nil {
			spans = ser.Annotation{}
		}
		spansJSON, err := json.Marshal(spans)
		if err != nil {
			tx.Rollback()
			return "", errors.Wrapf(err, "marshal spans for query %d", i)
		}
		if _, err := tx.Exec(predictionInsertQuery, runID, i, string(spansJSON)); err != nil {
			tx.Rollback()
			return "", errors.Wrapf(err, "insert prediction %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit run")
	}

	if s.logger != nil {
		s.logger.Infow("Saved recognizer run",
			"run_id", runID,
			"system", system,
			"queries", len(preds),
		)
	}
	return runID, nil
}

// GetRun returns a run's metadata.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	var run Run
	err := s.db.QueryRow(runSelectQuery, runID).Scan(
		&run.ID, &run.System, &run.Endpoint, &run.QueryCount, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("run %s", runID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "select run")
	}
	return &run, nil
}

// LatestRun returns the most recent run for a system.
func (s *RunStore) LatestRun(system string) (*Run, error) {
	var run Run
	err := s.db.QueryRow(runLatestQuery, system).Scan(
		&run.ID, &run.System, &run.Endpoint, &run.QueryCount, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("no runs for system %q", system)
	}
	if err != nil {
		return nil, errors.Wrap(err, "select latest run")
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *RunStore) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(runListQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.System, &run.Endpoint, &run.QueryCount, &run.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}

// LoadPredictions returns a run's predictions, index-aligned with the
// corpus the run was fetched over. A row count that disagrees with the
// recorded query_count fails with an alignment error rather than
// returning a silently short slice.
func (s *RunStore) LoadPredictions(runID string) ([]ser.Annotation, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(predictionSelectQuery, runID)
	if err != nil {
		return nil, errors.Wrap(err, "select predictions")
	}
	defer rows.Close()

	preds := make([]ser.Annotation, run.QueryCount)
	seen := 0
	for rows.Next() {
		var idx int
		var spansJSON string
		if err := rows.Scan(&idx, &spansJSON); err != nil {
			return nil, errors.Wrap(err, "scan prediction")
		}
		if idx < 0 || idx >= run.QueryCount {
			return nil, errors.Newf("prediction index %d out of range for run %s (%d queries)",
				idx, runID, run.QueryCount)
		}

		var spans ser.Annotation
		if err := json.Unmarshal([]byte(spansJSON), &spans); err != nil {
			return nil, errors.Wrapf(err, "decode spans for query %d", idx)
		}
		if err := spans.Validate(); err != nil {
			return nil, errors.Wrapf(err, "stored spans for query %d", idx)
		}
		if spans == nil {
			spans = ser.Annotation{}
		}
		preds[idx] = spans
		seen++
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate predictions")
	}

	if seen != run.QueryCount {
		return nil, errors.NewAlignmentError("run "+runID, run.QueryCount, seen)
	}
	return preds, nil
}
