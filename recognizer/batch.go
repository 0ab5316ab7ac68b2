package recognizer

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vijay120/duckling-1/ser"
)

// BatchConfig controls a batch fetch over the corpus.
type BatchConfig struct {
	Workers           int     `json:"workers"`             // Concurrent in-flight requests
	RequestsPerSecond float64 `json:"requests_per_second"` // 0 = unlimited
	ProgressEvery     int     `json:"progress_every"`      // Log progress every N queries
}

// DefaultBatchConfig returns sensible defaults for local recognizers.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Workers:           4,
		RequestsPerSecond: 0,
		ProgressEvery:     1000,
	}
}

// FetchAll runs the recognizer over every query and returns predictions
// index-aligned with the input. A query whose request fails is logged
// and recorded as an empty annotation so alignment with the corpus is
// never lost; only context cancellation aborts the batch.
func FetchAll(ctx context.Context, rec Recognizer, queries []string, cfg BatchConfig, logger *zap.SugaredLogger) ([]ser.Annotation, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 1000
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	results := make([]ser.Annotation, len(queries))
	jobs := make(chan int)

	var done, failed atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}

				spans, err := rec.Parse(ctx, queries[i])
				if err != nil {
					failed.Add(1)
					results[i] = ser.Annotation{}
					if logger != nil {
						logger.Errorw("Recognizer request failed",
							"system", rec.Name(),
							"query_idx", i,
							"error", err,
						)
					}
				} else {
					results[i] = spans
				}

				if n := done.Add(1); n%int64(cfg.ProgressEvery) == 0 && logger != nil {
					logger.Infow("Batch progress",
						"system", rec.Name(),
						"completed", n,
						"total", len(queries),
					)
				}
			}
		}()
	}

	dispatch := func() error {
		defer close(jobs)
		for i := range queries {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	err := dispatch()
	wg.Wait()
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Infow("Batch complete",
			"system", rec.Name(),
			"total", len(queries),
			"failed", failed.Load(),
		)
	}
	return results, nil
}
