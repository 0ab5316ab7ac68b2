package recognizer

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/ser"
)

// fakeRecognizer labels each query with its own text for easy assertions.
type fakeRecognizer struct {
	calls   atomic.Int64
	failOn  map[string]bool
	blockCh chan struct{}
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Parse(ctx context.Context, query string) (ser.Annotation, error) {
	f.calls.Add(1)
	if f.blockCh != nil {
		select {
		case <-f.blockCh:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failOn[query] {
		return nil, errors.Wrap(errors.ErrServiceUnavailable, query)
	}
	return ser.Annotation{{Start: 0, End: len(query), Label: query}}, nil
}

func TestFetchAll(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()

	t.Run("results are index aligned", func(t *testing.T) {
		queries := make([]string, 50)
		for i := range queries {
			queries[i] = fmt.Sprintf("query-%02d", i)
		}

		rec := &fakeRecognizer{}
		results, err := FetchAll(context.Background(), rec, queries, BatchConfig{Workers: 8}, logger)
		require.NoError(t, err)
		require.Len(t, results, len(queries))

		for i, a := range results {
			require.Len(t, a, 1)
			assert.Equal(t, queries[i], a[0].Label, "result %d misaligned", i)
		}
		assert.Equal(t, int64(len(queries)), rec.calls.Load())
	})

	t.Run("failed queries become empty annotations", func(t *testing.T) {
		queries := []string{"ok-1", "bad", "ok-2"}
		rec := &fakeRecognizer{failOn: map[string]bool{"bad": true}}

		results, err := FetchAll(context.Background(), rec, queries, DefaultBatchConfig(), logger)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.NotEmpty(t, results[0])
		assert.Empty(t, results[1])
		assert.NotEmpty(t, results[2])
	})

	t.Run("cancellation aborts the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		rec := &fakeRecognizer{blockCh: make(chan struct{})}

		queries := make([]string, 100)
		for i := range queries {
			queries[i] = fmt.Sprintf("q%d", i)
		}

		errCh := make(chan error, 1)
		go func() {
			_, err := FetchAll(ctx, rec, queries, BatchConfig{Workers: 2}, logger)
			errCh <- err
		}()

		cancel()
		err := <-errCh
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rate limited batch still completes", func(t *testing.T) {
		queries := []string{"a", "b", "c"}
		rec := &fakeRecognizer{}

		results, err := FetchAll(context.Background(), rec, queries,
			BatchConfig{Workers: 2, RequestsPerSecond: 1000}, logger)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("empty corpus", func(t *testing.T) {
		results, err := FetchAll(context.Background(), &fakeRecognizer{}, nil, DefaultBatchConfig(), logger)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
