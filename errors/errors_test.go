package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestIs(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")
	wrapped := Wrap(err1, "wrapped")

	assert.True(t, Is(wrapped, err1))
	assert.False(t, Is(wrapped, err2))
	assert.False(t, Is(nil, err1))
}

func TestSentinelErrors(t *testing.T) {
	t.Run("alignment error survives wrapping", func(t *testing.T) {
		err := NewAlignmentError("mallard predictions", 10, 9)
		assert.True(t, IsAlignmentError(err))
		assert.Contains(t, err.Error(), "expected 10 queries, got 9")

		rewrapped := Wrap(err, "loading run")
		assert.True(t, IsAlignmentError(rewrapped))
	})

	t.Run("malformed span error", func(t *testing.T) {
		err := Wrapf(ErrMalformedSpan, "span (%d, %d)", 7, 3)
		assert.True(t, IsMalformedSpanError(err))
		assert.False(t, IsAlignmentError(err))
	})

	t.Run("not found error", func(t *testing.T) {
		err := NewNotFoundError("run %s", "abc123")
		assert.True(t, IsNotFoundError(err))
		assert.Contains(t, err.Error(), "abc123")
	})

	t.Run("nil is never a sentinel", func(t *testing.T) {
		assert.False(t, IsAlignmentError(nil))
		assert.False(t, IsMalformedSpanError(nil))
		assert.False(t, IsNotFoundError(nil))
	})
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "check that both recognizers ran over the same corpus")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "check that both recognizers ran over the same corpus", hints[0])
}
