package ser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay120/duckling-1/errors"
)

func TestSpanValidate(t *testing.T) {
	tests := []struct {
		name    string
		span    Span
		wantErr bool
	}{
		{"valid span", Span{Start: 11, End: 13, Label: "duration_unit"}, false},
		{"single byte span", Span{Start: 0, End: 1, Label: "number"}, false},
		{"start equals end", Span{Start: 5, End: 5, Label: "number"}, true},
		{"start after end", Span{Start: 7, End: 3, Label: "number"}, true},
		{"negative start", Span{Start: -1, End: 3, Label: "number"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.span.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsMalformedSpanError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnnotationEqualSet(t *testing.T) {
	truth := Annotation{
		{Start: 11, End: 13, Label: "duration_unit"},
		{Start: 14, End: 21, Label: "duration"},
	}

	t.Run("identical spans are equal", func(t *testing.T) {
		pred := Annotation{
			{Start: 11, End: 13, Label: "duration_unit"},
			{Start: 14, End: 21, Label: "duration"},
		}
		assert.True(t, pred.EqualSet(truth))
	})

	t.Run("order is irrelevant", func(t *testing.T) {
		pred := Annotation{
			{Start: 14, End: 21, Label: "duration"},
			{Start: 11, End: 13, Label: "duration_unit"},
		}
		assert.True(t, pred.EqualSet(truth))
	})

	t.Run("duplicates are irrelevant", func(t *testing.T) {
		pred := Annotation{
			{Start: 11, End: 13, Label: "duration_unit"},
			{Start: 11, End: 13, Label: "duration_unit"},
			{Start: 14, End: 21, Label: "duration"},
		}
		assert.True(t, pred.EqualSet(truth))
	})

	t.Run("missing span is unequal", func(t *testing.T) {
		pred := Annotation{{Start: 14, End: 21, Label: "duration"}}
		assert.False(t, pred.EqualSet(truth))
	})

	t.Run("different label is unequal", func(t *testing.T) {
		pred := Annotation{
			{Start: 11, End: 13, Label: "number"},
			{Start: 14, End: 21, Label: "duration"},
		}
		assert.False(t, pred.EqualSet(truth))
	})

	t.Run("both empty are equal", func(t *testing.T) {
		assert.True(t, Annotation{}.EqualSet(Annotation{}))
		assert.True(t, Annotation(nil).EqualSet(Annotation{}))
	})

	t.Run("spurious prediction on empty truth is unequal", func(t *testing.T) {
		pred := Annotation{{Start: 0, End: 3, Label: "greeting"}}
		assert.False(t, pred.EqualSet(Annotation{}))
	})
}

func TestAnnotationStrictSubsetOf(t *testing.T) {
	truth := Annotation{
		{Start: 11, End: 13, Label: "duration_unit"},
		{Start: 14, End: 21, Label: "duration"},
	}

	t.Run("partial correct prediction is strict subset", func(t *testing.T) {
		pred := Annotation{{Start: 14, End: 21, Label: "duration"}}
		assert.True(t, pred.StrictSubsetOf(truth))
	})

	t.Run("empty prediction is strict subset of non-empty truth", func(t *testing.T) {
		assert.True(t, Annotation{}.StrictSubsetOf(truth))
	})

	t.Run("equal sets are not strict subsets", func(t *testing.T) {
		assert.False(t, truth.StrictSubsetOf(truth))
	})

	t.Run("mislabeled span is not a subset", func(t *testing.T) {
		pred := Annotation{{Start: 14, End: 21, Label: "number"}}
		assert.False(t, pred.StrictSubsetOf(truth))
	})
}

func TestAnnotationLabels(t *testing.T) {
	a := Annotation{
		{Start: 0, End: 1, Label: "number"},
		{Start: 2, End: 3, Label: "duration"},
		{Start: 4, End: 5, Label: "number"},
	}

	assert.Equal(t, []string{"number", "duration", "number"}, a.Labels())
	assert.Equal(t, []string{"number", "duration"}, a.UniqueLabels())
}

func TestAnnotationSorted(t *testing.T) {
	a := Annotation{
		{Start: 14, End: 21, Label: "duration"},
		{Start: 11, End: 13, Label: "duration_unit"},
	}

	sorted := a.Sorted()
	assert.Equal(t, 11, sorted[0].Start)
	// Receiver untouched
	assert.Equal(t, 14, a[0].Start)
}
