package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/ser"
)

func TestAgreement(t *testing.T) {
	t.Run("identical predictions agree", func(t *testing.T) {
		preds := []ser.Annotation{
			{{Start: 0, End: 2, Label: "number"}},
		}
		agree, disagree, err := Agreement(preds, preds, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, agree)
		assert.Empty(t, disagree)
	})

	t.Run("A may predict extra spans and still agree", func(t *testing.T) {
		predsA := []ser.Annotation{
			{
				{Start: 0, End: 2, Label: "number"},
				{Start: 5, End: 9, Label: "time"},
			},
		}
		predsB := []ser.Annotation{
			{{Start: 0, End: 2, Label: "number"}},
		}
		agree, _, err := Agreement(predsA, predsB, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, agree)
	})

	t.Run("span only in B disagrees", func(t *testing.T) {
		predsA := []ser.Annotation{{}}
		predsB := []ser.Annotation{
			{{Start: 0, End: 2, Label: "number"}},
		}
		_, disagree, err := Agreement(predsA, predsB, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, disagree)
	})

	t.Run("ignored labels are skipped", func(t *testing.T) {
		predsA := []ser.Annotation{{}}
		predsB := []ser.Annotation{
			{{Start: 0, End: 3, Label: "amount-of-money"}},
		}
		agree, _, err := Agreement(predsA, predsB, []string{"amount-of-money"})
		require.NoError(t, err)
		assert.Equal(t, []int{0}, agree)
	})

	t.Run("mismatched lengths raise alignment error", func(t *testing.T) {
		_, _, err := Agreement(make([]ser.Annotation, 2), make([]ser.Annotation, 3), nil)
		assert.True(t, errors.IsAlignmentError(err))
	})
}

// Duckling is the subset side of the cross-system check: every span it
// predicts must appear in Mallard's output, with amount-of-money
// skipped on Duckling's side since Mallard never emits it.
func TestAgreementDucklingAgainstMallard(t *testing.T) {
	t.Run("duckling-only span disagrees", func(t *testing.T) {
		duckling := []ser.Annotation{
			{{Start: 0, End: 4, Label: "time"}},
		}
		mallard := []ser.Annotation{{}}

		agree, disagree, err := Agreement(mallard, duckling, []string{"amount-of-money"})
		require.NoError(t, err)
		assert.Empty(t, agree)
		assert.Equal(t, []int{0}, disagree)
	})

	t.Run("duckling amount-of-money-only span agrees via ignore list", func(t *testing.T) {
		duckling := []ser.Annotation{
			{{Start: 0, End: 3, Label: "amount-of-money"}},
		}
		mallard := []ser.Annotation{{}}

		agree, disagree, err := Agreement(mallard, duckling, []string{"amount-of-money"})
		require.NoError(t, err)
		assert.Equal(t, []int{0}, agree)
		assert.Empty(t, disagree)
	})

	t.Run("mallard-only span still agrees", func(t *testing.T) {
		duckling := []ser.Annotation{{}}
		mallard := []ser.Annotation{
			{{Start: 5, End: 9, Label: "duration"}},
		}

		agree, _, err := Agreement(mallard, duckling, []string{"amount-of-money"})
		require.NoError(t, err)
		assert.Equal(t, []int{0}, agree)
	})
}

func TestConflicts(t *testing.T) {
	t.Run("same region under two labels conflicts", func(t *testing.T) {
		preds := []ser.Annotation{
			{
				{Start: 4, End: 5, Label: "number"},
				{Start: 4, End: 5, Label: "time"},
			},
			{
				{Start: 0, End: 2, Label: "number"},
			},
		}

		conflicts := Conflicts(preds)
		require.Len(t, conflicts, 1)
		assert.Equal(t, preds[0], conflicts[0])
	})

	t.Run("no conflicts on distinct regions", func(t *testing.T) {
		preds := []ser.Annotation{
			{
				{Start: 0, End: 2, Label: "number"},
				{Start: 3, End: 5, Label: "number"},
			},
		}
		assert.Empty(t, Conflicts(preds))
	})
}

func TestConfusions(t *testing.T) {
	misses := []Miss{
		{
			Expected:  ser.Annotation{{Start: 0, End: 2, Label: "duration"}},
			Predicted: ser.Annotation{},
		},
		{
			Expected:  ser.Annotation{{Start: 0, End: 2, Label: "duration"}},
			Predicted: ser.Annotation{{Start: 0, End: 2, Label: "number"}},
		},
		{
			Expected: ser.Annotation{
				{Start: 0, End: 2, Label: "number"},
				{Start: 4, End: 6, Label: "duration"},
			},
			Predicted: ser.Annotation{{Start: 0, End: 2, Label: "number"}},
		},
	}

	confusions := Confusions(misses)

	// duration confused with MISSING twice (miss 1 and the padded
	// position in miss 3) and with number once.
	require.Contains(t, confusions, "duration")
	assert.Equal(t, 2, confusions["duration"][MissingLabel])
	assert.Equal(t, 1, confusions["duration"]["number"])

	// number matched in miss 3, so it never appears.
	assert.NotContains(t, confusions, "number")

	totals := ConfusionTotals(confusions)
	assert.Equal(t, 3, totals["duration"])
}
