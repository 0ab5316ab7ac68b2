// Package eval classifies per-query recognizer output against ground
// truth and derives cross-system diagnostics: regressions, missed
// entities, agreement, span conflicts, and label confusions.
//
// Every function here is a pure computation over index-aligned
// sequences. Nothing is mutated, no I/O happens, and misaligned inputs
// fail immediately with errors.ErrAlignment rather than being zipped
// short.
package eval

import (
	"sort"

	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/ser"
)

// Classification partitions query indices by outcome for one system.
// Correct and Incorrect are disjoint, ascending, and together cover
// every index in {0..N-1}.
type Classification struct {
	Correct   []int `json:"correct"`
	Incorrect []int `json:"incorrect"`
}

// Total returns the number of classified queries.
func (c *Classification) Total() int {
	return len(c.Correct) + len(c.Incorrect)
}

// Classify declares query i correct iff the predicted span set at i
// equals the ground-truth span set at i exactly: same cardinality,
// identical (start, end, label) triples under set equality. A query
// with no expected entities is correct only when nothing was predicted.
func Classify(preds, truth []ser.Annotation) (*Classification, error) {
	if len(preds) != len(truth) {
		return nil, errors.NewAlignmentError("predictions", len(truth), len(preds))
	}

	result := &Classification{
		Correct:   []int{},
		Incorrect: []int{},
	}
	for i := range truth {
		if preds[i].EqualSet(truth[i]) {
			result.Correct = append(result.Correct, i)
		} else {
			result.Incorrect = append(result.Incorrect, i)
		}
	}
	return result, nil
}

// Regressions returns the queries system A gets wrong while system B
// gets exactly right: the intersection of B's correct indices and A's
// incorrect indices, in ascending order regardless of input ordering.
func Regressions(correctB, incorrectA []int) []int {
	inB := make(map[int]struct{}, len(correctB))
	for _, i := range correctB {
		inB[i] = struct{}{}
	}

	out := []int{}
	seen := make(map[int]struct{}, len(incorrectA))
	for _, i := range incorrectA {
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		if _, ok := inB[i]; ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// Miss records one regression where the failing system's output was an
// omission rather than a mislabeling, kept alongside the original query
// text for manual inspection.
type Miss struct {
	Index     int            `json:"index"`
	Query     string         `json:"query"`
	Expected  ser.Annotation `json:"expected"`
	Predicted ser.Annotation `json:"predicted"`
}

// MissedEntities filters Regressions(correctB, incorrectA) down to the
// queries where system A's predicted set is a strict subset of ground
// truth: A found some entities correctly but completely missed at least
// one, rather than getting a span wrong.
func MissedEntities(correctB, incorrectA []int, truth, predsA []ser.Annotation, queries []string) ([]Miss, error) {
	if len(predsA) != len(truth) {
		return nil, errors.NewAlignmentError("predictions", len(truth), len(predsA))
	}
	if len(queries) != len(truth) {
		return nil, errors.NewAlignmentError("queries", len(truth), len(queries))
	}

	misses := []Miss{}
	for _, i := range Regressions(correctB, incorrectA) {
		if i < 0 || i >= len(truth) {
			return nil, errors.Newf("regression index %d out of range [0, %d)", i, len(truth))
		}
		if !predsA[i].StrictSubsetOf(truth[i]) {
			continue
		}
		misses = append(misses, Miss{
			Index:     i,
			Query:     queries[i],
			Expected:  truth[i],
			Predicted: predsA[i],
		})
	}
	return misses, nil
}
