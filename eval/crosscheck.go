package eval

import (
	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/ser"
)

// Agreement partitions queries by whether system A reproduced every
// span system B predicted, identically (same start, end, label). Spans
// whose label is in ignoreLabels are skipped on B's side; Mallard never
// emits amount-of-money, so callers skip it when B is Duckling.
//
// Agreement is directional: A may predict extra spans and still agree.
func Agreement(predsA, predsB []ser.Annotation, ignoreLabels []string) (agree, disagree []int, err error) {
	if len(predsA) != len(predsB) {
		return nil, nil, errors.NewAlignmentError("system B predictions", len(predsA), len(predsB))
	}

	ignore := make(map[string]struct{}, len(ignoreLabels))
	for _, l := range ignoreLabels {
		ignore[l] = struct{}{}
	}

	agree, disagree = []int{}, []int{}
	for i := range predsB {
		kept := make(ser.Annotation, 0, len(predsB[i]))
		for _, s := range predsB[i] {
			if _, skip := ignore[s.Label]; skip {
				continue
			}
			kept = append(kept, s)
		}

		if kept.SubsetOf(predsA[i]) {
			agree = append(agree, i)
		} else {
			disagree = append(disagree, i)
		}
	}
	return agree, disagree, nil
}

// Conflicts finds queries where a system predicted more than one entity
// for the same (start, end) region, e.g. "5" read as both a number and
// a time. The returned map is keyed by query index and carries the full
// conflicting annotation.
func Conflicts(preds []ser.Annotation) map[int]ser.Annotation {
	conflicts := make(map[int]ser.Annotation)
	for i, a := range preds {
		type region struct{ start, end int }
		seen := make(map[region]int, len(a))
		for _, s := range a {
			seen[region{s.Start, s.End}]++
		}
		for _, n := range seen {
			if n > 1 {
				conflicts[i] = a
				break
			}
		}
	}
	return conflicts
}
