// Package ser defines the data model for system-entity-recognition
// evaluation: labeled entity spans, per-query annotations, and the
// ground-truth corpus they are extracted from.
package ser

import (
	"fmt"
	"sort"

	"github.com/vijay120/duckling-1/errors"
)

// Span marks a labeled region of a query's text. Start and End are byte
// offsets into the clean query with Start < End. Label is the system
// entity dimension (e.g. "duration", "number") with no sys_ prefix.
//
// Spans are value types compared by structural equality only; there is
// no partial-overlap or fuzzy matching anywhere in the harness.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Validate fails with ErrMalformedSpan unless 0 <= Start < End.
func (s Span) Validate() error {
	if s.Start < 0 || s.Start >= s.End {
		return errors.Wrapf(errors.ErrMalformedSpan, "span (%d, %d, %q)", s.Start, s.End, s.Label)
	}
	return nil
}

func (s Span) String() string {
	return fmt.Sprintf("(%d, %d, %s)", s.Start, s.End, s.Label)
}

// Annotation is the ordered sequence of entity spans attached to one
// query: either its ground-truth labels or one recognizer's output.
// All comparisons treat it as a set of spans; order and duplicates are
// irrelevant to correctness.
type Annotation []Span

// Validate fails on the first malformed span.
func (a Annotation) Validate() error {
	for _, s := range a {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a Annotation) toSet() map[Span]struct{} {
	set := make(map[Span]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	return set
}

// EqualSet reports whether a and b contain exactly the same spans,
// viewed as sets. Two empty annotations are equal.
func (a Annotation) EqualSet(b Annotation) bool {
	as, bs := a.toSet(), b.toSet()
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if _, ok := bs[s]; !ok {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every span in a also appears in b.
func (a Annotation) SubsetOf(b Annotation) bool {
	bs := b.toSet()
	for s := range a.toSet() {
		if _, ok := bs[s]; !ok {
			return false
		}
	}
	return true
}

// StrictSubsetOf reports whether a is a proper subset of b: everything
// a predicted is right, but at least one expected span is missing.
// This is what separates "completely missed an entity" from "got a
// span wrong".
func (a Annotation) StrictSubsetOf(b Annotation) bool {
	as, bs := a.toSet(), b.toSet()
	if len(as) >= len(bs) {
		return false
	}
	for s := range as {
		if _, ok := bs[s]; !ok {
			return false
		}
	}
	return true
}

// Labels returns every span label in annotation order, repeats included.
func (a Annotation) Labels() []string {
	labels := make([]string, len(a))
	for i, s := range a {
		labels[i] = s.Label
	}
	return labels
}

// UniqueLabels returns the distinct labels in first-appearance order.
func (a Annotation) UniqueLabels() []string {
	seen := make(map[string]struct{}, len(a))
	var labels []string
	for _, s := range a {
		if _, ok := seen[s.Label]; ok {
			continue
		}
		seen[s.Label] = struct{}{}
		labels = append(labels, s.Label)
	}
	return labels
}

// Sorted returns a copy ordered by (Start, End, Label) for deterministic
// display. The receiver is not modified.
func (a Annotation) Sorted() Annotation {
	out := make(Annotation, len(a))
	copy(out, a)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].Label < out[j].Label
	})
	return out
}
