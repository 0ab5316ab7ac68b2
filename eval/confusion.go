package eval

// MissingLabel stands in for a predicted label when the failing system
// produced fewer entities than expected.
const MissingLabel = "MISSING"

// Confusions tallies, across missed-entity reports, which label a
// system produced where a different one was expected. Expected labels
// are taken in ground-truth span order; predicted labels in
// first-appearance order, padded with MissingLabel when the system
// produced fewer entities than expected. Positions where the labels
// already match contribute nothing.
//
// The result maps expected label -> predicted label -> count.
func Confusions(misses []Miss) map[string]map[string]int {
	counts := make(map[string]map[string]int)
	for _, m := range misses {
		expected := m.Expected.Labels()
		actual := m.Predicted.UniqueLabels()

		for k, want := range expected {
			got := MissingLabel
			if k < len(actual) {
				got = actual[k]
			}
			if want == got {
				continue
			}
			if counts[want] == nil {
				counts[want] = make(map[string]int)
			}
			counts[want][got]++
		}
	}
	return counts
}

// ConfusionTotals sums each expected label's confusion counts.
func ConfusionTotals(confusions map[string]map[string]int) map[string]int {
	totals := make(map[string]int, len(confusions))
	for label, mistakes := range confusions {
		sum := 0
		for _, n := range mistakes {
			sum += n
		}
		totals[label] = sum
	}
	return totals
}
