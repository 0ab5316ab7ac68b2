package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/vijay120/duckling-1/eval"
)

// SystemSummary is one recognizer's scorecard against ground truth.
type SystemSummary struct {
	System    string `json:"system"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// Accuracy returns the fraction of exactly-correct queries.
func (s SystemSummary) Accuracy() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}

// Summary aggregates one full evaluation for display.
type Summary struct {
	Queries        int             `json:"queries"`
	Systems        []SystemSummary `json:"systems"`
	Regressions    int             `json:"regressions"`
	MissedEntities int             `json:"missed_entities"`
	Agree          int             `json:"agree"`
	Disagree       int             `json:"disagree"`
	Conflicts      int             `json:"conflicts"`
}

// RenderSummary prints the evaluation scorecard.
func RenderSummary(s Summary) error {
	pterm.DefaultHeader.WithFullWidth().Printf("SER Evaluation - %d queries", s.Queries)
	pterm.Println()

	table := pterm.TableData{{"System", "Correct", "Incorrect", "Accuracy"}}
	for _, sys := range s.Systems {
		table = append(table, []string{
			sys.System,
			strconv.Itoa(sys.Correct),
			strconv.Itoa(sys.Incorrect),
			fmt.Sprintf("%.1f%%", sys.Accuracy()*100),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		return err
	}

	pterm.Println()
	pterm.Info.Printf("Regressions: %d", s.Regressions)
	pterm.Info.Printf("Missed entities: %d", s.MissedEntities)
	pterm.Info.Printf("Cross-system agreement: %d agree / %d disagree", s.Agree, s.Disagree)
	if s.Conflicts > 0 {
		pterm.Warning.Printf("Same-span conflicts: %d", s.Conflicts)
	}
	return nil
}

// WriteMissedEntities writes the missed-entities inspection report, one
// block per query, in the historical analysis format.
func WriteMissedEntities(w io.Writer, misses []eval.Miss) error {
	for _, m := range misses {
		if _, err := fmt.Fprintf(w, "Index: %d\n", m.Index); err != nil {
			return err
		}
		fmt.Fprintf(w, "Query: %s\n", m.Query)
		fmt.Fprintf(w, "Expected Sys Entities: %s\n", strings.Join(m.Expected.Labels(), ", "))
		fmt.Fprintf(w, "Actual Sys Entities: %s\n", strings.Join(m.Predicted.UniqueLabels(), ", "))
		fmt.Fprintln(w)
	}
	return nil
}

// RenderConfusions prints which labels a system produced in place of
// the expected ones, most frequent first.
func RenderConfusions(confusions map[string]map[string]int) error {
	if len(confusions) == 0 {
		pterm.Info.Printf("No label confusions")
		return nil
	}

	type row struct {
		expected, predicted string
		count               int
	}
	var rows []row
	for want, mistakes := range confusions {
		for got, n := range mistakes {
			rows = append(rows, row{want, got, n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		if rows[i].expected != rows[j].expected {
			return rows[i].expected < rows[j].expected
		}
		return rows[i].predicted < rows[j].predicted
	})

	table := pterm.TableData{{"Expected", "Predicted", "Count"}}
	for _, r := range rows {
		table = append(table, []string{r.expected, r.predicted, strconv.Itoa(r.count)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		return err
	}

	totals := eval.ConfusionTotals(confusions)
	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if totals[labels[i]] != totals[labels[j]] {
			return totals[labels[i]] > totals[labels[j]]
		}
		return labels[i] < labels[j]
	})
	for _, label := range labels {
		pterm.Info.Printf("%s mislabeled %d times", label, totals[label])
	}
	return nil
}
