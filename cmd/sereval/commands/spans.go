package commands

import (
	"sort"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vijay120/duckling-1/am"
	"github.com/vijay120/duckling-1/display"
	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/ser"
)

var (
	spansClean   string
	spansLabeled string
	spansIndex   int
)

// SpansCmd extracts and inspects ground-truth spans
var SpansCmd = &cobra.Command{
	Use:   "spans",
	Short: "Extract and inspect ground-truth spans",
	Long: `Extract ground-truth entity spans from the labeled corpus markup and
inspect them.

Without flags, prints per-label span counts across the whole corpus.
With --index, shows the spans for one query.

Examples:
  sereval spans              # Label distribution over the corpus
  sereval spans --index 42   # Spans for query 42`,
	RunE: runSpans,
}

func init() {
	SpansCmd.Flags().StringVar(&spansClean, "clean", "", "Clean corpus path (defaults to config)")
	SpansCmd.Flags().StringVar(&spansLabeled, "labeled", "", "Labeled corpus path (defaults to config)")
	SpansCmd.Flags().IntVar(&spansIndex, "index", -1, "Show spans for a single query index")
}

func runSpans(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	corpus, err := loadCorpus(cfg, spansClean, spansLabeled)
	if err != nil {
		return err
	}

	if spansIndex >= 0 {
		return showQuerySpans(cmd, corpus, spansIndex)
	}
	return showLabelCounts(cmd, corpus)
}

func showQuerySpans(cmd *cobra.Command, corpus *ser.Corpus, idx int) error {
	if idx >= corpus.Len() {
		return errors.Newf("index %d out of range (%d queries)", idx, corpus.Len())
	}

	spans := corpus.Truth[idx]
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(struct {
			Index   int            `json:"index"`
			Query   string         `json:"query"`
			Labeled string         `json:"labeled"`
			Spans   ser.Annotation `json:"spans"`
		}{idx, corpus.Clean[idx], corpus.Labeled[idx], spans})
	}

	pterm.Info.Printf("Query %d: %s", idx, corpus.Clean[idx])
	pterm.Info.Printf("Labeled: %s", corpus.Labeled[idx])

	table := pterm.TableData{{"Start", "End", "Label", "Text"}}
	for _, span := range spans {
		table = append(table, []string{
			strconv.Itoa(span.Start),
			strconv.Itoa(span.End),
			span.Label,
			corpus.Clean[idx][span.Start:span.End],
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

func showLabelCounts(cmd *cobra.Command, corpus *ser.Corpus) error {
	counts := make(map[string]int)
	total := 0
	for _, spans := range corpus.Truth {
		for _, span := range spans {
			counts[span.Label]++
			total++
		}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(struct {
			Queries int            `json:"queries"`
			Spans   int            `json:"spans"`
			Labels  map[string]int `json:"labels"`
		}{corpus.Len(), total, counts})
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	pterm.Info.Printf("%d ground-truth spans across %d queries", total, corpus.Len())
	table := pterm.TableData{{"Label", "Count"}}
	for _, label := range labels {
		table = append(table, []string{label, strconv.Itoa(counts[label])})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}
