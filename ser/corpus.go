package ser

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/vijay120/duckling-1/errors"
)

// Corpus holds the index-aligned evaluation inputs: the clean query
// text, the markup-labeled variant of each query, and the ground-truth
// spans extracted from that markup. Index i in every slice refers to
// the same query. The corpus is loaded once and read-only thereafter.
type Corpus struct {
	Clean   []string
	Labeled []string
	Truth   []Annotation
}

// Len returns the number of queries in the corpus.
func (c *Corpus) Len() int {
	return len(c.Clean)
}

// Markup entities look like {five minutes|sys_duration} or, with a
// role, {five minutes|sys_duration|dest}. Only sys_ entities are
// ground truth; labels without whitespace.
var markupPattern = regexp.MustCompile(`\{([^{|]+)\|(sys_[^\s}]*)\}`)

// cleanLabel strips the sys_ prefix and any |role suffix from a raw
// markup label: "sys_duration|dest" -> "duration".
func cleanLabel(raw string) string {
	label := raw[len("sys_"):]
	if cut, _, found := strings.Cut(label, "|"); found {
		return cut
	}
	return label
}

// ExtractSpans derives the ground-truth annotation for each query from
// its labeled markup. Span offsets are located by searching the clean
// query left to right, advancing past each match so repeated surface
// forms ("5 ... 5") get distinct spans.
func ExtractSpans(clean, labeled []string) ([]Annotation, error) {
	if len(clean) != len(labeled) {
		return nil, errors.NewAlignmentError("labeled corpus", len(clean), len(labeled))
	}

	truth := make([]Annotation, len(clean))
	for i := range clean {
		spans, err := extractQuerySpans(clean[i], labeled[i])
		if err != nil {
			return nil, errors.Wrapf(err, "query %d", i)
		}
		truth[i] = spans
	}
	return truth, nil
}

func extractQuerySpans(cleanQuery, labeledQuery string) (Annotation, error) {
	matches := markupPattern.FindAllStringSubmatch(labeledQuery, -1)
	if len(matches) == 0 {
		return Annotation{}, nil
	}

	spans := make(Annotation, 0, len(matches))
	searchFrom := 0
	for _, m := range matches {
		surface, label := m[1], cleanLabel(m[2])

		offset := strings.Index(cleanQuery[searchFrom:], surface)
		if offset < 0 {
			return nil, errors.Newf("entity %q not found in clean query %q", surface, cleanQuery)
		}

		start := searchFrom + offset
		end := start + len(surface)
		span := Span{Start: start, End: end, Label: label}
		if err := span.Validate(); err != nil {
			return nil, err
		}
		spans = append(spans, span)

		searchFrom = end
	}
	return spans, nil
}

// LoadCorpus reads the clean and labeled query files (one query per
// line, whitespace-trimmed), checks alignment, and extracts the
// ground-truth spans.
func LoadCorpus(cleanPath, labeledPath string) (*Corpus, error) {
	clean, err := readLines(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "read clean queries")
	}
	labeled, err := readLines(labeledPath)
	if err != nil {
		return nil, errors.Wrap(err, "read labeled queries")
	}

	truth, err := ExtractSpans(clean, labeled)
	if err != nil {
		return nil, errors.Wrap(err, "extract ground-truth spans")
	}

	return &Corpus{Clean: clean, Labeled: labeled, Truth: truth}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}
	return lines, nil
}
