// Package recognizer wraps the two external system-entity recognizers,
// Duckling and Mallard, behind a common interface. Both are opaque HTTP
// services; this package only speaks their /parse wire formats and
// reduces each response to the (start, end, label) span contract the
// evaluator consumes. Neither recognizer is reimplemented here.
package recognizer

import (
	"context"

	"github.com/vijay120/duckling-1/ser"
)

// Recognizer is a single external entity-recognition system.
type Recognizer interface {
	// Name identifies the system ("duckling", "mallard") for runs,
	// logs, and reports.
	Name() string

	// Parse submits one clean query and returns the predicted spans.
	Parse(ctx context.Context, query string) (ser.Annotation, error)
}
