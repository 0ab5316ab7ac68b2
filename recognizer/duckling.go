package recognizer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/internal/httpclient"
	"github.com/vijay120/duckling-1/ser"
)

// Duckling calls a Duckling /parse endpoint. Requests are form-encoded;
// the response is a JSON array of entities keyed by "dim".
type Duckling struct {
	endpoint string
	client   *httpclient.Client
	logger   *zap.SugaredLogger
}

// NewDuckling creates a Duckling client for the given /parse endpoint.
func NewDuckling(endpoint string, timeout time.Duration, logger *zap.SugaredLogger) *Duckling {
	return &Duckling{
		endpoint: endpoint,
		client:   httpclient.NewLocal(timeout),
		logger:   logger,
	}
}

func (d *Duckling) Name() string { return "duckling" }

// ducklingEntity is one element of Duckling's response array.
type ducklingEntity struct {
	Dim   string          `json:"dim"`
	Start int             `json:"start"`
	End   int             `json:"end"`
	Value ducklingValue   `json:"value"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// ducklingValue distinguishes single values from intervals. The time,
// temperature, and amount-of-money dims carry a "type" discriminator;
// everything else has a bare "value".
type ducklingValue struct {
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	From  json.RawMessage `json:"from,omitempty"`
	To    json.RawMessage `json:"to,omitempty"`
}

// Parse submits one query and reduces the response to predicted spans.
func (d *Duckling) Parse(ctx context.Context, query string) (ser.Annotation, error) {
	form := url.Values{}
	form.Set("text", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "build duckling request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrServiceUnavailable, "duckling at %s: %v", d.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read duckling response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("duckling returned %d: %s", resp.StatusCode, string(body))
	}

	var entities []ducklingEntity
	if err := json.Unmarshal(body, &entities); err != nil {
		return nil, errors.Wrap(err, "decode duckling response")
	}

	spans := make(ser.Annotation, 0, len(entities))
	for _, e := range entities {
		d.checkValueShape(e, query)
		spans = append(spans, ser.Span{Start: e.Start, End: e.End, Label: e.Dim})
	}
	return spans, nil
}

// checkValueShape flags value payloads outside the known value/interval
// shapes. Only the span matters for evaluation, so this logs instead of
// failing.
func (d *Duckling) checkValueShape(e ducklingEntity, query string) {
	switch e.Dim {
	case "time", "temperature", "amount-of-money":
		switch e.Value.Type {
		case "value", "interval":
		default:
			if d.logger != nil {
				d.logger.Warnw("Unexpected duckling value type",
					"dim", e.Dim,
					"type", e.Value.Type,
					"query", query,
				)
			}
		}
	}
}
