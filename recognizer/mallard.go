package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/internal/httpclient"
	"github.com/vijay120/duckling-1/ser"
)

// Mallard calls a Mallard /parse endpoint. Requests are JSON with an
// explicit language; predicted entities arrive under "data", each with
// a "dimension" and a nested entity span.
type Mallard struct {
	endpoint string
	language string
	client   *httpclient.Client
	logger   *zap.SugaredLogger
}

// NewMallard creates a Mallard client for the given /parse endpoint and
// language code (e.g. "eng").
func NewMallard(endpoint, language string, timeout time.Duration, logger *zap.SugaredLogger) *Mallard {
	return &Mallard{
		endpoint: endpoint,
		language: language,
		client:   httpclient.NewLocal(timeout),
		logger:   logger,
	}
}

func (m *Mallard) Name() string { return "mallard" }

type mallardRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type mallardResponse struct {
	Data []mallardEntity `json:"data"`
}

type mallardEntity struct {
	Dimension string `json:"dimension"`
	Entity    struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"entity"`
	Value []json.RawMessage `json:"value"`
}

// Parse submits one query and reduces the response to predicted spans.
func (m *Mallard) Parse(ctx context.Context, query string) (ser.Annotation, error) {
	payload, err := json.Marshal(mallardRequest{Text: query, Language: m.language})
	if err != nil {
		return nil, errors.Wrap(err, "encode mallard request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint,
		bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build mallard request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrServiceUnavailable, "mallard at %s: %v", m.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read mallard response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("mallard returned %d: %s", resp.StatusCode, string(body))
	}

	var decoded mallardResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode mallard response")
	}

	spans := make(ser.Annotation, 0, len(decoded.Data))
	for _, e := range decoded.Data {
		if len(e.Value) == 0 && m.logger != nil {
			m.logger.Debugw("Mallard entity without value",
				"dimension", e.Dimension,
				"query", query,
			)
		}
		spans = append(spans, ser.Span{
			Start: e.Entity.Start,
			End:   e.Entity.End,
			Label: e.Dimension,
		})
	}
	return spans, nil
}
