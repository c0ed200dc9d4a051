package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxAnnotationBody = 8 << 20

// HTTPAnnotator calls a remote annotation service. The service receives
// {"text": "..."} and answers with an Annotation document.
type HTTPAnnotator struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewHTTPAnnotator returns a client for endpoint. A non-positive timeout disables the
// per-call deadline; the caller's context still applies.
func NewHTTPAnnotator(endpoint string, timeout time.Duration) *HTTPAnnotator {
	return &HTTPAnnotator{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

var _ Annotator = (*HTTPAnnotator)(nil)

type annotateRequest struct {
	Text string `json:"text"`
}

// Annotate sends text to the service. Deadline overruns surface as ErrAnnotationTimeout,
// every other failure as ErrAnnotationUnavailable.
func (a *HTTPAnnotator) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	body, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrAnnotationUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrAnnotationUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrAnnotationUnavailable, resp.StatusCode)
	}

	var out Annotation
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAnnotationBody)).Decode(&out); err != nil {
		return nil, classify(ctx, fmt.Errorf("decode response: %w", err))
	}
	return &out, nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrAnnotationTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrAnnotationUnavailable, err)
}
