package bcoin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/ratelimit"
)

const maxErrorBodyLen = 512

// RequesterConfig configures the HTTP transport to a bcoin node.
type RequesterConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond int
}

// HTTPRequester issues JSON requests against the bcoin REST API.
type HTTPRequester struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	limiter ratelimit.Limiter
	metrics RPCMetrics
}

// NewHTTPRequester validates the node URL and builds a paced, instrumented requester.
func NewHTTPRequester(cfg RequesterConfig, metrics RPCMetrics) (*HTTPRequester, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse node url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("node url %q: unsupported scheme %q", cfg.BaseURL, base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("node url %q: missing host", cfg.BaseURL)
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &HTTPRequester{
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		metrics: metrics,
	}, nil
}

// Get performs a GET request and decodes the JSON response into out.
func (r *HTTPRequester) Get(ctx context.Context, path string, query url.Values, out any) error {
	return r.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the JSON response into out.
func (r *HTTPRequester) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	return r.do(ctx, http.MethodPost, path, nil, payload, out)
}

func (r *HTTPRequester) do(ctx context.Context, method, path string, query url.Values, payload []byte, out any) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe(operationName(path), err, started)
	}()

	r.limiter.Take()
	if err := ctx.Err(); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.SetBasicAuth("x", r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		text := strings.TrimSpace(string(data))
		if len(text) > maxErrorBodyLen {
			text = text[:maxErrorBodyLen]
		}
		return &ClientError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: text}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformedRecord, path, err)
	}
	return nil
}

func (r *HTTPRequester) endpoint(path string, query url.Values) string {
	u := *r.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()
	return u.String()
}

// operationName maps a request path to a bounded metrics label.
func operationName(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	switch segments[0] {
	case "":
		return "info"
	case "tx":
		if len(segments) > 1 && segments[1] == "address" {
			return "tx_address"
		}
		return "tx"
	case "fee", "coin", "broadcast", "mempool", "block":
		return segments[0]
	default:
		return "other"
	}
}
