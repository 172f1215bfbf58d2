package anchor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/anchorflow/internal/metrics"
	"github.com/BaSui01/anchorflow/types"
)

// DefaultBaseURL is the address of a locally running AutoAnchor backend.
const DefaultBaseURL = "http://127.0.0.1:8084"

// Config configures the backend client.
type Config struct {
	// BaseURL is the backend address. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout is the transport-level timeout applied to every call.
	// Defaults to 30s. Invokers never override it per call.
	Timeout time.Duration
}

// Client issues requests against the AutoAnchor backend. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	cfg       Config
	client    *http.Client
	logger    *zap.Logger
	collector *metrics.Collector
	tracer    trace.Tracer
}

// New creates a backend client. A nil logger is replaced with a noop one.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
		tracer: otel.Tracer("anchorflow/anchor"),
	}
}

// WithCollector attaches a metrics collector and returns the client.
func (c *Client) WithCollector(collector *metrics.Collector) *Client {
	c.collector = collector
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) (any, error) {
	return c.do(ctx, http.MethodPost, path, nil, payload)
}

// do issues exactly one HTTP request and normalizes the raw response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (any, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, types.NewError(types.ErrInvalidRequest, "encode request body: "+err.Error()).
				WithCause(err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(method),
			semconv.URLFull(endpoint),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidRequest, "build request: "+err.Error()).
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		c.recordFailure(method, path, 0, types.ErrNetwork, time.Since(start))
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, types.NewError(types.ErrNetwork, "request failed: "+err.Error()).
			WithRetryable(true).
			WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		c.recordFailure(method, path, resp.StatusCode, types.ErrNetwork, time.Since(start))
		return nil, types.NewError(types.ErrNetwork, "read response body: "+err.Error()).
			WithRetryable(true).
			WithCause(err)
	}

	duration := time.Since(start)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	result, nerr := Normalize(resp.StatusCode, body)
	if nerr != nil {
		c.recordFailure(method, path, resp.StatusCode, types.GetErrorCode(nerr), duration)
		c.logger.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration),
			zap.Error(nerr),
		)
		return nil, nerr
	}

	if c.collector != nil {
		c.collector.RecordAPIRequest(method, path, resp.StatusCode, duration)
	}
	c.logger.Debug("backend call completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return result, nil
}

func (c *Client) recordFailure(method, path string, status int, code types.ErrorCode, duration time.Duration) {
	if c.collector == nil {
		return
	}
	c.collector.RecordAPIRequest(method, path, status, duration)
	c.collector.RecordAPIFailure(path, string(code))
}
