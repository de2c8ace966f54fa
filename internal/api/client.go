package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aranaskd/blogctl/internal/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TokenSource supplies the bearer credential for authenticated requests.
// The session manager implements it; an empty token means anonymous.
type TokenSource interface {
	Token() string
}

// Client talks to the remote blog API. All methods are safe for sequential
// use from one goroutine, which is all a CLI invocation needs.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  zerolog.Logger
}

// Options configures a Client
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Logger  zerolog.Logger
}

// SetTokenSource binds the credential supplier after construction. The
// session manager verifies tokens through this client, so the two are built
// in sequence and bound here.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// New creates a new API client
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		tokens:  opts.Tokens,
		logger:  opts.Logger,
	}, nil
}

// do issues one JSON request. A non-empty token overrides the token source;
// otherwise the source's current token (if any) is attached. The response
// body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, token string, in, out any) error {
	ctx = tracing.WithRequestID(ctx, tracing.NewRequestID())
	ctx, span := tracing.StartSpan(ctx, "blogctl.api", "api.request",
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, c.logger)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", tracing.GetRequestID(ctx))

	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API request")

	if resp.StatusCode >= http.StatusInternalServerError {
		err := fmt.Errorf("server error: %s", resp.Status)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// The API reports domain failures in-band, so 4xx bodies are decoded
	// like any other and the caller maps the shape.
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("malformed response: %w", err)
		}
	}

	return nil
}
