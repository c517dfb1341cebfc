// Package transport is the HTTP collaborator shared by the raw-HTTP chat
// clients. It posts JSON and returns either the full body or the open body
// of an event stream; every failure surfaces as *domain.TransportError.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
)

const (
	// maxResponseBodySize caps non-streaming bodies (10 MB).
	maxResponseBodySize int64 = 10 * 1024 * 1024
	// maxErrorBodySize caps the body quoted in a TransportError.
	maxErrorBodySize int64 = 64 * 1024
)

// Header is one extra request header.
type Header struct {
	Key   string
	Value string
}

// Client wraps the HTTP clients for provider API calls.
type Client struct {
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a transport with the given request timeout. PostJSON
// applies it to the whole exchange; PostStream applies it only to the wait
// for response headers, so a long stream is bounded by its context alone.
// A zero timeout means no client-side limit.
func NewClient(timeout time.Duration) *Client {
	streamTransport := http.DefaultTransport.(*http.Transport).Clone()
	streamTransport.ResponseHeaderTimeout = timeout

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: &http.Client{Transport: streamTransport},
	}
}

// NewClientWithHTTP creates a transport around an existing *http.Client,
// used for both plain and streaming requests.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, streamClient: httpClient}
}

// PostJSON sends body as JSON and returns the full response body of a 2xx reply.
func (c *Client) PostJSON(ctx context.Context, url string, body any, headers ...Header) ([]byte, error) {
	resp, err := c.do(ctx, url, body, false, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, &domain.TransportError{
			StatusCode: 0,
			Message:    "failed to read response body",
			Err:        err,
		}
	}

	return data, nil
}

// PostStream sends body as JSON asking for an event stream and returns the
// open response body of a 2xx reply. The caller must close it.
func (c *Client) PostStream(ctx context.Context, url string, body any, headers ...Header) (io.ReadCloser, error) {
	//nolint:bodyclose // Body is handed to the caller
	resp, err := c.do(ctx, url, body, true, headers)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) do(ctx context.Context, url string, body any, stream bool, headers []Header) (*http.Response, error) {
	logger := observability.FromContext(ctx)

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}
	for _, header := range headers {
		httpReq.Header.Set(header.Key, header.Value)
	}

	httpClient := c.httpClient
	if stream {
		httpClient = c.streamClient
	}

	start := time.Now()
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("provider request failed",
			observability.String("url", url),
			observability.Duration("duration", time.Since(start)),
			observability.Error(err))
		return nil, &domain.TransportError{
			StatusCode: 0,
			Message:    "request failed",
			Err:        err,
		}
	}

	logger.Debug("provider responded",
		observability.String("url", url),
		observability.Int("status", resp.StatusCode),
		observability.Bool("stream", stream),
		observability.Duration("duration", time.Since(start)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}

	return resp, nil
}

func statusError(resp *http.Response) *domain.TransportError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		message = fmt.Sprintf("%s (failed to read body: %v)", message, err)
	}

	return &domain.TransportError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Err:        nil,
	}
}
