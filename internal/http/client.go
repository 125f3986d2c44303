// Package http implements the wire-level transport for the Tooldeck API.
//
// The Client attaches authentication and content negotiation headers,
// expands path templates, and returns raw responses without interpreting
// status codes. Envelope decoding and error classification happen in the
// layers above; the transport only fails when no usable response arrived
// at all (connection failures, timeouts, malformed descriptors).
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// methodContextKey carries the logical HTTP method through the request
// context so the retry policy can see it even when no response exists.
type methodContextKey struct{}

// Client is the concrete tooldeck.Transport backed by net/http with
// optional retries via go-retryablehttp. Retries are disabled unless
// configured and never apply to non-idempotent methods.
type Client struct {
	baseURL      string
	apiKey       string
	userAgent    string
	logger       tooldeck.Logger
	debug        bool
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	underlying   *nethttp.Client
	httpClient   *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger tooldeck.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig enables retries for idempotent requests. maxRetries is
// the number of attempts after the first; waitMin and waitMax bound the
// exponential backoff.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = maxRetries
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying net/http client, for callers that
// need custom TLS or proxy settings.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		c.underlying = httpClient
	}
}

// NewClient creates a transport for the given API endpoint. The API key is
// attached to every request via the X-API-Key header; an empty key sends
// no authentication at all.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     0,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.underlying == nil {
		client.underlying = &nethttp.Client{Timeout: client.timeout}
	}

	client.httpClient = &retryablehttp.Client{
		HTTPClient:   client.underlying,
		RetryMax:     client.retryMax,
		RetryWaitMin: client.retryWaitMin,
		RetryWaitMax: client.retryWaitMax,
		CheckRetry:   client.checkRetry,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return client
}

// Send executes a request descriptor and returns the raw response.
// Descriptor problems (unbound path parameters, unencodable bodies) fail
// before any network traffic. Responses are returned for every status
// code; only transport-level failures produce an error.
func (c *Client) Send(ctx context.Context, req *tooldeck.RequestDescriptor) (*tooldeck.RawResponse, error) {
	path, err := tooldeck.ExpandPath(req.Path, req.PathParams)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var payload interface{}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &tooldeck.Error{
				Kind:    tooldeck.ErrorKindMalformedRequest,
				Message: fmt.Sprintf("encoding request body for %s %s", req.Method, path),
				Err:     err,
			}
		}

		payload = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(
		context.WithValue(ctx, methodContextKey{}, req.Method),
		req.Method, endpoint, payload)
	if err != nil {
		return nil, &tooldeck.Error{
			Kind:    tooldeck.ErrorKindMalformedRequest,
			Message: fmt.Sprintf("building request for %s %s", req.Method, path),
			Err:     err,
		}
	}

	httpReq.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    endpoint,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.wrapTransportError(req.Method, path, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &tooldeck.Error{
			Kind:    tooldeck.ErrorKindNetwork,
			Message: fmt.Sprintf("reading response for %s %s", req.Method, path),
			Err:     err,
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    endpoint,
			"status": httpResp.StatusCode,
			"size":   len(body),
		})
	}

	return &tooldeck.RawResponse{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// Get performs a GET request against the given path.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*tooldeck.RawResponse, error) {
	return c.Send(ctx, &tooldeck.RequestDescriptor{
		Method: nethttp.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*tooldeck.RawResponse, error) {
	return c.Send(ctx, &tooldeck.RequestDescriptor{
		Method: nethttp.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*tooldeck.RawResponse, error) {
	return c.Send(ctx, &tooldeck.RequestDescriptor{
		Method: nethttp.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request with a JSON-encoded body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*tooldeck.RawResponse, error) {
	return c.Send(ctx, &tooldeck.RequestDescriptor{
		Method: nethttp.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request against the given path.
func (c *Client) Delete(ctx context.Context, path string) (*tooldeck.RawResponse, error) {
	return c.Send(ctx, &tooldeck.RequestDescriptor{
		Method: nethttp.MethodDelete,
		Path:   path,
	})
}

// checkRetry limits retries to idempotent reads that failed with a
// connection error, a 429, or a 5xx status. Mutations are never replayed.
func (c *Client) checkRetry(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if c.retryMax <= 0 {
		return false, nil
	}

	method, _ := ctx.Value(methodContextKey{}).(string)
	if method != nethttp.MethodGet && method != nethttp.MethodHead {
		return false, nil
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == nethttp.StatusTooManyRequests || resp.StatusCode >= nethttp.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// wrapTransportError classifies failures that produced no usable response.
// Deadline and timeout failures map to the timeout kind, everything else
// to the network kind; the original cause stays reachable via Unwrap.
func (c *Client) wrapTransportError(method, path string, err error) error {
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &tooldeck.Error{
			Kind:    tooldeck.ErrorKindTimeout,
			Message: fmt.Sprintf("%s %s: deadline exceeded", method, path),
			Err:     err,
		}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &tooldeck.Error{
			Kind:    tooldeck.ErrorKindTimeout,
			Message: fmt.Sprintf("%s %s: request timed out", method, path),
			Err:     err,
		}
	default:
		return &tooldeck.Error{
			Kind:    tooldeck.ErrorKindNetwork,
			Message: fmt.Sprintf("%s %s: connection failed", method, path),
			Err:     err,
		}
	}
}
