// Package http implements the HTTP executor shared by all resource clients.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/strato-io/strato/internal/auth"
	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// Request describes an API request relative to the client's base URL.
type Request struct {
	Method  string
	Path    string
	Query   *strato.Query
	Body    interface{}
	Headers map[string]string
}

// Response is the outcome of an executed request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger strato.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry behavior for 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInterceptors installs an interceptor chain run around every request.
func WithInterceptors(chain *strato.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// Client executes API requests against one service endpoint.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	logger       strato.Logger
	debug        bool
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	timeout      time.Duration
	interceptors *strato.InterceptorChain
	httpClient   *retryablehttp.Client
}

// NewClient creates an executor for the given base URL. tokenManager may be
// nil for unauthenticated services.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		userAgent:    "strato-client/1.0",
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
		timeout:      constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.HTTPClient.Timeout = client.timeout
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry

	client.httpClient = retryClient

	return client
}

// checkRetry retries connection errors, 429 and 5xx; client errors are
// returned to the caller immediately.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// BaseURL returns the endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes a request against the base URL.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestURL := c.baseURL + req.Path
	if !req.Query.IsEmpty() {
		requestURL += "?" + req.Query.Encode()
	}

	return c.execute(ctx, req, requestURL)
}

// DoURL executes a request against an absolute URL, bypassing the base URL.
// Discovery uses this to probe version documents while walking up a path.
func (c *Client) DoURL(ctx context.Context, req *Request, absoluteURL string) (*Response, error) {
	return c.execute(ctx, req, absoluteURL)
}

//nolint:funlen // request pipeline reads better unsplit
func (c *Client) execute(ctx context.Context, req *Request, requestURL string) (*Response, error) {
	var bodyBytes []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyBytes = encoded
	}

	interceptReq := &strato.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
		Body:    bodyBytes,
	}

	interceptReq.Headers.Set("Accept", "application/json")
	interceptReq.Headers.Set("User-Agent", c.userAgent)

	if bodyBytes != nil {
		interceptReq.Headers.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		interceptReq.Headers.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting auth token: %w", err)
		}

		interceptReq.Headers.Set("X-Auth-Token", token)
	}

	if c.interceptors != nil {
		if err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq); err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    requestURL,
		})
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = interceptReq.Headers

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	var respErr error
	if httpResp.StatusCode >= http.StatusBadRequest {
		respErr = strato.ParseErrorResponse(httpResp.StatusCode, respBody)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         requestURL,
			"status_code": httpResp.StatusCode,
		})
	}

	if c.interceptors != nil {
		interceptResp := &strato.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      respErr,
		}

		if err := c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, interceptResp); err != nil {
			return resp, err
		}
	}

	if respErr != nil {
		return resp, respErr
	}

	return resp, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, query *strato.Query) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post executes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put executes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch executes a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
