package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Request    *http.Request
}

// JSON decodes the response body into v
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

type requestOptions struct {
	query       map[string]string
	headers     map[string]string
	body        []byte
	contentType string
	logBody     bool
}

// RequestOption configures a single request
type RequestOption func(*requestOptions) error

// WithQuery adds query parameters
func WithQuery(params map[string]string) RequestOption {
	return func(o *requestOptions) error {
		o.query = lo.Assign(o.query, params)
		return nil
	}
}

// WithHeaders adds headers for this request only
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) error {
		o.headers = lo.Assign(o.headers, headers)
		return nil
	}
}

// WithJSON encodes v as the JSON request body
func WithJSON(v interface{}) RequestOption {
	return func(o *requestOptions) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		o.body = body
		o.contentType = "application/json"
		o.logBody = true
		return nil
	}
}

// WithBody sends raw data with the given content type
func WithBody(data []byte, contentType string) RequestOption {
	return func(o *requestOptions) error {
		o.body = data
		o.contentType = contentType
		return nil
	}
}

// BaseClient sends JSON requests relative to a base URL. Default headers are
// shared by every request; a pooled transport keeps connections alive.
type BaseClient struct {
	baseURL string
	client  *http.Client
	logger  logrus.FieldLogger

	headersMutex sync.RWMutex
	headers      map[string]string
}

// NewBaseClient creates a client for baseURL with a per-request timeout
func NewBaseClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *BaseClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10

	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger,
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

// BaseURL returns the base URL without trailing slash
func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

// SetHeader sets a header sent with every request
func (c *BaseClient) SetHeader(key, value string) {
	c.headersMutex.Lock()
	c.headers[key] = value
	c.headersMutex.Unlock()

	c.logger.Infof("Header set: %s", key)
}

// SetAuthToken sets the Authorization header, tokenType defaults to Bearer
func (c *BaseClient) SetAuthToken(token, tokenType string) {
	if tokenType == "" {
		tokenType = "Bearer"
	}
	c.SetHeader("Authorization", tokenType+" "+token)
}

func (c *BaseClient) Get(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, endpoint, opts...)
}

func (c *BaseClient) Post(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, endpoint, opts...)
}

func (c *BaseClient) Put(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, endpoint, opts...)
}

func (c *BaseClient) Patch(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, opts...)
}

func (c *BaseClient) Delete(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, opts...)
}

// Do sends a request to endpoint, relative to the base URL. Any status code is a
// successful exchange; only transport failures are returned as errors.
func (c *BaseClient) Do(ctx context.Context, method, endpoint string, opts ...RequestOption) (*Response, error) {
	var o requestOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	target, err := c.buildURL(endpoint, o.query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if o.body != nil {
		body = bytes.NewReader(o.body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.headersMutex.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.headersMutex.RUnlock()
	if o.contentType != "" {
		req.Header.Set("Content-Type", o.contentType)
	}
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	logger := c.logger.WithField("request_id", requestID)
	logger.Infof("Request: %s %s", method, target)
	if o.logBody {
		logger.Debugf("Request Body: %s", o.body)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Errorf("Request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.WithField("duration", time.Since(start).Round(time.Millisecond)).Infof("Response: %s", resp.Status)
	logger.Debugf("Response Body: %s", data)

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
		Request:    req,
	}, nil
}

// Close releases idle connections
func (c *BaseClient) Close() error {
	c.client.CloseIdleConnections()
	c.logger.Info("Session closed")
	return nil
}

func (c *BaseClient) buildURL(endpoint string, query map[string]string) (string, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) == 0 {
		return target, nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", target, err)
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
