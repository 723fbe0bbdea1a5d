package konnektor

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the deadline applied to every request to the konnektor.
const DefaultTimeout = 10 * time.Second

// httpClient is an interface for making HTTP requests against the management API.
// It allows dependency injection for testing.
type httpClient interface {
	Get(ctx context.Context, route string) (*http.Response, error)
	Post(ctx context.Context, route string, body interface{}) (*http.Response, error)
	Delete(ctx context.Context, route string) (*http.Response, error)
	SetHeader(key, value string)
}

// ClientOptions configures the REST client.
type ClientOptions struct {
	BaseURL            string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// restClient sends requests relative to the konnektor base URL and attaches
// the headers set on it (the session token after login).
type restClient struct {
	baseURL string
	client  *http.Client
	headers http.Header
}

func newRESTClient(opts ClientOptions) *restClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // opt-in via --disable-cert-verify
	}

	return &restClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout, Transport: transport},
		headers: make(http.Header),
	}
}

func (c *restClient) SetHeader(key, value string) {
	c.headers.Set(key, value)
}

func (c *restClient) Get(ctx context.Context, route string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, route, nil)
}

func (c *restClient) Post(ctx context.Context, route string, body interface{}) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, route, body)
}

func (c *restClient) Delete(ctx context.Context, route string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, route, nil)
}

func (c *restClient) do(ctx context.Context, method, route string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	if body != nil || method == http.MethodDelete {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}
