package upload

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/multipart"
)

const (
	// DefaultUserAgent identifies the uploader to the server.
	DefaultUserAgent = "formpost/1.0"
)

// Client performs multipart uploads. The zero configuration relies on
// the transport's defaults: no timeout unless one is set with
// WithTimeout, certificate validation on.
type Client struct {
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	validateSSL bool
	headers     map[string]string
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		userAgent:   DefaultUserAgent,
		validateSSL: true,
		headers:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := &http.Transport{}
		if !c.validateSSL {
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
		c.httpClient = &http.Client{
			Transport: transport,
			Timeout:   c.timeout,
		}
	}

	return c
}

// WithTimeout bounds the whole round-trip. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithValidateSSL enables or disables TLS certificate validation.
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithHeader adds a header sent on every upload.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHeaders adds multiple headers sent on every upload.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client, bypassing the
// timeout and TLS options.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// ValidateURL checks that a target URL parses, carries a host, and
// uses an http or https scheme. It runs before any network activity.
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q (only http and https are allowed)", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrMalformedURL)
	}
	return nil
}

// Upload submits filePath under filePartName, along with the given
// form fields, as one multipart POST to targetURL. The sequence is
// strictly linear: field names are checked, the URL is checked, the
// body is built, the request is sent, the status is read. Any step's
// failure aborts the rest; a local failure never causes network
// activity.
//
// A non-nil Result means the server answered; check Result.OK for
// acceptance. A non-nil error means the upload never completed.
func (c *Client) Upload(ctx context.Context, targetURL string, fields map[string]string, filePath, filePartName string) (*Result, error) {
	if err := multipart.CheckFieldNames(fields); err != nil {
		return nil, err
	}
	if err := ValidateURL(targetURL); err != nil {
		return nil, err
	}

	boundary := multipart.Boundary()
	body, err := multipart.BuildBody(fields, filePath, filePartName, boundary)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	// Content-Type carries the boundary and must win over any default
	// header.
	req.Header.Set("Content-Type", multipart.ContentType(boundary))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       respBody,
		Duration:   time.Since(start),
	}, nil
}
