// Package client implements the products REST client used by the storefront.
//
// Every operation maps onto {baseURL}/products[/{id}]. Failures of any kind are
// logged where they happen and returned as *model.TransportError. The client
// never retries and sets no timeout unless WithTimeout is given.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-market/internal/metrics"
	"course-market/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	productsPath = "/products"

	// maxErrorBody bounds how much of a failed response is kept on the error.
	maxErrorBody = 1024
)

// Operation names, used for logging, errors and metrics.
const (
	OpList    = "list products"
	OpGetByID = "get product"
	OpCreate  = "create product"
	OpUpdate  = "update product"
	OpDelete  = "delete product"
)

var errMissingID = errors.New("response product has no id")

// Client talks to the products API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. with a fake transport in tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every call. Zero keeps calls unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMetrics records call counts and latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a products client for the given base URL.
func New(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With().Str("component", "product-client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List retrieves every product, in the order the backend returns them.
func (c *Client) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if _, err := c.do(ctx, OpList, http.MethodGet, productsPath, nil, &products); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(products)).Msg("products listed")

	return products, nil
}

// GetByID retrieves a single product. A missing product surfaces as whatever
// status the backend returns for it.
func (c *Client) GetByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	var product model.Product
	if _, err := c.do(ctx, OpGetByID, http.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create submits a draft and returns the product with its backend-assigned id.
func (c *Client) Create(ctx context.Context, draft model.Draft) (*model.Product, error) {
	var product model.Product
	if _, err := c.do(ctx, OpCreate, http.MethodPost, productsPath, draft, &product); err != nil {
		return nil, err
	}

	if product.ID == "" {
		return nil, c.fail(&model.TransportError{
			Op:     OpCreate,
			Method: http.MethodPost,
			URL:    c.baseURL + productsPath,
			Err:    errMissingID,
		})
	}

	return &product, nil
}

// Update replaces the name and price of an existing product.
func (c *Client) Update(ctx context.Context, id model.ProductID, patch model.Patch) (*model.Product, error) {
	var product model.Product
	if _, err := c.do(ctx, OpUpdate, http.MethodPut, productPath(id), patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product and returns the raw response body, which may be empty.
func (c *Client) Delete(ctx context.Context, id model.ProductID) ([]byte, error) {
	return c.do(ctx, OpDelete, http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id model.ProductID) string {
	return productsPath + "/" + url.PathEscape(id.String())
}

// do performs one request. When out is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) (respBody []byte, err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveClientCall(op, start, err)
	}()

	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(&model.TransportError{Op: op, Method: method, URL: fullURL, Err: fmt.Errorf("failed to encode request: %w", err)})
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, c.fail(&model.TransportError{Op: op, Method: method, URL: fullURL, Err: fmt.Errorf("failed to create request: %w", err)})
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(&model.TransportError{Op: op, Method: method, URL: fullURL, Err: err})
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&model.TransportError{
			Op:         op,
			Method:     method,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response: %w", err),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&model.TransportError{
			Op:         op,
			Method:     method,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Body:       truncate(respBody, maxErrorBody),
		})
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, c.fail(&model.TransportError{
				Op:     op,
				Method: method,
				URL:    fullURL,
				Err:    fmt.Errorf("failed to decode response: %w", err),
			})
		}
	}

	return respBody, nil
}

// fail logs a transport error and hands it back unchanged.
func (c *Client) fail(terr *model.TransportError) error {
	event := c.logger.Error().
		Str("operation", terr.Op).
		Str("method", terr.Method).
		Str("url", terr.URL)
	if terr.StatusCode != 0 {
		event = event.Int("status", terr.StatusCode)
	}
	if terr.Err != nil {
		event = event.Err(terr.Err)
	}
	event.Msg("products API call failed")

	return terr
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
