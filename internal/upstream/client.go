// Package upstream is the client for the external commodity price API that
// owns all product, market and price records.
package upstream

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

	"farmprice/internal/config"
	"farmprice/internal/metrics"
	"farmprice/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 * 1024

// PriceAPI defines the calls made to the upstream price service.
type PriceAPI interface {
	// ListProductPrices retrieves every product with its quotes across markets.
	ListProductPrices(ctx context.Context) ([]model.ProductPrices, error)

	// GetProductPrices retrieves one product's quotes across all markets.
	GetProductPrices(ctx context.Context, productID string) (*model.ProductPrices, error)

	// GetPriceHistory retrieves a product's price history at one market.
	GetPriceHistory(ctx context.Context, marketID, productID string) (*model.Product, []model.PricePoint, error)

	// ListMarketProducts retrieves every market with its current products.
	ListMarketProducts(ctx context.Context) ([]model.MarketProducts, error)

	// Login authenticates a user.
	Login(ctx context.Context, creds model.Credentials) (*model.Account, error)

	// Register creates a user.
	Register(ctx context.Context, creds model.Credentials) error
}

// ErrNotFound is returned when the upstream answers 404 or omits the
// requested record.
var ErrNotFound = errors.New("upstream: not found")

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// client implements PriceAPI over HTTP.
type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// Option customises the client.
type Option func(*client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithMetrics records upstream calls.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *client) {
		c.metrics = m
	}
}

// NewClient creates a rate-limited client for the upstream price API.
func NewClient(cfg config.UpstreamConfig, logger zerolog.Logger, opts ...Option) PriceAPI {
	c := &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		logger:     logger.With().Str("component", "upstream-client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProductPrices retrieves every product with its quotes across markets.
func (c *client) ListProductPrices(ctx context.Context) ([]model.ProductPrices, error) {
	var resp productPricesListResponse
	if err := c.do(ctx, "product_prices", http.MethodGet, "/markets/productPriceInAllMarkets", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.ProductPrices, len(resp.ProductPrices))
	for i, pp := range resp.ProductPrices {
		out[i] = pp.toModel()
	}
	return out, nil
}

// GetProductPrices retrieves one product's quotes across all markets.
func (c *client) GetProductPrices(ctx context.Context, productID string) (*model.ProductPrices, error) {
	path := "/markets/productPriceInAllMarkets/" + url.PathEscape(productID)

	var resp productInAllMarketsResponse
	if err := c.do(ctx, "product_in_all_markets", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, ErrNotFound
	}

	quotes := make([]model.MarketQuote, len(resp.Prices))
	for i, q := range resp.Prices {
		quotes[i] = q.toModel()
	}
	return &model.ProductPrices{Product: *resp.Product, MarketPrices: quotes}, nil
}

// GetPriceHistory retrieves a product's price history at one market.
func (c *client) GetPriceHistory(ctx context.Context, marketID, productID string) (*model.Product, []model.PricePoint, error) {
	path := "/markets/priceHistory/" + url.PathEscape(marketID) + "?productId=" + url.QueryEscape(productID)

	var resp priceHistoryResponse
	if err := c.do(ctx, "price_history", http.MethodGet, path, nil, &resp); err != nil {
		return nil, nil, err
	}
	if resp.Product == nil {
		return nil, nil, ErrNotFound
	}

	points := make([]model.PricePoint, len(resp.Prices))
	for i, p := range resp.Prices {
		points[i] = p.toModel()
	}
	return resp.Product, points, nil
}

// ListMarketProducts retrieves every market with its current products.
func (c *client) ListMarketProducts(ctx context.Context) ([]model.MarketProducts, error) {
	var resp marketProductsResponse
	if err := c.do(ctx, "market_products", http.MethodGet, "/markets/allMarketProducts", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.MarketProducts, len(resp.MarketProducts))
	for i, mp := range resp.MarketProducts {
		out[i] = mp.toModel()
	}
	return out, nil
}

// Login authenticates a user.
func (c *client) Login(ctx context.Context, creds model.Credentials) (*model.Account, error) {
	var account model.Account
	if err := c.do(ctx, "login", http.MethodPost, "/users/login", creds, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Register creates a user.
func (c *client) Register(ctx context.Context, creds model.Credentials) error {
	return c.do(ctx, "register", http.MethodPost, "/users/register", creds, nil)
}

// do sends a request and decodes a 2xx JSON body into out when out is non-nil.
func (c *client) do(ctx context.Context, endpoint, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("upstream %s: rate limiter: %w", endpoint, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream %s: failed to encode request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("upstream %s: failed to build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
		return fmt.Errorf("upstream %s: request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("message", statusErr.Message).
			Msg("upstream returned error status")
		return statusErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("failed to decode upstream response")
		return fmt.Errorf("upstream %s: failed to decode response: %w", endpoint, err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Dur("duration", time.Since(start)).
		Msg("upstream request completed")

	return nil
}

// readErrorMessage extracts a human-readable message from an error body.
// The upstream sends either {"message": ...}, {"error": ...} or plain text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}

	return strings.TrimSpace(string(raw))
}
