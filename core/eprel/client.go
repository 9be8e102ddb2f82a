package eprel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRetryAfter = 60 * time.Second
	initialBackoff    = 2 * time.Second
	maxBackoff        = 60 * time.Second
)

// Page is one page of products returned by the API, normalized from the
// deployment-dependent response shape.
type Page struct {
	Items       []map[string]any
	TotalCount  int
	CurrentPage int
	PageSize    int
	HasMore     bool
}

// Client fetches product data from the EPREL public API. All outbound calls
// share one rate limiter, so the minimum inter-request interval holds across
// product groups too. Client is not safe for concurrent use by design: the
// sync path is strictly sequential.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger

	// backoffBase is the first retry delay; doubled per attempt up to
	// maxBackoff. Overridden in tests.
	backoffBase time.Duration
}

// NewClient creates a new EPREL API client. The API key is required.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("%w: set API_KEY", ErrAuth)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 || cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		cfg:         cfg,
		http:        &http.Client{Timeout: time.Duration(timeout) * time.Second},
		limiter:     rate.NewLimiter(rate.Every(cfg.RequestDelay()), 1),
		log:         log,
		backoffBase: initialBackoff,
	}, nil
}

// PageSize returns the effective page size used for full pages.
func (c *Client) PageSize() int {
	return c.cfg.PageSize
}

// FetchPage fetches a single page of products for a product group.
// pageSize <= 0 means the configured page size; anything above MaxPageSize is
// clamped.
func (c *Client) FetchPage(ctx context.Context, group string, page, pageSize int) (*Page, error) {
	if pageSize <= 0 {
		pageSize = c.cfg.PageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(pageSize))

	body, err := c.get(ctx, "products/"+group, query)
	if err != nil {
		return nil, err
	}

	items, total, err := decodeListPayload(body)
	if err != nil {
		return nil, fmt.Errorf("decoding page %d of %s: %w", page, group, err)
	}

	// The server's total may be stale; HasMore stays conservative and the
	// orchestrator additionally stops on an empty page.
	hasMore := len(items) == pageSize && page*pageSize < total

	return &Page{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		PageSize:    pageSize,
		HasMore:     hasMore,
	}, nil
}

// ProductCount returns the total number of products in a product group,
// using a minimal one-item probe.
func (c *Client) ProductCount(ctx context.Context, group string) (int, error) {
	page, err := c.FetchPage(ctx, group, 1, 1)
	if err != nil {
		return 0, err
	}
	return page.TotalCount, nil
}

// ProductDetails fetches the full record of a single product.
func (c *Client) ProductDetails(ctx context.Context, group, productID string) (map[string]any, error) {
	body, err := c.get(ctx, "products/"+group+"/"+productID, nil)
	if err != nil {
		return nil, err
	}

	var details map[string]any
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("decoding product %s/%s: %w", group, productID, err)
	}
	return details, nil
}

// EnergyLabel downloads the energy label asset for a product. Formats are
// pdf, svg or jpg. Binary downloads are rate limited but not retried.
func (c *Client) EnergyLabel(ctx context.Context, group, productID, format string) ([]byte, error) {
	return c.getBinary(ctx, "products/"+group+"/"+productID+"/labels", format)
}

// ProductFiche downloads the product information sheet for a product.
func (c *Client) ProductFiche(ctx context.Context, group, productID, format string) ([]byte, error) {
	return c.getBinary(ctx, "products/"+group+"/"+productID+"/fiches", format)
}

// defaultGroups is the registry of group codes known to exist, used when the
// product-groups endpoint cannot be reached.
var defaultGroups = []string{
	"airconditioners",
	"dishwashers",
	"washingmachines",
	"washerdryers",
	"tumbledryers",
	"refrigeratingappliances",
	"electronicdisplays",
	"lightsources",
	"ovens",
	"rangehoods",
	"tyres",
	"waterheaters",
	"spaceheaters",
	"ventilationunits",
	"professionalrefrigeratedstoragecabinets",
	"solidfuelboilers",
	"localheaterssolid",
	"localheatersgaseous",
}

// ProductGroups fetches the list of product group codes the API serves. When
// the endpoint is unavailable it falls back to the built-in list rather than
// failing, so discovery never blocks a sync.
func (c *Client) ProductGroups(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "product-groups", nil)
	if err != nil {
		if errors.Is(err, ErrAuth) {
			return nil, err
		}
		c.log.Warn("Product group discovery failed, using built-in list", zap.Error(err))
		return defaultGroups, nil
	}

	var entries []map[string]any
	if err := json.Unmarshal(body, &entries); err != nil {
		return defaultGroups, nil
	}

	var codes []string
	for _, entry := range entries {
		if code, ok := entry["code"].(string); ok && code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return defaultGroups, nil
	}
	return codes, nil
}

// HealthCheck probes the API with a one-item page of a known product group.
// It returns nil when the API is reachable; callers can distinguish ErrAuth
// from other failures with errors.Is.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.FetchPage(ctx, "dishwashers", 1, 1)
	return err
}

// get performs a rate-limited GET with the configured retry budget.
// Authentication failures surface immediately, 429 responses sleep for the
// server-indicated duration, and everything else backs off exponentially.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error
	backoff := c.backoffBase

	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		body, err := c.doOnce(ctx, path, query)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrAuth) {
			return nil, err
		}
		lastErr = err

		if attempt == c.cfg.MaxRetries {
			break
		}

		var rateErr *RateLimitError
		if errors.As(err, &rateErr) {
			c.log.Warn("Rate limit exceeded, waiting",
				zap.Duration("retry_after", rateErr.RetryAfter),
				zap.String("path", path))
			if err := sleepCtx(ctx, rateErr.RetryAfter); err != nil {
				return nil, err
			}
			continue
		}

		c.log.Warn("Request failed, backing off",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		if err := sleepCtx(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.cfg.MaxRetries, lastErr)
}

// doOnce performs exactly one rate-limited request and classifies the outcome.
func (c *Client) doOnce(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eprel: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eprel: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 400:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	return body, nil
}

// getBinary downloads an asset endpoint (labels, fiches). These are
// rate-limited like every other call but failures surface directly.
func (c *Client) getBinary(ctx context.Context, path, format string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	if format != "" {
		query.Set("format", format)
	}

	req, err := c.newRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eprel: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuth
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	u := c.cfg.BaseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("eprel: building request: %w", err)
	}
	req.Header.Set("x-api-key", c.cfg.Key)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// decodeListPayload normalizes the two response shapes the API is known to
// produce: a bare array, or an object with items under data/items/products
// and the total under total/totalCount/count.
func decodeListPayload(body []byte) ([]map[string]any, int, error) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err == nil {
		return items, len(items), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, 0, fmt.Errorf("unexpected payload shape: %w", err)
	}

	for _, key := range []string{"data", "items", "products"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			break
		}
	}

	total := len(items)
	for _, key := range []string{"total", "totalCount", "count"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			total = n
			break
		}
	}

	return items, total, nil
}

func parseRetryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
