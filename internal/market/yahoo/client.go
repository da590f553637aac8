// Package yahoo fetches daily close series from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/zappabad/lojistik/internal/market"
)

const (
	// DefaultBaseURL is the Yahoo Finance query host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default request rate (requests per second).
	DefaultRateLimit = 5

	// DefaultRange is the chart range requested; the window is trimmed afterwards.
	DefaultRange = "1mo"
)

// chartResponse mirrors the chart endpoint. Closes are pointers because the
// API reports null for sessions without a print.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Client is a Yahoo Finance chart client.
type Client struct {
	baseURL    string
	chartRange string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithRange sets the chart range parameter, e.g. "1mo".
func WithRange(r string) ClientOption {
	return func(c *Client) {
		if r != "" {
			c.chartRange = r
		}
	}
}

// NewClient creates a new Yahoo chart client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		chartRange: DefaultRange,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-200 response or an error payload from the chart API.
type APIError struct {
	StatusCode int
	Symbol     market.Symbol
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo chart error: %s (status %d, symbol %s)", e.Message, e.StatusCode, e.Symbol)
}

// FetchSeries returns the daily closes of sym in chronological order with
// null closes dropped.
func (c *Client) FetchSeries(ctx context.Context, sym market.Symbol) (market.Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return market.Series{}, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", c.chartRange)
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(string(sym)), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return market.Series{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return market.Series{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return market.Series{}, &APIError{StatusCode: resp.StatusCode, Symbol: sym, Message: http.StatusText(resp.StatusCode)}
	}

	var apiResp chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return market.Series{}, fmt.Errorf("decode chart %s: %w", sym, err)
	}
	if apiResp.Chart.Error != nil {
		return market.Series{}, &APIError{StatusCode: resp.StatusCode, Symbol: sym, Message: apiResp.Chart.Error.Description}
	}
	if len(apiResp.Chart.Result) == 0 || len(apiResp.Chart.Result[0].Indicators.Quote) == 0 {
		return market.Series{}, fmt.Errorf("%s: %w", sym, market.ErrNoData)
	}

	result := apiResp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	series := market.Series{Symbol: sym}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series.Points = append(series.Points, market.PricePoint{
			Time:   time.Unix(ts, 0).UTC(),
			Symbol: sym,
			Close:  *closes[i],
		})
	}

	sort.SliceStable(series.Points, func(i, j int) bool {
		return series.Points[i].Time.Before(series.Points[j].Time)
	})

	return series, nil
}
