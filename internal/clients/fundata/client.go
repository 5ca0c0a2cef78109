// Package fundata provides a client for the Fundata fundamentals API
package fundata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://api.fundata.dev/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the FundamentalsClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Fundata client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Fundata API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Fundata API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// metaFields are profile fields kept as strings rather than numbers
var metaFields = map[string]bool{
	"currency":          true,
	"financialCurrency": true,
	"sector":            true,
	"industry":          true,
	"shortName":         true,
	"longName":          true,
	"exchange":          true,
}

// GetProfile retrieves the provider's fundamental snapshot for a ticker.
// The payload is a flat object whose field names drift across tickers and
// provider versions, so everything numeric lands in Fields as-is and the
// known textual fields land in Meta.
func (c *Client) GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	path := fmt.Sprintf("/fundamentals/%s/profile", strings.ToUpper(ticker))

	var raw map[string]json.RawMessage
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}

	profile := &models.CompanyProfile{
		Ticker: strings.ToUpper(ticker),
		Fields: make(map[string]float64),
		Meta:   make(map[string]string),
	}

	for key, val := range raw {
		if metaFields[key] {
			var s string
			if err := json.Unmarshal(val, &s); err == nil && s != "" {
				profile.Meta[key] = s
			}
			continue
		}

		var num flexFloat64
		if err := num.UnmarshalJSON(val); err == nil {
			profile.Fields[key] = float64(num)
			continue
		}

		// Remaining strings (addresses, descriptions) are kept as meta
		var s string
		if err := json.Unmarshal(val, &s); err == nil && s != "" {
			profile.Meta[key] = s
		}
	}

	return profile, nil
}

type statementResponse struct {
	Ticker  string   `json:"ticker"`
	Periods []string `json:"periods"`
	Rows    []struct {
		Label  string        `json:"label"`
		Values []*flexFloat64 `json:"values"`
	} `json:"rows"`
}

// GetQuarterlyStatement retrieves one quarterly statement grid,
// most-recent quarter first.
func (c *Client) GetQuarterlyStatement(ctx context.Context, ticker string, kind models.StatementKind) (*models.QuarterlyStatement, error) {
	path := fmt.Sprintf("/fundamentals/%s/%s", strings.ToUpper(ticker), string(kind))

	params := url.Values{}
	params.Set("period", "quarterly")

	var resp statementResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	statement := &models.QuarterlyStatement{
		Ticker:  strings.ToUpper(ticker),
		Kind:    kind,
		Periods: resp.Periods,
		Rows:    make([]models.StatementRow, len(resp.Rows)),
	}

	for i, row := range resp.Rows {
		values := make([]*float64, len(row.Values))
		for j, v := range row.Values {
			if v != nil {
				f := float64(*v)
				values[j] = &f
			}
		}
		statement.Rows[i] = models.StatementRow{
			Label:  row.Label,
			Values: values,
		}
	}

	return statement, nil
}

type priceBarResponse struct {
	Date  string      `json:"date"`
	Close flexFloat64 `json:"close"`
}

// GetPriceHistory retrieves daily closes over the lookback window,
// oldest first.
func (c *Client) GetPriceHistory(ctx context.Context, ticker string, lookback time.Duration) ([]models.PriceBar, error) {
	path := fmt.Sprintf("/eod/%s", strings.ToUpper(ticker))

	params := url.Values{}
	params.Set("from", time.Now().Add(-lookback).Format("2006-01-02"))
	params.Set("order", "a")

	var bars []priceBarResponse
	if err := c.get(ctx, path, params, &bars); err != nil {
		return nil, err
	}

	result := make([]models.PriceBar, 0, len(bars))
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			continue
		}
		result = append(result, models.PriceBar{
			Date:  date,
			Close: float64(bar.Close),
		})
	}

	return result, nil
}

type fxQuoteResponse struct {
	Pair  string      `json:"pair"`
	Price flexFloat64 `json:"price"`
}

// GetFXQuote retrieves the spot rate for a synthetic pair symbol like "EURUSD"
func (c *Client) GetFXQuote(ctx context.Context, pair string) (float64, error) {
	path := fmt.Sprintf("/fx/%s", strings.ToUpper(pair))

	var quote fxQuoteResponse
	if err := c.get(ctx, path, nil, &quote); err != nil {
		return 0, err
	}

	if quote.Price == 0 {
		return 0, &APIError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("no quote for pair %s", pair),
			Endpoint:   path,
		}
	}

	return float64(quote.Price), nil
}

// GetSnapshot bundles the profile, the three quarterly statements and a year
// of price history for one ticker. Profile failure fails the snapshot;
// statement and price failures degrade to empty sections.
func (c *Client) GetSnapshot(ctx context.Context, ticker string) (*models.RawSnapshot, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	profile, err := c.GetProfile(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", ticker, err)
	}

	snapshot := &models.RawSnapshot{
		Ticker:    ticker,
		FetchedAt: time.Now().UTC(),
		Profile:   profile,
	}

	for _, kind := range []models.StatementKind{
		models.StatementIncome,
		models.StatementBalanceSheet,
		models.StatementCashFlow,
	} {
		statement, err := c.GetQuarterlyStatement(ctx, ticker, kind)
		if err != nil {
			c.logger.Warn().
				Str("ticker", ticker).
				Str("kind", string(kind)).
				Err(err).
				Msg("Statement unavailable, continuing with empty grid")
			statement = &models.QuarterlyStatement{Ticker: ticker, Kind: kind}
		}

		switch kind {
		case models.StatementIncome:
			snapshot.Income = statement
		case models.StatementBalanceSheet:
			snapshot.BalanceSheet = statement
		case models.StatementCashFlow:
			snapshot.CashFlow = statement
		}
	}

	prices, err := c.GetPriceHistory(ctx, ticker, 365*24*time.Hour)
	if err != nil {
		c.logger.Warn().Str("ticker", ticker).Err(err).Msg("Price history unavailable")
	} else {
		snapshot.Prices = prices
	}

	return snapshot, nil
}
