package fundata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sift/internal/models"
)

func TestFlexFloat64(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"number", `123.45`, 123.45},
		{"string number", `"123.45"`, 123.45},
		{"empty string", `""`, 0},
		{"na string", `"N/A"`, 0},
		{"garbage string", `"abc"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexFloat64
			err := f.UnmarshalJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, float64(f))
		})
	}
}

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fundamentals/AAPL/profile", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_token"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"marketCap":         "2500000000000",
			"sharesOutstanding": 15000000000,
			"currentPrice":      175.5,
			"currency":          "USD",
			"financialCurrency": "USD",
			"sector":            "Technology",
			"shortName":         "Apple Inc.",
			"returnOnEquity":    0.45,
		})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	profile, err := client.GetProfile(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", profile.Ticker)
	assert.Equal(t, 2.5e12, profile.Fields["marketCap"])
	assert.Equal(t, 1.5e10, profile.Fields["sharesOutstanding"])
	assert.Equal(t, 175.5, profile.Fields["currentPrice"])
	assert.Equal(t, 0.45, profile.Fields["returnOnEquity"])
	assert.Equal(t, "USD", profile.Meta["currency"])
	assert.Equal(t, "Technology", profile.Meta["sector"])
	assert.Equal(t, "Apple Inc.", profile.Meta["shortName"])
}

func TestGetProfileAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown ticker", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.GetProfile(context.Background(), "ZZZZ")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetQuarterlyStatement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fundamentals/AAPL/income", r.URL.Path)
		assert.Equal(t, "quarterly", r.URL.Query().Get("period"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"ticker":  "AAPL",
			"periods": []string{"2026-06-30", "2026-03-31", "2025-12-31", "2025-09-30"},
			"rows": []map[string]interface{}{
				{"label": "Total Revenue", "values": []interface{}{100.0, 90.0, 120.0, 85.0}},
				{"label": "Operating Income", "values": []interface{}{30.0, nil, 40.0, 25.0}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	statement, err := client.GetQuarterlyStatement(context.Background(), "AAPL", models.StatementIncome)
	require.NoError(t, err)

	assert.Equal(t, models.StatementIncome, statement.Kind)
	assert.Len(t, statement.Periods, 4)
	require.Len(t, statement.Rows, 2)

	assert.Equal(t, "Total Revenue", statement.Rows[0].Label)
	require.NotNil(t, statement.Rows[0].Values[0])
	assert.Equal(t, 100.0, *statement.Rows[0].Values[0])

	// Missing quarterly value stays nil, not zero
	assert.Nil(t, statement.Rows[1].Values[1])
}

func TestGetPriceHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod/AAPL", r.URL.Path)

		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"date": "2026-08-20", "close": 173.2},
			{"date": "2026-08-21", "close": 175.5},
			{"date": "not-a-date", "close": 1.0},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	bars, err := client.GetPriceHistory(context.Background(), "AAPL", 365*24*time.Hour)
	require.NoError(t, err)

	// Unparseable dates are dropped
	require.Len(t, bars, 2)
	assert.Equal(t, 173.2, bars[0].Close)
	assert.Equal(t, 175.5, bars[1].Close)
}

func TestGetFXQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fx/EURUSD", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"pair": "EURUSD", "price": 1.09})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	rate, err := client.GetFXQuote(context.Background(), "eurusd")
	require.NoError(t, err)
	assert.Equal(t, 1.09, rate)
}

func TestGetFXQuoteZeroPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"pair": "XXXYYY", "price": 0})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.GetFXQuote(context.Background(), "XXXYYY")
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestGetSnapshotToleratesStatementFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fundamentals/AAPL/profile":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"marketCap": 1000.0,
				"currency":  "USD",
			})
		case "/fundamentals/AAPL/income":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ticker":  "AAPL",
				"periods": []string{"2026-06-30"},
				"rows": []map[string]interface{}{
					{"label": "Total Revenue", "values": []interface{}{100.0}},
				},
			})
		default:
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	snapshot, err := client.GetSnapshot(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", snapshot.Ticker)
	assert.False(t, snapshot.FetchedAt.IsZero())
	assert.False(t, snapshot.Income.Empty())
	assert.True(t, snapshot.BalanceSheet.Empty())
	assert.True(t, snapshot.CashFlow.Empty())
	assert.Empty(t, snapshot.Prices)
}

func TestGetSnapshotProfileFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.GetSnapshot(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}
