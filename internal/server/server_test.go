package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sift/internal/app"
	"github.com/bobmcallan/sift/internal/clients/fundata"
	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
	"github.com/bobmcallan/sift/internal/services/report"
	"github.com/bobmcallan/sift/internal/services/screener"
)

// stubClient serves canned snapshots; tickers in failures get their error
type stubClient struct {
	failures map[string]error
}

func (c *stubClient) snapshot(ticker string) *models.RawSnapshot {
	bars := make([]models.PriceBar, 20)
	start := time.Now().AddDate(0, -1, 0)
	for i := range bars {
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: 50 + float64(i)}
	}

	return &models.RawSnapshot{
		Ticker:    ticker,
		FetchedAt: time.Now().UTC(),
		Profile: &models.CompanyProfile{
			Ticker: ticker,
			Fields: map[string]float64{
				"marketCap":      1000,
				"returnOnEquity": 0.22,
			},
			Meta: map[string]string{"currency": "USD", "financialCurrency": "USD", "shortName": ticker + " Corp"},
		},
		Income: &models.QuarterlyStatement{
			Ticker:  ticker,
			Kind:    models.StatementIncome,
			Periods: []string{"2026-06-30"},
			Rows: []models.StatementRow{
				{Label: "Total Revenue", Values: []*float64{models.Float(400)}},
				{Label: "Operating Income", Values: []*float64{models.Float(120)}},
				{Label: "Net Income", Values: []*float64{models.Float(80)}},
			},
		},
		BalanceSheet: &models.QuarterlyStatement{
			Ticker:  ticker,
			Kind:    models.StatementBalanceSheet,
			Periods: []string{"2026-06-30"},
			Rows: []models.StatementRow{
				{Label: "Total Debt", Values: []*float64{models.Float(100)}},
				{Label: "Cash And Cash Equivalents", Values: []*float64{models.Float(50)}},
				{Label: "Total Stockholder Equity", Values: []*float64{models.Float(500)}},
			},
		},
		CashFlow: &models.QuarterlyStatement{Ticker: ticker, Kind: models.StatementCashFlow},
		Prices:   bars,
	}
}

func (c *stubClient) GetSnapshot(ctx context.Context, ticker string) (*models.RawSnapshot, error) {
	if err, ok := c.failures[ticker]; ok {
		return nil, err
	}
	return c.snapshot(ticker), nil
}

func (c *stubClient) GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	return c.snapshot(ticker).Profile, nil
}

func (c *stubClient) GetQuarterlyStatement(ctx context.Context, ticker string, kind models.StatementKind) (*models.QuarterlyStatement, error) {
	return &models.QuarterlyStatement{Ticker: ticker, Kind: kind}, nil
}

func (c *stubClient) GetPriceHistory(ctx context.Context, ticker string, lookback time.Duration) ([]models.PriceBar, error) {
	return c.snapshot(ticker).Prices, nil
}

func (c *stubClient) GetFXQuote(ctx context.Context, pair string) (float64, error) {
	return 0, fmt.Errorf("no fx in tests")
}

type stubCache struct {
	mu    sync.Mutex
	items map[string]*models.RawSnapshot
}

func (m *stubCache) Get(ticker string) (*models.RawSnapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[ticker]
	return s, ok, nil
}

func (m *stubCache) Put(snapshot *models.RawSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[snapshot.Ticker] = snapshot
	return nil
}

func (m *stubCache) Delete(ticker string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, ticker)
	return nil
}

type stubHistory struct {
	mu   sync.Mutex
	runs map[string]*models.ScreenRun
}

func (m *stubHistory) SaveRun(run *models.ScreenRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *stubHistory) GetRun(id string) (*models.ScreenRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("screen run '%s' not found", id)
	}
	return run, nil
}

func (m *stubHistory) ListRuns(limit int) ([]models.ScreenRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ScreenRun, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, *r)
	}
	return out, nil
}

func (m *stubHistory) Close() error { return nil }

func newTestServer(t *testing.T, client *stubClient) (*Server, *stubHistory) {
	t.Helper()
	if client == nil {
		client = &stubClient{}
	}
	cfg := common.NewDefaultConfig()
	logger := common.NewSilentLogger()
	cache := &stubCache{items: make(map[string]*models.RawSnapshot)}
	history := &stubHistory{runs: make(map[string]*models.ScreenRun)}

	a := &app.App{
		Config:          cfg,
		Logger:          logger,
		Client:          client,
		SnapshotCache:   cache,
		RunHistory:      history,
		ScreenerService: screener.NewService(client, cache, history, cfg, logger),
		ReportService:   report.NewService(logger),
		StartupTime:     time.Now(),
	}
	return NewServer(a), history
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHandleVersion(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["version"])
}

func TestHandleConfigHidesAPIKey(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	srv.app.Config.Clients.Fundata.APIKey = "super-secret"

	rec := doRequest(t, srv, http.MethodGet, "/api/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "super-secret")
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	fd := resp["fundata"].(map[string]interface{})
	assert.Equal(t, true, fd["api_key_is_set"])
}

func TestHandleProfiles(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Profiles []models.ProfileInfo `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Profiles, 7)
	assert.Equal(t, "graham", resp.Profiles[0].Key)
	assert.Equal(t, "klarman", resp.Profiles[5].Key)
	assert.Equal(t, "einhorn", resp.Profiles[6].Key)
}

func TestHandleFundamentals(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/fundamentals", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var f models.CanonicalFundamentals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "AAPL", f.Ticker)
	require.NotNil(t, f.EnterpriseValue)
	assert.Equal(t, 1050.0, *f.EnterpriseValue)
}

func TestHandleFundamentalsUpstreamError(t *testing.T) {
	client := &stubClient{failures: map[string]error{
		"DOWN": &fundata.APIError{StatusCode: 503, Message: "unavailable", Endpoint: "/profile/DOWN"},
	}}
	srv, _ := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/DOWN/fundamentals", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleFundamentalsUnknownTicker(t *testing.T) {
	client := &stubClient{failures: map[string]error{
		"NOPE": &fundata.APIError{StatusCode: 404, Message: "not found", Endpoint: "/profile/NOPE"},
	}}
	srv, _ := newTestServer(t, client)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/NOPE/fundamentals", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRatios(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/ratios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Fundamentals models.CanonicalFundamentals `json:"fundamentals"`
		Ratios       models.RatioSet              `json:"ratios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Ratios.PE)
	assert.InDelta(t, 12.5, *resp.Ratios.PE, 0.001)
}

func TestHandleChecklist(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/checklist/buffett", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ChecklistResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "buffett", result.Profile)
	assert.NotEmpty(t, result.Rules)
	assert.NotEmpty(t, result.Summary.Headline)
}

func TestHandleChecklistUnknownProfile(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/checklist/bogle", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown profile key")
}

func TestHandleScore(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/score/graham", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "graham", result.Profile)
	assert.NotEmpty(t, result.Verdict)
}

func TestHandleReportPDF(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/report.pdf?profile=buffett", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestHandleChartPNG(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/chart.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, rec.Body.Bytes()[:4])
}

func TestHandleScreen(t *testing.T) {
	srv, history := newTestServer(t, nil)

	var b bytes.Buffer
	b.WriteString("Ticker,Company,Sector,Industry\n")
	for _, ticker := range []string{"AAA", "BBB", "CCC"} {
		fmt.Fprintf(&b, "%s,%s Corp,Tech,Software\n", ticker, ticker)
	}
	path := filepath.Join(t.TempDir(), "universe.csv")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0644))

	body, _ := json.Marshal(models.ScreenRequest{Profile: "graham", UniversePath: path})
	rec := doRequest(t, srv, http.MethodPost, "/api/screen", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var run models.ScreenRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 3, run.Requested)
	assert.Equal(t, 3, run.Succeeded)

	// Run retrievable afterwards
	saved, err := history.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, saved.ID)

	rec = doRequest(t, srv, http.MethodGet, "/api/screen/runs/"+run.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleScreenRequiresProfile(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/screen", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScreenRunNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/screen/runs/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodOptions, "/api/health", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDGenerated(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
