package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/sift/internal/checklist"
	"github.com/bobmcallan/sift/internal/clients/fundata"
	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
	"github.com/bobmcallan/sift/internal/services/report"
)

// writeServiceError maps pipeline errors onto HTTP status codes. Upstream
// provider failures surface as 502 (404 passes through), bad profile keys
// as 400, everything else as 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *fundata.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	if strings.Contains(err.Error(), "unknown profile key") {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
		"go_version": runtime.Version(),
	})
}

// handleConfig returns the running configuration with secrets omitted.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment": cfg.Environment,
		"server": map[string]interface{}{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		},
		"storage": map[string]interface{}{
			"snapshot_path": cfg.Storage.SnapshotPath,
			"runs_path":     cfg.Storage.RunsPath,
			"snapshot_ttl":  cfg.Storage.SnapshotTTL,
		},
		"screener": map[string]interface{}{
			"universe_path": cfg.Screener.UniversePath,
			"concurrency":   cfg.Screener.Concurrency,
			"limit":         cfg.Screener.Limit,
		},
		"fundata": map[string]interface{}{
			"base_url":       cfg.Clients.Fundata.BaseURL,
			"rate_limit":     cfg.Clients.Fundata.RateLimit,
			"timeout":        cfg.Clients.Fundata.Timeout,
			"api_key_is_set": cfg.Clients.Fundata.APIKey != "",
		},
	})
}

// handleProfiles handles GET /api/profiles.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": checklist.ListProfiles(),
	})
}

// --- Per-ticker handlers ---

// routeStocks dispatches /api/stocks/{ticker}/{action}[/{arg}].
func (s *Server) routeStocks(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	ticker := parts[0]
	action := parts[1]
	arg := ""
	if len(parts) == 3 {
		arg = parts[2]
	}

	switch action {
	case "fundamentals":
		s.handleFundamentals(w, r, ticker)
	case "ratios":
		s.handleRatios(w, r, ticker)
	case "checklist":
		s.handleChecklist(w, r, ticker, arg)
	case "score":
		s.handleScore(w, r, ticker, arg)
	case "report.pdf":
		s.handleReportPDF(w, r, ticker)
	case "chart.png":
		s.handleChartPNG(w, r, ticker)
	default:
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown action: %s", action))
	}
}

func (s *Server) handleFundamentals(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	f, err := s.app.ScreenerService.Fundamentals(r.Context(), ticker)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, f)
}

func (s *Server) handleRatios(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	f, ratioSet, err := s.app.ScreenerService.Ratios(r.Context(), ticker)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fundamentals": f,
		"ratios":       ratioSet,
	})
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request, ticker, profile string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if profile == "" {
		WriteError(w, http.StatusBadRequest, "Profile key is required")
		return
	}

	result, err := s.app.ScreenerService.Checklist(r.Context(), ticker, profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request, ticker, profile string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if profile == "" {
		WriteError(w, http.StatusBadRequest, "Profile key is required")
		return
	}

	result, err := s.app.ScreenerService.Score(r.Context(), ticker, profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleReportPDF renders the one-page PDF. The checklist profile defaults
// to graham and is overridable with ?profile=.
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	profile := r.URL.Query().Get("profile")
	if profile == "" {
		profile = "graham"
	}

	f, ratioSet, err := s.app.ScreenerService.Ratios(r.Context(), ticker)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := checklist.Evaluate(profile, f, ratioSet)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := s.app.ReportService.BuildPDF(f, ratioSet, result)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Report error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-report.pdf"`, strings.ToUpper(ticker)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.ScreenerService.Snapshot(r.Context(), ticker)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := report.RenderPriceChart(snapshot.Ticker, snapshot.Prices)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Chart error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// --- Screen handlers ---

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ScreenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Profile == "" {
		WriteError(w, http.StatusBadRequest, "Profile key is required")
		return
	}

	run, err := s.app.ScreenerService.Screen(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, run)
}

func (s *Server) handleScreenRunList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	runs, err := s.app.ScreenerService.RunHistory(limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing runs: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"runs": runs,
	})
}

func (s *Server) handleScreenRunGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := PathParam(r, "/api/screen/runs/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Run ID is required")
		return
	}

	run, err := s.app.ScreenerService.Run(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Run not found: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, run)
}
