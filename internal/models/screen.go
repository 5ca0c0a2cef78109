package models

import "time"

// UniverseEntry is one row of the ticker-universe file
type UniverseEntry struct {
	Ticker   string `json:"ticker"`
	Company  string `json:"company"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// ScreenRequest selects what a bulk screen runs over
type ScreenRequest struct {
	Profile      string `json:"profile"`
	UniversePath string `json:"universe_path,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// ScreenRow is one ticker's outcome inside a bulk screen
type ScreenRow struct {
	Ticker   string `json:"ticker"`
	Company  string `json:"company,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`
	Passes   int    `json:"passes"`
	Warns    int    `json:"warns"`
	Fails    int    `json:"fails"`
	Score    int    `json:"score"`
	Headline string `json:"headline"`
}

// ScreenRun is one persisted bulk-screen execution. Fetch-failed tickers
// are recorded in Skipped and produce no row.
type ScreenRun struct {
	ID         string      `json:"id" badgerhold:"key"`
	Profile    string      `json:"profile"`
	StartedAt  time.Time   `json:"started_at"`
	DurationMS int64       `json:"duration_ms"`
	Requested  int         `json:"requested"`
	Succeeded  int         `json:"succeeded"`
	Skipped    []string    `json:"skipped,omitempty"`
	Rows       []ScreenRow `json:"rows"`
}
