// Package screener runs the per-ticker analysis pipeline and the bulk
// screen over a ticker universe.
package screener

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/sift/internal/checklist"
	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/fundamentals"
	"github.com/bobmcallan/sift/internal/interfaces"
	"github.com/bobmcallan/sift/internal/models"
	"github.com/bobmcallan/sift/internal/ratios"
	"github.com/bobmcallan/sift/internal/universe"
)

// Service wires the fetch, normalize, ratio and checklist stages together.
// Per-ticker computations share no mutable state, so the bulk screen fans
// out with a bounded semaphore.
type Service struct {
	client      interfaces.FundamentalsClient
	cache       interfaces.SnapshotCache
	history     interfaces.RunHistoryStore
	normalizer  *fundamentals.Normalizer
	logger      *common.Logger
	snapshotTTL time.Duration
	concurrency int
	defaultPath string
	defaultLim  int
}

// NewService creates the screener service
func NewService(
	client interfaces.FundamentalsClient,
	cache interfaces.SnapshotCache,
	history interfaces.RunHistoryStore,
	config *common.Config,
	logger *common.Logger,
) *Service {
	concurrency := config.Screener.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Service{
		client:      client,
		cache:       cache,
		history:     history,
		normalizer:  fundamentals.NewNormalizer(client.GetFXQuote, logger),
		logger:      logger,
		snapshotTTL: config.Storage.GetSnapshotTTL(),
		concurrency: concurrency,
		defaultPath: config.Screener.UniversePath,
		defaultLim:  config.Screener.Limit,
	}
}

// Snapshot returns the raw snapshot for a ticker, served from the cache
// while fresh, otherwise fetched and cached.
func (s *Service) Snapshot(ctx context.Context, ticker string) (*models.RawSnapshot, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if s.cache != nil {
		cached, found, err := s.cache.Get(ticker)
		if err != nil {
			s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Snapshot cache read failed")
		} else if found && common.IsFresh(cached.FetchedAt, s.snapshotTTL) {
			s.logger.Debug().Str("ticker", ticker).Msg("Snapshot served from cache")
			return cached, nil
		}
	}

	snapshot, err := s.client.GetSnapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(snapshot); err != nil {
			s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Snapshot cache write failed")
		}
	}

	return snapshot, nil
}

// Fundamentals fetches and normalizes one ticker
func (s *Service) Fundamentals(ctx context.Context, ticker string) (*models.CanonicalFundamentals, error) {
	snapshot, err := s.Snapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(ctx, snapshot), nil
}

// Ratios fetches, normalizes and derives the full ratio set for one ticker
func (s *Service) Ratios(ctx context.Context, ticker string) (*models.CanonicalFundamentals, *models.RatioSet, error) {
	f, err := s.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}
	merged := ratios.ComputeMultiples(f).Merge(ratios.ComputeReturns(f))
	return f, &merged, nil
}

// Checklist evaluates one profile against one ticker
func (s *Service) Checklist(ctx context.Context, ticker, profile string) (*models.ChecklistResult, error) {
	f, r, err := s.Ratios(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return checklist.Evaluate(profile, f, r)
}

// Score runs the weighted scoring variant for one ticker
func (s *Service) Score(ctx context.Context, ticker, profile string) (*models.ScoreResult, error) {
	f, r, err := s.Ratios(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return checklist.Score(profile, f, r)
}

// Screen runs the pipeline over a ticker universe. Fetch-failed tickers are
// skipped, never fatal for the batch; successful rows are ranked by score,
// then pass count. The run is persisted when a history store is wired.
func (s *Service) Screen(ctx context.Context, req models.ScreenRequest) (*models.ScreenRun, error) {
	if _, err := checklist.Evaluate(req.Profile, &models.CanonicalFundamentals{}, &models.RatioSet{}); err != nil {
		return nil, err
	}

	path := req.UniversePath
	if path == "" {
		path = s.defaultPath
	}
	entries, err := universe.Load(path)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLim
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	started := time.Now()
	run := &models.ScreenRun{
		ID:        uuid.NewString(),
		Profile:   req.Profile,
		StartedAt: started.UTC(),
		Requested: len(entries),
	}

	type outcome struct {
		row     models.ScreenRow
		skipped string
	}

	results := make([]outcome, len(entries))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, entry := range entries {
		// Acquire before spawning so at most s.concurrency goroutines
		// exist at a time, rather than one per universe entry.
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, entry models.UniverseEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			row, err := s.screenOne(ctx, entry, req.Profile)
			if err != nil {
				s.logger.Warn().Str("ticker", entry.Ticker).Err(err).Msg("Ticker skipped in screen")
				results[i] = outcome{skipped: entry.Ticker}
				return
			}
			results[i] = outcome{row: row}
		}(i, entry)
	}
	wg.Wait()

	for _, res := range results {
		if res.skipped != "" {
			run.Skipped = append(run.Skipped, res.skipped)
			continue
		}
		run.Rows = append(run.Rows, res.row)
	}
	run.Succeeded = len(run.Rows)
	run.DurationMS = time.Since(started).Milliseconds()

	sort.Slice(run.Rows, func(i, j int) bool {
		a, b := run.Rows[i], run.Rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Passes != b.Passes {
			return a.Passes > b.Passes
		}
		return a.Ticker < b.Ticker
	})

	if s.history != nil {
		if err := s.history.SaveRun(run); err != nil {
			s.logger.Warn().Str("id", run.ID).Err(err).Msg("Failed to persist screen run")
		}
	}

	s.logger.Info().
		Str("id", run.ID).
		Str("profile", run.Profile).
		Int("requested", run.Requested).
		Int("succeeded", run.Succeeded).
		Int("skipped", len(run.Skipped)).
		Int64("duration_ms", run.DurationMS).
		Msg("Screen completed")

	return run, nil
}

func (s *Service) screenOne(ctx context.Context, entry models.UniverseEntry, profile string) (models.ScreenRow, error) {
	f, r, err := s.Ratios(ctx, entry.Ticker)
	if err != nil {
		return models.ScreenRow{}, err
	}

	result, err := checklist.Evaluate(profile, f, r)
	if err != nil {
		return models.ScreenRow{}, err
	}
	score, err := checklist.Score(profile, f, r)
	if err != nil {
		return models.ScreenRow{}, err
	}

	return models.ScreenRow{
		Ticker:   entry.Ticker,
		Company:  entry.Company,
		Sector:   entry.Sector,
		Industry: entry.Industry,
		Passes:   result.Summary.Passes,
		Warns:    result.Summary.Warns,
		Fails:    result.Summary.Fails,
		Score:    score.Score,
		Headline: result.Summary.Headline,
	}, nil
}

// RunHistory lists persisted runs, most recent first
func (s *Service) RunHistory(limit int) ([]models.ScreenRun, error) {
	if s.history == nil {
		return nil, fmt.Errorf("run history is not configured")
	}
	return s.history.ListRuns(limit)
}

// Run retrieves one persisted run by ID
func (s *Service) Run(id string) (*models.ScreenRun, error) {
	if s.history == nil {
		return nil, fmt.Errorf("run history is not configured")
	}
	return s.history.GetRun(id)
}
