// Package runhist provides BadgerHold-based persistence for bulk-screen runs.
package runhist

import (
	"fmt"
	"os"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
)

const maxRuns = 50

// Store persists screen runs. History is bounded: saving beyond maxRuns
// prunes the oldest entries.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens a run-history store at the given directory path
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run history directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Run history store opened")

	return &Store{db: db, logger: logger}, nil
}

// SaveRun persists one screen run
func (s *Store) SaveRun(run *models.ScreenRun) error {
	if run.ID == "" {
		return fmt.Errorf("screen run has no ID")
	}

	if err := s.db.Upsert(run.ID, run); err != nil {
		return fmt.Errorf("failed to save screen run: %w", err)
	}
	s.logger.Debug().Str("id", run.ID).Str("profile", run.Profile).Msg("Screen run saved")

	s.pruneOldRuns()

	return nil
}

func (s *Store) pruneOldRuns() {
	var runs []models.ScreenRun
	if err := s.db.Find(&runs, nil); err != nil || len(runs) <= maxRuns {
		return
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	for _, old := range runs[maxRuns:] {
		s.db.Delete(old.ID, models.ScreenRun{})
	}
	s.logger.Debug().Int("pruned", len(runs)-maxRuns).Msg("Pruned old screen runs")
}

// GetRun retrieves one run by ID
func (s *Store) GetRun(id string) (*models.ScreenRun, error) {
	var run models.ScreenRun
	err := s.db.Get(id, &run)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("screen run '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get screen run '%s': %w", id, err)
	}
	return &run, nil
}

// ListRuns returns runs most-recent first, up to limit
func (s *Store) ListRuns(limit int) ([]models.ScreenRun, error) {
	var runs []models.ScreenRun
	if err := s.db.Find(&runs, nil); err != nil {
		return nil, fmt.Errorf("failed to list screen runs: %w", err)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit <= 0 {
		limit = 20
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
