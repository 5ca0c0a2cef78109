// Package snapshotfs implements file-based JSON storage for raw provider
// snapshots, one file per ticker.
package snapshotfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
)

// Store caches raw snapshots on disk. Writes are atomic (temp file plus
// rename) so a concurrent reader never sees a torn file.
type Store struct {
	dir    string
	logger *common.Logger
}

// NewStore opens (creating if needed) a snapshot store at path
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot store path %s: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("Snapshot store opened")
	return &Store{dir: path, logger: logger}, nil
}

// Get returns the cached snapshot for a ticker and whether one exists.
// Staleness is the caller's concern via the snapshot's FetchedAt.
func (s *Store) Get(ticker string) (*models.RawSnapshot, bool, error) {
	data, err := os.ReadFile(s.filePath(ticker))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot for %s: %w", ticker, err)
	}

	var snapshot models.RawSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot for %s: %w", ticker, err)
	}

	return &snapshot, true, nil
}

// Put writes a snapshot atomically
func (s *Store) Put(snapshot *models.RawSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath(snapshot.Ticker)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("ticker", snapshot.Ticker).Msg("Snapshot saved")
	return nil
}

// Delete removes the cached snapshot for a ticker, if any
func (s *Store) Delete(ticker string) error {
	err := os.Remove(s.filePath(ticker))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot for %s: %w", ticker, err)
	}
	return nil
}

func (s *Store) filePath(ticker string) string {
	return filepath.Join(s.dir, sanitizeKey(strings.ToUpper(ticker))+".json")
}

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}
