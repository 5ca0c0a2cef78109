package interfaces

import "github.com/bobmcallan/sift/internal/models"

// SnapshotCache stores raw provider snapshots keyed by ticker. Freshness is
// the caller's concern: Get returns whatever is stored along with its
// presence; the pipeline decides whether it is stale.
type SnapshotCache interface {
	Get(ticker string) (*models.RawSnapshot, bool, error)
	Put(snapshot *models.RawSnapshot) error
	Delete(ticker string) error
}

// RunHistoryStore persists bulk-screen runs
type RunHistoryStore interface {
	SaveRun(run *models.ScreenRun) error
	GetRun(id string) (*models.ScreenRun, error)
	ListRuns(limit int) ([]models.ScreenRun, error)
	Close() error
}
