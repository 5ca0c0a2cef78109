package runhist

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)

	run := &models.ScreenRun{
		ID:        "run-1",
		Profile:   "graham",
		StartedAt: time.Now().UTC(),
		Requested: 10,
		Succeeded: 9,
		Skipped:   []string{"ZZZZ"},
		Rows: []models.ScreenRow{
			{Ticker: "AAPL", Passes: 4, Score: 80},
		},
	}

	require.NoError(t, store.SaveRun(run))

	got, err := store.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "graham", got.Profile)
	assert.Equal(t, []string{"ZZZZ"}, got.Skipped)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "AAPL", got.Rows[0].Ticker)
}

func TestSaveRunRequiresID(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveRun(&models.ScreenRun{Profile: "graham"})
	require.Error(t, err)
}

func TestGetRunNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRun("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRunsMostRecentFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveRun(&models.ScreenRun{
			ID:        fmt.Sprintf("run-%d", i),
			Profile:   "burry",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.ListRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
	assert.Equal(t, "run-2", runs[2].ID)
}

func TestRunsPrunedBeyondLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC()
	for i := 0; i < maxRuns+5; i++ {
		require.NoError(t, store.SaveRun(&models.ScreenRun{
			ID:        fmt.Sprintf("run-%03d", i),
			Profile:   "lynch",
			StartedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	runs, err := store.ListRuns(maxRuns + 10)
	require.NoError(t, err)
	assert.Len(t, runs, maxRuns)

	// The oldest runs are gone
	_, err = store.GetRun("run-000")
	require.Error(t, err)
}
