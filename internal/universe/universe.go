// Package universe loads the ticker-universe table the bulk screener
// iterates over.
package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/bobmcallan/sift/internal/models"
)

var requiredColumns = []string{"Ticker", "Company", "Sector", "Industry"}

// Load reads a universe CSV. The header must carry the required columns
// (any order, extra columns ignored); a malformed file is a configuration
// error surfaced immediately, never per-ticker.
func Load(path string) ([]models.UniverseEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open universe file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read universe header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("universe file %s missing required column %q", path, required)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read universe rows: %w", err)
	}

	entries := make([]models.UniverseEntry, 0, len(records))
	for _, record := range records {
		ticker := strings.ToUpper(strings.TrimSpace(record[columns["Ticker"]]))
		if ticker == "" {
			continue
		}
		entries = append(entries, models.UniverseEntry{
			Ticker:   ticker,
			Company:  strings.TrimSpace(record[columns["Company"]]),
			Sector:   strings.TrimSpace(record[columns["Sector"]]),
			Industry: strings.TrimSpace(record[columns["Industry"]]),
		})
	}

	return entries, nil
}
