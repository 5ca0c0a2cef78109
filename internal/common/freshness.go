// Package common provides shared utilities for Sift
package common

import "time"

// Freshness TTLs for data components
const (
	FreshnessSnapshot = 12 * time.Hour     // raw provider snapshots
	FreshnessFXQuote  = 1 * time.Hour      // currency quotes move intraday
	FreshnessUniverse = 7 * 24 * time.Hour // ticker lists rarely change
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
