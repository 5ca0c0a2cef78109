// Package interfaces defines the contracts between Sift's layers
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/sift/internal/models"
)

// FundamentalsClient is the upstream data-provider contract. Any field or
// statement may come back partially filled; only GetProfile failure (and
// therefore GetSnapshot failure) is treated as a hard fetch error.
type FundamentalsClient interface {
	// GetProfile returns the provider's best-effort field map for a ticker.
	GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)

	// GetQuarterlyStatement returns one statement's quarterly grid,
	// most-recent quarter first.
	GetQuarterlyStatement(ctx context.Context, ticker string, kind models.StatementKind) (*models.QuarterlyStatement, error)

	// GetPriceHistory returns daily closes over the lookback window.
	GetPriceHistory(ctx context.Context, ticker string, lookback time.Duration) ([]models.PriceBar, error)

	// GetFXQuote returns the spot rate for a pair symbol such as "EURUSD".
	GetFXQuote(ctx context.Context, pair string) (float64, error)

	// GetSnapshot bundles profile, the three statements and price history.
	// Statement failures degrade to empty statements; profile failure is fatal.
	GetSnapshot(ctx context.Context, ticker string) (*models.RawSnapshot, error)
}
