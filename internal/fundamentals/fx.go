package fundamentals

import (
	"context"
	"strings"

	"github.com/bobmcallan/sift/internal/common"
)

// FXLookup resolves a spot rate for a pair symbol such as "EURUSD".
// Satisfied by the fundamentals client's GetFXQuote.
type FXLookup func(ctx context.Context, pair string) (float64, error)

// conversionRate resolves the rate converting amounts in `from` into `to`.
// It tries the direct pair with one retry, then the inverted pair with one
// retry, and defaults to 1.0 when nothing quotes. Statement conversion must
// never fail a ticker over a missing FX quote.
func conversionRate(ctx context.Context, fx FXLookup, from, to string, logger *common.Logger) float64 {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if fx == nil || from == "" || to == "" || from == to {
		return 1.0
	}

	if rate, ok := lookupWithRetry(ctx, fx, from+to); ok && rate > 0 {
		return rate
	}

	if rate, ok := lookupWithRetry(ctx, fx, to+from); ok && rate > 0 {
		return 1.0 / rate
	}

	logger.Warn().
		Str("from", from).
		Str("to", to).
		Msg("No FX quote resolved, defaulting to 1.0")
	return 1.0
}

func lookupWithRetry(ctx context.Context, fx FXLookup, pair string) (float64, bool) {
	for attempt := 0; attempt < 2; attempt++ {
		rate, err := fx(ctx, pair)
		if err == nil {
			return rate, true
		}
		if ctx.Err() != nil {
			return 0, false
		}
	}
	return 0, false
}
