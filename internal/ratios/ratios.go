// Package ratios derives valuation multiples and return-on-capital figures
// from canonical fundamentals. Every computation follows one policy:
// division by nil or zero yields nil, never an error, never infinity.
package ratios

import "github.com/bobmcallan/sift/internal/models"

func safeDiv(a, b *float64) *float64 {
	if a == nil || b == nil || *b == 0 {
		return nil
	}
	v := *a / *b
	return &v
}

// ComputeMultiples derives the valuation multiples and yields
func ComputeMultiples(f *models.CanonicalFundamentals) models.RatioSet {
	r := models.RatioSet{
		EVEBITDA:      safeDiv(f.EnterpriseValue, f.EBITDATTM),
		EVEBIT:        safeDiv(f.EnterpriseValue, f.EBITTTM),
		EVSales:       safeDiv(f.EnterpriseValue, f.RevenueTTM),
		EarningsYield: safeDiv(f.EBITTTM, f.EnterpriseValue),
		FCFYield:      safeDiv(f.FCFTTM, f.MarketCap),
		PFCF:          safeDiv(f.MarketCap, f.FCFTTM),
		PE:            safeDiv(f.MarketCap, f.NetIncomeTTM),
		PB:            safeDiv(f.MarketCap, f.EquityMRQ),
		FCFConversion: safeDiv(f.FCFTTM, f.NetIncomeTTM),
	}

	r.PEG = computePEG(r.PE, growthForPEG(f))

	return r
}

// ComputeReturns derives the return-on-capital variants:
// ROIC = NOPAT / invested capital, and the magic-formula
// ROC = EBIT / (net working capital + net PPE).
func ComputeReturns(f *models.CanonicalFundamentals) models.RatioSet {
	return models.RatioSet{
		ROIC: safeDiv(f.NOPATTTM, f.InvestedCapital),
		ROC:  safeDiv(f.EBITTTM, f.MagicFormulaCapital),
	}
}

// growthForPEG prefers earnings growth, falls back to revenue growth
func growthForPEG(f *models.CanonicalFundamentals) *float64 {
	if f.EarningsGrowth != nil {
		return f.EarningsGrowth
	}
	return f.RevenueGrowth
}

// computePEG divides P/E by the growth rate expressed as a percentage
// (0.10 becomes 10). Non-positive growth yields nil: a negative or zero
// growth PEG carries no signal.
func computePEG(pe, growth *float64) *float64 {
	if pe == nil || growth == nil || *growth <= 0 {
		return nil
	}
	v := *pe / (*growth * 100.0)
	return &v
}
