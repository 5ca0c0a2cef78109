// Package report renders a ticker's analysis as human-readable tables,
// a price chart and a PDF document.
package report

import (
	"fmt"
	"math"

	"github.com/bobmcallan/sift/internal/models"
)

// Row is one label/value line in a report section
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormatNumber renders large currency amounts with B/M suffixes
func FormatNumber(v *float64) string {
	if v == nil {
		return "—"
	}
	x := *v
	abs := math.Abs(x)
	switch {
	case abs >= 1e11:
		return fmt.Sprintf("%.0fB", x/1e9)
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", x/1e9)
	case abs >= 1e8:
		return fmt.Sprintf("%.0fM", x/1e6)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", x/1e6)
	default:
		return fmt.Sprintf("%.0f", x)
	}
}

// FormatPercent renders a decimal rate as a percentage
func FormatPercent(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

// FormatRatio renders a multiple with the x suffix
func FormatRatio(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f×", *v)
}

// CoreMetricsRows builds the core-metrics table in its fixed order
func CoreMetricsRows(f *models.CanonicalFundamentals) []Row {
	return []Row{
		{"Market Cap", FormatNumber(f.MarketCap)},
		{"Enterprise Value (EV)", FormatNumber(f.EnterpriseValue)},
		{"Revenue (TTM)", FormatNumber(f.RevenueTTM)},
		{"EBIT (TTM)", FormatNumber(f.EBITTTM)},
		{"Depreciation (TTM)", FormatNumber(f.DepreciationTTM)},
		{"EBITDA (TTM)", FormatNumber(f.EBITDATTM)},
		{"CFO (TTM)", FormatNumber(f.CFOTTM)},
		{"CapEx (TTM)", FormatNumber(f.CapExTTM)},
		{"FCF (TTM)", FormatNumber(f.FCFTTM)},
		{"Debt (MRQ)", FormatNumber(f.DebtMRQ)},
		{"Cash (MRQ)", FormatNumber(f.CashMRQ)},
		{"Total Equity (MRQ)", FormatNumber(f.EquityMRQ)},
		{"NWC (MRQ)", FormatNumber(f.NetWorkingCapitalMRQ)},
		{"Net PPE (MRQ)", FormatNumber(f.NetPPEMRQ)},
		{"Tax Rate (est.)", FormatPercent(f.TaxRateEstimate)},
	}
}

// MultiplesRows builds the valuation multiples / yields table
func MultiplesRows(r *models.RatioSet) []Row {
	return []Row{
		{"EV/EBITDA", FormatRatio(r.EVEBITDA)},
		{"EV/EBIT", FormatRatio(r.EVEBIT)},
		{"EV/Sales", FormatRatio(r.EVSales)},
		{"EBIT/EV (Earnings Yield)", FormatPercent(r.EarningsYield)},
		{"FCF Yield (to Equity)", FormatPercent(r.FCFYield)},
		{"P/FCF", FormatRatio(r.PFCF)},
		{"P/E", FormatRatio(r.PE)},
		{"P/B", FormatRatio(r.PB)},
		{"PEG", FormatRatio(r.PEG)},
	}
}

// ReturnsRows builds the returns-on-capital table
func ReturnsRows(r *models.RatioSet) []Row {
	return []Row{
		{"ROIC (NOPAT / Invested Capital)", FormatPercent(r.ROIC)},
		{"ROC (EBIT / (NWC + Net PPE))", FormatPercent(r.ROC)},
	}
}
