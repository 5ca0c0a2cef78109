// Package models defines the data structures shared across Sift
package models

import "time"

// StatementKind identifies one of the three quarterly statements
type StatementKind string

const (
	StatementIncome       StatementKind = "income"
	StatementBalanceSheet StatementKind = "balance_sheet"
	StatementCashFlow     StatementKind = "cash_flow"
)

// CompanyProfile is the provider's best-effort snapshot of named fields.
// Numeric fields land in Fields keyed by the provider's own labels (naming
// drifts across tickers and provider versions); textual metadata lands in
// Meta (currency, financial_currency, sector, industry, short_name).
type CompanyProfile struct {
	Ticker string             `json:"ticker"`
	Fields map[string]float64 `json:"fields"`
	Meta   map[string]string  `json:"meta"`
}

// StatementRow is one labelled line item with per-quarter values aligned to
// the statement's Periods. A nil entry means the provider reported no value
// for that quarter.
type StatementRow struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// QuarterlyStatement holds one statement's quarterly grid,
// most-recent quarter first.
type QuarterlyStatement struct {
	Ticker  string         `json:"ticker"`
	Kind    StatementKind  `json:"kind"`
	Periods []string       `json:"periods"`
	Rows    []StatementRow `json:"rows"`
}

// Empty reports whether the statement carries no rows.
func (s *QuarterlyStatement) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

// PriceBar is a single daily close
type PriceBar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// RawSnapshot bundles everything fetched for one ticker in one pass.
// Statements may be empty when the provider had nothing; Profile is
// required (a ticker without a profile is a failed fetch).
type RawSnapshot struct {
	Ticker       string              `json:"ticker"`
	FetchedAt    time.Time           `json:"fetched_at"`
	Profile      *CompanyProfile     `json:"profile"`
	Income       *QuarterlyStatement `json:"income,omitempty"`
	BalanceSheet *QuarterlyStatement `json:"balance_sheet,omitempty"`
	CashFlow     *QuarterlyStatement `json:"cash_flow,omitempty"`
	Prices       []PriceBar          `json:"prices,omitempty"`
}

// CanonicalFundamentals is the normalized record for one ticker. All numeric
// fields are pointers: nil means the data could not be resolved, which is
// distinct from an actual zero. Flow fields are trailing-twelve-month sums,
// balance fields are most-recent-quarter values, both converted into the
// market currency.
type CanonicalFundamentals struct {
	Ticker   string    `json:"ticker"`
	Name     string    `json:"name,omitempty"`
	Sector   string    `json:"sector,omitempty"`
	Industry string    `json:"industry,omitempty"`
	Currency string    `json:"currency,omitempty"`
	AsOf     time.Time `json:"as_of"`

	Price             *float64 `json:"price,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	EnterpriseValue   *float64 `json:"enterprise_value,omitempty"`

	RevenueTTM      *float64 `json:"revenue_ttm,omitempty"`
	EBITTTM         *float64 `json:"ebit_ttm,omitempty"`
	DepreciationTTM *float64 `json:"depreciation_ttm,omitempty"`
	EBITDATTM       *float64 `json:"ebitda_ttm,omitempty"`
	NetIncomeTTM    *float64 `json:"net_income_ttm,omitempty"`
	GrossProfitTTM  *float64 `json:"gross_profit_ttm,omitempty"`
	CFOTTM          *float64 `json:"cfo_ttm,omitempty"`
	CapExTTM        *float64 `json:"capex_ttm,omitempty"`
	FCFTTM          *float64 `json:"fcf_ttm,omitempty"`

	DebtMRQ               *float64 `json:"debt_mrq,omitempty"`
	CashMRQ               *float64 `json:"cash_mrq,omitempty"`
	EquityMRQ             *float64 `json:"equity_mrq,omitempty"`
	CurrentAssetsMRQ      *float64 `json:"current_assets_mrq,omitempty"`
	CurrentLiabilitiesMRQ *float64 `json:"current_liabilities_mrq,omitempty"`
	ShortTermDebtMRQ      *float64 `json:"short_term_debt_mrq,omitempty"`
	NetWorkingCapitalMRQ  *float64 `json:"nwc_mrq,omitempty"`
	NetPPEMRQ             *float64 `json:"net_ppe_mrq,omitempty"`
	NCAVEstimate          *float64 `json:"ncav_estimate,omitempty"`

	PretaxIncomeTTM *float64 `json:"pretax_income_ttm,omitempty"`
	TaxExpenseTTM   *float64 `json:"tax_expense_ttm,omitempty"`
	TaxRateEstimate *float64 `json:"tax_rate_estimate,omitempty"`
	NOPATTTM        *float64 `json:"nopat_ttm,omitempty"`

	InvestedCapital     *float64 `json:"invested_capital,omitempty"`
	MagicFormulaCapital *float64 `json:"magic_formula_capital,omitempty"`

	// Profile-reported quality, growth and leverage figures. Checklist
	// rules read these directly; derived fallbacks are filled when the
	// provider omits them but the statements allow a computation.
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`
	RevenueGrowth   *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth  *float64 `json:"earnings_growth,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio    *float64 `json:"current_ratio,omitempty"`
	QuickRatio      *float64 `json:"quick_ratio,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	PayoutRatio     *float64 `json:"payout_ratio,omitempty"`

	// Applied statement-to-market currency conversion rate (1.0 when both
	// currencies agree or no FX quote resolved).
	FXRate float64 `json:"fx_rate"`
}

// RatioSet holds the derived valuation multiples and return-on-capital
// figures. Nil means the inputs were insufficient, never zero-substituted.
type RatioSet struct {
	EVEBITDA      *float64 `json:"ev_ebitda,omitempty"`
	EVEBIT        *float64 `json:"ev_ebit,omitempty"`
	EVSales       *float64 `json:"ev_sales,omitempty"`
	EarningsYield *float64 `json:"earnings_yield,omitempty"`
	FCFYield      *float64 `json:"fcf_yield,omitempty"`
	PFCF          *float64 `json:"p_fcf,omitempty"`
	PE            *float64 `json:"pe,omitempty"`
	PB            *float64 `json:"pb,omitempty"`
	PEG           *float64 `json:"peg,omitempty"`
	FCFConversion *float64 `json:"fcf_conversion,omitempty"`

	ROIC *float64 `json:"roic,omitempty"`
	ROC  *float64 `json:"roc,omitempty"`
}

// Merge copies any non-nil fields of other into a copy of r.
func (r RatioSet) Merge(other RatioSet) RatioSet {
	merge := func(dst **float64, src *float64) {
		if *dst == nil && src != nil {
			*dst = src
		}
	}
	merge(&r.EVEBITDA, other.EVEBITDA)
	merge(&r.EVEBIT, other.EVEBIT)
	merge(&r.EVSales, other.EVSales)
	merge(&r.EarningsYield, other.EarningsYield)
	merge(&r.FCFYield, other.FCFYield)
	merge(&r.PFCF, other.PFCF)
	merge(&r.PE, other.PE)
	merge(&r.PB, other.PB)
	merge(&r.PEG, other.PEG)
	merge(&r.FCFConversion, other.FCFConversion)
	merge(&r.ROIC, other.ROIC)
	merge(&r.ROC, other.ROC)
	return r
}

// Float returns a pointer to v. Shorthand used everywhere a literal needs
// to become a nullable field.
func Float(v float64) *float64 {
	return &v
}
