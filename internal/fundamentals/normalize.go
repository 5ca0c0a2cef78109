package fundamentals

import (
	"context"
	"math"

	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
)

const (
	defaultTaxRate = 0.21
	maxTaxRate     = 0.35
)

// Normalizer turns raw snapshots into canonical fundamentals. It is pure
// apart from the injected FX lookup, which is consulted only when the
// statement and market currencies disagree.
type Normalizer struct {
	fx     FXLookup
	logger *common.Logger
}

// NewNormalizer creates a normalizer. fx may be nil, in which case all
// statement figures are taken at a 1.0 conversion rate.
func NewNormalizer(fx FXLookup, logger *common.Logger) *Normalizer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Normalizer{fx: fx, logger: logger}
}

// Normalize resolves canonical line items from the raw snapshot: TTM sums
// for flow fields, MRQ values for balance fields, profile fields for
// market-level figures, then the derived aggregates. Unresolvable fields
// stay nil; derived fields stay nil when a required input is nil except
// for the documented zero-defaults (EV's debt/cash, the tax-rate fallback).
func (n *Normalizer) Normalize(ctx context.Context, raw *models.RawSnapshot) *models.CanonicalFundamentals {
	f := &models.CanonicalFundamentals{
		Ticker: raw.Ticker,
		AsOf:   raw.FetchedAt,
		FXRate: 1.0,
	}

	profile := raw.Profile
	if profile != nil {
		f.Name = firstMeta(profile, "shortName", "longName")
		f.Sector = profile.Meta["sector"]
		f.Industry = profile.Meta["industry"]
		f.Currency = profile.Meta["currency"]
	}

	income := newStatementResolver(raw.Income)
	balance := newStatementResolver(raw.BalanceSheet)
	cashflow := newStatementResolver(raw.CashFlow)

	// Statements may be reported in a different currency than the market
	// price. Everything statement-derived is converted into the market
	// currency before any aggregate mixes the two.
	rate := 1.0
	if profile != nil {
		statementCurrency := profile.Meta["financialCurrency"]
		marketCurrency := profile.Meta["currency"]
		rate = conversionRate(ctx, n.fx, statementCurrency, marketCurrency, n.logger)
	}
	f.FXRate = rate

	// TTM flow fields
	f.RevenueTTM = scale(income.ttmSum(labelsRevenue...), rate)
	f.EBITTTM = scale(income.ttmSum(labelsEBIT...), rate)
	f.EBITDATTM = scale(income.ttmSum(labelsEBITDA...), rate)
	f.GrossProfitTTM = scale(income.ttmSum(labelsGrossProfit...), rate)
	f.NetIncomeTTM = scale(income.ttmSum(labelsNetIncome...), rate)
	f.TaxExpenseTTM = scale(income.ttmSum(labelsTaxExpense...), rate)
	f.PretaxIncomeTTM = scale(income.ttmSum(labelsPretaxIncome...), rate)
	f.DepreciationTTM = scale(cashflow.ttmSum(labelsDepreciation...), rate)
	f.CFOTTM = scale(cashflow.ttmSum(labelsCFO...), rate)
	f.CapExTTM = scale(cashflow.ttmSum(labelsCapEx...), rate)

	// MRQ balance fields
	f.DebtMRQ = scale(balance.mrqValue(labelsDebt...), rate)
	f.CashMRQ = scale(balance.mrqValue(labelsCash...), rate)
	f.EquityMRQ = scale(balance.mrqValue(labelsEquity...), rate)
	f.CurrentAssetsMRQ = scale(balance.mrqValue(labelsCurrentAssets...), rate)
	f.CurrentLiabilitiesMRQ = scale(balance.mrqValue(labelsCurrentLiabilities...), rate)
	f.ShortTermDebtMRQ = scale(balance.mrqValue(labelsShortTermDebt...), rate)
	f.NetPPEMRQ = scale(balance.mrqValue(labelsNetPPE...), rate)

	// EBIT <-> EBITDA backfill through depreciation
	if f.EBITTTM == nil && f.EBITDATTM != nil && f.DepreciationTTM != nil {
		f.EBITTTM = models.Float(*f.EBITDATTM - *f.DepreciationTTM)
	}
	if f.EBITDATTM == nil && f.EBITTTM != nil && f.DepreciationTTM != nil {
		f.EBITDATTM = models.Float(*f.EBITTTM + *f.DepreciationTTM)
	}

	// FCF = CFO - |CapEx|; providers report capex with either sign
	if f.CFOTTM != nil && f.CapExTTM != nil {
		f.FCFTTM = models.Float(*f.CFOTTM - math.Abs(*f.CapExTTM))
	}

	// Market-level figures from the profile
	f.Price = n.resolvePrice(profile, raw.Prices)
	f.SharesOutstanding = n.resolveShares(profile, income)
	f.MarketCap = n.resolveMarketCap(profile, f.Price, f.SharesOutstanding)

	// Enterprise value: debt and cash default to zero only when a market
	// cap exists; otherwise fall back to a directly-reported EV field.
	// Presence is enough for the fallback: a net-cash company legitimately
	// reports a negative EV.
	if f.MarketCap != nil {
		f.EnterpriseValue = models.Float(*f.MarketCap + orZero(f.DebtMRQ) - orZero(f.CashMRQ))
	} else if ev := profileField(profile, fieldsEnterpriseValue...); ev != nil {
		f.EnterpriseValue = ev
	}

	// Non-cash net working capital
	if f.CurrentAssetsMRQ != nil && f.CurrentLiabilitiesMRQ != nil {
		nwc := (*f.CurrentAssetsMRQ - orZero(f.CashMRQ)) -
			(*f.CurrentLiabilitiesMRQ - orZero(f.ShortTermDebtMRQ))
		f.NetWorkingCapitalMRQ = &nwc
	}

	// Conservative net current asset value for asset-based screens:
	// NWC + Cash - Debt with absent components as zero. Nil only when
	// none of the three resolved.
	if f.NetWorkingCapitalMRQ != nil || f.CashMRQ != nil || f.DebtMRQ != nil {
		f.NCAVEstimate = models.Float(orZero(f.NetWorkingCapitalMRQ) + orZero(f.CashMRQ) - orZero(f.DebtMRQ))
	}

	// Tax rate estimate, clamped; fixed default when pretax is unusable
	// because NOPAT downstream always needs a rate.
	f.TaxRateEstimate = models.Float(defaultTaxRate)
	if f.TaxExpenseTTM != nil && f.PretaxIncomeTTM != nil && *f.PretaxIncomeTTM != 0 {
		taxRate := math.Abs(*f.TaxExpenseTTM) / math.Abs(*f.PretaxIncomeTTM)
		f.TaxRateEstimate = models.Float(math.Max(0, math.Min(maxTaxRate, taxRate)))
	}

	if f.EBITTTM != nil {
		f.NOPATTTM = models.Float(*f.EBITTTM * (1.0 - *f.TaxRateEstimate))
	}

	// Capital bases. Invested capital needs real equity; magic-formula
	// capital needs both of its components resolved.
	if f.EquityMRQ != nil {
		f.InvestedCapital = models.Float(orZero(f.DebtMRQ) + *f.EquityMRQ - orZero(f.CashMRQ))
	}
	if f.NetWorkingCapitalMRQ != nil && f.NetPPEMRQ != nil {
		f.MagicFormulaCapital = models.Float(*f.NetWorkingCapitalMRQ + *f.NetPPEMRQ)
	}

	n.fillQualityFields(f, profile)

	return f
}

// resolvePrice prefers the profile's price fields, then the latest close
func (n *Normalizer) resolvePrice(profile *models.CompanyProfile, prices []models.PriceBar) *float64 {
	if price := profileFieldPositive(profile, fieldsPrice...); price != nil {
		return price
	}
	if len(prices) > 0 {
		last := prices[len(prices)-1].Close
		if last > 0 {
			return &last
		}
	}
	return nil
}

// resolveShares walks the share-count chain: profile fields first, then the
// income statement's weighted-average diluted shares. Share counts are
// unit-free so the FX rate never applies to them.
func (n *Normalizer) resolveShares(profile *models.CompanyProfile, income *statementResolver) *float64 {
	if shares := profileFieldPositive(profile, fieldsShares...); shares != nil {
		return shares
	}
	if diluted := income.mrqValue(labelsDilutedShares...); diluted != nil && *diluted > 0 {
		return diluted
	}
	return nil
}

// resolveMarketCap walks the market-cap chain: direct field, general info
// field, then price times shares. Each fallback runs only when the prior
// step produced no positive value.
func (n *Normalizer) resolveMarketCap(profile *models.CompanyProfile, price, shares *float64) *float64 {
	if mc := profileFieldPositive(profile, fieldsMarketCapDirect...); mc != nil {
		return mc
	}
	if mc := profileFieldPositive(profile, fieldsMarketCapInfo...); mc != nil {
		return mc
	}
	if price != nil && shares != nil && *price > 0 && *shares > 0 {
		return models.Float(*price * *shares)
	}
	return nil
}

// fillQualityFields copies the provider's quality, growth and leverage
// figures and derives fallbacks from the statements where they are absent.
func (n *Normalizer) fillQualityFields(f *models.CanonicalFundamentals, profile *models.CompanyProfile) {
	f.ROE = profileField(profile, fieldsROE...)
	f.ROA = profileField(profile, fieldsROA...)
	f.GrossMargin = profileField(profile, fieldsGrossMargin...)
	f.OperatingMargin = profileField(profile, fieldsOpMargin...)
	f.NetMargin = profileField(profile, fieldsNetMargin...)
	f.RevenueGrowth = profileField(profile, fieldsRevenueGrowth...)
	f.EarningsGrowth = profileField(profile, fieldsEarningsGrowth...)
	f.CurrentRatio = profileField(profile, fieldsCurrentRatio...)
	f.QuickRatio = profileField(profile, fieldsQuickRatio...)
	f.DividendYield = profileField(profile, fieldsDividendYield...)
	f.PayoutRatio = profileField(profile, fieldsPayoutRatio...)

	// Some providers report debt/equity percentage-style (80 meaning 0.8)
	f.DebtToEquity = profileField(profile, fieldsDebtToEquity...)
	if f.DebtToEquity != nil && *f.DebtToEquity > 10 {
		f.DebtToEquity = models.Float(*f.DebtToEquity / 100.0)
	}

	// Statement-derived fallbacks
	if f.ROE == nil && f.NetIncomeTTM != nil && f.EquityMRQ != nil && *f.EquityMRQ != 0 {
		f.ROE = models.Float(*f.NetIncomeTTM / *f.EquityMRQ)
	}
	if f.GrossMargin == nil && f.GrossProfitTTM != nil && f.RevenueTTM != nil && *f.RevenueTTM != 0 {
		f.GrossMargin = models.Float(*f.GrossProfitTTM / *f.RevenueTTM)
	}
	if f.OperatingMargin == nil && f.EBITTTM != nil && f.RevenueTTM != nil && *f.RevenueTTM != 0 {
		f.OperatingMargin = models.Float(*f.EBITTTM / *f.RevenueTTM)
	}
	if f.NetMargin == nil && f.NetIncomeTTM != nil && f.RevenueTTM != nil && *f.RevenueTTM != 0 {
		f.NetMargin = models.Float(*f.NetIncomeTTM / *f.RevenueTTM)
	}
	if f.DebtToEquity == nil && f.DebtMRQ != nil && f.EquityMRQ != nil && *f.EquityMRQ != 0 {
		f.DebtToEquity = models.Float(*f.DebtMRQ / *f.EquityMRQ)
	}
	if f.CurrentRatio == nil && f.CurrentAssetsMRQ != nil && f.CurrentLiabilitiesMRQ != nil && *f.CurrentLiabilitiesMRQ != 0 {
		f.CurrentRatio = models.Float(*f.CurrentAssetsMRQ / *f.CurrentLiabilitiesMRQ)
	}
}

func firstMeta(profile *models.CompanyProfile, keys ...string) string {
	for _, key := range keys {
		if v := profile.Meta[key]; v != "" {
			return v
		}
	}
	return ""
}

func scale(v *float64, rate float64) *float64 {
	if v == nil {
		return nil
	}
	if rate == 1.0 {
		return v
	}
	return models.Float(*v * rate)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
