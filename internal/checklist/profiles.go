package checklist

import (
	"fmt"

	"github.com/bobmcallan/sift/internal/models"
)

// fmtNum renders a nullable ratio, em-dash for unresolved
func fmtNum(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}

// fmtPct renders a nullable rate as a percentage
func fmtPct(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func eval(name, condition, value string, status models.RuleStatus, comment string, weight int) models.RuleEvaluation {
	return models.RuleEvaluation{
		Name:      name,
		Condition: condition,
		Value:     value,
		Status:    status,
		Comment:   comment,
		Weight:    weight,
	}
}

// ---------- Graham (Deep Value) ----------

func grahamRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 5)

	// P/E <= 15
	if r.PE == nil {
		rules = append(rules, eval("P/E multiple", "P/E ≤ 15", fmtNum(r.PE),
			models.RuleNA, "P/E not available.", 20))
	} else if *r.PE <= 15 {
		rules = append(rules, eval("P/E multiple", "P/E ≤ 15", fmtNum(r.PE),
			models.RulePass, "Classic Graham low multiple.", 20))
	} else {
		rules = append(rules, eval("P/E multiple", "P/E ≤ 15", fmtNum(r.PE),
			models.RuleFail, "Above the classic Graham threshold.", 20))
	}

	// P/B <= 1.5
	if r.PB == nil {
		rules = append(rules, eval("Price to book", "P/B ≤ 1.5", fmtNum(r.PB),
			models.RuleNA, "Book value data missing.", 20))
	} else if *r.PB <= 1.5 {
		rules = append(rules, eval("Price to book", "P/B ≤ 1.5", fmtNum(r.PB),
			models.RulePass, "Discount or near-discount to book.", 20))
	} else {
		rules = append(rules, eval("Price to book", "P/B ≤ 1.5", fmtNum(r.PB),
			models.RuleFail, "Above classic Graham P/B.", 20))
	}

	// P/E x P/B <= 22.5, the famous Graham product
	if r.PE == nil || r.PB == nil {
		rules = append(rules, eval("Graham product", "P/E × P/B ≤ 22.5", "—",
			models.RuleNA, "Need both P/E and P/B to check this.", 20))
	} else {
		product := *r.PE * *r.PB
		if product <= 22.5 {
			rules = append(rules, eval("Graham product", "P/E × P/B ≤ 22.5", fmt.Sprintf("%.2f", product),
				models.RulePass, "Within Graham's classic combined limit.", 20))
		} else {
			rules = append(rules, eval("Graham product", "P/E × P/B ≤ 22.5", fmt.Sprintf("%.2f", product),
				models.RuleFail, "Above Graham's combined P/E×P/B limit.", 20))
		}
	}

	// Debt/Equity <= 0.5, <= 1.0 as warning
	if f.DebtToEquity == nil {
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RuleNA, "Leverage data missing.", 20))
	} else if *f.DebtToEquity <= 0.5 {
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RulePass, "Very conservative leverage.", 20))
	} else if *f.DebtToEquity <= 1.0 {
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RuleWarn, "Moderate leverage.", 20))
	} else {
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RuleFail, "High leverage for Graham style.", 20))
	}

	// Current ratio >= 2, >= 1.5 as warning
	if f.CurrentRatio == nil {
		rules = append(rules, eval("Liquidity", "Current ratio ≥ 2.0", fmtNum(f.CurrentRatio),
			models.RuleNA, "Liquidity data missing.", 20))
	} else if *f.CurrentRatio >= 2.0 {
		rules = append(rules, eval("Liquidity", "Current ratio ≥ 2.0", fmtNum(f.CurrentRatio),
			models.RulePass, "Strong near-term liquidity.", 20))
	} else if *f.CurrentRatio >= 1.5 {
		rules = append(rules, eval("Liquidity", "Current ratio ≥ 2.0", fmtNum(f.CurrentRatio),
			models.RuleWarn, "Acceptable but not ideal.", 20))
	} else {
		rules = append(rules, eval("Liquidity", "Current ratio ≥ 2.0", fmtNum(f.CurrentRatio),
			models.RuleFail, "Weak current ratio for Graham.", 20))
	}

	return rules
}

// ---------- Buffett (Quality at a Fair Price) ----------

func buffettRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 6)

	// ROE >= 15%
	switch {
	case f.ROE == nil:
		rules = append(rules, eval("Return on equity", "ROE ≥ 15%", fmtPct(f.ROE),
			models.RuleNA, "ROE not available.", 20))
	case *f.ROE >= 0.20:
		rules = append(rules, eval("Return on equity", "ROE ≥ 15%", fmtPct(f.ROE),
			models.RulePass, "Excellent long-term profitability.", 20))
	case *f.ROE >= 0.15:
		rules = append(rules, eval("Return on equity", "ROE ≥ 15%", fmtPct(f.ROE),
			models.RulePass, "Good profitability.", 20))
	case *f.ROE >= 0.10:
		rules = append(rules, eval("Return on equity", "ROE ≥ 15%", fmtPct(f.ROE),
			models.RuleWarn, "Okay, but not standout.", 20))
	default:
		rules = append(rules, eval("Return on equity", "ROE ≥ 15%", fmtPct(f.ROE),
			models.RuleFail, "Low ROE for a Buffett compounder.", 20))
	}

	// Gross margin >= 40%
	switch {
	case f.GrossMargin == nil:
		rules = append(rules, eval("Gross margin", "Gross margin ≥ 40%", fmtPct(f.GrossMargin),
			models.RuleNA, "Margin data missing.", 15))
	case *f.GrossMargin >= 0.4:
		rules = append(rules, eval("Gross margin", "Gross margin ≥ 40%", fmtPct(f.GrossMargin),
			models.RulePass, "Indicates pricing power and moat.", 15))
	default:
		rules = append(rules, eval("Gross margin", "Gross margin ≥ 40%", fmtPct(f.GrossMargin),
			models.RuleWarn, "Not obviously a high-moat margin.", 15))
	}

	// Operating margin >= 20%
	switch {
	case f.OperatingMargin == nil:
		rules = append(rules, eval("Operating margin", "Operating margin ≥ 20%", fmtPct(f.OperatingMargin),
			models.RuleNA, "Operating margin missing.", 15))
	case *f.OperatingMargin >= 0.20:
		rules = append(rules, eval("Operating margin", "Operating margin ≥ 20%", fmtPct(f.OperatingMargin),
			models.RulePass, "Strong operating profitability.", 15))
	case *f.OperatingMargin >= 0.12:
		rules = append(rules, eval("Operating margin", "Operating margin ≥ 20%", fmtPct(f.OperatingMargin),
			models.RuleWarn, "Decent but not elite.", 15))
	default:
		rules = append(rules, eval("Operating margin", "Operating margin ≥ 20%", fmtPct(f.OperatingMargin),
			models.RuleFail, "Thin operating margin.", 15))
	}

	// FCF / net income between 80% and 120%
	switch {
	case r.FCFConversion == nil:
		rules = append(rules, eval("Cash conversion", "FCF / Net income ≈ 80–120%", fmtPct(r.FCFConversion),
			models.RuleNA, "Cash-flow detail missing.", 15))
	case *r.FCFConversion >= 0.8 && *r.FCFConversion <= 1.2:
		rules = append(rules, eval("Cash conversion", "FCF / Net income ≈ 80–120%", fmtPct(r.FCFConversion),
			models.RulePass, "Earnings are backed by cash.", 15))
	case *r.FCFConversion >= 0.6 && *r.FCFConversion <= 1.4:
		rules = append(rules, eval("Cash conversion", "FCF / Net income ≈ 80–120%", fmtPct(r.FCFConversion),
			models.RuleWarn, "Okay but a bit noisy.", 15))
	default:
		rules = append(rules, eval("Cash conversion", "FCF / Net income ≈ 80–120%", fmtPct(r.FCFConversion),
			models.RuleFail, "Earnings not reliably backed by cash.", 15))
	}

	// Debt/Equity <= 0.5, <= 1.0 as warning
	switch {
	case f.DebtToEquity == nil:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RuleNA, "Leverage data missing.", 15))
	case *f.DebtToEquity <= 0.5:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RulePass, "Very conservative balance sheet.", 15))
	case *f.DebtToEquity <= 1.0:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RuleWarn, "Moderate leverage.", 15))
	default:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 0.5", fmtNum(f.DebtToEquity),
			models.RuleFail, "Heavy leverage for Buffett style.", 15))
	}

	// P/E <= 20, <= 30 as warning
	switch {
	case r.PE == nil:
		rules = append(rules, eval("Valuation", "P/E ≤ 20", fmtNum(r.PE),
			models.RuleNA, "P/E not available.", 20))
	case *r.PE <= 20:
		rules = append(rules, eval("Valuation", "P/E ≤ 20", fmtNum(r.PE),
			models.RulePass, "Reasonable price for quality.", 20))
	case *r.PE <= 30:
		rules = append(rules, eval("Valuation", "P/E ≤ 20", fmtNum(r.PE),
			models.RuleWarn, "Somewhat rich valuation.", 20))
	default:
		rules = append(rules, eval("Valuation", "P/E ≤ 20", fmtNum(r.PE),
			models.RuleFail, "Very expensive relative to earnings.", 20))
	}

	return rules
}

// ---------- Lynch (GARP / PEG) ----------

func lynchRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 4)

	growth := f.EarningsGrowth
	if growth == nil {
		growth = f.RevenueGrowth
	}

	// Growth 10-20%+
	switch {
	case growth == nil:
		rules = append(rules, eval("Growth rate", "Growth ≥ 10%", fmtPct(growth),
			models.RuleNA, "Growth data missing.", 30))
	case *growth >= 0.20:
		rules = append(rules, eval("Growth rate", "Growth ≥ 10%", fmtPct(growth),
			models.RulePass, "Very strong growth.", 30))
	case *growth >= 0.10:
		rules = append(rules, eval("Growth rate", "Growth ≥ 10%", fmtPct(growth),
			models.RulePass, "Solid, Lynch-style grower.", 30))
	case *growth >= 0.05:
		rules = append(rules, eval("Growth rate", "Growth ≥ 10%", fmtPct(growth),
			models.RuleWarn, "Mild growth.", 30))
	default:
		rules = append(rules, eval("Growth rate", "Growth ≥ 10%", fmtPct(growth),
			models.RuleFail, "Low growth for Lynch-style idea.", 30))
	}

	// PEG around 1
	switch {
	case r.PEG == nil:
		rules = append(rules, eval("PEG ratio", "PEG ≈ 1.0", fmtNum(r.PEG),
			models.RuleNA, "PEG can't be computed reliably.", 30))
	case *r.PEG <= 1.0:
		rules = append(rules, eval("PEG ratio", "PEG ≈ 1.0", fmtNum(r.PEG),
			models.RulePass, "Classic Lynch PEG ≤ 1.", 30))
	case *r.PEG <= 1.5:
		rules = append(rules, eval("PEG ratio", "PEG ≈ 1.0", fmtNum(r.PEG),
			models.RuleWarn, "PEG a bit high but maybe okay.", 30))
	default:
		rules = append(rules, eval("PEG ratio", "PEG ≈ 1.0", fmtNum(r.PEG),
			models.RuleFail, "PEG too high for GARP.", 30))
	}

	// P/E sanity check
	switch {
	case r.PE == nil:
		rules = append(rules, eval("P/E guardrail", "P/E not extreme (≤ 30)", fmtNum(r.PE),
			models.RuleNA, "P/E missing.", 20))
	case *r.PE <= 20:
		rules = append(rules, eval("P/E guardrail", "P/E not extreme (≤ 30)", fmtNum(r.PE),
			models.RulePass, "Reasonable earnings multiple.", 20))
	case *r.PE <= 30:
		rules = append(rules, eval("P/E guardrail", "P/E not extreme (≤ 30)", fmtNum(r.PE),
			models.RuleWarn, "Upper end of reasonable.", 20))
	default:
		rules = append(rules, eval("P/E guardrail", "P/E not extreme (≤ 30)", fmtNum(r.PE),
			models.RuleFail, "Too expensive for Lynch-style GARP.", 20))
	}

	// Debt/Equity guardrail
	switch {
	case f.DebtToEquity == nil:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RuleNA, "Leverage data missing.", 20))
	case *f.DebtToEquity <= 0.5:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RulePass, "Comfortable leverage for a grower.", 20))
	case *f.DebtToEquity <= 1.0:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RuleWarn, "Moderate leverage.", 20))
	default:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RuleFail, "High leverage for Lynch-style stock.", 20))
	}

	return rules
}

// ---------- Greenblatt (Magic Formula) ----------

func greenblattRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 3)

	// Earnings yield, EBIT/EV
	switch {
	case r.EarningsYield == nil:
		rules = append(rules, eval("Earnings yield", "Earnings yield ≥ 8%", fmtPct(r.EarningsYield),
			models.RuleNA, "Earnings yield can't be computed.", 40))
	case *r.EarningsYield >= 0.15:
		rules = append(rules, eval("Earnings yield", "Earnings yield ≥ 8%", fmtPct(r.EarningsYield),
			models.RulePass, "Very cheap on earnings.", 40))
	case *r.EarningsYield >= 0.08:
		rules = append(rules, eval("Earnings yield", "Earnings yield ≥ 8%", fmtPct(r.EarningsYield),
			models.RulePass, "Cheap-ish on earnings.", 40))
	default:
		rules = append(rules, eval("Earnings yield", "Earnings yield ≥ 8%", fmtPct(r.EarningsYield),
			models.RuleFail, "Not cheap for Magic Formula.", 40))
	}

	// Return on capital, EBIT / (NWC + net PPE)
	switch {
	case r.ROC == nil:
		rules = append(rules, eval("Return on capital", "ROC ≥ 20%", fmtPct(r.ROC),
			models.RuleNA, "Return on capital can't be computed.", 35))
	case *r.ROC >= 0.20:
		rules = append(rules, eval("Return on capital", "ROC ≥ 20%", fmtPct(r.ROC),
			models.RulePass, "Excellent return on capital.", 35))
	case *r.ROC >= 0.10:
		rules = append(rules, eval("Return on capital", "ROC ≥ 20%", fmtPct(r.ROC),
			models.RuleWarn, "Decent but below Magic Formula targets.", 35))
	default:
		rules = append(rules, eval("Return on capital", "ROC ≥ 20%", fmtPct(r.ROC),
			models.RuleFail, "Weak ROC for Magic Formula.", 35))
	}

	// EV/EBITDA sanity
	switch {
	case r.EVEBITDA == nil:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RuleNA, "EV/EBITDA missing.", 25))
	case *r.EVEBITDA <= 8:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RulePass, "Multiple consistent with Magic Formula cheapness.", 25))
	case *r.EVEBITDA <= 10:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RuleWarn, "Okay, not screaming cheap.", 25))
	default:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RuleFail, "Too expensive on EV/EBITDA.", 25))
	}

	return rules
}

// ---------- Burry (Deep FCF Value) ----------

func burryRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 3)

	// FCF yield
	switch {
	case r.FCFYield == nil:
		rules = append(rules, eval("FCF yield", "FCF yield ≥ 8–10%", fmtPct(r.FCFYield),
			models.RuleNA, "Free cash flow data missing.", 40))
	case *r.FCFYield >= 0.10:
		rules = append(rules, eval("FCF yield", "FCF yield ≥ 8–10%", fmtPct(r.FCFYield),
			models.RulePass, "Very cheap on cash flows.", 40))
	case *r.FCFYield >= 0.06:
		rules = append(rules, eval("FCF yield", "FCF yield ≥ 8–10%", fmtPct(r.FCFYield),
			models.RuleWarn, "Cheap-ish on cash flows.", 40))
	default:
		rules = append(rules, eval("FCF yield", "FCF yield ≥ 8–10%", fmtPct(r.FCFYield),
			models.RuleFail, "Not cheap on cash flows.", 40))
	}

	// EV/EBITDA, with P/E as backup when EBITDA is unresolved
	switch {
	case r.EVEBITDA == nil && r.PE == nil:
		rules = append(rules, eval("Valuation multiples", "EV/EBITDA ≤ 10 or P/E ≤ 12", "—",
			models.RuleNA, "Valuation multiples missing.", 35))
	case r.EVEBITDA != nil && *r.EVEBITDA <= 8:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RulePass, "EV/EBITDA consistent with deep value.", 35))
	case r.EVEBITDA != nil && *r.EVEBITDA <= 10:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RuleWarn, "Okay but not extreme value.", 35))
	case r.EVEBITDA != nil:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA ≤ 10", fmtNum(r.EVEBITDA),
			models.RuleFail, "Rich on EV/EBITDA for Burry.", 35))
	case *r.PE <= 10:
		rules = append(rules, eval("P/E", "P/E ≤ 12", fmtNum(r.PE),
			models.RulePass, "Low P/E as backup value signal.", 35))
	case *r.PE <= 14:
		rules = append(rules, eval("P/E", "P/E ≤ 12", fmtNum(r.PE),
			models.RuleWarn, "Moderate P/E.", 35))
	default:
		rules = append(rules, eval("P/E", "P/E ≤ 12", fmtNum(r.PE),
			models.RuleFail, "High P/E for deep value.", 35))
	}

	// Leverage
	switch {
	case f.DebtToEquity == nil:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RuleNA, "Leverage data missing.", 25))
	case *f.DebtToEquity <= 0.5:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RulePass, "Very conservative balance sheet.", 25))
	case *f.DebtToEquity <= 1.0:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RuleWarn, "Manageable leverage.", 25))
	default:
		rules = append(rules, eval("Leverage", "Debt/Equity ≤ 1.0", fmtNum(f.DebtToEquity),
			models.RuleFail, "High leverage for a deep value idea.", 25))
	}

	return rules
}

// ---------- Klarman (Asset / Margin of Safety) ----------

func klarmanRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 2)

	// P/B < 1.2
	switch {
	case r.PB == nil:
		rules = append(rules, eval("Price to book", "P/B < 1.2", fmtNum(r.PB),
			models.RuleNA, "Book value data missing.", 60))
	case *r.PB < 1.2:
		rules = append(rules, eval("Price to book", "P/B < 1.2", fmtNum(r.PB),
			models.RulePass, "Value territory.", 60))
	default:
		rules = append(rules, eval("Price to book", "P/B < 1.2", fmtNum(r.PB),
			models.RuleFail, "Not a classic asset bargain.", 60))
	}

	// NCAV vs market cap, the net-net test. NCAV here is the rough
	// NWC + cash - debt estimate.
	switch {
	case f.NCAVEstimate == nil || f.MarketCap == nil || *f.MarketCap == 0:
		rules = append(rules, eval("Asset backing", "NCAV / Market cap > 1.0", "—",
			models.RuleNA, "Balance sheet detail missing.", 40))
	default:
		coverage := *f.NCAVEstimate / *f.MarketCap
		if coverage > 1.0 {
			rules = append(rules, eval("Asset backing", "NCAV / Market cap > 1.0", fmt.Sprintf("%.2f", coverage),
				models.RulePass, "Net-net territory (rare in large caps).", 40))
		} else if coverage > 0.5 {
			rules = append(rules, eval("Asset backing", "NCAV / Market cap > 1.0", fmt.Sprintf("%.2f", coverage),
				models.RuleWarn, "Meaningful asset backing but no net-net margin.", 40))
		} else {
			rules = append(rules, eval("Asset backing", "NCAV / Market cap > 1.0", fmt.Sprintf("%.2f", coverage),
				models.RuleFail, "Price well above conservative asset value.", 40))
		}
	}

	return rules
}

// ---------- Einhorn (Relative Value) ----------

func einhornRules(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation {
	rules := make([]models.RuleEvaluation, 0, 2)

	// EV/EBITDA < 8 screens interesting on an absolute basis
	switch {
	case r.EVEBITDA == nil:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA < 8", fmtNum(r.EVEBITDA),
			models.RuleNA, "EV/EBITDA missing.", 60))
	case *r.EVEBITDA < 8:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA < 8", fmtNum(r.EVEBITDA),
			models.RulePass, "Potentially cheap on EV/EBITDA.", 60))
	case *r.EVEBITDA < 10:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA < 8", fmtNum(r.EVEBITDA),
			models.RuleWarn, "Borderline; needs peer context.", 60))
	default:
		rules = append(rules, eval("EV/EBITDA", "EV/EBITDA < 8", fmtNum(r.EVEBITDA),
			models.RuleFail, "Not cheap without a strong peer story.", 60))
	}

	// EV/Sales, useful for low-margin sectors
	switch {
	case r.EVSales == nil:
		rules = append(rules, eval("EV/Sales", "EV/Sales ≤ 2.0", fmtNum(r.EVSales),
			models.RuleNA, "EV/Sales missing.", 40))
	case *r.EVSales <= 2.0:
		rules = append(rules, eval("EV/Sales", "EV/Sales ≤ 2.0", fmtNum(r.EVSales),
			models.RulePass, "Modest sales multiple; useful in low-margin sectors.", 40))
	case *r.EVSales <= 4.0:
		rules = append(rules, eval("EV/Sales", "EV/Sales ≤ 2.0", fmtNum(r.EVSales),
			models.RuleWarn, "Mid-range sales multiple.", 40))
	default:
		rules = append(rules, eval("EV/Sales", "EV/Sales ≤ 2.0", fmtNum(r.EVSales),
			models.RuleFail, "Rich sales multiple.", 40))
	}

	return rules
}
