// Package fundamentals normalizes raw provider snapshots into the
// canonical record the ratio and checklist engines consume.
package fundamentals

// Candidate labels per canonical field, tried in order against the raw
// statement rows. Matching is case- and punctuation-insensitive, so these
// only need to cover genuinely different wordings, not spelling variants.
// New provider variants are additive: append, never branch.
var (
	labelsRevenue = []string{
		"Total Revenue",
		"Revenue",
		"Sales",
	}

	labelsEBIT = []string{
		"Operating Income",
		"EBIT",
		"Earnings Before Interest And Taxes",
	}

	labelsEBITDA = []string{
		"EBITDA",
		"Normalized EBITDA",
	}

	labelsDepreciation = []string{
		"Depreciation And Amortization",
		"Depreciation",
		"Depreciation Amortization Depletion",
	}

	labelsGrossProfit = []string{
		"Gross Profit",
	}

	labelsNetIncome = []string{
		"Net Income",
		"Net Income Common Stockholders",
		"Net Income To Common",
	}

	labelsTaxExpense = []string{
		"Income Tax Expense",
		"Provision For Income Taxes",
		"Tax Provision",
	}

	labelsPretaxIncome = []string{
		"Income Before Tax",
		"Pretax Income",
	}

	labelsCFO = []string{
		"Total Cash From Operating Activities",
		"Operating Cash Flow",
		"Net Cash Provided By Operating Activities",
	}

	labelsCapEx = []string{
		"Capital Expenditures",
		"Capital Expenditure",
		"Investment In Property Plant And Equipment",
	}

	labelsDebt = []string{
		"Total Debt",
		"Short Long Term Debt",
		"Long Term Debt",
		"Short Term Debt",
	}

	labelsCash = []string{
		"Cash And Cash Equivalents",
		"Cash And Short Term Investments",
		"Cash Cash Equivalents And Short Term Investments",
	}

	labelsEquity = []string{
		"Total Stockholder Equity",
		"Total Equity Gross Minority Interest",
		"Common Stock Equity",
	}

	labelsCurrentAssets = []string{
		"Total Current Assets",
		"Current Assets",
	}

	labelsCurrentLiabilities = []string{
		"Total Current Liabilities",
		"Current Liabilities",
	}

	labelsShortTermDebt = []string{
		"Short Term Debt",
		"Current Debt",
		"Current Debt And Capital Lease Obligation",
	}

	labelsNetPPE = []string{
		"Property Plant Equipment Net",
		"Net PPE",
		"Property Plant And Equipment Net",
	}

	labelsDilutedShares = []string{
		"Diluted Average Shares",
		"Weighted Average Shares Diluted",
		"Weighted Average Diluted Shares Outstanding",
	}
)

// Candidate profile fields, same ordered-fallback treatment against the
// provider's flat snapshot object.
var (
	fieldsMarketCapDirect = []string{"marketCap"}
	fieldsMarketCapInfo   = []string{"marketCapitalization", "market_cap"}
	fieldsEnterpriseValue = []string{"enterpriseValue"}
	fieldsPrice           = []string{"currentPrice", "regularMarketPrice", "previousClose"}
	fieldsShares          = []string{"sharesOutstanding", "impliedSharesOutstanding", "floatShares"}

	fieldsROE            = []string{"returnOnEquity"}
	fieldsROA            = []string{"returnOnAssets"}
	fieldsGrossMargin    = []string{"grossMargins"}
	fieldsOpMargin       = []string{"operatingMargins"}
	fieldsNetMargin      = []string{"profitMargins"}
	fieldsRevenueGrowth  = []string{"revenueGrowth"}
	fieldsEarningsGrowth = []string{"earningsGrowth"}
	fieldsDebtToEquity   = []string{"debtToEquity"}
	fieldsCurrentRatio   = []string{"currentRatio"}
	fieldsQuickRatio     = []string{"quickRatio"}
	fieldsDividendYield  = []string{"dividendYield", "trailingAnnualDividendYield"}
	fieldsPayoutRatio    = []string{"payoutRatio"}
)
