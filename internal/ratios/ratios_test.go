package ratios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sift/internal/models"
)

func TestComputeMultiples(t *testing.T) {
	f := &models.CanonicalFundamentals{
		EnterpriseValue: models.Float(800),
		EBITDATTM:       models.Float(100),
		EBITTTM:         models.Float(80),
		RevenueTTM:      models.Float(400),
		MarketCap:       models.Float(500),
		FCFTTM:          models.Float(50),
		NetIncomeTTM:    models.Float(40),
		EquityMRQ:       models.Float(250),
	}

	r := ComputeMultiples(f)

	require.NotNil(t, r.EVEBITDA)
	assert.Equal(t, 8.0, *r.EVEBITDA)
	require.NotNil(t, r.EVEBIT)
	assert.Equal(t, 10.0, *r.EVEBIT)
	require.NotNil(t, r.EVSales)
	assert.Equal(t, 2.0, *r.EVSales)
	require.NotNil(t, r.EarningsYield)
	assert.Equal(t, 0.1, *r.EarningsYield)
	require.NotNil(t, r.FCFYield)
	assert.Equal(t, 0.1, *r.FCFYield)
	require.NotNil(t, r.PFCF)
	assert.Equal(t, 10.0, *r.PFCF)
	require.NotNil(t, r.PE)
	assert.Equal(t, 12.5, *r.PE)
	require.NotNil(t, r.PB)
	assert.Equal(t, 2.0, *r.PB)
	require.NotNil(t, r.FCFConversion)
	assert.Equal(t, 1.25, *r.FCFConversion)
}

func TestComputeMultiplesNullPropagation(t *testing.T) {
	// FCF unresolved: everything FCF-based is nil, not zero
	f := &models.CanonicalFundamentals{
		MarketCap: models.Float(500),
	}

	r := ComputeMultiples(f)

	assert.Nil(t, r.FCFYield)
	assert.Nil(t, r.PFCF)
	assert.Nil(t, r.EVEBITDA)
	assert.Nil(t, r.PE)
	assert.Nil(t, r.PEG)
}

func TestComputeMultiplesZeroDenominator(t *testing.T) {
	f := &models.CanonicalFundamentals{
		EnterpriseValue: models.Float(800),
		EBITDATTM:       models.Float(0),
	}

	r := ComputeMultiples(f)
	assert.Nil(t, r.EVEBITDA)
}

func TestPEG(t *testing.T) {
	f := &models.CanonicalFundamentals{
		MarketCap:      models.Float(500),
		NetIncomeTTM:   models.Float(25), // P/E = 20
		EarningsGrowth: models.Float(0.10),
	}

	r := ComputeMultiples(f)

	require.NotNil(t, r.PEG)
	assert.InDelta(t, 2.0, *r.PEG, 1e-9)
}

func TestPEGFallsBackToRevenueGrowth(t *testing.T) {
	f := &models.CanonicalFundamentals{
		MarketCap:     models.Float(500),
		NetIncomeTTM:  models.Float(25),
		RevenueGrowth: models.Float(0.20),
	}

	r := ComputeMultiples(f)

	require.NotNil(t, r.PEG)
	assert.InDelta(t, 1.0, *r.PEG, 1e-9)
}

func TestPEGNilOnNonPositiveGrowth(t *testing.T) {
	tests := []struct {
		name   string
		growth *float64
	}{
		{"negative growth", models.Float(-0.05)},
		{"zero growth", models.Float(0)},
		{"missing growth", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &models.CanonicalFundamentals{
				MarketCap:      models.Float(500),
				NetIncomeTTM:   models.Float(25),
				EarningsGrowth: tt.growth,
			}
			r := ComputeMultiples(f)
			assert.Nil(t, r.PEG)
		})
	}
}

func TestComputeReturns(t *testing.T) {
	f := &models.CanonicalFundamentals{
		EBITTTM:             models.Float(50),
		NOPATTTM:            models.Float(39.5), // EBIT x (1 - 0.21)
		InvestedCapital:     models.Float(250),
		MagicFormulaCapital: models.Float(200),
	}

	r := ComputeReturns(f)

	require.NotNil(t, r.ROIC)
	assert.InDelta(t, 0.158, *r.ROIC, 1e-9)
	require.NotNil(t, r.ROC)
	assert.InDelta(t, 0.25, *r.ROC, 1e-9)
}

func TestComputeReturnsNullPropagation(t *testing.T) {
	f := &models.CanonicalFundamentals{
		EBITTTM: models.Float(50),
	}

	r := ComputeReturns(f)
	assert.Nil(t, r.ROIC)
	assert.Nil(t, r.ROC)
}

func TestRatioSetMerge(t *testing.T) {
	multiples := models.RatioSet{EVEBITDA: models.Float(8)}
	returns := models.RatioSet{ROIC: models.Float(0.15)}

	merged := multiples.Merge(returns)

	require.NotNil(t, merged.EVEBITDA)
	assert.Equal(t, 8.0, *merged.EVEBITDA)
	require.NotNil(t, merged.ROIC)
	assert.Equal(t, 0.15, *merged.ROIC)
}
