package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/pkg/models"
)

func f64(v float64) *float64 { return &v }

func baseMandate() *models.Mandate {
	return &models.Mandate{
		ID:             "m-1",
		InvestorName:   "Test Fund",
		RiskProfile:    models.RiskProfileCorePlus,
		AssetClasses:   []models.AssetClass{models.AssetClassResidential},
		ScoringWeights: models.DefaultScoringWeights(),
		DealCriteria:   models.DefaultDealCriteria(),
	}
}

func baseListing() models.Listing {
	return models.Listing{
		ID:         "l-1",
		AssetClass: models.AssetClassResidential,
		Tenure:     models.TenureFreehold,
		Address: models.Address{
			Region:   "Greater Manchester",
			Postcode: "M1 2AB",
		},
		Financial: models.ListingFinancial{
			AskingPrice: 500000,
		},
		PropertyDetails: models.PropertyDetails{
			Units:     1,
			Condition: models.ConditionLightRefurb,
		},
	}
}

func TestScore_Bounds(t *testing.T) {
	mandate := baseMandate()
	mandate.Geographic.Regions = []string{"London"}
	mandate.Financial.MinDealSize = f64(100000)
	mandate.Financial.MaxDealSize = f64(400000)
	mandate.Financial.MinYieldPercent = f64(8)

	listing := baseListing()
	listing.Address.Region = "Cornwall"
	listing.Financial.GrossYieldPercent = f64(1)

	breakdown, err := Score(mandate, listing)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, breakdown.Composite, 0.0)
	assert.LessOrEqual(t, breakdown.Composite, 100.0)
	for name, sub := range breakdown.SubScores {
		assert.GreaterOrEqual(t, sub, 0.0, name)
		assert.LessOrEqual(t, sub, 100.0, name)
	}
}

func TestScore_WeightRenormalization(t *testing.T) {
	mandate := baseMandate()
	listing := baseListing()

	first, err := Score(mandate, listing)
	require.NoError(t, err)

	scaled := baseMandate()
	scaled.ScoringWeights = models.ScoringWeights{
		LocationRegion:    mandate.ScoringWeights.LocationRegion * 7,
		LocationPostcode:  mandate.ScoringWeights.LocationPostcode * 7,
		PriceRange:        mandate.ScoringWeights.PriceRange * 7,
		PricePerSqft:      mandate.ScoringWeights.PricePerSqft * 7,
		YieldMinimum:      mandate.ScoringWeights.YieldMinimum * 7,
		YieldTarget:       mandate.ScoringWeights.YieldTarget * 7,
		PropertySize:      mandate.ScoringWeights.PropertySize * 7,
		PropertyCondition: mandate.ScoringWeights.PropertyCondition * 7,
		PropertyTenure:    mandate.ScoringWeights.PropertyTenure * 7,
		RiskProfile:       mandate.ScoringWeights.RiskProfile * 7,
	}

	second, err := Score(scaled, listing)
	require.NoError(t, err)

	assert.InDelta(t, first.Composite, second.Composite, 1e-9)
}

func TestScore_ZeroWeightSum(t *testing.T) {
	mandate := baseMandate()
	mandate.ScoringWeights = models.ScoringWeights{}

	_, err := Score(mandate, baseListing())
	require.Error(t, err)
}

func TestScore_LocationRegion(t *testing.T) {
	t.Run("unconstrained is neutral", func(t *testing.T) {
		breakdown, err := Score(baseMandate(), baseListing())
		require.NoError(t, err)
		assert.Equal(t, 70.0, breakdown.SubScores[SubScoreLocationRegion])
	})

	t.Run("explicit match scores full", func(t *testing.T) {
		mandate := baseMandate()
		mandate.Geographic.Regions = []string{"greater manchester"}
		breakdown, err := Score(mandate, baseListing())
		require.NoError(t, err)
		assert.Equal(t, 100.0, breakdown.SubScores[SubScoreLocationRegion])
	})

	t.Run("mismatch scores low", func(t *testing.T) {
		mandate := baseMandate()
		mandate.Geographic.Regions = []string{"London"}
		breakdown, err := Score(mandate, baseListing())
		require.NoError(t, err)
		assert.Equal(t, 30.0, breakdown.SubScores[SubScoreLocationRegion])
	})
}

func TestScore_LocationPostcode(t *testing.T) {
	t.Run("listed postcode area scores full", func(t *testing.T) {
		mandate := baseMandate()
		mandate.Geographic.Postcodes = []string{"M1"}
		breakdown, err := Score(mandate, baseListing())
		require.NoError(t, err)
		assert.Equal(t, 100.0, breakdown.SubScores[SubScoreLocationPostcode])
	})

	t.Run("region match only scores partial", func(t *testing.T) {
		mandate := baseMandate()
		mandate.Geographic.Postcodes = []string{"SW1"}
		mandate.Geographic.Regions = []string{"Greater Manchester"}
		breakdown, err := Score(mandate, baseListing())
		require.NoError(t, err)
		assert.Equal(t, 70.0, breakdown.SubScores[SubScoreLocationPostcode])
	})

	t.Run("no match scores zero", func(t *testing.T) {
		mandate := baseMandate()
		mandate.Geographic.Postcodes = []string{"SW1"}
		mandate.Geographic.Regions = []string{"London"}
		breakdown, err := Score(mandate, baseListing())
		require.NoError(t, err)
		assert.Equal(t, 0.0, breakdown.SubScores[SubScoreLocationPostcode])
	})
}

func TestScore_PriceRange(t *testing.T) {
	mandate := baseMandate()
	mandate.Financial.MinDealSize = f64(400000)
	mandate.Financial.MaxDealSize = f64(600000)

	t.Run("midpoint scores full", func(t *testing.T) {
		listing := baseListing()
		listing.Financial.AskingPrice = 500000
		breakdown, err := Score(mandate, listing)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, breakdown.SubScores[SubScorePriceRange], 1e-9)
	})

	t.Run("bound scores eighty", func(t *testing.T) {
		listing := baseListing()
		listing.Financial.AskingPrice = 400000
		breakdown, err := Score(mandate, listing)
		require.NoError(t, err)
		assert.InDelta(t, 80.0, breakdown.SubScores[SubScorePriceRange], 1e-9)
	})

	t.Run("outside band scores zero", func(t *testing.T) {
		listing := baseListing()
		listing.Financial.AskingPrice = 700000
		breakdown, err := Score(mandate, listing)
		require.NoError(t, err)
		assert.Equal(t, 0.0, breakdown.SubScores[SubScorePriceRange])
	})
}

func TestScore_YieldTargetRamp(t *testing.T) {
	mandate := baseMandate()
	mandate.Financial.MinYieldPercent = f64(5)
	mandate.Financial.TargetYield = f64(6.5)

	t.Run("between floor and target is strictly between the band values", func(t *testing.T) {
		listing := baseListing()
		listing.Financial.GrossYieldPercent = f64(6.0)
		breakdown, err := Score(mandate, listing)
		require.NoError(t, err)

		sub := breakdown.SubScores[SubScoreYieldTarget]
		assert.Greater(t, sub, 30.0)
		assert.Less(t, sub, 90.0)
		assert.InDelta(t, 70.0, sub, 1e-9)
	})

	t.Run("monotonic in yield", func(t *testing.T) {
		previous := -1.0
		for _, yield := range []float64{5.0, 5.5, 6.0, 6.5, 7.0, 8.0} {
			listing := baseListing()
			listing.Financial.GrossYieldPercent = f64(yield)
			breakdown, err := Score(mandate, listing)
			require.NoError(t, err)
			sub := breakdown.SubScores[SubScoreYieldTarget]
			assert.GreaterOrEqual(t, sub, previous, "yield %v", yield)
			previous = sub
		}
	})

	t.Run("at target scores ninety", func(t *testing.T) {
		listing := baseListing()
		listing.Financial.GrossYieldPercent = f64(6.5)
		breakdown, err := Score(mandate, listing)
		require.NoError(t, err)
		assert.InDelta(t, 90.0, breakdown.SubScores[SubScoreYieldTarget], 1e-9)
	})
}

func TestScore_YieldDerivedFromRent(t *testing.T) {
	mandate := baseMandate()
	mandate.Financial.MinYieldPercent = f64(5)

	listing := baseListing()
	listing.Financial.AskingPrice = 200000
	listing.Financial.CurrentRentAnnual = f64(12000) // 6% gross

	breakdown, err := Score(mandate, listing)
	require.NoError(t, err)
	assert.Equal(t, 100.0, breakdown.SubScores[SubScoreYieldMinimum])
}

func TestScore_Tenure(t *testing.T) {
	cases := []struct {
		name     string
		tenure   models.Tenure
		expected float64
	}{
		{"freehold", models.TenureFreehold, 100},
		{"share of freehold", models.TenureShareOfFreehold, 80},
		{"commonhold", models.TenureCommonhold, 60},
		{"leasehold without lease data", models.TenureLeasehold, 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			listing := baseListing()
			listing.Tenure = tc.tenure
			breakdown, err := Score(baseMandate(), listing)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, breakdown.SubScores[SubScorePropertyTenure])
		})
	}
}

func TestScore_RiskProfile(t *testing.T) {
	cases := []struct {
		name      string
		appetite  models.RiskProfile
		condition models.Condition
		expected  float64
	}{
		{"exact match", models.RiskProfileCorePlus, models.ConditionLightRefurb, 100},
		{"one notch of headroom", models.RiskProfileValueAdd, models.ConditionLightRefurb, 80},
		{"two notches of headroom", models.RiskProfileOpportunistic, models.ConditionLightRefurb, 60},
		{"one notch too risky", models.RiskProfileCore, models.ConditionLightRefurb, 70},
		{"far too risky", models.RiskProfileCore, models.ConditionDevelopment, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mandate := baseMandate()
			mandate.RiskProfile = tc.appetite
			listing := baseListing()
			listing.PropertyDetails.Condition = tc.condition
			breakdown, err := Score(mandate, listing)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, breakdown.SubScores[SubScoreRiskProfile])
		})
	}
}

func TestBMVDiscount(t *testing.T) {
	t.Run("no valuation reference", func(t *testing.T) {
		_, ok := BMVDiscount(baseListing())
		assert.False(t, ok)
	})

	t.Run("discount against estimated value", func(t *testing.T) {
		listing := baseListing()
		listing.Financial.AskingPrice = 425000
		listing.Financial.EstimatedValue = f64(500000)

		discount, ok := BMVDiscount(listing)
		require.True(t, ok)
		assert.InDelta(t, 15.0, discount, 1e-9)
	})
}
