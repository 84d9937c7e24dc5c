package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/pkg/models"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func openMandate() *models.Mandate {
	return &models.Mandate{
		ID:           "m-1",
		InvestorName: "Test Fund",
		AssetClasses: []models.AssetClass{models.AssetClassResidential, models.AssetClassHMO},
		DealCriteria: models.DefaultDealCriteria(),
	}
}

func candidate() models.Listing {
	return models.Listing{
		ID:         "l-1",
		AssetClass: models.AssetClassResidential,
		Tenure:     models.TenureFreehold,
		Address: models.Address{
			Region:   "West Midlands",
			Postcode: "B1 1AA",
		},
		Financial: models.ListingFinancial{
			AskingPrice: 350000,
		},
		PropertyDetails: models.PropertyDetails{
			Units:     1,
			Condition: models.ConditionTurnkey,
		},
	}
}

func reasonCodes(reasons []models.RejectionReason) []string {
	codes := make([]string, 0, len(reasons))
	for _, r := range reasons {
		codes = append(codes, r.Code)
	}
	return codes
}

func TestApply_UnconstrainedMandatePasses(t *testing.T) {
	result := Apply(openMandate(), candidate())
	assert.True(t, result.Passed)
	assert.Empty(t, result.Reasons)
}

func TestApply_AssetClass(t *testing.T) {
	listing := candidate()
	listing.AssetClass = models.AssetClassOffice

	result := Apply(openMandate(), listing)
	assert.False(t, result.Passed)
	assert.Contains(t, reasonCodes(result.Reasons), "ASSET_CLASS_NOT_ALLOWED")
}

func TestApply_ExclusionBeatsInclusion(t *testing.T) {
	mandate := openMandate()
	mandate.Geographic.Regions = []string{"West Midlands"}
	mandate.Geographic.ExcludePostcodes = []string{"B1"}

	result := Apply(mandate, candidate())
	assert.False(t, result.Passed)
	assert.Contains(t, reasonCodes(result.Reasons), "POSTCODE_EXCLUDED")
}

func TestApply_RegionExcluded(t *testing.T) {
	mandate := openMandate()
	mandate.Geographic.ExcludeRegions = []string{"west midlands"}

	result := Apply(mandate, candidate())
	assert.False(t, result.Passed)
	assert.Contains(t, reasonCodes(result.Reasons), "REGION_EXCLUDED")
}

func TestApply_InclusionListMatchesEitherAxis(t *testing.T) {
	t.Run("region match passes", func(t *testing.T) {
		mandate := openMandate()
		mandate.Geographic.Regions = []string{"West Midlands"}
		assert.True(t, Apply(mandate, candidate()).Passed)
	})

	t.Run("postcode match passes", func(t *testing.T) {
		mandate := openMandate()
		mandate.Geographic.Postcodes = []string{"b1"}
		assert.True(t, Apply(mandate, candidate()).Passed)
	})

	t.Run("neither matches rejects", func(t *testing.T) {
		mandate := openMandate()
		mandate.Geographic.Regions = []string{"London"}
		mandate.Geographic.Postcodes = []string{"SW1"}
		result := Apply(mandate, candidate())
		assert.False(t, result.Passed)
		assert.Contains(t, reasonCodes(result.Reasons), "LOCATION_NOT_INCLUDED")
	})
}

func TestApply_DealSize(t *testing.T) {
	mandate := openMandate()
	mandate.Financial.MinDealSize = f64(400000)
	mandate.Financial.MaxDealSize = f64(800000)

	t.Run("below minimum", func(t *testing.T) {
		result := Apply(mandate, candidate())
		assert.False(t, result.Passed)
		assert.Contains(t, reasonCodes(result.Reasons), "PRICE_BELOW_MIN")
	})

	t.Run("above maximum within 20 percent carries a remedy", func(t *testing.T) {
		listing := candidate()
		listing.Financial.AskingPrice = 900000
		result := Apply(mandate, listing)
		require.False(t, result.Passed)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, "PRICE_EXCEEDS_MAX", result.Reasons[0].Code)
		assert.NotEmpty(t, result.Reasons[0].Remedy)
	})

	t.Run("far above maximum has no remedy", func(t *testing.T) {
		listing := candidate()
		listing.Financial.AskingPrice = 2000000
		result := Apply(mandate, listing)
		require.False(t, result.Passed)
		require.Len(t, result.Reasons, 1)
		assert.Empty(t, result.Reasons[0].Remedy)
	})
}

func TestApply_YieldFloor(t *testing.T) {
	mandate := openMandate()
	mandate.Financial.MinYieldPercent = f64(6)

	t.Run("below floor rejects", func(t *testing.T) {
		listing := candidate()
		listing.Financial.GrossYieldPercent = f64(4.5)
		result := Apply(mandate, listing)
		assert.False(t, result.Passed)
		assert.Contains(t, reasonCodes(result.Reasons), "YIELD_BELOW_MIN")
	})

	t.Run("unknown yield passes", func(t *testing.T) {
		assert.True(t, Apply(mandate, candidate()).Passed)
	})
}

func TestApply_Tenure(t *testing.T) {
	t.Run("freehold only rejects leasehold", func(t *testing.T) {
		mandate := openMandate()
		mandate.Property.FreeholdOnly = true
		listing := candidate()
		listing.Tenure = models.TenureLeasehold
		result := Apply(mandate, listing)
		assert.False(t, result.Passed)
		assert.Contains(t, reasonCodes(result.Reasons), "LEASEHOLD_NOT_ACCEPTED")
	})

	t.Run("short lease rejects", func(t *testing.T) {
		mandate := openMandate()
		mandate.Property.MinLeaseYears = i(90)
		listing := candidate()
		listing.Tenure = models.TenureLeasehold
		listing.Financial.RemainingLeaseYears = i(62)
		result := Apply(mandate, listing)
		assert.False(t, result.Passed)
		assert.Contains(t, reasonCodes(result.Reasons), "LEASE_TOO_SHORT")
	})

	t.Run("lease floor does not apply to freehold", func(t *testing.T) {
		mandate := openMandate()
		mandate.Property.MinLeaseYears = i(90)
		assert.True(t, Apply(mandate, candidate()).Passed)
	})
}

func TestApply_UnknownConditionPasses(t *testing.T) {
	mandate := openMandate()
	mandate.Property.Conditions = []models.Condition{models.ConditionTurnkey}

	listing := candidate()
	listing.PropertyDetails.Condition = models.ConditionUnknown
	assert.True(t, Apply(mandate, listing).Passed)

	listing.PropertyDetails.Condition = models.ConditionDevelopment
	result := Apply(mandate, listing)
	assert.False(t, result.Passed)
	assert.Contains(t, reasonCodes(result.Reasons), "CONDITION_NOT_ACCEPTED")
}

func TestApply_StaleListingIsSoft(t *testing.T) {
	mandate := openMandate()
	mandate.DealCriteria.MaxDaysOnMarket = i(90)

	listing := candidate()
	listing.DaysOnMarket = i(240)

	result := Apply(mandate, listing)
	assert.True(t, result.Passed)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "STALE_LISTING", result.Reasons[0].Code)
	assert.Equal(t, models.RejectionSeveritySoft, result.Reasons[0].Severity)
}

func TestApply_CollectsAllFailures(t *testing.T) {
	mandate := openMandate()
	mandate.Financial.MinDealSize = f64(500000)
	mandate.Property.MinUnits = i(4)

	listing := candidate()
	listing.AssetClass = models.AssetClassRetail

	result := Apply(mandate, listing)
	assert.False(t, result.Passed)
	codes := reasonCodes(result.Reasons)
	assert.Contains(t, codes, "ASSET_CLASS_NOT_ALLOWED")
	assert.Contains(t, codes, "PRICE_BELOW_MIN")
	assert.Contains(t, codes, "UNITS_BELOW_MIN")
}

func TestFilter_AllRejectedYieldsEmptySurvivors(t *testing.T) {
	mandate := openMandate()
	mandate.Geographic.ExcludeRegions = []string{"West Midlands"}

	listings := []models.Listing{candidate(), candidate()}
	listings[1].ID = "l-2"

	outcome := Filter(mandate, listings)
	assert.Empty(t, outcome.Surviving)
	assert.Len(t, outcome.Rejected, 2)
	assert.Equal(t, 2, outcome.Summary["REGION_EXCLUDED"])
}
