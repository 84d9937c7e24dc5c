package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/pkg/models"
)

func f64(v float64) *float64 { return &v }

func searchMandate() *models.Mandate {
	return &models.Mandate{
		ID:           "m-1",
		InvestorName: "Meridian Property Income",
		InvestorType: models.InvestorTypeFamilyOffice,
		RiskProfile:  models.RiskProfileCore,
		AssetClasses: []models.AssetClass{models.AssetClassResidential},
		Geographic: models.GeographicCriteria{
			ExcludeRegions: []string{"Cornwall"},
		},
		Financial: models.FinancialCriteria{
			MinDealSize:     f64(400000),
			MaxDealSize:     f64(600000),
			MinYieldPercent: f64(5),
			TargetYield:     f64(6.5),
		},
		ScoringWeights: models.DefaultScoringWeights(),
		DealCriteria:   models.DefaultDealCriteria(),
	}
}

func strongListing() models.Listing {
	return models.Listing{
		ID:         "l-strong",
		Title:      "Six-unit block, Didsbury",
		AssetClass: models.AssetClassResidential,
		Tenure:     models.TenureFreehold,
		Address:    models.Address{Region: "Greater Manchester", Postcode: "M20 3AB"},
		Financial: models.ListingFinancial{
			AskingPrice:       500000,
			GrossYieldPercent: f64(7),
		},
		PropertyDetails: models.PropertyDetails{
			Units:     6,
			Condition: models.ConditionTurnkey,
		},
	}
}

func moderateListing() models.Listing {
	return models.Listing{
		ID:         "l-moderate",
		AssetClass: models.AssetClassResidential,
		Tenure:     models.TenureLeasehold,
		Address:    models.Address{Region: "West Yorkshire", Postcode: "LS1 4AB"},
		Financial: models.ListingFinancial{
			AskingPrice:       420000,
			GrossYieldPercent: f64(5.5),
		},
		PropertyDetails: models.PropertyDetails{
			Units:     2,
			Condition: models.ConditionLightRefurb,
		},
	}
}

func excludedListing() models.Listing {
	listing := strongListing()
	listing.ID = "l-excluded"
	listing.Address = models.Address{Region: "Cornwall", Postcode: "TR1 1AA"}
	return listing
}

func TestSearch_FullRun(t *testing.T) {
	eng := New(Config{}, logging.NewNopLogger())

	listings := []models.Listing{moderateListing(), excludedListing(), strongListing()}
	planningContexts := map[string]*models.PlanningContext{
		"l-strong": {
			Tenure:       models.TenureFreehold,
			ProposedType: models.PrecedentTypeExtensionLoft,
			CurrentValue: f64(500000),
		},
	}

	result, err := eng.Search(context.Background(), "tenant-1", searchMandate(), listings, planningContexts)
	require.NoError(t, err)

	assert.Equal(t, "m-1", result.MandateID)
	assert.Equal(t, "Meridian Property Income", result.MandateName)

	require.Len(t, result.Recommendations, 2)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "l-excluded", result.Rejected[0].ListingID)
	assert.Equal(t, 1, result.FilterSummary["REGION_EXCLUDED"])

	strong := result.Recommendations[0]
	moderate := result.Recommendations[1]

	assert.Equal(t, "l-strong", strong.ListingID)
	assert.Equal(t, models.ActionPursue, strong.Action)
	assert.Equal(t, models.ConvictionHigh, strong.Conviction)
	assert.Equal(t, 1, strong.PriorityRank)
	require.NotNil(t, strong.Planning)
	assert.NotEmpty(t, strong.Planning.Disclaimer)
	assert.NotEmpty(t, strong.Headline)
	assert.NotEmpty(t, strong.Rationale)

	assert.Equal(t, "l-moderate", moderate.ListingID)
	assert.Equal(t, models.ActionConsider, moderate.Action)
	assert.Equal(t, 2, moderate.PriorityRank)
	assert.Nil(t, moderate.Planning)

	assert.Equal(t, models.SearchSummary{Pursue: 1, Consider: 1, Rejected: 1}, result.Summary)
}

func TestSearch_InvalidMandateConfig(t *testing.T) {
	eng := New(Config{}, logging.NewNopLogger())

	mandate := searchMandate()
	mandate.ScoringWeights = models.ScoringWeights{}

	_, err := eng.Search(context.Background(), "tenant-1", mandate, []models.Listing{strongListing()}, nil)
	require.Error(t, err)
}

func TestSearch_AllRejectedIsEmptyNotError(t *testing.T) {
	eng := New(Config{}, logging.NewNopLogger())

	listings := []models.Listing{excludedListing()}
	result, err := eng.Search(context.Background(), "tenant-1", searchMandate(), listings, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
	assert.Len(t, result.Rejected, 1)
	assert.Equal(t, models.SearchSummary{Rejected: 1}, result.Summary)
}

func TestSearch_Deterministic(t *testing.T) {
	eng := New(Config{Workers: 8}, logging.NewNopLogger())

	listings := []models.Listing{strongListing(), moderateListing()}
	reversed := []models.Listing{moderateListing(), strongListing()}

	first, err := eng.Search(context.Background(), "tenant-1", searchMandate(), listings, nil)
	require.NoError(t, err)
	second, err := eng.Search(context.Background(), "tenant-1", searchMandate(), reversed, nil)
	require.NoError(t, err)

	require.Equal(t, len(first.Recommendations), len(second.Recommendations))
	for i := range first.Recommendations {
		assert.Equal(t, first.Recommendations[i].ListingID, second.Recommendations[i].ListingID)
		assert.Equal(t, first.Recommendations[i].Score, second.Recommendations[i].Score)
		assert.Equal(t, first.Recommendations[i].PriorityRank, second.Recommendations[i].PriorityRank)
	}
}
