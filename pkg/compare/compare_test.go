package compare

import (
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/pkg/models"
)

func f64(v float64) *float64 { return &v }

func mandate(id, name string) models.Mandate {
	return models.Mandate{
		ID:           id,
		InvestorName: name,
		InvestorType: models.InvestorTypeFamilyOffice,
		RiskProfile:  models.RiskProfileCore,
		AssetClasses: []models.AssetClass{models.AssetClassResidential},
	}
}

func TestCompare_RequiresTwoMandates(t *testing.T) {
	_, err := Compare([]models.Mandate{mandate("m-1", "Solo Fund")})
	require.Error(t, err)
	assert.Equal(t, 400, httperror.GetStatusCode(err))

	_, err = Compare(nil)
	require.Error(t, err)
}

func TestCompare_PreservesInputOrder(t *testing.T) {
	first := mandate("m-1", "Alpha Capital")
	first.Financial.MinDealSize = f64(250000)
	first.Financial.MaxDealSize = f64(750000)

	second := mandate("m-2", "Beta Partners")
	second.Financial.MaxDealSize = f64(2000000)

	view, err := Compare([]models.Mandate{first, second})
	require.NoError(t, err)

	require.Len(t, view.Mandates, 2)
	require.Len(t, view.PriceRanges, 2)
	assert.Equal(t, "m-1", view.Mandates[0].MandateID)
	assert.Equal(t, "m-2", view.Mandates[1].MandateID)

	require.NotNil(t, view.PriceRanges[0].Min)
	assert.Equal(t, 250000.0, *view.PriceRanges[0].Min)
	assert.Nil(t, view.PriceRanges[1].Min)
	require.NotNil(t, view.PriceRanges[1].Max)
	assert.Equal(t, 2000000.0, *view.PriceRanges[1].Max)
}

func TestProfile_EmptySlicesNotNil(t *testing.T) {
	profile := Profile(mandate("m-1", "Empty Geography Fund"))

	assert.NotNil(t, profile.Regions)
	assert.NotNil(t, profile.Postcodes)
	assert.NotNil(t, profile.ExcludeRegions)
	assert.NotNil(t, profile.ExcludePostcodes)
	assert.Empty(t, profile.Regions)
}
