package criteria

import (
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/pkg/models"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func validMandate() *models.Mandate {
	return &models.Mandate{
		InvestorName:   "Validation Fund",
		AssetClasses:   []models.AssetClass{models.AssetClassResidential},
		ScoringWeights: models.DefaultScoringWeights(),
		DealCriteria:   models.DefaultDealCriteria(),
	}
}

func TestApplyDefaults(t *testing.T) {
	mandate := &models.Mandate{
		InvestorName: "Empty Config Fund",
		AssetClasses: []models.AssetClass{models.AssetClassHMO},
	}

	ApplyDefaults(mandate)

	assert.Equal(t, models.DefaultScoringWeights(), mandate.ScoringWeights)
	assert.Equal(t, models.DefaultDealCriteria(), mandate.DealCriteria)
	assert.Equal(t, 1, mandate.Priority)
}

func TestApplyDefaults_PreservesExplicitConfig(t *testing.T) {
	mandate := validMandate()
	mandate.ScoringWeights.PriceRange = 0.9
	mandate.DealCriteria.PursueScoreThreshold = 85
	mandate.Priority = 3

	ApplyDefaults(mandate)

	assert.Equal(t, 0.9, mandate.ScoringWeights.PriceRange)
	assert.Equal(t, 85.0, mandate.DealCriteria.PursueScoreThreshold)
	assert.Equal(t, 3, mandate.Priority)
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validMandate()))
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Run("investor name", func(t *testing.T) {
		mandate := validMandate()
		mandate.InvestorName = ""
		err := Validate(mandate)
		require.Error(t, err)
		assert.Equal(t, 400, httperror.GetStatusCode(err))
	})

	t.Run("asset classes", func(t *testing.T) {
		mandate := validMandate()
		mandate.AssetClasses = nil
		require.Error(t, Validate(mandate))
	})
}

func TestValidate_Weights(t *testing.T) {
	t.Run("negative weight", func(t *testing.T) {
		mandate := validMandate()
		mandate.ScoringWeights.YieldTarget = -0.1
		err := Validate(mandate)
		require.Error(t, err)
		assert.Equal(t, 422, httperror.GetStatusCode(err))
	})

	t.Run("zero sum", func(t *testing.T) {
		mandate := validMandate()
		mandate.ScoringWeights = models.ScoringWeights{}
		err := Validate(mandate)
		require.Error(t, err)
		assert.Equal(t, 422, httperror.GetStatusCode(err))
	})
}

func TestValidate_ThresholdOrdering(t *testing.T) {
	t.Run("score ladder inverted", func(t *testing.T) {
		mandate := validMandate()
		mandate.DealCriteria.PursueScoreThreshold = 50
		mandate.DealCriteria.ConsiderScoreThreshold = 60
		require.Error(t, Validate(mandate))
	})

	t.Run("conviction ladder inverted", func(t *testing.T) {
		mandate := validMandate()
		mandate.DealCriteria.ConvictionMedium = 0.9
		require.Error(t, Validate(mandate))
	})

	t.Run("conviction off scale", func(t *testing.T) {
		mandate := validMandate()
		mandate.DealCriteria.ConvictionHigh = 1.5
		require.Error(t, Validate(mandate))
	})

	t.Run("equal thresholds are valid", func(t *testing.T) {
		mandate := validMandate()
		mandate.DealCriteria.PursueScoreThreshold = 60
		mandate.DealCriteria.ConsiderScoreThreshold = 60
		mandate.DealCriteria.MinOverallScore = 60
		assert.NoError(t, Validate(mandate))
	})
}

func TestValidate_FinancialBounds(t *testing.T) {
	t.Run("deal size inverted", func(t *testing.T) {
		mandate := validMandate()
		mandate.Financial.MinDealSize = f64(900000)
		mandate.Financial.MaxDealSize = f64(500000)
		require.Error(t, Validate(mandate))
	})

	t.Run("yield floor above target", func(t *testing.T) {
		mandate := validMandate()
		mandate.Financial.MinYieldPercent = f64(8)
		mandate.Financial.TargetYield = f64(6)
		require.Error(t, Validate(mandate))
	})

	t.Run("ltv off scale", func(t *testing.T) {
		mandate := validMandate()
		mandate.Financial.MaxLTV = f64(1.2)
		require.Error(t, Validate(mandate))
	})

	t.Run("one sided bounds are valid", func(t *testing.T) {
		mandate := validMandate()
		mandate.Financial.MaxDealSize = f64(500000)
		mandate.Financial.MinYieldPercent = f64(6)
		assert.NoError(t, Validate(mandate))
	})
}

func TestValidate_PropertyBounds(t *testing.T) {
	t.Run("units inverted", func(t *testing.T) {
		mandate := validMandate()
		mandate.Property.MinUnits = i(10)
		mandate.Property.MaxUnits = i(2)
		require.Error(t, Validate(mandate))
	})

	t.Run("sqft inverted", func(t *testing.T) {
		mandate := validMandate()
		mandate.Property.MinSqft = f64(5000)
		mandate.Property.MaxSqft = f64(800)
		require.Error(t, Validate(mandate))
	})

	t.Run("negative lease years", func(t *testing.T) {
		mandate := validMandate()
		mandate.Property.MinLeaseYears = i(-1)
		require.Error(t, Validate(mandate))
	})
}
