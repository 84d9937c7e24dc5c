package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/bramble/pkg/models"
)

func f64(v float64) *float64 { return &v }

func thresholdMandate() *models.Mandate {
	return &models.Mandate{
		ID:           "m-1",
		DealCriteria: models.DefaultDealCriteria(),
	}
}

func TestClassify_ActionLadder(t *testing.T) {
	classifier := New(DefaultGradeCutPoints())
	mandate := thresholdMandate()

	cases := []struct {
		name     string
		score    float64
		expected models.Action
	}{
		{"exactly at pursue threshold", 75, models.ActionPursue},
		{"just below pursue", 74.99, models.ActionConsider},
		{"exactly at consider threshold", 60, models.ActionConsider},
		{"exactly at min overall", 40, models.ActionWatch},
		{"below min overall", 39.99, models.ActionPass},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := classifier.Classify(mandate, tc.score, models.Listing{})
			assert.Equal(t, tc.expected, outcome.Action)
		})
	}
}

func TestGrade_Bands(t *testing.T) {
	classifier := New(DefaultGradeCutPoints())

	assert.Equal(t, models.GradeA, classifier.Grade(90))
	assert.Equal(t, models.GradeB, classifier.Grade(89.9))
	assert.Equal(t, models.GradeB, classifier.Grade(75))
	assert.Equal(t, models.GradeC, classifier.Grade(60))
	assert.Equal(t, models.GradeD, classifier.Grade(40))
	assert.Equal(t, models.GradeF, classifier.Grade(39.9))
}

func TestConviction_NormalizedScore(t *testing.T) {
	classifier := New(DefaultGradeCutPoints())
	mandate := thresholdMandate()

	assert.Equal(t, models.ConvictionHigh, classifier.Conviction(mandate, 80))
	assert.Equal(t, models.ConvictionMedium, classifier.Conviction(mandate, 79.9))
	assert.Equal(t, models.ConvictionMedium, classifier.Conviction(mandate, 60))
	assert.Equal(t, models.ConvictionLow, classifier.Conviction(mandate, 40))
	assert.Equal(t, models.ConvictionNone, classifier.Conviction(mandate, 39.9))
}

func TestClassify_BMVOpportunity(t *testing.T) {
	classifier := New(DefaultGradeCutPoints())

	listing := models.Listing{
		Financial: models.ListingFinancial{
			AskingPrice:    425000,
			EstimatedValue: f64(500000), // 15% under value
		},
	}

	t.Run("requires a mandate floor", func(t *testing.T) {
		outcome := classifier.Classify(thresholdMandate(), 80, listing)
		assert.False(t, outcome.BMVOpportunity)
		assert.InDelta(t, 15.0, outcome.BMVDiscount, 1e-9)
	})

	t.Run("flags at or above the floor", func(t *testing.T) {
		mandate := thresholdMandate()
		mandate.DealCriteria.MinBMVPercent = f64(10)
		outcome := classifier.Classify(mandate, 80, listing)
		assert.True(t, outcome.BMVOpportunity)
	})

	t.Run("no valuation reference means no flag", func(t *testing.T) {
		mandate := thresholdMandate()
		mandate.DealCriteria.MinBMVPercent = f64(10)
		bare := models.Listing{Financial: models.ListingFinancial{AskingPrice: 425000}}
		outcome := classifier.Classify(mandate, 80, bare)
		assert.False(t, outcome.BMVOpportunity)
	})
}

func TestRank_DenseOverNonPass(t *testing.T) {
	recommendations := []models.Recommendation{
		{ListingID: "a", Score: 62, Action: models.ActionConsider},
		{ListingID: "b", Score: 91, Action: models.ActionPursue},
		{ListingID: "c", Score: 20, Action: models.ActionPass},
		{ListingID: "d", Score: 45, Action: models.ActionWatch},
	}

	Rank(recommendations)

	byID := map[string]int{}
	for _, rec := range recommendations {
		byID[rec.ListingID] = rec.PriorityRank
	}

	assert.Equal(t, 1, byID["b"])
	assert.Equal(t, 2, byID["a"])
	assert.Equal(t, 3, byID["d"])
	assert.Equal(t, 0, byID["c"])
}

func TestRank_Tiebreaks(t *testing.T) {
	t.Run("bmv opportunity ranks first on equal scores", func(t *testing.T) {
		recommendations := []models.Recommendation{
			{ListingID: "a", Score: 70, Action: models.ActionConsider},
			{ListingID: "b", Score: 70, Action: models.ActionConsider, BMVOpportunity: true},
		}
		Rank(recommendations)
		assert.Equal(t, 2, recommendations[0].PriorityRank)
		assert.Equal(t, 1, recommendations[1].PriorityRank)
	})

	t.Run("listing id breaks remaining ties deterministically", func(t *testing.T) {
		recommendations := []models.Recommendation{
			{ListingID: "zzz", Score: 70, Action: models.ActionConsider},
			{ListingID: "aaa", Score: 70, Action: models.ActionConsider},
		}
		Rank(recommendations)
		assert.Equal(t, 2, recommendations[0].PriorityRank)
		assert.Equal(t, 1, recommendations[1].PriorityRank)
	})
}
