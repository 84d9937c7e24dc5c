package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/pkg/models"
)

var asOf = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func grade(g models.ListedGrade) *models.ListedGrade { return &g }

func daysAgo(days int) *time.Time {
	ts := asOf.AddDate(0, 0, -days)
	return &ts
}

func approvedPrecedent(precedentType models.PrecedentType) models.Precedent {
	return models.Precedent{
		Reference:      "APP/2025/001",
		Type:           precedentType,
		Approved:       true,
		Similarity:     0.8,
		DistanceMeters: f64(150),
		DecisionDate:   daysAgo(365),
	}
}

func TestAnalyze_NoPrecedentsNoConstraints(t *testing.T) {
	analyzer := NewAnalyzer(BlendWeights{})

	score := analyzer.Analyze(&models.PlanningContext{
		Tenure:       models.TenureFreehold,
		ProposedType: models.PrecedentTypeExtensionRear,
	}, asOf)

	assert.Equal(t, 50.0, score.Components.PrecedentScore)
	assert.NotZero(t, score.Components.FeasibilityScore)
	assert.NotEmpty(t, score.Disclaimer)
	assert.NotEmpty(t, score.NegativeFactors) // no comparable precedents
}

func TestAnalyze_DisclaimerAlwaysPresent(t *testing.T) {
	analyzer := NewAnalyzer(DefaultBlendWeights())

	contexts := []*models.PlanningContext{
		{},
		{GreenBelt: true, ProposedType: models.PrecedentTypeNewBuild},
		{Precedents: []models.Precedent{approvedPrecedent(models.PrecedentTypeExtensionLoft)}},
	}

	for _, ctx := range contexts {
		assert.Equal(t, Disclaimer, analyzer.Analyze(ctx, asOf).Disclaimer)
	}
}

func TestAnalyze_Determinism(t *testing.T) {
	analyzer := NewAnalyzer(DefaultBlendWeights())
	ctx := &models.PlanningContext{
		Tenure:       models.TenureFreehold,
		ProposedType: models.PrecedentTypeExtensionLoft,
		CurrentValue: f64(400000),
		Precedents: []models.Precedent{
			approvedPrecedent(models.PrecedentTypeExtensionLoft),
			{Reference: "APP/2023/114", Type: models.PrecedentTypeExtensionRear, Similarity: 0.6, DecisionDate: daysAgo(900)},
		},
	}

	first := analyzer.Analyze(ctx, asOf)
	second := analyzer.Analyze(ctx, asOf)
	assert.Equal(t, first, second)
}

func TestLabel_Buckets(t *testing.T) {
	assert.Equal(t, models.PlanningLabelVeryHigh, label(80))
	assert.Equal(t, models.PlanningLabelHigh, label(60))
	assert.Equal(t, models.PlanningLabelMedium, label(40))
	assert.Equal(t, models.PlanningLabelLow, label(39.9))
}

func TestScorePrecedents_RelevanceGate(t *testing.T) {
	t.Run("low similarity is ignored", func(t *testing.T) {
		ctx := &models.PlanningContext{Precedents: []models.Precedent{
			{Reference: "x", Similarity: 0.2, Approved: true},
		}}
		evidence := scorePrecedents(ctx, asOf)
		assert.Empty(t, evidence.relevant)
		assert.Equal(t, 50.0, evidence.score)
	})

	t.Run("stale decisions are ignored", func(t *testing.T) {
		old := asOf.AddDate(-12, 0, 0)
		ctx := &models.PlanningContext{Precedents: []models.Precedent{
			{Reference: "x", Similarity: 0.9, Approved: true, DecisionDate: &old},
		}}
		assert.Empty(t, scorePrecedents(ctx, asOf).relevant)
	})

	t.Run("distant precedents are ignored", func(t *testing.T) {
		ctx := &models.PlanningContext{Precedents: []models.Precedent{
			{Reference: "x", Similarity: 0.9, Approved: true, DistanceMeters: f64(2500)},
		}}
		assert.Empty(t, scorePrecedents(ctx, asOf).relevant)
	})
}

func TestScorePrecedents_ApprovalsRaiseScore(t *testing.T) {
	approved := &models.PlanningContext{
		ProposedType: models.PrecedentTypeExtensionLoft,
		Precedents: []models.Precedent{
			approvedPrecedent(models.PrecedentTypeExtensionLoft),
			approvedPrecedent(models.PrecedentTypeExtensionLoft),
		},
	}
	refused := &models.PlanningContext{
		ProposedType: models.PrecedentTypeExtensionLoft,
		Precedents: []models.Precedent{
			{Reference: "r1", Type: models.PrecedentTypeExtensionLoft, Similarity: 0.8, DecisionDate: daysAgo(200)},
			{Reference: "r2", Type: models.PrecedentTypeExtensionLoft, Similarity: 0.8, DecisionDate: daysAgo(400)},
		},
	}

	approvedScore := scorePrecedents(approved, asOf).score
	refusedScore := scorePrecedents(refused, asOf).score
	assert.Greater(t, approvedScore, refusedScore)
	assert.Equal(t, 0.0, refusedScore)
}

func TestScoreFeasibility_GradeIBlockerCapsScore(t *testing.T) {
	gradeI := models.ListedGradeI
	res := scoreFeasibility(&models.PlanningContext{
		Tenure:       models.TenureFreehold,
		IsListed:     true,
		ListedGrade:  &gradeI,
		ProposedType: models.PrecedentTypeExtensionRear,
		PlotSqft:     f64(8000),
		CurrentSqft:  f64(1200),
	})

	require.NotEmpty(t, res.blockers)
	assert.LessOrEqual(t, res.score, 20.0)
}

func TestScoreFeasibility_GreenBeltNewBuildBlocks(t *testing.T) {
	res := scoreFeasibility(&models.PlanningContext{
		GreenBelt:    true,
		ProposedType: models.PrecedentTypeNewBuild,
	})
	assert.NotEmpty(t, res.blockers)
	assert.LessOrEqual(t, res.score, 20.0)
}

func TestScoreFeasibility_FloodZones(t *testing.T) {
	base := func(zone int) float64 {
		return scoreFeasibility(&models.PlanningContext{FloodZone: zone}).score
	}

	assert.Greater(t, base(1), base(2))
	assert.Greater(t, base(2), base(3))
}

func TestScoreUplift(t *testing.T) {
	t.Run("unconstrained freehold uses the band with a small bonus", func(t *testing.T) {
		res := scoreUplift(&models.PlanningContext{
			Tenure:       models.TenureFreehold,
			ProposedType: models.PrecedentTypeExtensionLoft,
			CurrentValue: f64(400000),
		}, precedentEvidence{})

		assert.InDelta(t, 1.05, res.modifier, 1e-9)
		assert.InDelta(t, 15*1.05, res.estimate.PercentRange.Mid, 1e-9)
		assert.InDelta(t, 400000*15*1.05/100, res.estimate.ValueRange.Mid, 1e-6)
	})

	t.Run("modifier never goes below the floor", func(t *testing.T) {
		gradeI := models.ListedGradeI
		res := scoreUplift(&models.PlanningContext{
			Tenure:            models.TenureLeasehold,
			ProposedType:      models.PrecedentTypeExtensionRear,
			IsListed:          true,
			ListedGrade:       &gradeI,
			ConservationArea:  true,
			GreenBelt:         true,
			Article4Direction: true,
			FloodZone:         3,
		}, precedentEvidence{})

		assert.Equal(t, upliftModifierFloor, res.modifier)
		assert.Greater(t, res.estimate.PercentRange.Mid, 0.0)
	})

	t.Run("unknown scheme type falls back to the other band", func(t *testing.T) {
		res := scoreUplift(&models.PlanningContext{ProposedType: models.PrecedentType("bespoke")}, precedentEvidence{})
		assert.InDelta(t, 7.0, res.estimate.PercentRange.Mid, 1e-9)
	})
}

func TestAnalyze_GradeIIListingIsNegative(t *testing.T) {
	analyzer := NewAnalyzer(DefaultBlendWeights())
	score := analyzer.Analyze(&models.PlanningContext{
		IsListed:    true,
		ListedGrade: grade(models.ListedGradeII),
	}, asOf)
	assert.NotEmpty(t, score.NegativeFactors)
}
