package planning

import "github.com/Ramsey-B/bramble/pkg/models"

// upliftBand is the base percent uplift range for a scheme type before
// site modifiers are applied
type upliftBand struct {
	low, mid, high float64
}

// upliftRanges reflect typical realized value creation per scheme type
var upliftRanges = map[models.PrecedentType]upliftBand{
	models.PrecedentTypeExtensionRear:         {8, 12, 18},
	models.PrecedentTypeExtensionSide:         {8, 12, 18},
	models.PrecedentTypeExtensionLoft:         {10, 15, 22},
	models.PrecedentTypeExtensionBasement:     {10, 15, 25},
	models.PrecedentTypeConversionResidential: {15, 25, 40},
	models.PrecedentTypeConversionHMO:         {20, 30, 45},
	models.PrecedentTypeConversionFlats:       {25, 40, 60},
	models.PrecedentTypeChangeOfUse:           {10, 20, 35},
	models.PrecedentTypeNewBuild:              {30, 50, 80},
	models.PrecedentTypeDemolitionRebuild:     {25, 45, 70},
	models.PrecedentTypeSubdivision:           {15, 25, 40},
	models.PrecedentTypePermittedDevelopment:  {5, 10, 15},
	models.PrecedentTypeOther:                 {3, 7, 12},
}

// upliftModifierFloor keeps a heavily constrained site from projecting a
// zero or negative uplift
const upliftModifierFloor = 0.1

type upliftResult struct {
	score    float64
	estimate models.UpliftEstimate
	modifier float64
}

// scoreUplift combines the scheme type's base uplift band with site
// constraint modifiers and the precedent approval picture, producing
// percent and value ranges plus the uplift sub-score.
func scoreUplift(ctx *models.PlanningContext, evidence precedentEvidence) upliftResult {
	band, ok := upliftRanges[ctx.ProposedType]
	if !ok {
		band = upliftRanges[models.PrecedentTypeOther]
	}

	modifier := 1.0
	if ctx.IsListed {
		modifier -= 0.5
		if ctx.ListedGrade != nil {
			switch *ctx.ListedGrade {
			case models.ListedGradeI:
				modifier -= 0.3
			case models.ListedGradeIIStar:
				modifier -= 0.1
			}
		}
	}
	if ctx.ConservationArea {
		modifier -= 0.2
	}
	if ctx.GreenBelt {
		modifier -= 0.4
	}
	if ctx.Article4Direction {
		modifier -= 0.15
	}
	if ctx.FloodZone >= 3 {
		modifier -= 0.25
	}
	if ctx.Tenure == models.TenureLeasehold {
		modifier -= 0.1
	}
	if ctx.Tenure == models.TenureFreehold {
		modifier += 0.05
	}
	if ctx.PlotSqft != nil && *ctx.PlotSqft > 5000 {
		modifier += 0.15
	}
	if ctx.PermittedDevRights {
		modifier += 0.1
	}
	if len(evidence.relevant) > 0 && evidence.approvalRate >= 0.75 {
		modifier += 0.1
	}
	if modifier < upliftModifierFloor {
		modifier = upliftModifierFloor
	}

	percent := models.Range{
		Low:  band.low * modifier,
		Mid:  band.mid * modifier,
		High: band.high * modifier,
	}

	value := models.Range{}
	if ctx.CurrentValue != nil && *ctx.CurrentValue > 0 {
		value = models.Range{
			Low:  *ctx.CurrentValue * percent.Low / 100,
			Mid:  *ctx.CurrentValue * percent.Mid / 100,
			High: *ctx.CurrentValue * percent.High / 100,
		}
	}

	// A 30% mid-case uplift saturates the sub-score
	score := minF(100, percent.Mid/30*100)

	return upliftResult{
		score:    score,
		modifier: modifier,
		estimate: models.UpliftEstimate{
			PercentRange: percent,
			ValueRange:   value,
		},
	}
}
