// Package planning estimates the redevelopment potential of a site from
// precedent approvals, regulatory constraints and scheme economics.
// Analysis is pure: the same context and reference time always produce
// the same result.
package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// Disclaimer is attached to every planning score. Planning outcomes are
// probabilistic and are never guaranteed.
const Disclaimer = "Planning potential is an estimate based on precedent evidence and site " +
	"constraints. Planning outcomes depend on local policy and officer judgement and are " +
	"never certain. Always obtain pre-application advice before committing capital."

// BlendWeights control how the three sub-scores combine into the
// composite planning score
type BlendWeights struct {
	Precedent   float64
	Feasibility float64
	Uplift      float64
}

// DefaultBlendWeights returns the standard blend
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{Precedent: 0.35, Feasibility: 0.40, Uplift: 0.25}
}

// Analyzer performs planning potential analysis
type Analyzer struct {
	blend BlendWeights
}

// NewAnalyzer creates an analyzer with the given blend weights. A zero
// blend falls back to the defaults.
func NewAnalyzer(blend BlendWeights) *Analyzer {
	if blend.Precedent+blend.Feasibility+blend.Uplift <= 0 {
		blend = DefaultBlendWeights()
	}
	return &Analyzer{blend: blend}
}

// Analyze scores the planning potential of one site. asOf anchors the
// recency decay so repeated calls with identical inputs are
// bit-identical.
func (a *Analyzer) Analyze(ctx *models.PlanningContext, asOf time.Time) models.PlanningScore {
	evidence := scorePrecedents(ctx, asOf)
	feasibility := scoreFeasibility(ctx)
	uplift := scoreUplift(ctx, evidence)

	blendSum := a.blend.Precedent + a.blend.Feasibility + a.blend.Uplift
	composite := (evidence.score*a.blend.Precedent +
		feasibility.score*a.blend.Feasibility +
		uplift.score*a.blend.Uplift) / blendSum

	positives, negatives := collectFactors(evidence, feasibility, uplift)

	return models.PlanningScore{
		Score: composite,
		Label: label(composite),
		Components: models.PlanningComponents{
			PrecedentScore:   evidence.score,
			FeasibilityScore: feasibility.score,
			UpliftScore:      uplift.score,
		},
		UpliftEstimate:  uplift.estimate,
		PositiveFactors: positives,
		NegativeFactors: negatives,
		Disclaimer:      Disclaimer,
	}
}

// label buckets the composite planning score
func label(score float64) models.PlanningLabel {
	switch {
	case score >= 80:
		return models.PlanningLabelVeryHigh
	case score >= 60:
		return models.PlanningLabelHigh
	case score >= 40:
		return models.PlanningLabelMedium
	default:
		return models.PlanningLabelLow
	}
}

// collectFactors builds the positive and negative factor lists, each
// ordered by magnitude of impact
func collectFactors(evidence precedentEvidence, feasibility feasibilityResult, uplift upliftResult) ([]string, []string) {
	factors := make([]factor, 0, len(feasibility.factors)+4)
	factors = append(factors, feasibility.factors...)

	if n := len(evidence.relevant); n > 0 {
		text := fmt.Sprintf("%d of %d relevant precedents approved", evidence.approvedCount, n)
		impact := (evidence.approvalRate - 0.5) * 40
		factors = append(factors, factor{text: text, impact: impact})

		if evidence.typeMatches > 0 {
			factors = append(factors, factor{
				text:   fmt.Sprintf("%d approved precedents match the proposed scheme type", evidence.typeMatches),
				impact: minF(20, float64(evidence.typeMatches)*5),
			})
		}
		if evidence.recentRefusals > 0 {
			factors = append(factors, factor{
				text:   fmt.Sprintf("%d refusals in the last two years", evidence.recentRefusals),
				impact: -minF(20, float64(evidence.recentRefusals)*5),
			})
		}
		if evidence.nearbyApprovals > 0 {
			factors = append(factors, factor{
				text:   fmt.Sprintf("%d approvals within 100m of the site", evidence.nearbyApprovals),
				impact: minF(10, float64(evidence.nearbyApprovals)*5),
			})
		}
	} else {
		factors = append(factors, factor{text: "No comparable planning precedents found", impact: -5})
	}

	if uplift.estimate.PercentRange.Mid > 0 {
		factors = append(factors, factor{
			text:   fmt.Sprintf("Estimated %.0f%% mid-case value uplift", uplift.estimate.PercentRange.Mid),
			impact: uplift.score / 10,
		})
	}

	sort.SliceStable(factors, func(a, b int) bool {
		ia, ib := factors[a].impact, factors[b].impact
		if ia < 0 {
			ia = -ia
		}
		if ib < 0 {
			ib = -ib
		}
		return ia > ib
	})

	var positives, negatives []string
	for _, f := range factors {
		if f.impact >= 0 {
			positives = append(positives, f.text)
		} else {
			negatives = append(negatives, f.text)
		}
	}
	return positives, negatives
}
