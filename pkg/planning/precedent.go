package planning

import (
	"time"

	"github.com/Ramsey-B/bramble/pkg/models"
)

const (
	// Precedents below this similarity carry no evidential weight
	minSimilarity = 0.3
	// Decisions older than this are ignored entirely
	maxAgeYears = 10.0
	// Precedents further away than this are ignored entirely
	maxDistanceMeters = 1000.0
	// Default multiplier when distance or decision date is unknown
	unknownFactor = 0.75
)

// relevantPrecedent is a precedent that passed the relevance gate,
// carrying its computed evidential weight
type relevantPrecedent struct {
	precedent models.Precedent
	weight    float64
	ageYears  float64
}

// relevance computes the evidential weight of one precedent: its
// similarity, boosted for a matching scheme type, decayed by the age of
// the decision and its distance from the site. Returns false when the
// precedent should be ignored.
func relevance(p models.Precedent, proposedType models.PrecedentType, asOf time.Time) (relevantPrecedent, bool) {
	if p.Similarity < minSimilarity {
		return relevantPrecedent{}, false
	}

	ageYears := -1.0
	if p.DecisionDate != nil {
		ageYears = asOf.Sub(*p.DecisionDate).Hours() / 24 / 365.25
		if ageYears > maxAgeYears {
			return relevantPrecedent{}, false
		}
		if ageYears < 0 {
			ageYears = 0
		}
	}
	if p.DistanceMeters != nil && *p.DistanceMeters > maxDistanceMeters {
		return relevantPrecedent{}, false
	}

	weight := p.Similarity
	if p.Type == proposedType {
		weight *= 1.5
	}

	if ageYears >= 0 {
		recencyFactor := 1 - ageYears/maxAgeYears
		weight *= 0.5 + 0.5*recencyFactor
	} else {
		weight *= unknownFactor
	}

	if p.DistanceMeters != nil {
		distanceFactor := 1 - *p.DistanceMeters/maxDistanceMeters
		weight *= 0.5 + 0.5*distanceFactor
	} else {
		weight *= unknownFactor
	}

	return relevantPrecedent{precedent: p, weight: weight, ageYears: ageYears}, true
}

// precedentEvidence summarizes the relevant precedents for one context
type precedentEvidence struct {
	score           float64
	relevant        []relevantPrecedent
	approvalRate    float64
	approvedCount   int
	typeMatches     int
	recentApprovals int
	recentRefusals  int
	nearbyApprovals int
}

// scorePrecedents computes the precedent sub-score. With no usable
// precedents the result is the neutral default, never an error.
func scorePrecedents(ctx *models.PlanningContext, asOf time.Time) precedentEvidence {
	evidence := precedentEvidence{}

	for _, p := range ctx.Precedents {
		rel, ok := relevance(p, ctx.ProposedType, asOf)
		if !ok {
			continue
		}
		evidence.relevant = append(evidence.relevant, rel)
	}

	if len(evidence.relevant) == 0 {
		evidence.score = 50
		return evidence
	}

	var weightSum, approvedWeight float64
	for _, rel := range evidence.relevant {
		weightSum += rel.weight
		p := rel.precedent

		if p.Approved {
			approvedWeight += rel.weight
			evidence.approvedCount++
			if p.Type == ctx.ProposedType {
				evidence.typeMatches++
			}
			if rel.ageYears >= 0 && rel.ageYears <= 2 {
				evidence.recentApprovals++
			}
			if p.DistanceMeters != nil && *p.DistanceMeters <= 100 {
				evidence.nearbyApprovals++
			}
		} else if rel.ageYears >= 0 && rel.ageYears <= 2 {
			evidence.recentRefusals++
		}
	}

	evidence.approvalRate = approvedWeight / weightSum

	score := evidence.approvalRate * 60
	score += minF(20, float64(evidence.typeMatches)*5)
	score += minF(15, float64(evidence.recentApprovals)*3)
	score -= minF(20, float64(evidence.recentRefusals)*5)
	score += minF(10, float64(evidence.nearbyApprovals)*5)

	evidence.score = clamp(score)
	return evidence
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
