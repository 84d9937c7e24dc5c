// Package classify maps composite scores to action buckets, letter
// grades, conviction levels and priority ranks.
package classify

import (
	"sort"

	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/scoring"
)

// GradeCutPoints are the letter grade boundaries on the 0-100 scale.
// They are configuration, not a hard-coded business rule.
type GradeCutPoints struct {
	A float64
	B float64
	C float64
	D float64
}

// DefaultGradeCutPoints returns the standard banding
func DefaultGradeCutPoints() GradeCutPoints {
	return GradeCutPoints{A: 90, B: 75, C: 60, D: 40}
}

// Classifier assigns actions, grades and convictions using a mandate's
// deal criteria and the configured grade banding
type Classifier struct {
	grades GradeCutPoints
}

// New creates a classifier with the given grade cut points
func New(grades GradeCutPoints) *Classifier {
	return &Classifier{grades: grades}
}

// Outcome is the classification of one scored listing
type Outcome struct {
	Action         models.Action
	Grade          models.Grade
	Conviction     models.Conviction
	BMVOpportunity bool
	BMVDiscount    float64
}

// Classify maps a composite score and listing signals to an outcome.
// The action ladder is checked top down, so a score exactly at the
// pursue threshold classifies as pursue.
func (c *Classifier) Classify(mandate *models.Mandate, score float64, listing models.Listing) Outcome {
	dc := mandate.DealCriteria

	var action models.Action
	switch {
	case score >= dc.PursueScoreThreshold:
		action = models.ActionPursue
	case score >= dc.ConsiderScoreThreshold:
		action = models.ActionConsider
	case score >= dc.MinOverallScore:
		action = models.ActionWatch
	default:
		action = models.ActionPass
	}

	bmv, discount := c.bmvOpportunity(mandate, listing)

	return Outcome{
		Action:         action,
		Grade:          c.Grade(score),
		Conviction:     c.Conviction(mandate, score),
		BMVOpportunity: bmv,
		BMVDiscount:    discount,
	}
}

// Grade letter-bands a composite score
func (c *Classifier) Grade(score float64) models.Grade {
	switch {
	case score >= c.grades.A:
		return models.GradeA
	case score >= c.grades.B:
		return models.GradeB
	case score >= c.grades.C:
		return models.GradeC
	case score >= c.grades.D:
		return models.GradeD
	default:
		return models.GradeF
	}
}

// Conviction ladders the normalized score (score/100) against the
// mandate's 0-1 conviction thresholds.
func (c *Classifier) Conviction(mandate *models.Mandate, score float64) models.Conviction {
	normalized := score / 100
	dc := mandate.DealCriteria
	switch {
	case normalized >= dc.ConvictionHigh:
		return models.ConvictionHigh
	case normalized >= dc.ConvictionMedium:
		return models.ConvictionMedium
	case normalized >= dc.ConvictionLow:
		return models.ConvictionLow
	default:
		return models.ConvictionNone
	}
}

// bmvOpportunity compares asking price against the listing's independent
// valuation. Without a valuation reference or a mandate BMV floor, the
// flag stays false.
func (c *Classifier) bmvOpportunity(mandate *models.Mandate, listing models.Listing) (bool, float64) {
	discount, ok := scoring.BMVDiscount(listing)
	if !ok {
		return false, 0
	}
	minBMV := mandate.DealCriteria.MinBMVPercent
	if minBMV == nil {
		return false, discount
	}
	return discount >= *minBMV, discount
}

// Rank assigns dense 1-based priority ranks to all non-pass
// recommendations, ordered by score descending, BMV opportunity as the
// first tiebreak and listing identity ascending as the final tiebreak.
// Pass recommendations keep rank zero. The sort is deterministic
// regardless of input order.
func Rank(recommendations []models.Recommendation) {
	indexes := make([]int, 0, len(recommendations))
	for i := range recommendations {
		recommendations[i].PriorityRank = 0
		if recommendations[i].Action != models.ActionPass {
			indexes = append(indexes, i)
		}
	}

	sort.SliceStable(indexes, func(a, b int) bool {
		ra, rb := recommendations[indexes[a]], recommendations[indexes[b]]
		if ra.Score != rb.Score {
			return ra.Score > rb.Score
		}
		if ra.BMVOpportunity != rb.BMVOpportunity {
			return ra.BMVOpportunity
		}
		return ra.ListingID < rb.ListingID
	})

	for rank, idx := range indexes {
		recommendations[idx].PriorityRank = rank + 1
	}
}
