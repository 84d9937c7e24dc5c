// Package narrative turns scores and classification outcomes into the
// human readable headline, rationale, next steps and risks attached to
// a recommendation.
package narrative

import (
	"fmt"
	"sort"

	"github.com/Ramsey-B/bramble/pkg/classify"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/scoring"
)

// strongPlanningScore annotates the headline when planning upside is a
// material part of the story
const strongPlanningScore = 70.0

// Input bundles everything the narrative is built from
type Input struct {
	Mandate     *models.Mandate
	Listing     models.Listing
	Breakdown   scoring.Breakdown
	Outcome     classify.Outcome
	Planning    *models.PlanningScore
	SoftReasons []models.RejectionReason
}

// Output is the generated narrative
type Output struct {
	Headline  string
	Rationale []string
	NextSteps []string
	Risks     []string
}

// Build generates the narrative for one recommendation
func Build(in Input) Output {
	out := Output{
		Headline:  headline(in),
		Rationale: rationale(in),
		NextSteps: nextSteps(in),
		Risks:     risks(in),
	}
	return out
}

func headline(in Input) string {
	name := in.Listing.Title
	if name == "" {
		name = in.Listing.ID
	}

	var base string
	switch in.Outcome.Action {
	case models.ActionPursue:
		base = fmt.Sprintf("Pursue: %s scores %.0f/100 against %s", name, in.Breakdown.Composite, in.Mandate.InvestorName)
	case models.ActionConsider:
		base = fmt.Sprintf("Consider: %s scores %.0f/100 for %s", name, in.Breakdown.Composite, in.Mandate.InvestorName)
	case models.ActionWatch:
		base = fmt.Sprintf("Watch: %s is a marginal %.0f/100 fit", name, in.Breakdown.Composite)
	default:
		base = fmt.Sprintf("Pass: %s scores %.0f/100, below the mandate floor", name, in.Breakdown.Composite)
	}

	if in.Outcome.BMVOpportunity {
		base += fmt.Sprintf(" with a %.0f%% below-market entry", in.Outcome.BMVDiscount)
	}
	if in.Planning != nil && in.Planning.Score >= strongPlanningScore {
		base += fmt.Sprintf(" plus %s planning upside", in.Planning.Label)
	}
	return base
}

// rationale lists the strongest sub-score signals first
func rationale(in Input) []string {
	type namedScore struct {
		name  string
		score float64
	}
	scores := make([]namedScore, 0, len(in.Breakdown.SubScores))
	for name, score := range in.Breakdown.SubScores {
		scores = append(scores, namedScore{name: name, score: score})
	}
	sort.Slice(scores, func(a, b int) bool {
		if scores[a].score != scores[b].score {
			return scores[a].score > scores[b].score
		}
		return scores[a].name < scores[b].name
	})

	lines := []string{}
	for _, s := range scores {
		switch {
		case s.score >= 90:
			lines = append(lines, fmt.Sprintf("Strong %s fit (%.0f/100)", describe(s.name), s.score))
		case s.score <= 40:
			lines = append(lines, fmt.Sprintf("Weak %s fit (%.0f/100)", describe(s.name), s.score))
		}
	}

	if in.Outcome.BMVOpportunity {
		lines = append(lines, fmt.Sprintf("Asking price is %.0f%% below the independent valuation", in.Outcome.BMVDiscount))
	}
	if in.Planning != nil {
		lines = append(lines, fmt.Sprintf("Planning potential is %s (%.0f/100)", in.Planning.Label, in.Planning.Score))
	}
	if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("Balanced fit across criteria at %.0f/100", in.Breakdown.Composite))
	}
	return lines
}

func nextSteps(in Input) []string {
	var steps []string
	switch in.Outcome.Action {
	case models.ActionPursue:
		steps = append(steps,
			"Request the full information pack and tenancy schedule",
			"Commission an independent valuation",
			"Line up debt terms within the mandate's LTV cap")
	case models.ActionConsider:
		steps = append(steps,
			"Request further detail on the weakest scoring criteria",
			"Model returns at the mandate's target yield")
	case models.ActionWatch:
		steps = append(steps, "Monitor for a price reduction or updated information")
	}
	if in.Planning != nil && in.Planning.Score >= strongPlanningScore {
		steps = append(steps, "Obtain pre-application planning advice to validate the uplift case")
	}
	return steps
}

func risks(in Input) []string {
	var out []string
	for _, reason := range in.SoftReasons {
		out = append(out, reason.Explanation)
	}
	if in.Listing.Tenure == models.TenureLeasehold {
		years := in.Listing.Financial.RemainingLeaseYears
		if years != nil && *years < 90 {
			out = append(out, fmt.Sprintf("Leasehold with %d years remaining, extension cost should be priced in", *years))
		}
	}
	if in.Listing.PropertyDetails.Condition == models.ConditionHeavyRefurb ||
		in.Listing.PropertyDetails.Condition == models.ConditionDevelopment {
		out = append(out, "Works-heavy asset, build cost inflation and programme risk apply")
	}
	if in.Planning != nil {
		for _, negative := range in.Planning.NegativeFactors {
			out = append(out, negative)
			break
		}
	}
	return out
}

func describe(subScore string) string {
	switch subScore {
	case scoring.SubScoreLocationRegion:
		return "region"
	case scoring.SubScoreLocationPostcode:
		return "postcode"
	case scoring.SubScorePriceRange:
		return "price"
	case scoring.SubScorePricePerSqft:
		return "price per sqft"
	case scoring.SubScoreYieldMinimum:
		return "yield floor"
	case scoring.SubScoreYieldTarget:
		return "target yield"
	case scoring.SubScorePropertySize:
		return "size"
	case scoring.SubScorePropertyCondition:
		return "condition"
	case scoring.SubScorePropertyTenure:
		return "tenure"
	case scoring.SubScoreRiskProfile:
		return "risk profile"
	}
	return subScore
}
