package planning

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// factor records one signal and its signed impact on a sub-score,
// used to build the ordered positive/negative factor lists
type factor struct {
	text   string
	impact float64
}

// feasibilityResult carries the constraint-adjusted sub-score plus the
// signals behind it
type feasibilityResult struct {
	score    float64
	factors  []factor
	blockers []string
}

const feasibilityBaseline = 70.0

// scoreFeasibility starts from a baseline and applies constraint
// penalties. Hard blockers cap the score at 20 regardless of what else
// the site has going for it.
func scoreFeasibility(ctx *models.PlanningContext) feasibilityResult {
	res := feasibilityResult{score: feasibilityBaseline}

	res.applyHeritage(ctx)
	res.applyDesignations(ctx)
	res.applyFloodZone(ctx)
	res.applyPropertyType(ctx)
	res.applyTenure(ctx)
	res.applyPlot(ctx)

	if ctx.PermittedDevRights {
		res.add("Permitted development rights in place", 8)
	}

	res.score = clamp(res.score)
	if len(res.blockers) > 0 && res.score > 20 {
		res.score = 20
	}
	return res
}

func (r *feasibilityResult) add(text string, impact float64) {
	r.score += impact
	r.factors = append(r.factors, factor{text: text, impact: impact})
}

func (r *feasibilityResult) block(text string, impact float64) {
	r.add(text, impact)
	r.blockers = append(r.blockers, text)
}

func (r *feasibilityResult) applyHeritage(ctx *models.PlanningContext) {
	if !ctx.IsListed {
		r.add("Building is not listed", 5)
	} else if ctx.ListedGrade != nil {
		switch *ctx.ListedGrade {
		case models.ListedGradeI:
			r.block("Property is Grade I listed", -40)
		case models.ListedGradeIIStar:
			r.add("Property is Grade II* listed", -25)
		case models.ListedGradeII:
			r.add("Property is Grade II listed", -15)
		}
	} else {
		r.add("Property is listed, grade unknown", -15)
	}

	if ctx.ConservationArea {
		r.add("Site is in a conservation area", -10)
	} else {
		r.add("Outside conservation areas", 3)
	}
}

func (r *feasibilityResult) applyDesignations(ctx *models.PlanningContext) {
	if ctx.GreenBelt {
		switch ctx.ProposedType {
		case models.PrecedentTypeNewBuild, models.PrecedentTypeDemolitionRebuild:
			r.block("New build on green belt land", -40)
		case models.PrecedentTypeExtensionRear, models.PrecedentTypeExtensionSide,
			models.PrecedentTypeExtensionLoft, models.PrecedentTypeExtensionBasement:
			r.add("Green belt constrains extensions", -20)
		default:
			r.add("Site is green belt", -25)
		}
	}
	if ctx.Article4Direction {
		r.add("Article 4 direction removes permitted development", -10)
	}
	if ctx.TreePreservation {
		r.add("Tree preservation order on site", -5)
	}
}

func (r *feasibilityResult) applyFloodZone(ctx *models.PlanningContext) {
	switch {
	case ctx.FloodZone <= 1:
		// Zone 1 is the lowest risk designation and is treated as neutral
		if ctx.FloodZone == 1 {
			r.add("Flood zone 1, lowest flood risk", 2)
		}
	case ctx.FloodZone == 2:
		r.add("Flood zone 2, medium flood risk", -5)
	default:
		r.add(fmt.Sprintf("Flood zone %d, high flood risk", ctx.FloodZone), -15)
	}
}

func (r *feasibilityResult) applyPropertyType(ctx *models.PlanningContext) {
	propertyType := strings.ToLower(ctx.PropertyType)
	isExtension := isExtensionType(ctx.ProposedType)

	switch {
	case strings.Contains(propertyType, "flat") && isExtension:
		r.add("Extending a flat usually needs freeholder consent", -15)
	case strings.Contains(propertyType, "terraced") && ctx.ProposedType == models.PrecedentTypeExtensionSide:
		r.add("Side extensions on terraced properties are rarely viable", -20)
	case (strings.Contains(propertyType, "house") || strings.Contains(propertyType, "detached")) && isExtension:
		r.add("Houses extend more readily than other property types", 5)
	}
}

func (r *feasibilityResult) applyTenure(ctx *models.PlanningContext) {
	switch ctx.Tenure {
	case models.TenureFreehold:
		r.add("Freehold ownership, no landlord consent needed", 3)
	case models.TenureLeasehold:
		r.add("Leasehold tenure needs freeholder consent for works", -10)
	}
}

func (r *feasibilityResult) applyPlot(ctx *models.PlanningContext) {
	if ctx.PlotSqft == nil || *ctx.PlotSqft <= 0 {
		return
	}
	plot := *ctx.PlotSqft

	if ctx.CurrentSqft != nil && *ctx.CurrentSqft > 0 {
		coverage := *ctx.CurrentSqft / plot
		if coverage < 0.3 {
			r.add("Low plot coverage leaves room to build", 10)
		} else if coverage > 0.6 {
			r.add("Plot is already densely developed", -10)
		}
	}

	if plot > 5000 {
		r.add("Large plot", 5)
	} else if plot < 1000 {
		r.add("Small plot", -3)
	}
}

func isExtensionType(t models.PrecedentType) bool {
	switch t {
	case models.PrecedentTypeExtensionRear, models.PrecedentTypeExtensionSide,
		models.PrecedentTypeExtensionLoft, models.PrecedentTypeExtensionBasement:
		return true
	}
	return false
}
