// Package scoring computes the weighted composite score for a listing
// against a mandate. Scoring is a pure function of its inputs: no
// randomness, no I/O, identical inputs always produce identical output.
package scoring

import (
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// Sub-score names, keyed the same way as the mandate weight vector
const (
	SubScoreLocationRegion    = "location_region"
	SubScoreLocationPostcode  = "location_postcode"
	SubScorePriceRange        = "price_range"
	SubScorePricePerSqft      = "price_psf"
	SubScoreYieldMinimum      = "yield_minimum"
	SubScoreYieldTarget       = "yield_target"
	SubScorePropertySize      = "property_size"
	SubScorePropertyCondition = "property_condition"
	SubScorePropertyTenure    = "property_tenure"
	SubScoreRiskProfile       = "risk_profile"
)

// neutralScore is the credit given when a criterion is unconstrained
// or the listing carries no signal for it
const neutralScore = 70.0

// Breakdown holds the composite and every sub-score on the 0-100 scale
type Breakdown struct {
	Composite float64
	SubScores map[string]float64
}

// Score computes the weighted composite for one listing. Weights are
// re-normalized by their own sum, so scaling every weight by the same
// positive constant leaves the composite unchanged. A zero weight sum is
// a configuration error, never a divide by zero.
func Score(mandate *models.Mandate, listing models.Listing) (Breakdown, error) {
	weights := mandate.ScoringWeights
	weightSum := weights.Sum()
	if weightSum <= 0 {
		return Breakdown{}, httperror.NewHTTPError(http.StatusUnprocessableEntity,
			"scoring weights must have a positive sum").
			AddMetaValue("kind", "configuration_error").
			AddMetaValue("mandate_id", mandate.ID)
	}

	subScores := map[string]float64{
		SubScoreLocationRegion:    scoreLocationRegion(mandate, listing),
		SubScoreLocationPostcode:  scoreLocationPostcode(mandate, listing),
		SubScorePriceRange:        scorePriceRange(mandate, listing),
		SubScorePricePerSqft:      scorePricePerSqft(mandate, listing),
		SubScoreYieldMinimum:      scoreYieldMinimum(mandate, listing),
		SubScoreYieldTarget:       scoreYieldTarget(mandate, listing),
		SubScorePropertySize:      scorePropertySize(mandate, listing),
		SubScorePropertyCondition: scorePropertyCondition(mandate, listing),
		SubScorePropertyTenure:    scorePropertyTenure(mandate, listing),
		SubScoreRiskProfile:       scoreRiskProfile(mandate, listing),
	}

	weighted := weights.LocationRegion*subScores[SubScoreLocationRegion] +
		weights.LocationPostcode*subScores[SubScoreLocationPostcode] +
		weights.PriceRange*subScores[SubScorePriceRange] +
		weights.PricePerSqft*subScores[SubScorePricePerSqft] +
		weights.YieldMinimum*subScores[SubScoreYieldMinimum] +
		weights.YieldTarget*subScores[SubScoreYieldTarget] +
		weights.PropertySize*subScores[SubScorePropertySize] +
		weights.PropertyCondition*subScores[SubScorePropertyCondition] +
		weights.PropertyTenure*subScores[SubScorePropertyTenure] +
		weights.RiskProfile*subScores[SubScoreRiskProfile]

	return Breakdown{
		Composite: clamp(weighted / weightSum),
		SubScores: subScores,
	}, nil
}

// scoreLocationRegion gives full credit for an explicit region match and
// neutral credit when the mandate has no region preference.
func scoreLocationRegion(mandate *models.Mandate, listing models.Listing) float64 {
	regions := mandate.Geographic.Regions
	if len(regions) == 0 {
		return neutralScore
	}
	if matchesFold(regions, listing.Address.Region) {
		return 100
	}
	return 30
}

// scoreLocationPostcode gives full credit when the postcode area is
// explicitly listed, partial credit when only the region matches.
func scoreLocationPostcode(mandate *models.Mandate, listing models.Listing) float64 {
	postcodes := mandate.Geographic.Postcodes
	area := listing.Address.PostcodeArea()

	if len(postcodes) == 0 {
		if len(mandate.Geographic.Regions) == 0 {
			return neutralScore
		}
		if matchesFold(mandate.Geographic.Regions, listing.Address.Region) {
			return 100
		}
		return 30
	}
	if matchesFold(postcodes, area) {
		return 100
	}
	if matchesFold(mandate.Geographic.Regions, listing.Address.Region) {
		return 70
	}
	return 0
}

// scorePriceRange rewards pricing near the middle of the mandate's deal
// size band, decaying toward the bounds.
func scorePriceRange(mandate *models.Mandate, listing models.Listing) float64 {
	fin := mandate.Financial
	price := listing.Financial.AskingPrice

	if fin.MinDealSize == nil || fin.MaxDealSize == nil || *fin.MaxDealSize <= *fin.MinDealSize {
		if fin.MaxDealSize != nil && price > 0 {
			// Single-sided cap: deeper under the cap scores higher
			ratio := price / *fin.MaxDealSize
			if ratio > 1 {
				return 0
			}
			return clamp(100 - ratio*20)
		}
		return neutralScore
	}

	if price < *fin.MinDealSize || price > *fin.MaxDealSize {
		return 0
	}
	position := (price - *fin.MinDealSize) / (*fin.MaxDealSize - *fin.MinDealSize)
	// 100 at the midpoint, 80 at either bound
	return clamp(100 * (1 - abs(0.5-position)*0.4))
}

func scorePricePerSqft(mandate *models.Mandate, listing models.Listing) float64 {
	max := mandate.Financial.MaxPricePerSqft
	if max == nil {
		return neutralScore
	}
	psf, ok := listing.PricePerSqft()
	if !ok {
		return neutralScore
	}
	ratio := psf / *max
	switch {
	case ratio <= 0.7:
		return 100
	case ratio <= 1.0:
		// Linear from 100 at 0.7 down to 50 at the cap
		return clamp(100 - (ratio-0.7)/0.3*50)
	default:
		return 0
	}
}

// scoreYieldMinimum measures clearance over the mandate's yield floor
func scoreYieldMinimum(mandate *models.Mandate, listing models.Listing) float64 {
	min := mandate.Financial.MinYieldPercent
	if min == nil {
		return neutralScore
	}
	yield, ok := listing.GrossYield()
	if !ok {
		return neutralScore
	}
	if yield >= *min {
		return 100
	}
	// The hard filter rejects these, but keep the mapping total
	shortfall := *min - yield
	return clamp((0.7 - shortfall/10) * 100)
}

// scoreYieldTarget ramps from the yield floor up to the target and
// rewards exceeding it.
func scoreYieldTarget(mandate *models.Mandate, listing models.Listing) float64 {
	target := mandate.Financial.TargetYield
	if target == nil {
		return neutralScore
	}
	yield, ok := listing.GrossYield()
	if !ok {
		return neutralScore
	}

	if yield >= *target {
		excess := yield - *target
		return clamp(90 + excess*20)
	}

	floor := 0.0
	if mandate.Financial.MinYieldPercent != nil {
		floor = *mandate.Financial.MinYieldPercent
	}
	if yield < floor {
		return 0
	}
	if *target <= floor {
		return 90
	}
	// Linear ramp from 30 at the floor to 90 at the target
	return clamp(30 + 60*(yield-floor)/(*target-floor))
}

func scorePropertySize(mandate *models.Mandate, listing models.Listing) float64 {
	prop := mandate.Property
	sqft := listing.PropertyDetails.TotalSqft

	if prop.MinSqft == nil || prop.MaxSqft == nil || sqft == nil || *prop.MaxSqft <= *prop.MinSqft {
		return neutralScore
	}
	if *sqft < *prop.MinSqft || *sqft > *prop.MaxSqft {
		return 0
	}
	position := (*sqft - *prop.MinSqft) / (*prop.MaxSqft - *prop.MinSqft)
	return clamp(100 * (1 - abs(0.5-position)*0.4))
}

func scorePropertyCondition(mandate *models.Mandate, listing models.Listing) float64 {
	condition := listing.PropertyDetails.Condition
	if condition == models.ConditionUnknown {
		return neutralScore
	}
	accepted := mandate.Property.Conditions
	if len(accepted) == 0 {
		return neutralScore
	}
	for _, c := range accepted {
		if c == condition {
			return 100
		}
	}
	return 30
}

func scorePropertyTenure(mandate *models.Mandate, listing models.Listing) float64 {
	switch listing.Tenure {
	case models.TenureFreehold:
		return 100
	case models.TenureShareOfFreehold:
		return 80
	case models.TenureCommonhold:
		return 60
	case models.TenureLeasehold:
		min := mandate.Property.MinLeaseYears
		years := listing.Financial.RemainingLeaseYears
		if min == nil || years == nil || *min <= 0 {
			return 60
		}
		// Longer leases relative to the floor score higher
		ratio := float64(*years) / float64(*min)
		if ratio >= 2 {
			return 80
		}
		if ratio < 1 {
			return 20
		}
		return clamp(40 + 40*(ratio-1))
	default:
		return 50
	}
}

// scoreRiskProfile compares the mandate's risk appetite against the risk
// implied by the listing's build condition.
func scoreRiskProfile(mandate *models.Mandate, listing models.Listing) float64 {
	implied := listing.PropertyDetails.Condition.ImpliedRiskProfile()
	diff := listing2mandateRiskDelta(mandate.RiskProfile, implied)
	switch {
	case diff == 0:
		return 100
	case diff == 1:
		// Mandate can stomach one notch more risk than the asset carries
		return 80
	case diff >= 2:
		return 60
	case diff == -1:
		return 70
	default:
		return 30
	}
}

// listing2mandateRiskDelta is positive when the mandate's appetite
// exceeds the risk implied by the asset.
func listing2mandateRiskDelta(mandate, implied models.RiskProfile) int {
	return mandate.RiskLevel() - implied.RiskLevel()
}

// BMVDiscount returns the below-market-value discount percentage when
// the listing carries an independent valuation reference.
func BMVDiscount(listing models.Listing) (float64, bool) {
	est := listing.Financial.EstimatedValue
	if est == nil || *est <= 0 {
		return 0, false
	}
	return (*est - listing.Financial.AskingPrice) / *est * 100, true
}

func matchesFold(haystack []string, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	for _, candidate := range haystack {
		if strings.EqualFold(strings.TrimSpace(candidate), needle) {
			return true
		}
	}
	return false
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

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
