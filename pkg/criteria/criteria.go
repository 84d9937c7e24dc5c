// Package criteria validates mandate configuration before it is used
// for filtering or scoring.
package criteria

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Ramsey-B/bramble/pkg/models"
)

const (
	// KindValidation marks malformed or missing fields
	KindValidation = "validation_error"
	// KindConfiguration marks internally inconsistent thresholds or weights
	KindConfiguration = "configuration_error"
)

func validationError(format string, args ...any) error {
	return httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...)).
		AddMetaValue("kind", KindValidation)
}

func configurationError(format string, args ...any) error {
	return httperror.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(format, args...)).
		AddMetaValue("kind", KindConfiguration)
}

// ApplyDefaults fills unset scoring weights, deal criteria and priority
// on a mandate before validation.
func ApplyDefaults(m *models.Mandate) {
	if m.ScoringWeights.Sum() == 0 {
		m.ScoringWeights = models.DefaultScoringWeights()
	}
	zero := models.DealCriteria{}
	if m.DealCriteria == zero {
		m.DealCriteria = models.DefaultDealCriteria()
	}
	if m.Priority < 1 {
		m.Priority = 1
	}
}

// Validate checks a mandate for the invariants the engine depends on.
// A mandate that fails here is never partially applied.
func Validate(m *models.Mandate) error {
	if m.InvestorName == "" {
		return validationError("investor_name is required")
	}
	if len(m.AssetClasses) == 0 {
		return validationError("at least one asset class is required")
	}

	if err := validateWeights(m.ScoringWeights); err != nil {
		return err
	}
	if err := validateDealCriteria(m.DealCriteria); err != nil {
		return err
	}
	if err := validateFinancial(m.Financial); err != nil {
		return err
	}
	if err := validateProperty(m.Property); err != nil {
		return err
	}

	return nil
}

func validateWeights(w models.ScoringWeights) error {
	named := map[string]float64{
		"location_region":    w.LocationRegion,
		"location_postcode":  w.LocationPostcode,
		"price_range":        w.PriceRange,
		"price_psf":          w.PricePerSqft,
		"yield_minimum":      w.YieldMinimum,
		"yield_target":       w.YieldTarget,
		"property_size":      w.PropertySize,
		"property_condition": w.PropertyCondition,
		"property_tenure":    w.PropertyTenure,
		"risk_profile":       w.RiskProfile,
	}
	for name, weight := range named {
		if weight < 0 {
			return configurationError("scoring weight %s must be non-negative, got %v", name, weight)
		}
	}
	if w.Sum() <= 0 {
		return configurationError("scoring weights must have a positive sum")
	}
	return nil
}

func validateDealCriteria(dc models.DealCriteria) error {
	if dc.PursueScoreThreshold < dc.ConsiderScoreThreshold || dc.ConsiderScoreThreshold < dc.MinOverallScore {
		return configurationError(
			"score thresholds must satisfy pursue >= consider >= min_overall, got %v >= %v >= %v",
			dc.PursueScoreThreshold, dc.ConsiderScoreThreshold, dc.MinOverallScore)
	}
	if dc.ConvictionHigh < dc.ConvictionMedium || dc.ConvictionMedium < dc.ConvictionLow {
		return configurationError(
			"conviction thresholds must satisfy high >= medium >= low, got %v >= %v >= %v",
			dc.ConvictionHigh, dc.ConvictionMedium, dc.ConvictionLow)
	}
	if dc.ConvictionHigh > 1 || dc.ConvictionLow < 0 {
		return configurationError("conviction thresholds must be on the 0-1 scale")
	}
	if dc.MinOverallScore < 0 || dc.PursueScoreThreshold > 100 {
		return configurationError("score thresholds must be on the 0-100 scale")
	}
	if dc.MinBMVPercent != nil && (*dc.MinBMVPercent < 0 || *dc.MinBMVPercent > 100) {
		return configurationError("min_bmv_percent must be between 0 and 100")
	}
	if dc.MaxDaysOnMarket != nil && *dc.MaxDaysOnMarket < 0 {
		return configurationError("max_days_on_market must be non-negative")
	}
	return nil
}

func validateFinancial(f models.FinancialCriteria) error {
	if f.MinDealSize != nil && f.MaxDealSize != nil && *f.MinDealSize > *f.MaxDealSize {
		return configurationError("min_deal_size must not exceed max_deal_size")
	}
	if f.MinYieldPercent != nil && f.TargetYield != nil && *f.MinYieldPercent > *f.TargetYield {
		return configurationError("min_yield_percent must not exceed target_yield_percent")
	}
	if f.MaxLTV != nil && (*f.MaxLTV <= 0 || *f.MaxLTV > 1) {
		return configurationError("max_ltv must be in (0, 1]")
	}
	if f.MaxPricePerSqft != nil && *f.MaxPricePerSqft <= 0 {
		return configurationError("max_price_per_sqft must be positive")
	}
	return nil
}

func validateProperty(p models.PropertyCriteria) error {
	if p.MinUnits != nil && p.MaxUnits != nil && *p.MinUnits > *p.MaxUnits {
		return configurationError("min_units must not exceed max_units")
	}
	if p.MinSqft != nil && p.MaxSqft != nil && *p.MinSqft > *p.MaxSqft {
		return configurationError("min_sqft must not exceed max_sqft")
	}
	if p.MinLeaseYears != nil && *p.MinLeaseYears < 0 {
		return configurationError("min_lease_years must be non-negative")
	}
	return nil
}
