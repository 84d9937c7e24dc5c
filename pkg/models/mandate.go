package models

import "time"

// Mandate is an investor's structured buying criteria plus scoring weights
// and decision thresholds.
type Mandate struct {
	ID             string             `json:"id" db:"id"`
	TenantID       string             `json:"tenant_id" db:"tenant_id"`
	InvestorName   string             `json:"investor_name" db:"investor_name"`
	InvestorType   InvestorType       `json:"investor_type" db:"investor_type"`
	RiskProfile    RiskProfile        `json:"risk_profile" db:"risk_profile"`
	Priority       int                `json:"priority" db:"priority"`
	IsActive       bool               `json:"is_active" db:"is_active"`
	Notes          *string            `json:"notes,omitempty" db:"notes"`
	AssetClasses   []AssetClass       `json:"asset_classes"`
	Geographic     GeographicCriteria `json:"geographic"`
	Financial      FinancialCriteria  `json:"financial"`
	Property       PropertyCriteria   `json:"property"`
	ScoringWeights ScoringWeights     `json:"scoring_weights"`
	DealCriteria   DealCriteria       `json:"deal_criteria"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time         `json:"deleted_at,omitempty" db:"deleted_at"`
}

// GeographicCriteria restricts where a mandate will buy.
// Exclusions always win over inclusions.
type GeographicCriteria struct {
	Regions          []string `json:"regions,omitempty"`
	Postcodes        []string `json:"postcodes,omitempty"`
	ExcludeRegions   []string `json:"exclude_regions,omitempty"`
	ExcludePostcodes []string `json:"exclude_postcodes,omitempty"`
}

// FinancialCriteria bounds the deal economics. Nil bounds are unconstrained.
type FinancialCriteria struct {
	MinDealSize     *float64 `json:"min_deal_size,omitempty"`
	MaxDealSize     *float64 `json:"max_deal_size,omitempty"`
	MinYieldPercent *float64 `json:"min_yield_percent,omitempty"`
	TargetYield     *float64 `json:"target_yield_percent,omitempty"`
	MaxLTV          *float64 `json:"max_ltv,omitempty"`
	MaxPricePerSqft *float64 `json:"max_price_per_sqft,omitempty"`
	TotalAllocation *float64 `json:"total_allocation,omitempty"`
}

// PropertyCriteria bounds the physical asset. Nil bounds are unconstrained.
type PropertyCriteria struct {
	MinUnits      *int        `json:"min_units,omitempty"`
	MaxUnits      *int        `json:"max_units,omitempty"`
	MinSqft       *float64    `json:"min_sqft,omitempty"`
	MaxSqft       *float64    `json:"max_sqft,omitempty"`
	Conditions    []Condition `json:"conditions,omitempty"`
	FreeholdOnly  bool        `json:"freehold_only"`
	MinLeaseYears *int        `json:"min_lease_years,omitempty"`
}

// ScoringWeights holds the ten named sub-score weights. Weights are
// non-negative and are re-normalized by their own sum at scoring time,
// so they are not required to sum to 1.
type ScoringWeights struct {
	LocationRegion    float64 `json:"location_region"`
	LocationPostcode  float64 `json:"location_postcode"`
	PriceRange        float64 `json:"price_range"`
	PricePerSqft      float64 `json:"price_psf"`
	YieldMinimum      float64 `json:"yield_minimum"`
	YieldTarget       float64 `json:"yield_target"`
	PropertySize      float64 `json:"property_size"`
	PropertyCondition float64 `json:"property_condition"`
	PropertyTenure    float64 `json:"property_tenure"`
	RiskProfile       float64 `json:"risk_profile"`
}

// Sum returns the total of all weights
func (w ScoringWeights) Sum() float64 {
	return w.LocationRegion + w.LocationPostcode + w.PriceRange + w.PricePerSqft +
		w.YieldMinimum + w.YieldTarget + w.PropertySize + w.PropertyCondition +
		w.PropertyTenure + w.RiskProfile
}

// DefaultScoringWeights returns the standard weight vector
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		LocationRegion:    0.15,
		LocationPostcode:  0.10,
		PriceRange:        0.20,
		PricePerSqft:      0.05,
		YieldMinimum:      0.15,
		YieldTarget:       0.10,
		PropertySize:      0.05,
		PropertyCondition: 0.10,
		PropertyTenure:    0.05,
		RiskProfile:       0.05,
	}
}

// DealCriteria holds the decision thresholds for a mandate.
// Score thresholds are on the 0-100 composite scale and must satisfy
// pursue >= consider >= min overall. Conviction thresholds are on the
// normalized 0-1 scale and must satisfy high >= medium >= low.
type DealCriteria struct {
	MinOverallScore        float64  `json:"min_overall_score"`
	ConsiderScoreThreshold float64  `json:"consider_score_threshold"`
	PursueScoreThreshold   float64  `json:"pursue_score_threshold"`
	ConvictionHigh         float64  `json:"conviction_high"`
	ConvictionMedium       float64  `json:"conviction_medium"`
	ConvictionLow          float64  `json:"conviction_low"`
	MinBMVPercent          *float64 `json:"min_bmv_percent,omitempty"`
	MaxDaysOnMarket        *int     `json:"max_days_on_market,omitempty"`
}

// DefaultDealCriteria returns the standard thresholds
func DefaultDealCriteria() DealCriteria {
	return DealCriteria{
		MinOverallScore:        40,
		ConsiderScoreThreshold: 60,
		PursueScoreThreshold:   75,
		ConvictionHigh:         0.80,
		ConvictionMedium:       0.60,
		ConvictionLow:          0.40,
	}
}

// CreateMandateRequest is the request to create a mandate
type CreateMandateRequest struct {
	InvestorName   string              `json:"investor_name" validate:"required"`
	InvestorType   InvestorType        `json:"investor_type" validate:"required"`
	RiskProfile    RiskProfile         `json:"risk_profile" validate:"required"`
	Priority       int                 `json:"priority"`
	IsActive       *bool               `json:"is_active,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
	AssetClasses   []AssetClass        `json:"asset_classes" validate:"required,min=1"`
	Geographic     GeographicCriteria  `json:"geographic"`
	Financial      FinancialCriteria   `json:"financial"`
	Property       PropertyCriteria    `json:"property"`
	ScoringWeights *ScoringWeights     `json:"scoring_weights,omitempty"`
	DealCriteria   *DealCriteria       `json:"deal_criteria,omitempty"`
}

// UpdateMandateRequest is the request to update a mandate
type UpdateMandateRequest struct {
	InvestorName   *string             `json:"investor_name,omitempty"`
	InvestorType   *InvestorType       `json:"investor_type,omitempty"`
	RiskProfile    *RiskProfile        `json:"risk_profile,omitempty"`
	Priority       *int                `json:"priority,omitempty"`
	IsActive       *bool               `json:"is_active,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
	AssetClasses   []AssetClass        `json:"asset_classes,omitempty"`
	Geographic     *GeographicCriteria `json:"geographic,omitempty"`
	Financial      *FinancialCriteria  `json:"financial,omitempty"`
	Property       *PropertyCriteria   `json:"property,omitempty"`
	ScoringWeights *ScoringWeights     `json:"scoring_weights,omitempty"`
	DealCriteria   *DealCriteria       `json:"deal_criteria,omitempty"`
}
