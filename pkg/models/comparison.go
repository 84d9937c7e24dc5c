package models

// MandateProfile is the flattened projection of one mandate used for
// side by side review. No scoring is involved.
type MandateProfile struct {
	MandateID        string       `json:"mandate_id"`
	InvestorName     string       `json:"investor_name"`
	InvestorType     InvestorType `json:"investor_type"`
	RiskProfile      RiskProfile  `json:"risk_profile"`
	AssetClasses     []AssetClass `json:"asset_classes"`
	PriceRange       PriceRange   `json:"price_range"`
	YieldRequirement YieldBand    `json:"yield_requirement"`
	Regions          []string     `json:"regions"`
	Postcodes        []string     `json:"postcodes"`
	ExcludeRegions   []string     `json:"exclude_regions"`
	ExcludePostcodes []string     `json:"exclude_postcodes"`
}

// PriceRange is a mandate's deal size bounds; nil means unconstrained
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// YieldBand is a mandate's yield floor and target
type YieldBand struct {
	MinPercent    *float64 `json:"min_percent,omitempty"`
	TargetPercent *float64 `json:"target_percent,omitempty"`
}

// ComparisonView is the cross mandate aggregation. Output order mirrors
// the input mandate order.
type ComparisonView struct {
	Mandates    []MandateProfile `json:"mandates"`
	PriceRanges []PriceRange     `json:"price_ranges"`
}
