package models

import "time"

// PlanningContext carries the physical and regulatory attributes of a
// site plus the precedent evidence for a proposed scheme. One context
// applies to one listing evaluation; precedents are evidence inputs only
// and do not persist beyond the analysis call.
type PlanningContext struct {
	Tenure              Tenure        `json:"tenure,omitempty"`
	PropertyType        string        `json:"property_type,omitempty"`
	CurrentSqft         *float64      `json:"current_sqft,omitempty"`
	PlotSqft            *float64      `json:"plot_sqft,omitempty"`
	CurrentValue        *float64      `json:"current_value,omitempty"`
	IsListed            bool          `json:"is_listed"`
	ListedGrade         *ListedGrade  `json:"listed_grade,omitempty"`
	ConservationArea    bool          `json:"conservation_area"`
	Article4Direction   bool          `json:"article4_direction"`
	GreenBelt           bool          `json:"green_belt"`
	TreePreservation    bool          `json:"tree_preservation_order"`
	FloodZone           int           `json:"flood_zone"`
	PermittedDevRights  bool          `json:"permitted_development_rights"`
	ProposedType        PrecedentType `json:"proposed_type"`
	Precedents          []Precedent   `json:"precedents,omitempty"`
}

// Precedent is a prior planning application used as evidence for the
// feasibility of proposed works nearby.
type Precedent struct {
	Reference      string        `json:"reference"`
	Type           PrecedentType `json:"type"`
	Approved       bool          `json:"approved"`
	Similarity     float64       `json:"similarity"`
	DistanceMeters *float64      `json:"distance_meters,omitempty"`
	DecisionDate   *time.Time    `json:"decision_date,omitempty"`
}

// PlanningLabel buckets a planning score qualitatively
type PlanningLabel string

const (
	PlanningLabelLow      PlanningLabel = "low"
	PlanningLabelMedium   PlanningLabel = "medium"
	PlanningLabelHigh     PlanningLabel = "high"
	PlanningLabelVeryHigh PlanningLabel = "very_high"
)

// PlanningScore is the result of a planning potential analysis
type PlanningScore struct {
	Score           float64            `json:"score"`
	Label           PlanningLabel      `json:"label"`
	Components      PlanningComponents `json:"components"`
	UpliftEstimate  UpliftEstimate     `json:"uplift_estimate"`
	PositiveFactors []string           `json:"positive_factors"`
	NegativeFactors []string           `json:"negative_factors"`
	Disclaimer      string             `json:"disclaimer"`
}

// PlanningComponents are the three sub-scores behind a planning score
type PlanningComponents struct {
	PrecedentScore   float64 `json:"precedent_score"`
	FeasibilityScore float64 `json:"feasibility_score"`
	UpliftScore      float64 `json:"uplift_score"`
}

// UpliftEstimate is the projected value creation from a successful scheme
type UpliftEstimate struct {
	PercentRange Range `json:"percent_range"`
	ValueRange   Range `json:"value_range"`
}

// Range is a low/mid/high band
type Range struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}
