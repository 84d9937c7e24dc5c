package models

// Action is the recommended next move for a scored listing
type Action string

const (
	ActionPursue   Action = "pursue"
	ActionConsider Action = "consider"
	ActionWatch    Action = "watch"
	ActionPass     Action = "pass"
)

// Grade is the letter banding of a composite score
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Conviction is the engine's confidence in a recommendation, distinct
// from the raw composite score
type Conviction string

const (
	ConvictionHigh   Conviction = "high"
	ConvictionMedium Conviction = "medium"
	ConvictionLow    Conviction = "low"
	ConvictionNone   Conviction = "none"
)

// Recommendation is the scored, classified output for one listing
type Recommendation struct {
	ListingID      string             `json:"listing_id"`
	ListingTitle   string             `json:"listing_title,omitempty"`
	Score          float64            `json:"score"`
	SubScores      map[string]float64 `json:"sub_scores,omitempty"`
	Grade          Grade              `json:"grade"`
	Action         Action             `json:"action"`
	Conviction     Conviction         `json:"conviction"`
	PriorityRank   int                `json:"priority_rank,omitempty"`
	BMVOpportunity bool               `json:"bmv_opportunity"`
	Planning       *PlanningScore     `json:"planning,omitempty"`
	Headline       string             `json:"headline"`
	Rationale      []string           `json:"rationale"`
	NextSteps      []string           `json:"next_steps,omitempty"`
	Risks          []string           `json:"risks,omitempty"`
}

// RejectionSeverity distinguishes disqualifying failures from advisory ones
type RejectionSeverity string

const (
	RejectionSeverityHard RejectionSeverity = "hard"
	RejectionSeveritySoft RejectionSeverity = "soft"
)

// RejectionReason explains why a hard filter rejected a listing
type RejectionReason struct {
	Category    string            `json:"category"`
	Severity    RejectionSeverity `json:"severity"`
	Code        string            `json:"code"`
	Title       string            `json:"title"`
	Explanation string            `json:"explanation"`
	Remedy      string            `json:"remedy,omitempty"`
}

// RejectedListing pairs a filtered out listing with its reasons
type RejectedListing struct {
	ListingID string            `json:"listing_id"`
	Reasons   []RejectionReason `json:"reasons"`
}

// SearchSummary counts recommendations per action bucket
type SearchSummary struct {
	Pursue   int `json:"pursue"`
	Consider int `json:"consider"`
	Watch    int `json:"watch"`
	Pass     int `json:"pass"`
	Rejected int `json:"rejected"`
}

// SearchResult is the full output of a matching run for one mandate
type SearchResult struct {
	MandateID       string            `json:"mandate_id"`
	MandateName     string            `json:"mandate_name"`
	Summary         SearchSummary     `json:"summary"`
	Recommendations []Recommendation  `json:"recommendations"`
	Rejected        []RejectedListing `json:"rejected,omitempty"`
	FilterSummary   map[string]int    `json:"filter_summary,omitempty"`
}
