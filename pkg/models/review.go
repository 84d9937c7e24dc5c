package models

import "time"

// ReviewStatus is the state of a recommendation in the review workflow
type ReviewStatus string

const (
	ReviewStatusNew       ReviewStatus = "new"
	ReviewStatusReviewing ReviewStatus = "reviewing"
	ReviewStatusAccepted  ReviewStatus = "accepted"
	ReviewStatusDeclined  ReviewStatus = "declined"
)

// ReviewStatuses lists every review status
func ReviewStatuses() []ReviewStatus {
	return []ReviewStatus{
		ReviewStatusNew,
		ReviewStatusReviewing,
		ReviewStatusAccepted,
		ReviewStatusDeclined,
	}
}

// Review tracks the human decision on a recommendation
type Review struct {
	ID        string       `json:"id" db:"id"`
	TenantID  string       `json:"tenant_id" db:"tenant_id"`
	MandateID string       `json:"mandate_id" db:"mandate_id"`
	ListingID string       `json:"listing_id" db:"listing_id"`
	Status    ReviewStatus `json:"status" db:"status"`
	Score     float64      `json:"score" db:"score"`
	Action    Action       `json:"action" db:"action"`
	Assignee  *string      `json:"assignee,omitempty" db:"assignee"`
	Note      *string      `json:"note,omitempty" db:"note"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// ReviewEvent is one audit trail entry for a review transition
type ReviewEvent struct {
	ID         string       `json:"id" db:"id"`
	TenantID   string       `json:"tenant_id" db:"tenant_id"`
	ReviewID   string       `json:"review_id" db:"review_id"`
	FromStatus ReviewStatus `json:"from_status" db:"from_status"`
	ToStatus   ReviewStatus `json:"to_status" db:"to_status"`
	Actor      string       `json:"actor" db:"actor"`
	Note       *string      `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
