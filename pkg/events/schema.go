package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// EventType defines the type of event
type EventType string

const (
	// Mandate lifecycle events
	EventTypeMandateCreated EventType = "mandate.created"
	EventTypeMandateUpdated EventType = "mandate.updated"
	EventTypeMandateDeleted EventType = "mandate.deleted"

	// Search events
	EventTypeSearchCompleted EventType = "search.completed"

	// Review events
	EventTypeReviewDecided EventType = "review.decided"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType     EventType `json:"event_type"`
	SchemaVersion string    `json:"schema_version"`
	TenantID      string    `json:"tenant_id"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// NewBaseEvent builds the common envelope for an event
func NewBaseEvent(eventType EventType, tenantID string) BaseEvent {
	return BaseEvent{
		EventType:     eventType,
		SchemaVersion: SchemaVersion,
		TenantID:      tenantID,
		Timestamp:     time.Now().UTC(),
		CorrelationID: uuid.New().String(),
	}
}

// MandateEvent is emitted on mandate create, update, and delete
type MandateEvent struct {
	BaseEvent
	MandateID    string `json:"mandate_id"`
	InvestorName string `json:"investor_name,omitempty"`
	IsActive     bool   `json:"is_active"`
}

// SearchCompletedEvent is emitted after a mandate search finishes
type SearchCompletedEvent struct {
	BaseEvent
	MandateID     string               `json:"mandate_id"`
	ListingsTotal int                  `json:"listings_total"`
	Summary       models.SearchSummary `json:"summary"`
	TopListingID  string               `json:"top_listing_id,omitempty"`
	DurationMs    int64                `json:"duration_ms"`
}

// ReviewDecidedEvent is emitted when a review reaches accepted or declined
type ReviewDecidedEvent struct {
	BaseEvent
	ReviewID  string              `json:"review_id"`
	MandateID string              `json:"mandate_id"`
	ListingID string              `json:"listing_id"`
	Status    models.ReviewStatus `json:"status"`
	Actor     string              `json:"actor,omitempty"`
}
