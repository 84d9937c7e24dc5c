// Package events handles event emission for mandate lifecycle changes
package events

import (
	"context"

	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/kafka"
	"github.com/Ramsey-B/bramble/pkg/models"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter publishes domain events. A nil producer disables emission, so
// callers never have to branch on whether Kafka is configured.
type Emitter struct {
	producer *kafka.Producer
	logger   logging.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger logging.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

func (e *Emitter) publish(ctx context.Context, eventType EventType, tenantID, key string, payload any) error {
	if e == nil || e.producer == nil {
		return nil
	}
	if err := e.producer.Publish(ctx, string(eventType), tenantID, key, payload); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"event_type": eventType,
		}).Error("Failed to emit event")
		return err
	}
	return nil
}

// EmitMandateCreated emits a mandate.created event
func (e *Emitter) EmitMandateCreated(ctx context.Context, mandate *models.Mandate) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMandateCreated")
	defer span.End()

	return e.publish(ctx, EventTypeMandateCreated, mandate.TenantID, mandate.ID, &MandateEvent{
		BaseEvent:    NewBaseEvent(EventTypeMandateCreated, mandate.TenantID),
		MandateID:    mandate.ID,
		InvestorName: mandate.InvestorName,
		IsActive:     mandate.IsActive,
	})
}

// EmitMandateUpdated emits a mandate.updated event
func (e *Emitter) EmitMandateUpdated(ctx context.Context, mandate *models.Mandate) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMandateUpdated")
	defer span.End()

	return e.publish(ctx, EventTypeMandateUpdated, mandate.TenantID, mandate.ID, &MandateEvent{
		BaseEvent:    NewBaseEvent(EventTypeMandateUpdated, mandate.TenantID),
		MandateID:    mandate.ID,
		InvestorName: mandate.InvestorName,
		IsActive:     mandate.IsActive,
	})
}

// EmitMandateDeleted emits a mandate.deleted event
func (e *Emitter) EmitMandateDeleted(ctx context.Context, tenantID, mandateID string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMandateDeleted")
	defer span.End()

	return e.publish(ctx, EventTypeMandateDeleted, tenantID, mandateID, &MandateEvent{
		BaseEvent: NewBaseEvent(EventTypeMandateDeleted, tenantID),
		MandateID: mandateID,
	})
}

// EmitSearchCompleted emits a search.completed event
func (e *Emitter) EmitSearchCompleted(ctx context.Context, tenantID string, result *models.SearchResult, listingsTotal int, durationMs int64) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitSearchCompleted")
	defer span.End()

	event := &SearchCompletedEvent{
		BaseEvent:     NewBaseEvent(EventTypeSearchCompleted, tenantID),
		MandateID:     result.MandateID,
		ListingsTotal: listingsTotal,
		Summary:       result.Summary,
		DurationMs:    durationMs,
	}
	if len(result.Recommendations) > 0 {
		event.TopListingID = result.Recommendations[0].ListingID
	}

	return e.publish(ctx, EventTypeSearchCompleted, tenantID, result.MandateID, event)
}

// EmitReviewDecided emits a review.decided event
func (e *Emitter) EmitReviewDecided(ctx context.Context, tenantID string, review *models.Review, actor string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitReviewDecided")
	defer span.End()

	return e.publish(ctx, EventTypeReviewDecided, tenantID, review.MandateID, &ReviewDecidedEvent{
		BaseEvent: NewBaseEvent(EventTypeReviewDecided, tenantID),
		ReviewID:  review.ID,
		MandateID: review.MandateID,
		ListingID: review.ListingID,
		Status:    review.Status,
		Actor:     actor,
	})
}
