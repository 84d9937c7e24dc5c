package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/models"
)

// PrecedentStore persists planning precedents as graph nodes keyed by
// postcode area, so a search can enrich a listing's planning context with
// decisions recorded near it.
type PrecedentStore struct {
	client *Client
	logger logging.Logger
}

// NewPrecedentStore creates a new precedent store
func NewPrecedentStore(client *Client, logger logging.Logger) *PrecedentStore {
	return &PrecedentStore{
		client: client,
		logger: logger,
	}
}

// Upsert creates or updates a precedent node and links it to its postcode area
func (s *PrecedentStore) Upsert(ctx context.Context, tenantID, postcodeArea string, precedent *models.Precedent) error {
	ctx, span := tracing.StartSpan(ctx, "graph.PrecedentStore.Upsert")
	defer span.End()

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"reference":     precedent.Reference,
		"postcode_area": postcodeArea,
		"tenant_id":     tenantID,
	})

	props := map[string]any{
		"reference":  precedent.Reference,
		"tenant_id":  tenantID,
		"type":       string(precedent.Type),
		"approved":   precedent.Approved,
		"similarity": precedent.Similarity,
	}
	if precedent.DistanceMeters != nil {
		props["distance_meters"] = *precedent.DistanceMeters
	}
	if precedent.DecisionDate != nil {
		props["decision_date"] = precedent.DecisionDate.UTC().Format(time.RFC3339)
	}

	cypher := `
		MERGE (a:PostcodeArea {code: $postcode_area, tenant_id: $tenant_id})
		MERGE (p:Precedent {reference: $reference, tenant_id: $tenant_id})
		SET p = $props
		MERGE (p)-[:IN_AREA]->(a)
		RETURN p
	`

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{
			"postcode_area": postcodeArea,
			"reference":     precedent.Reference,
			"tenant_id":     tenantID,
			"props":         props,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})

	if err != nil {
		log.WithError(err).Error("Failed to upsert precedent in graph")
		return fmt.Errorf("failed to upsert precedent in graph: %w", err)
	}

	log.Debug("Upserted precedent in graph")
	return nil
}

// ListByPostcodeArea retrieves the precedents recorded for a postcode area
func (s *PrecedentStore) ListByPostcodeArea(ctx context.Context, tenantID, postcodeArea string) ([]models.Precedent, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.PrecedentStore.ListByPostcodeArea")
	defer span.End()

	cypher := `
		MATCH (p:Precedent)-[:IN_AREA]->(a:PostcodeArea {code: $postcode_area, tenant_id: $tenant_id})
		RETURN p.reference AS reference, p.type AS type, p.approved AS approved,
		       p.similarity AS similarity, p.distance_meters AS distance_meters,
		       p.decision_date AS decision_date
		ORDER BY p.reference
	`

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{
			"postcode_area": postcodeArea,
			"tenant_id":     tenantID,
		})
		if err != nil {
			return nil, err
		}

		var precedents []models.Precedent
		for res.Next(ctx) {
			record := res.Record()
			precedent := models.Precedent{}
			if v, ok := record.Get("reference"); ok && v != nil {
				precedent.Reference, _ = v.(string)
			}
			if v, ok := record.Get("type"); ok && v != nil {
				if s, ok := v.(string); ok {
					precedent.Type = models.PrecedentType(s)
				}
			}
			if v, ok := record.Get("approved"); ok && v != nil {
				precedent.Approved, _ = v.(bool)
			}
			if v, ok := record.Get("similarity"); ok && v != nil {
				precedent.Similarity, _ = v.(float64)
			}
			if v, ok := record.Get("distance_meters"); ok && v != nil {
				if d, ok := v.(float64); ok {
					precedent.DistanceMeters = &d
				}
			}
			if v, ok := record.Get("decision_date"); ok && v != nil {
				if raw, ok := v.(string); ok {
					if ts, err := time.Parse(time.RFC3339, raw); err == nil {
						precedent.DecisionDate = &ts
					}
				}
			}
			precedents = append(precedents, precedent)
		}
		return precedents, res.Err()
	})
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list precedents from graph")
		return nil, fmt.Errorf("failed to list precedents from graph: %w", err)
	}

	precedents, _ := result.([]models.Precedent)
	return precedents, nil
}
