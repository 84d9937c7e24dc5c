// Package engine orchestrates one matching run: hard filtering, weighted
// scoring, classification, optional planning analysis and ranking.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/classify"
	"github.com/Ramsey-B/bramble/pkg/criteria"
	"github.com/Ramsey-B/bramble/pkg/filtering"
	"github.com/Ramsey-B/bramble/pkg/metrics"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/narrative"
	"github.com/Ramsey-B/bramble/pkg/planning"
	"github.com/Ramsey-B/bramble/pkg/scoring"
)

// Engine evaluates listings against mandates. It holds no per-call
// state; concurrent searches are safe.
type Engine struct {
	classifier *classify.Classifier
	analyzer   *planning.Analyzer
	logger     logging.Logger
	workers    int
}

// Config tunes the engine
type Config struct {
	GradeCutPoints classify.GradeCutPoints
	PlanningBlend  planning.BlendWeights
	Workers        int
}

// New creates an engine
func New(cfg Config, logger logging.Logger) *Engine {
	zero := classify.GradeCutPoints{}
	if cfg.GradeCutPoints == zero {
		cfg.GradeCutPoints = classify.DefaultGradeCutPoints()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	return &Engine{
		classifier: classify.New(cfg.GradeCutPoints),
		analyzer:   planning.NewAnalyzer(cfg.PlanningBlend),
		logger:     logger,
		workers:    cfg.Workers,
	}
}

// Search runs one full matching pass for a mandate over a candidate
// batch. Listings with a planning context get a planning analysis
// attached. All listings filtered out is an empty result, not an error.
func (e *Engine) Search(ctx context.Context, tenantID string, mandate *models.Mandate, listings []models.Listing, planningContexts map[string]*models.PlanningContext) (*models.SearchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.Search")
	defer span.End()

	start := time.Now()
	asOf := start.UTC()

	if err := criteria.Validate(mandate); err != nil {
		return nil, err
	}

	outcome := filtering.Filter(mandate, listings)
	for code, count := range outcome.Summary {
		metrics.ListingsRejectedTotal.WithLabelValues(tenantID, code).Add(float64(count))
	}

	recommendations, err := e.evaluate(ctx, tenantID, mandate, outcome.Surviving, planningContexts, asOf)
	if err != nil {
		return nil, err
	}

	classify.Rank(recommendations)
	sortForOutput(recommendations)

	result := &models.SearchResult{
		MandateID:       mandate.ID,
		MandateName:     mandate.InvestorName,
		Recommendations: recommendations,
		Rejected:        outcome.Rejected,
		FilterSummary:   outcome.Summary,
	}
	result.Summary = summarize(recommendations, len(outcome.Rejected))

	metrics.SearchesTotal.WithLabelValues(tenantID, mandate.ID).Inc()
	metrics.SearchDuration.WithLabelValues(tenantID).Observe(time.Since(start).Seconds())
	for _, rec := range recommendations {
		metrics.RecommendationsTotal.WithLabelValues(tenantID, string(rec.Action)).Inc()
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"mandate_id": mandate.ID,
		"candidates": len(listings),
		"surviving":  len(outcome.Surviving),
		"pursue":     result.Summary.Pursue,
	}).Info("Completed matching run")

	return result, nil
}

// evaluate scores, classifies and narrates surviving listings. Listings
// are evaluated concurrently; determinism of the final output comes from
// the rank sort, not the evaluation order.
func (e *Engine) evaluate(ctx context.Context, tenantID string, mandate *models.Mandate, listings []models.Listing, planningContexts map[string]*models.PlanningContext, asOf time.Time) ([]models.Recommendation, error) {
	if len(listings) == 0 {
		return []models.Recommendation{}, nil
	}

	recommendations := make([]models.Recommendation, len(listings))
	errs := make([]error, len(listings))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)

	for i := range listings {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			recommendations[idx], errs[idx] = e.evaluateOne(tenantID, mandate, listings[idx], planningContexts[listings[idx].ID], asOf)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return recommendations, nil
}

func (e *Engine) evaluateOne(tenantID string, mandate *models.Mandate, listing models.Listing, planningCtx *models.PlanningContext, asOf time.Time) (models.Recommendation, error) {
	breakdown, err := scoring.Score(mandate, listing)
	if err != nil {
		return models.Recommendation{}, err
	}

	outcome := e.classifier.Classify(mandate, breakdown.Composite, listing)

	var planningScore *models.PlanningScore
	if planningCtx != nil {
		score := e.analyzer.Analyze(planningCtx, asOf)
		planningScore = &score
		metrics.PlanningAnalysesTotal.WithLabelValues(tenantID, string(score.Label)).Inc()
	}

	softReasons := filtering.Apply(mandate, listing).Reasons

	story := narrative.Build(narrative.Input{
		Mandate:     mandate,
		Listing:     listing,
		Breakdown:   breakdown,
		Outcome:     outcome,
		Planning:    planningScore,
		SoftReasons: softReasons,
	})

	return models.Recommendation{
		ListingID:      listing.ID,
		ListingTitle:   listing.Title,
		Score:          breakdown.Composite,
		SubScores:      breakdown.SubScores,
		Grade:          outcome.Grade,
		Action:         outcome.Action,
		Conviction:     outcome.Conviction,
		BMVOpportunity: outcome.BMVOpportunity,
		Planning:       planningScore,
		Headline:       story.Headline,
		Rationale:      story.Rationale,
		NextSteps:      story.NextSteps,
		Risks:          story.Risks,
	}, nil
}

// sortForOutput orders ranked recommendations first by rank, then pass
// recommendations by score descending with listing identity as the
// final tiebreak.
func sortForOutput(recommendations []models.Recommendation) {
	sort.SliceStable(recommendations, func(a, b int) bool {
		ra, rb := recommendations[a], recommendations[b]
		aRanked, bRanked := ra.PriorityRank > 0, rb.PriorityRank > 0
		if aRanked != bRanked {
			return aRanked
		}
		if aRanked {
			return ra.PriorityRank < rb.PriorityRank
		}
		if ra.Score != rb.Score {
			return ra.Score > rb.Score
		}
		return ra.ListingID < rb.ListingID
	})
}

func summarize(recommendations []models.Recommendation, rejected int) models.SearchSummary {
	summary := models.SearchSummary{Rejected: rejected}
	for _, rec := range recommendations {
		switch rec.Action {
		case models.ActionPursue:
			summary.Pursue++
		case models.ActionConsider:
			summary.Consider++
		case models.ActionWatch:
			summary.Watch++
		case models.ActionPass:
			summary.Pass++
		}
	}
	return summary
}
