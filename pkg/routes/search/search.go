// Package search exposes the mandate search endpoint.
package search

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/bramble/internal/logging"
	mandaterepo "github.com/Ramsey-B/bramble/internal/repositories/mandate"
	reviewrepo "github.com/Ramsey-B/bramble/internal/repositories/review"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/engine"
	"github.com/Ramsey-B/bramble/pkg/events"
	"github.com/Ramsey-B/bramble/pkg/graph"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/routes"
)

// Request is the search request body. Planning contexts are keyed by
// listing ID; a bare planning_context applies to every listing that has
// no keyed entry.
type Request struct {
	Listings         []models.Listing                   `json:"listings"`
	PlanningContexts map[string]*models.PlanningContext `json:"planning_contexts,omitempty"`
	PlanningContext  *models.PlanningContext            `json:"planning_context,omitempty"`
}

// Handler serves the search endpoint
type Handler struct {
	mandates   *mandaterepo.Repository
	reviews    *reviewrepo.Repository
	precedents *graph.PrecedentStore
	engine     *engine.Engine
	emitter    *events.Emitter
	logger     logging.Logger
}

// NewHandler creates a new search handler. The precedent store is
// optional; without it planning contexts are used as submitted.
func NewHandler(mandates *mandaterepo.Repository, reviews *reviewrepo.Repository, precedents *graph.PrecedentStore, eng *engine.Engine, emitter *events.Emitter, logger logging.Logger) *Handler {
	return &Handler{
		mandates:   mandates,
		reviews:    reviews,
		precedents: precedents,
		engine:     eng,
		emitter:    emitter,
		logger:     logger,
	}
}

// Register registers search routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/:id/search", h.Search)
}

// Search evaluates a batch of listings against a stored mandate
func (h *Handler) Search(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "search.Handler.Search")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	id, err := routes.ParseUUID(c, "id")
	if err != nil {
		return err
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		return routes.BadRequest("invalid request body")
	}
	if len(req.Listings) == 0 {
		return routes.BadRequest("at least one listing is required")
	}

	mandate, err := h.mandates.Get(ctx, tenantID, id.String())
	if err != nil {
		return err
	}

	planningContexts := req.PlanningContexts
	if req.PlanningContext != nil {
		if planningContexts == nil {
			planningContexts = make(map[string]*models.PlanningContext, len(req.Listings))
		}
		for i := range req.Listings {
			listingID := req.Listings[i].ID
			if _, ok := planningContexts[listingID]; !ok {
				planningContexts[listingID] = req.PlanningContext
			}
		}
	}

	h.enrichPrecedents(c, tenantID, req.Listings, planningContexts)

	start := time.Now()
	result, err := h.engine.Search(ctx, tenantID, mandate, req.Listings, planningContexts)
	if err != nil {
		return err
	}

	h.queueReviews(c, tenantID, result)

	if err := h.emitter.EmitSearchCompleted(ctx, tenantID, result, len(req.Listings), time.Since(start).Milliseconds()); err != nil {
		h.logger.WithContext(ctx).WithError(err).Warn("Failed to emit search completed event")
	}

	return routes.SuccessResponse(c, result)
}

// enrichPrecedents fills planning contexts that carry no precedent
// evidence with the decisions recorded for the listing's postcode area.
// Contexts are copied before enrichment so a shared context stays as
// submitted for the other listings. Graph failures are logged and the
// context is used as is.
func (h *Handler) enrichPrecedents(c echo.Context, tenantID string, listings []models.Listing, planningContexts map[string]*models.PlanningContext) {
	if h.precedents == nil || len(planningContexts) == 0 {
		return
	}
	ctx := c.Request().Context()

	byArea := map[string][]models.Precedent{}
	for i := range listings {
		listingID := listings[i].ID
		planningCtx, ok := planningContexts[listingID]
		if !ok || planningCtx == nil || len(planningCtx.Precedents) > 0 {
			continue
		}
		area := listings[i].Address.PostcodeArea()
		if area == "" {
			continue
		}

		precedents, cached := byArea[area]
		if !cached {
			var err error
			precedents, err = h.precedents.ListByPostcodeArea(ctx, tenantID, area)
			if err != nil {
				h.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
					"postcode_area": area,
				}).Warn("Failed to load precedents for planning context")
				precedents = nil
			}
			byArea[area] = precedents
		}
		if len(precedents) == 0 {
			continue
		}

		enriched := *planningCtx
		enriched.Precedents = precedents
		planningContexts[listingID] = &enriched
	}
}

// queueReviews puts pursue and consider recommendations on the review queue.
// Failures are logged and do not fail the search.
func (h *Handler) queueReviews(c echo.Context, tenantID string, result *models.SearchResult) {
	ctx := c.Request().Context()
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		if rec.Action != models.ActionPursue && rec.Action != models.ActionConsider {
			continue
		}
		review := &models.Review{
			MandateID: result.MandateID,
			ListingID: rec.ListingID,
			Score:     rec.Score,
			Action:    rec.Action,
		}
		if _, err := h.reviews.Upsert(ctx, tenantID, review); err != nil {
			h.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"listing_id": rec.ListingID,
			}).Warn("Failed to queue review")
		}
	}
}
