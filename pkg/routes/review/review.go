// Package review exposes the recommendation review queue over HTTP.
package review

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/bramble/internal/logging"
	reviewrepo "github.com/Ramsey-B/bramble/internal/repositories/review"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/events"
	"github.com/Ramsey-B/bramble/pkg/models"
	reviewflow "github.com/Ramsey-B/bramble/pkg/review"
	"github.com/Ramsey-B/bramble/pkg/routes"
)

// Handler serves review queue endpoints
type Handler struct {
	repo    *reviewrepo.Repository
	emitter *events.Emitter
	logger  logging.Logger
}

// NewHandler creates a new review handler
func NewHandler(repo *reviewrepo.Repository, emitter *events.Emitter, logger logging.Logger) *Handler {
	return &Handler{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
	}
}

// Register registers review routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/events", h.ListEvents)
	g.POST("/:id/transition", h.Transition)
}

// List lists the review queue, optionally filtered by mandate and status
func (h *Handler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "review.Handler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	mandateID := c.QueryParam("mandate_id")
	status := models.ReviewStatus(c.QueryParam("status"))

	reviews, totalCount, err := h.repo.ListQueue(ctx, tenantID, mandateID, status, page, pageSize)
	if err != nil {
		return err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return routes.SuccessResponse(c, routes.PaginatedResponse{
		Items:      reviews,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Get retrieves a review by ID
func (h *Handler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "review.Handler.Get")
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

	review, err := h.repo.Get(ctx, tenantID, id.String())
	if err != nil {
		return err
	}

	return routes.SuccessResponse(c, review)
}

// ListEvents retrieves the audit trail for a review
func (h *Handler) ListEvents(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "review.Handler.ListEvents")
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

	reviewEvents, err := h.repo.ListEvents(ctx, tenantID, id.String())
	if err != nil {
		return err
	}

	return routes.SuccessResponse(c, reviewEvents)
}

// TransitionRequest is the request body for moving a review through the workflow
type TransitionRequest struct {
	Transition string  `json:"transition" validate:"required"`
	Actor      string  `json:"actor"`
	Note       *string `json:"note,omitempty"`
}

// Transition applies a workflow transition to a review
func (h *Handler) Transition(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "review.Handler.Transition")
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

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return routes.BadRequest("invalid request body")
	}
	if req.Transition == "" {
		return routes.BadRequest("transition is required")
	}

	review, err := h.repo.Get(ctx, tenantID, id.String())
	if err != nil {
		return err
	}

	fromStatus := review.Status
	nextStatus, err := reviewflow.Apply(review.Status, req.Transition)
	if err != nil {
		return err
	}

	review.Status = nextStatus
	if req.Actor != "" {
		review.Assignee = &req.Actor
	}
	if req.Note != nil {
		review.Note = req.Note
	}

	updated, err := h.repo.UpdateStatus(ctx, tenantID, review, fromStatus, req.Actor, derefOrEmpty(req.Note))
	if err != nil {
		return err
	}

	if nextStatus == models.ReviewStatusAccepted || nextStatus == models.ReviewStatusDeclined {
		if err := h.emitter.EmitReviewDecided(ctx, tenantID, updated, req.Actor); err != nil {
			h.logger.WithContext(ctx).WithError(err).Warn("Failed to emit review decided event")
		}
	}

	return routes.SuccessResponse(c, updated)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
