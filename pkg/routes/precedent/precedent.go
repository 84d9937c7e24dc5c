// Package precedent exposes the planning precedent evidence endpoints.
// Precedents live in the graph store keyed by postcode area and feed the
// planning analysis of searches run against listings in that area.
package precedent

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/graph"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/routes"
	"github.com/Ramsey-B/bramble/pkg/validation"
)

// UpsertRequest records one planning decision against a postcode area
type UpsertRequest struct {
	PostcodeArea string           `json:"postcode_area" validate:"required,uk_postcode_area"`
	Precedent    models.Precedent `json:"precedent"`
}

// Handler serves precedent routes
type Handler struct {
	store     *graph.PrecedentStore
	validator *validation.Validator
	logger    logging.Logger
}

// NewHandler creates a new precedent handler
func NewHandler(store *graph.PrecedentStore, validator *validation.Validator, logger logging.Logger) *Handler {
	return &Handler{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Register registers precedent routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.Upsert)
	g.GET("", h.List)
}

// Upsert records a planning decision
func (h *Handler) Upsert(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "precedent.Handler.Upsert")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	var req UpsertRequest
	if err := c.Bind(&req); err != nil {
		return routes.BadRequest("invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}
	if req.Precedent.Reference == "" {
		return routes.BadRequest("precedent reference is required")
	}

	if err := h.store.Upsert(ctx, tenantID, req.PostcodeArea, &req.Precedent); err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{
		"reference":     req.Precedent.Reference,
		"postcode_area": req.PostcodeArea,
	}).Info("Recorded planning precedent")

	return routes.CreatedResponse(c, req.Precedent)
}

// List returns the precedents recorded for a postcode area
func (h *Handler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "precedent.Handler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	area := c.QueryParam("postcode_area")
	if !validation.IsPostcodeArea(area) {
		return httperror.NewHTTPError(http.StatusBadRequest, "a valid postcode_area query parameter is required").
			AddMetaValue("postcode_area", area)
	}

	precedents, err := h.store.ListByPostcodeArea(ctx, tenantID, area)
	if err != nil {
		return err
	}
	if precedents == nil {
		precedents = []models.Precedent{}
	}

	return routes.SuccessResponse(c, precedents)
}
