// Package mandate exposes mandate CRUD over HTTP.
package mandate

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/bramble/internal/logging"
	mandaterepo "github.com/Ramsey-B/bramble/internal/repositories/mandate"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/criteria"
	"github.com/Ramsey-B/bramble/pkg/events"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/routes"
	"github.com/Ramsey-B/bramble/pkg/validation"
)

// Handler serves mandate endpoints
type Handler struct {
	repo      *mandaterepo.Repository
	validator *validation.Validator
	emitter   *events.Emitter
	logger    logging.Logger
}

// NewHandler creates a new mandate handler
func NewHandler(repo *mandaterepo.Repository, validator *validation.Validator, emitter *events.Emitter, logger logging.Logger) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator,
		emitter:   emitter,
		logger:    logger,
	}
}

// Register registers mandate routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List lists mandates for the tenant
func (h *Handler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "mandate.Handler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	activeOnly := c.QueryParam("active") == "true"

	mandates, totalCount, err := h.repo.List(ctx, tenantID, activeOnly, page, pageSize)
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
		Items:      mandates,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Get retrieves a mandate by ID
func (h *Handler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "mandate.Handler.Get")
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

	mandate, err := h.repo.Get(ctx, tenantID, id.String())
	if err != nil {
		return err
	}

	return routes.SuccessResponse(c, mandate)
}

// Create creates a new mandate
func (h *Handler) Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "mandate.Handler.Create")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	var req models.CreateMandateRequest
	if err := c.Bind(&req); err != nil {
		return routes.BadRequest("invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	mandate := &models.Mandate{
		InvestorName: req.InvestorName,
		InvestorType: req.InvestorType,
		RiskProfile:  req.RiskProfile,
		Priority:     req.Priority,
		IsActive:     true,
		Notes:        req.Notes,
		AssetClasses: req.AssetClasses,
		Geographic:   req.Geographic,
		Financial:    req.Financial,
		Property:     req.Property,
	}
	if req.IsActive != nil {
		mandate.IsActive = *req.IsActive
	}
	if req.ScoringWeights != nil {
		mandate.ScoringWeights = *req.ScoringWeights
	}
	if req.DealCriteria != nil {
		mandate.DealCriteria = *req.DealCriteria
	}

	criteria.ApplyDefaults(mandate)
	if err := criteria.Validate(mandate); err != nil {
		return err
	}

	created, err := h.repo.Create(ctx, tenantID, mandate)
	if err != nil {
		return err
	}

	if err := h.emitter.EmitMandateCreated(ctx, created); err != nil {
		h.logger.WithContext(ctx).WithError(err).Warn("Failed to emit mandate created event")
	}

	return routes.CreatedResponse(c, created)
}

// Update applies a partial update to a mandate
func (h *Handler) Update(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "mandate.Handler.Update")
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

	var req models.UpdateMandateRequest
	if err := c.Bind(&req); err != nil {
		return routes.BadRequest("invalid request body")
	}

	mandate, err := h.repo.Get(ctx, tenantID, id.String())
	if err != nil {
		return err
	}

	applyUpdate(mandate, &req)

	criteria.ApplyDefaults(mandate)
	if err := criteria.Validate(mandate); err != nil {
		return err
	}

	updated, err := h.repo.Update(ctx, tenantID, mandate)
	if err != nil {
		return err
	}

	if err := h.emitter.EmitMandateUpdated(ctx, updated); err != nil {
		h.logger.WithContext(ctx).WithError(err).Warn("Failed to emit mandate updated event")
	}

	return routes.SuccessResponse(c, updated)
}

// Delete soft deletes a mandate
func (h *Handler) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "mandate.Handler.Delete")
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

	if err := h.repo.Delete(ctx, tenantID, id.String()); err != nil {
		return err
	}

	if err := h.emitter.EmitMandateDeleted(ctx, tenantID, id.String()); err != nil {
		h.logger.WithContext(ctx).WithError(err).Warn("Failed to emit mandate deleted event")
	}

	return routes.NoContentResponse(c)
}

func applyUpdate(m *models.Mandate, req *models.UpdateMandateRequest) {
	if req.InvestorName != nil {
		m.InvestorName = *req.InvestorName
	}
	if req.InvestorType != nil {
		m.InvestorType = *req.InvestorType
	}
	if req.RiskProfile != nil {
		m.RiskProfile = *req.RiskProfile
	}
	if req.Priority != nil {
		m.Priority = *req.Priority
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		m.Notes = req.Notes
	}
	if len(req.AssetClasses) > 0 {
		m.AssetClasses = req.AssetClasses
	}
	if req.Geographic != nil {
		m.Geographic = *req.Geographic
	}
	if req.Financial != nil {
		m.Financial = *req.Financial
	}
	if req.Property != nil {
		m.Property = *req.Property
	}
	if req.ScoringWeights != nil {
		m.ScoringWeights = *req.ScoringWeights
	}
	if req.DealCriteria != nil {
		m.DealCriteria = *req.DealCriteria
	}
}
