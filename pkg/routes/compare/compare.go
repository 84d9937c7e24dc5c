// Package compare exposes the side-by-side mandate comparison endpoint.
package compare

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/bramble/internal/logging"
	mandaterepo "github.com/Ramsey-B/bramble/internal/repositories/mandate"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/compare"
	"github.com/Ramsey-B/bramble/pkg/routes"
)

// Request is the comparison request body
type Request struct {
	MandateIDs []string `json:"mandate_ids" validate:"required,min=2"`
}

// Handler serves the comparison endpoint
type Handler struct {
	repo   *mandaterepo.Repository
	logger logging.Logger
}

// NewHandler creates a new comparison handler
func NewHandler(repo *mandaterepo.Repository, logger logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Register registers comparison routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/compare", h.Compare)
}

// Compare builds a side-by-side view of the requested mandates
func (h *Handler) Compare(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "compare.Handler.Compare")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := routes.GetTenantID(c)
	if err != nil {
		return err
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		return routes.BadRequest("invalid request body")
	}

	mandates, err := h.repo.GetMany(ctx, tenantID, req.MandateIDs)
	if err != nil {
		return err
	}

	view, err := compare.Compare(mandates)
	if err != nil {
		return err
	}

	return routes.SuccessResponse(c, view)
}
