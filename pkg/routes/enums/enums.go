// Package enums exposes the controlled vocabularies used by mandates,
// listings, and reviews.
package enums

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/review"
	"github.com/Ramsey-B/bramble/pkg/routes"
)

// Handler serves the vocabulary endpoint
type Handler struct{}

// NewHandler creates a new enums handler
func NewHandler() *Handler {
	return &Handler{}
}

// Register registers enum routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.List)
}

// Response is the full vocabulary payload
type Response struct {
	AssetClasses      []models.AssetClass    `json:"asset_classes"`
	InvestorTypes     []models.InvestorType  `json:"investor_types"`
	RiskProfiles      []models.RiskProfile   `json:"risk_profiles"`
	Tenures           []models.Tenure        `json:"tenures"`
	Conditions        []models.Condition     `json:"conditions"`
	PrecedentTypes    []models.PrecedentType `json:"precedent_types"`
	ReviewStatuses    []models.ReviewStatus  `json:"review_statuses"`
	ReviewTransitions []string               `json:"review_transitions"`
}

// List returns every controlled vocabulary in one payload
func (h *Handler) List(c echo.Context) error {
	return routes.SuccessResponse(c, Response{
		AssetClasses:      models.AssetClasses(),
		InvestorTypes:     models.InvestorTypes(),
		RiskProfiles:      models.RiskProfiles(),
		Tenures:           models.Tenures(),
		Conditions:        models.Conditions(),
		PrecedentTypes:    models.PrecedentTypes(),
		ReviewStatuses:    models.ReviewStatuses(),
		ReviewTransitions: review.Transitions(),
	})
}
