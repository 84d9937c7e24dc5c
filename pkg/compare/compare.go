// Package compare builds side by side projections of mandates. It does
// no scoring; output order mirrors input order.
package compare

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// Compare projects two or more mandates into a ComparisonView. Fewer
// than two mandates cannot be compared.
func Compare(mandates []models.Mandate) (*models.ComparisonView, error) {
	if len(mandates) < 2 {
		return nil, httperror.NewHTTPError(http.StatusBadRequest,
			"at least two mandates are required for comparison").
			AddMetaValue("kind", "validation_error").
			AddMetaValue("mandate_count", len(mandates))
	}

	view := &models.ComparisonView{
		Mandates:    make([]models.MandateProfile, 0, len(mandates)),
		PriceRanges: make([]models.PriceRange, 0, len(mandates)),
	}

	for _, mandate := range mandates {
		profile := Profile(mandate)
		view.Mandates = append(view.Mandates, profile)
		view.PriceRanges = append(view.PriceRanges, profile.PriceRange)
	}

	return view, nil
}

// Profile flattens one mandate for side by side review
func Profile(mandate models.Mandate) models.MandateProfile {
	return models.MandateProfile{
		MandateID:    mandate.ID,
		InvestorName: mandate.InvestorName,
		InvestorType: mandate.InvestorType,
		RiskProfile:  mandate.RiskProfile,
		AssetClasses: mandate.AssetClasses,
		PriceRange: models.PriceRange{
			Min: mandate.Financial.MinDealSize,
			Max: mandate.Financial.MaxDealSize,
		},
		YieldRequirement: models.YieldBand{
			MinPercent:    mandate.Financial.MinYieldPercent,
			TargetPercent: mandate.Financial.TargetYield,
		},
		Regions:          orEmpty(mandate.Geographic.Regions),
		Postcodes:        orEmpty(mandate.Geographic.Postcodes),
		ExcludeRegions:   orEmpty(mandate.Geographic.ExcludeRegions),
		ExcludePostcodes: orEmpty(mandate.Geographic.ExcludePostcodes),
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
