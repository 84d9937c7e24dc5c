// Package filtering applies a mandate's non-negotiable constraints to
// candidate listings before any scoring happens.
package filtering

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// Result holds the outcome of filtering one listing
type Result struct {
	Listing models.Listing
	Passed  bool
	Reasons []models.RejectionReason
}

// Outcome is the full hard-filter output for one mandate over a batch
type Outcome struct {
	Surviving []models.Listing
	Rejected  []models.RejectedListing
	// Summary counts rejections per reason code
	Summary map[string]int
}

// Filter eliminates listings that violate a mandate's hard constraints.
// Rejections are data, not errors; an all-rejected batch yields an empty
// surviving set.
func Filter(mandate *models.Mandate, listings []models.Listing) Outcome {
	outcome := Outcome{Summary: map[string]int{}}

	for _, listing := range listings {
		result := Apply(mandate, listing)
		if result.Passed {
			outcome.Surviving = append(outcome.Surviving, listing)
			continue
		}
		outcome.Rejected = append(outcome.Rejected, models.RejectedListing{
			ListingID: listing.ID,
			Reasons:   result.Reasons,
		})
		for _, reason := range result.Reasons {
			outcome.Summary[reason.Code]++
		}
	}

	return outcome
}

// Apply runs every hard constraint against a single listing. All failed
// constraints are collected so the rejection is fully explainable.
func Apply(mandate *models.Mandate, listing models.Listing) Result {
	var reasons []models.RejectionReason

	reasons = appendReason(reasons, checkAssetClass(mandate, listing))
	reasons = appendReason(reasons, checkLocation(mandate, listing))
	reasons = appendReason(reasons, checkDealSize(mandate, listing))
	reasons = appendReason(reasons, checkTenure(mandate, listing))
	reasons = appendReason(reasons, checkCondition(mandate, listing))
	reasons = appendReason(reasons, checkUnits(mandate, listing))
	reasons = appendReason(reasons, checkSqft(mandate, listing))
	reasons = appendReason(reasons, checkFreshness(mandate, listing))

	passed := true
	for _, reason := range reasons {
		if reason.Severity == models.RejectionSeverityHard {
			passed = false
			break
		}
	}

	return Result{Listing: listing, Passed: passed, Reasons: reasons}
}

func appendReason(reasons []models.RejectionReason, reason *models.RejectionReason) []models.RejectionReason {
	if reason == nil {
		return reasons
	}
	return append(reasons, *reason)
}

func checkAssetClass(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	for _, class := range mandate.AssetClasses {
		if class == listing.AssetClass {
			return nil
		}
	}
	return &models.RejectionReason{
		Category:    "asset_class",
		Severity:    models.RejectionSeverityHard,
		Code:        "ASSET_CLASS_NOT_ALLOWED",
		Title:       "Asset class outside mandate",
		Explanation: fmt.Sprintf("listing is %s but the mandate only buys %s", listing.AssetClass, joinAssetClasses(mandate.AssetClasses)),
	}
}

// checkLocation enforces geography. Exclusions are checked first and are
// decisive even when an inclusion list also matches.
func checkLocation(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	geo := mandate.Geographic
	region := strings.ToLower(strings.TrimSpace(listing.Address.Region))
	area := listing.Address.PostcodeArea()

	for _, excluded := range geo.ExcludeRegions {
		if strings.ToLower(strings.TrimSpace(excluded)) == region && region != "" {
			return &models.RejectionReason{
				Category:    "location",
				Severity:    models.RejectionSeverityHard,
				Code:        "REGION_EXCLUDED",
				Title:       "Region excluded",
				Explanation: fmt.Sprintf("region %s is on the mandate's exclusion list", listing.Address.Region),
			}
		}
	}
	for _, excluded := range geo.ExcludePostcodes {
		if strings.EqualFold(strings.TrimSpace(excluded), area) && area != "" {
			return &models.RejectionReason{
				Category:    "location",
				Severity:    models.RejectionSeverityHard,
				Code:        "POSTCODE_EXCLUDED",
				Title:       "Postcode excluded",
				Explanation: fmt.Sprintf("postcode area %s is on the mandate's exclusion list", area),
			}
		}
	}

	// No inclusion list means any non-excluded location is acceptable
	if len(geo.Regions) == 0 && len(geo.Postcodes) == 0 {
		return nil
	}

	for _, allowed := range geo.Regions {
		if strings.ToLower(strings.TrimSpace(allowed)) == region && region != "" {
			return nil
		}
	}
	for _, allowed := range geo.Postcodes {
		if strings.EqualFold(strings.TrimSpace(allowed), area) && area != "" {
			return nil
		}
	}

	return &models.RejectionReason{
		Category:    "location",
		Severity:    models.RejectionSeverityHard,
		Code:        "LOCATION_NOT_INCLUDED",
		Title:       "Location outside mandate geography",
		Explanation: fmt.Sprintf("neither region %s nor postcode area %s match the mandate's target locations", listing.Address.Region, area),
		Remedy:      "add the region or postcode area to the mandate's geography",
	}
}

func checkDealSize(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	fin := mandate.Financial
	price := listing.Financial.AskingPrice

	if fin.MinDealSize != nil && price < *fin.MinDealSize {
		return &models.RejectionReason{
			Category:    "financial",
			Severity:    models.RejectionSeverityHard,
			Code:        "PRICE_BELOW_MIN",
			Title:       "Deal too small",
			Explanation: fmt.Sprintf("asking price %.0f is below the mandate minimum %.0f", price, *fin.MinDealSize),
		}
	}
	if fin.MaxDealSize != nil && price > *fin.MaxDealSize {
		severity := models.RejectionSeverityHard
		remedy := ""
		// Within 20% of the cap is still worth a negotiation attempt
		if price <= *fin.MaxDealSize*1.2 {
			remedy = "asking price is within 20% of the cap, a below-asking offer may land in range"
		}
		return &models.RejectionReason{
			Category:    "financial",
			Severity:    severity,
			Code:        "PRICE_EXCEEDS_MAX",
			Title:       "Deal too large",
			Explanation: fmt.Sprintf("asking price %.0f exceeds the mandate maximum %.0f", price, *fin.MaxDealSize),
			Remedy:      remedy,
		}
	}

	if fin.MinYieldPercent != nil {
		yield, ok := listing.GrossYield()
		if ok && yield < *fin.MinYieldPercent {
			return &models.RejectionReason{
				Category:    "financial",
				Severity:    models.RejectionSeverityHard,
				Code:        "YIELD_BELOW_MIN",
				Title:       "Yield below mandate floor",
				Explanation: fmt.Sprintf("gross yield %.2f%% is below the mandate minimum %.2f%%", yield, *fin.MinYieldPercent),
			}
		}
	}

	return nil
}

func checkTenure(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	prop := mandate.Property

	if prop.FreeholdOnly && listing.Tenure == models.TenureLeasehold {
		return &models.RejectionReason{
			Category:    "tenure",
			Severity:    models.RejectionSeverityHard,
			Code:        "LEASEHOLD_NOT_ACCEPTED",
			Title:       "Freehold only mandate",
			Explanation: "listing is leasehold but the mandate requires freehold ownership",
		}
	}

	if prop.MinLeaseYears != nil && listing.Tenure == models.TenureLeasehold {
		years := listing.Financial.RemainingLeaseYears
		if years != nil && *years < *prop.MinLeaseYears {
			return &models.RejectionReason{
				Category:    "tenure",
				Severity:    models.RejectionSeverityHard,
				Code:        "LEASE_TOO_SHORT",
				Title:       "Remaining lease below minimum",
				Explanation: fmt.Sprintf("%d years remain on the lease, mandate requires at least %d", *years, *prop.MinLeaseYears),
				Remedy:      "a lease extension before completion could cure this",
			}
		}
	}

	return nil
}

func checkCondition(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	accepted := mandate.Property.Conditions
	if len(accepted) == 0 || listing.PropertyDetails.Condition == models.ConditionUnknown {
		return nil
	}
	for _, condition := range accepted {
		if condition == listing.PropertyDetails.Condition {
			return nil
		}
	}
	return &models.RejectionReason{
		Category:    "condition",
		Severity:    models.RejectionSeverityHard,
		Code:        "CONDITION_NOT_ACCEPTED",
		Title:       "Build condition outside mandate",
		Explanation: fmt.Sprintf("listing condition is %s which the mandate does not accept", listing.PropertyDetails.Condition),
	}
}

func checkUnits(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	prop := mandate.Property
	units := listing.PropertyDetails.Units

	if prop.MinUnits != nil && units < *prop.MinUnits {
		return &models.RejectionReason{
			Category:    "property",
			Severity:    models.RejectionSeverityHard,
			Code:        "UNITS_BELOW_MIN",
			Title:       "Too few units",
			Explanation: fmt.Sprintf("%d units is below the mandate minimum %d", units, *prop.MinUnits),
		}
	}
	if prop.MaxUnits != nil && units > *prop.MaxUnits {
		return &models.RejectionReason{
			Category:    "property",
			Severity:    models.RejectionSeverityHard,
			Code:        "UNITS_ABOVE_MAX",
			Title:       "Too many units",
			Explanation: fmt.Sprintf("%d units exceeds the mandate maximum %d", units, *prop.MaxUnits),
		}
	}
	return nil
}

func checkSqft(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	prop := mandate.Property
	sqft := listing.PropertyDetails.TotalSqft
	if sqft == nil {
		return nil
	}

	if prop.MinSqft != nil && *sqft < *prop.MinSqft {
		return &models.RejectionReason{
			Category:    "property",
			Severity:    models.RejectionSeverityHard,
			Code:        "SQFT_BELOW_MIN",
			Title:       "Floor area too small",
			Explanation: fmt.Sprintf("%.0f sqft is below the mandate minimum %.0f", *sqft, *prop.MinSqft),
		}
	}
	if prop.MaxSqft != nil && *sqft > *prop.MaxSqft {
		return &models.RejectionReason{
			Category:    "property",
			Severity:    models.RejectionSeverityHard,
			Code:        "SQFT_ABOVE_MAX",
			Title:       "Floor area too large",
			Explanation: fmt.Sprintf("%.0f sqft exceeds the mandate maximum %.0f", *sqft, *prop.MaxSqft),
		}
	}
	return nil
}

// checkFreshness is advisory: a stale listing survives the filter but
// the reason is surfaced so the caller can flag it as a risk.
func checkFreshness(mandate *models.Mandate, listing models.Listing) *models.RejectionReason {
	cap := mandate.DealCriteria.MaxDaysOnMarket
	if cap == nil || listing.DaysOnMarket == nil || *listing.DaysOnMarket <= *cap {
		return nil
	}
	return &models.RejectionReason{
		Category:    "market",
		Severity:    models.RejectionSeveritySoft,
		Code:        "STALE_LISTING",
		Title:       "Listing exceeds days-on-market cap",
		Explanation: fmt.Sprintf("listing has been on the market %d days, mandate prefers under %d", *listing.DaysOnMarket, *cap),
		Remedy:      "long marketing periods often signal pricing or title issues, investigate before pursuing",
	}
}

func joinAssetClasses(classes []models.AssetClass) string {
	parts := make([]string, len(classes))
	for i, class := range classes {
		parts[i] = string(class)
	}
	return strings.Join(parts, ", ")
}
