package models

import "strings"

// Listing is a property candidate. Listings are immutable inputs to a
// scoring run and are never mutated by the engine.
type Listing struct {
	ID              string           `json:"id"`
	Source          string           `json:"source,omitempty"`
	Title           string           `json:"title,omitempty"`
	AssetClass      AssetClass       `json:"asset_class"`
	Tenure          Tenure           `json:"tenure"`
	Address         Address          `json:"address"`
	Financial       ListingFinancial `json:"financial"`
	PropertyDetails PropertyDetails  `json:"property_details"`
	DaysOnMarket    *int             `json:"days_on_market,omitempty"`
}

// Address holds the location fields used for geographic matching
type Address struct {
	Line1    string `json:"line1,omitempty"`
	Town     string `json:"town,omitempty"`
	Region   string `json:"region"`
	Postcode string `json:"postcode"`
}

// PostcodeArea returns the outward code, the first token of the
// uppercased postcode ("SW1A 1AA" -> "SW1A").
func (a Address) PostcodeArea() string {
	pc := strings.ToUpper(strings.TrimSpace(a.Postcode))
	if pc == "" {
		return ""
	}
	if idx := strings.IndexByte(pc, ' '); idx > 0 {
		return pc[:idx]
	}
	return pc
}

// ListingFinancial holds the deal economics of a listing.
// EstimatedValue is an independent valuation reference used for the
// below-market-value signal; when absent, no BMV flag is raised.
type ListingFinancial struct {
	AskingPrice         float64  `json:"asking_price"`
	CurrentRentAnnual   *float64 `json:"current_rent_annual,omitempty"`
	GrossYieldPercent   *float64 `json:"gross_yield_percent,omitempty"`
	EstimatedValue      *float64 `json:"estimated_value,omitempty"`
	RemainingLeaseYears *int     `json:"remaining_lease_years,omitempty"`
}

// PropertyDetails holds the physical attributes of a listing
type PropertyDetails struct {
	Units     int       `json:"units"`
	TotalSqft *float64  `json:"total_sqft,omitempty"`
	Condition Condition `json:"condition"`
	Tenanted  bool      `json:"tenanted"`
}

// GrossYield returns the stated gross yield, deriving it from rent and
// asking price when it is absent. Returns false when neither is available.
func (l Listing) GrossYield() (float64, bool) {
	if l.Financial.GrossYieldPercent != nil {
		return *l.Financial.GrossYieldPercent, true
	}
	if l.Financial.CurrentRentAnnual != nil && l.Financial.AskingPrice > 0 {
		return *l.Financial.CurrentRentAnnual / l.Financial.AskingPrice * 100, true
	}
	return 0, false
}

// PricePerSqft returns asking price over total sqft when sqft is known
func (l Listing) PricePerSqft() (float64, bool) {
	if l.PropertyDetails.TotalSqft == nil || *l.PropertyDetails.TotalSqft <= 0 {
		return 0, false
	}
	return l.Financial.AskingPrice / *l.PropertyDetails.TotalSqft, true
}
