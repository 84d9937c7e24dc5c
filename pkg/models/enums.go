package models

// AssetClass categorizes the property investment type
type AssetClass string

const (
	AssetClassResidential    AssetClass = "residential"
	AssetClassCommercial     AssetClass = "commercial"
	AssetClassMixedUse       AssetClass = "mixed_use"
	AssetClassIndustrial     AssetClass = "industrial"
	AssetClassRetail         AssetClass = "retail"
	AssetClassOffice         AssetClass = "office"
	AssetClassHospitality    AssetClass = "hospitality"
	AssetClassStudentHousing AssetClass = "student_housing"
	AssetClassSeniorLiving   AssetClass = "senior_living"
	AssetClassBuildToRent    AssetClass = "build_to_rent"
	AssetClassHMO            AssetClass = "hmo"
)

// AssetClasses lists every known asset class
func AssetClasses() []AssetClass {
	return []AssetClass{
		AssetClassResidential,
		AssetClassCommercial,
		AssetClassMixedUse,
		AssetClassIndustrial,
		AssetClassRetail,
		AssetClassOffice,
		AssetClassHospitality,
		AssetClassStudentHousing,
		AssetClassSeniorLiving,
		AssetClassBuildToRent,
		AssetClassHMO,
	}
}

// InvestorType categorizes the capital source behind a mandate
type InvestorType string

const (
	InvestorTypeInstitutional   InvestorType = "institutional"
	InvestorTypeFamilyOffice    InvestorType = "family_office"
	InvestorTypePrivateEquity   InvestorType = "private_equity"
	InvestorTypeREIT            InvestorType = "reit"
	InvestorTypeHNWI            InvestorType = "hnwi"
	InvestorTypePensionFund     InvestorType = "pension_fund"
	InvestorTypeInsurance       InvestorType = "insurance"
	InvestorTypeSovereignWealth InvestorType = "sovereign_wealth"
	InvestorTypeOther           InvestorType = "other"
)

// InvestorTypes lists every known investor type
func InvestorTypes() []InvestorType {
	return []InvestorType{
		InvestorTypeInstitutional,
		InvestorTypeFamilyOffice,
		InvestorTypePrivateEquity,
		InvestorTypeREIT,
		InvestorTypeHNWI,
		InvestorTypePensionFund,
		InvestorTypeInsurance,
		InvestorTypeSovereignWealth,
		InvestorTypeOther,
	}
}

// RiskProfile is the mandate's appetite on the core to opportunistic scale
type RiskProfile string

const (
	RiskProfileCore          RiskProfile = "core"
	RiskProfileCorePlus      RiskProfile = "core_plus"
	RiskProfileValueAdd      RiskProfile = "value_add"
	RiskProfileOpportunistic RiskProfile = "opportunistic"
)

// RiskProfiles lists every known risk profile, ordered least to most risk
func RiskProfiles() []RiskProfile {
	return []RiskProfile{
		RiskProfileCore,
		RiskProfileCorePlus,
		RiskProfileValueAdd,
		RiskProfileOpportunistic,
	}
}

// RiskLevel returns the position of the profile on the risk ladder
func (r RiskProfile) RiskLevel() int {
	switch r {
	case RiskProfileCore:
		return 0
	case RiskProfileCorePlus:
		return 1
	case RiskProfileValueAdd:
		return 2
	case RiskProfileOpportunistic:
		return 3
	}
	return 1
}

// Tenure is the form of property ownership
type Tenure string

const (
	TenureFreehold        Tenure = "freehold"
	TenureLeasehold       Tenure = "leasehold"
	TenureShareOfFreehold Tenure = "share_of_freehold"
	TenureCommonhold      Tenure = "commonhold"
	TenureUnknown         Tenure = "unknown"
)

// Tenures lists every known tenure
func Tenures() []Tenure {
	return []Tenure{
		TenureFreehold,
		TenureLeasehold,
		TenureShareOfFreehold,
		TenureCommonhold,
		TenureUnknown,
	}
}

// Condition is the build state of a listing
type Condition string

const (
	ConditionTurnkey     Condition = "turnkey"
	ConditionLightRefurb Condition = "light_refurb"
	ConditionHeavyRefurb Condition = "heavy_refurb"
	ConditionDevelopment Condition = "development"
	ConditionUnknown     Condition = "unknown"
)

// Conditions lists every known condition
func Conditions() []Condition {
	return []Condition{
		ConditionTurnkey,
		ConditionLightRefurb,
		ConditionHeavyRefurb,
		ConditionDevelopment,
		ConditionUnknown,
	}
}

// ImpliedRiskProfile maps a build condition onto the risk ladder
func (c Condition) ImpliedRiskProfile() RiskProfile {
	switch c {
	case ConditionTurnkey:
		return RiskProfileCore
	case ConditionLightRefurb:
		return RiskProfileCorePlus
	case ConditionHeavyRefurb:
		return RiskProfileValueAdd
	case ConditionDevelopment:
		return RiskProfileOpportunistic
	}
	return RiskProfileCorePlus
}

// PrecedentType categorizes planning precedent works
type PrecedentType string

const (
	PrecedentTypeExtensionRear         PrecedentType = "extension_rear"
	PrecedentTypeExtensionSide         PrecedentType = "extension_side"
	PrecedentTypeExtensionLoft         PrecedentType = "extension_loft"
	PrecedentTypeExtensionBasement     PrecedentType = "extension_basement"
	PrecedentTypeConversionResidential PrecedentType = "conversion_residential"
	PrecedentTypeConversionHMO         PrecedentType = "conversion_hmo"
	PrecedentTypeConversionFlats       PrecedentType = "conversion_flats"
	PrecedentTypeChangeOfUse           PrecedentType = "change_of_use"
	PrecedentTypeNewBuild              PrecedentType = "new_build"
	PrecedentTypeDemolitionRebuild     PrecedentType = "demolition_rebuild"
	PrecedentTypeSubdivision           PrecedentType = "subdivision"
	PrecedentTypePermittedDevelopment  PrecedentType = "permitted_development"
	PrecedentTypeOther                 PrecedentType = "other"
)

// PrecedentTypes lists every known precedent type
func PrecedentTypes() []PrecedentType {
	return []PrecedentType{
		PrecedentTypeExtensionRear,
		PrecedentTypeExtensionSide,
		PrecedentTypeExtensionLoft,
		PrecedentTypeExtensionBasement,
		PrecedentTypeConversionResidential,
		PrecedentTypeConversionHMO,
		PrecedentTypeConversionFlats,
		PrecedentTypeChangeOfUse,
		PrecedentTypeNewBuild,
		PrecedentTypeDemolitionRebuild,
		PrecedentTypeSubdivision,
		PrecedentTypePermittedDevelopment,
		PrecedentTypeOther,
	}
}

// ListedGrade is the heritage listing grade of a building
type ListedGrade string

const (
	ListedGradeI      ListedGrade = "I"
	ListedGradeIIStar ListedGrade = "II*"
	ListedGradeII     ListedGrade = "II"
)
