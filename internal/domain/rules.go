package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules contains all statutory data the engine needs.
// It is loaded from tax_rules.yaml once at start and never mutated.
type TaxRules struct {
	Metadata   RulesMetadata  `yaml:"metadata" json:"metadata"`
	Tables     BracketTables  `yaml:"tables" json:"tables"`
	Deductions DeductionRules `yaml:"deductions" json:"deductions"`
	Categories CategoryRules  `yaml:"categories" json:"categories"`
	Limits     InputLimits    `yaml:"limits" json:"limits"`
}

// InputLimits bound the amounts a request may carry.
type InputLimits struct {
	// MaxAmount is the largest value accepted in any numeric field.
	MaxAmount decimal.Decimal `yaml:"max_amount" json:"max_amount"`
	// MaxFractionDigits is the finest precision accepted, e.g. 2 for fen.
	MaxFractionDigits int32 `yaml:"max_fraction_digits" json:"max_fraction_digits"`
}

// DefaultInputLimits apply when a rules file has no limits section.
func DefaultInputLimits() InputLimits {
	return InputLimits{
		MaxAmount:         decimal.NewFromInt(1_000_000_000_000),
		MaxFractionDigits: 4,
	}
}

// RulesMetadata describes which law the tables encode
type RulesMetadata struct {
	Version     string `yaml:"version" json:"version"`
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// BracketTables groups the progressive tables by use.
type BracketTables struct {
	Comprehensive BracketTable `yaml:"comprehensive" json:"comprehensive"`
	BonusMonthly  BracketTable `yaml:"bonus_monthly" json:"bonus_monthly"`
	Labor         BracketTable `yaml:"labor" json:"labor"`
}

// All returns the tables keyed by their configured names, for validation.
func (t BracketTables) All() []BracketTable {
	return []BracketTable{t.Comprehensive, t.BonusMonthly, t.Labor}
}

// BracketTable is an ordered progressive table. The last bracket has no
// upper bound.
type BracketTable struct {
	Name     string       `yaml:"name" json:"name"`
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
}

// TaxBracket is one row of a quick-deduction table.
type TaxBracket struct {
	LowerBound     decimal.Decimal `yaml:"lower_bound" json:"lower_bound"`
	Rate           decimal.Decimal `yaml:"rate" json:"rate"`
	QuickDeduction decimal.Decimal `yaml:"quick_deduction" json:"quick_deduction"`
}

// HousingPolicy decides what happens when both housing loan interest and
// housing rent are claimed.
type HousingPolicy string

const (
	HousingReject       HousingPolicy = "reject"
	HousingPreferLoan   HousingPolicy = "prefer_loan"
	HousingPreferRent   HousingPolicy = "prefer_rent"
	HousingPreferLarger HousingPolicy = "prefer_larger"
)

// Valid reports whether p is a known policy.
func (p HousingPolicy) Valid() bool {
	switch p {
	case HousingReject, HousingPreferLoan, HousingPreferRent, HousingPreferLarger:
		return true
	}
	return false
}

// DeductionRules contains the pre-tax allowances for comprehensive income.
type DeductionRules struct {
	StandardAnnual decimal.Decimal `yaml:"standard_annual" json:"standard_annual"`
	MonthsPerYear  int             `yaml:"months_per_year" json:"months_per_year"`

	SocialInsurance SocialInsuranceRates `yaml:"social_insurance" json:"social_insurance"`

	// HousingFundMaxRate caps the employee housing fund rate (fraction).
	HousingFundMaxRate decimal.Decimal `yaml:"housing_fund_max_rate" json:"housing_fund_max_rate"`

	Caps          ItemizedCaps  `yaml:"annual_caps" json:"annual_caps"`
	HousingPolicy HousingPolicy `yaml:"housing_policy" json:"housing_policy"`
}

// SocialInsuranceRates are the employee-side contribution rates.
type SocialInsuranceRates struct {
	Pension      decimal.Decimal `yaml:"pension" json:"pension"`
	Medical      decimal.Decimal `yaml:"medical" json:"medical"`
	Unemployment decimal.Decimal `yaml:"unemployment" json:"unemployment"`
}

// Total returns the combined employee rate.
func (s SocialInsuranceRates) Total() decimal.Decimal {
	return s.Pension.Add(s.Medical).Add(s.Unemployment)
}

// ItemizedCaps are annual ceilings for each special additional deduction.
type ItemizedCaps struct {
	ChildrenEducation   decimal.Decimal `yaml:"children_education" json:"children_education"`
	ContinuingEducation decimal.Decimal `yaml:"continuing_education" json:"continuing_education"`
	HousingLoan         decimal.Decimal `yaml:"housing_loan" json:"housing_loan"`
	HousingRent         decimal.Decimal `yaml:"housing_rent" json:"housing_rent"`
	ElderlyCare         decimal.Decimal `yaml:"elderly_care" json:"elderly_care"`
}

// CategoryRules holds the statutory reductions and flat rates for the
// non-salary categories.
type CategoryRules struct {
	Labor      LaborRules    `yaml:"labor" json:"labor"`
	Manuscript FlatRateRules `yaml:"manuscript" json:"manuscript"`
	License    FlatRateRules `yaml:"license" json:"license"`
}

// LaborRules: below the threshold the larger of the percentage and the
// flat reduction applies, above it only the percentage.
type LaborRules struct {
	ReductionRate      decimal.Decimal `yaml:"reduction_rate" json:"reduction_rate"`
	FlatReduction      decimal.Decimal `yaml:"flat_reduction" json:"flat_reduction"`
	FlatReductionLimit decimal.Decimal `yaml:"flat_reduction_limit" json:"flat_reduction_limit"`
}

// FlatRateRules describe income taxed at a single rate after reductions.
type FlatRateRules struct {
	ReductionRate decimal.Decimal `yaml:"reduction_rate" json:"reduction_rate"`
	// FurtherReduction is applied after ReductionRate (manuscript's 30%).
	FurtherReduction decimal.Decimal `yaml:"further_reduction" json:"further_reduction"`
	Rate             decimal.Decimal `yaml:"rate" json:"rate"`
}
