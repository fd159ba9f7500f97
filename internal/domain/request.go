package domain

import "github.com/shopspring/decimal"

// IncomeCategory is the closed set of income kinds the engine taxes.
type IncomeCategory string

const (
	CategorySalary     IncomeCategory = "salary"
	CategoryBonus      IncomeCategory = "bonus"
	CategoryLabor      IncomeCategory = "labor"
	CategoryManuscript IncomeCategory = "manuscript"
	CategoryLicense    IncomeCategory = "license"
)

// AllCategories lists every category in reporting order.
var AllCategories = []IncomeCategory{
	CategorySalary,
	CategoryBonus,
	CategoryLabor,
	CategoryManuscript,
	CategoryLicense,
}

// Valid reports whether c is one of the known categories.
func (c IncomeCategory) Valid() bool {
	switch c {
	case CategorySalary, CategoryBonus, CategoryLabor, CategoryManuscript, CategoryLicense:
		return true
	}
	return false
}

// Period says whether an entered figure is per month or per year.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
)

// BonusMethod is one of the two legal treatments of an annual bonus.
type BonusMethod string

const (
	BonusSeparate BonusMethod = "separate"
	BonusCombined BonusMethod = "combined"
)

// CalculationRequest is the raw form payload posted to /calculate.
type CalculationRequest struct {
	Salary           RawAmount `json:"salary" yaml:"salary"`
	SalaryType       string    `json:"salary_type" yaml:"salary_type"`
	Bonus            RawAmount `json:"bonus" yaml:"bonus"`
	BonusType        string    `json:"bonus_type" yaml:"bonus_type"`
	LaborIncome      RawAmount `json:"labor_income" yaml:"labor_income"`
	ManuscriptIncome RawAmount `json:"manuscript_income" yaml:"manuscript_income"`
	LicenseIncome    RawAmount `json:"license_income" yaml:"license_income"`

	SocialSecurityBase  RawAmount `json:"social_security_base" yaml:"social_security_base"`
	HousingFundRate     RawAmount `json:"housing_fund_rate" yaml:"housing_fund_rate"`
	ChildrenEducation   RawAmount `json:"children_education" yaml:"children_education"`
	ContinuingEducation RawAmount `json:"continuing_education" yaml:"continuing_education"`
	HousingLoan         RawAmount `json:"housing_loan" yaml:"housing_loan"`
	HousingRent         RawAmount `json:"housing_rent" yaml:"housing_rent"`
	ElderlyCare         RawAmount `json:"elderly_care" yaml:"elderly_care"`
}

// Deductions holds annual deduction inputs after normalization.
// SocialInsuranceBase stays monthly; HousingFundRate is a fraction.
type Deductions struct {
	SocialInsuranceBase decimal.Decimal
	HousingFundRate     decimal.Decimal
	ChildrenEducation   decimal.Decimal
	ContinuingEducation decimal.Decimal
	HousingLoan         decimal.Decimal
	HousingRent         decimal.Decimal
	ElderlyCare         decimal.Decimal
}

// NormalizedInput is a validated, annualized request.
type NormalizedInput struct {
	Incomes map[IncomeCategory]decimal.Decimal

	// ElectedBonusMethod is set when the caller chose a method explicitly.
	ElectedBonusMethod BonusMethod

	Deductions Deductions
}

// Income returns the annual income for c, zero if absent.
func (n NormalizedInput) Income(c IncomeCategory) decimal.Decimal {
	if v, ok := n.Incomes[c]; ok {
		return v
	}
	return decimal.Zero
}
