package domain

import "github.com/shopspring/decimal"

// CategoryResult is the outcome of one category calculator, unrounded.
type CategoryResult struct {
	Category      IncomeCategory
	Income        decimal.Decimal
	TaxableIncome decimal.Decimal
	Tax           decimal.Decimal
}

// DeductionBreakdown itemizes the deduction aggregate, unrounded.
type DeductionBreakdown struct {
	Standard            decimal.Decimal
	Pension             decimal.Decimal
	Medical             decimal.Decimal
	Unemployment        decimal.Decimal
	HousingFund         decimal.Decimal
	ChildrenEducation   decimal.Decimal
	ContinuingEducation decimal.Decimal
	HousingLoan         decimal.Decimal
	HousingRent         decimal.Decimal
	ElderlyCare         decimal.Decimal

	// Uncapped is the sum of all components before the income clamp.
	Uncapped decimal.Decimal
	// Total is what is actually subtracted from salary.
	Total   decimal.Decimal
	Clamped bool
}

// SocialInsurance is pension + medical + unemployment.
func (d DeductionBreakdown) SocialInsurance() decimal.Decimal {
	return d.Pension.Add(d.Medical).Add(d.Unemployment)
}

// Contributions is social insurance plus housing fund: money that leaves
// the payslip before it reaches the employee.
func (d DeductionBreakdown) Contributions() decimal.Decimal {
	return d.SocialInsurance().Add(d.HousingFund)
}

// BonusComparison holds both bonus treatments and the recommendation.
type BonusComparison struct {
	Bonus             decimal.Decimal
	MonthlyEquivalent decimal.Decimal

	SeparateTaxableIncome decimal.Decimal
	SeparateRate          decimal.Decimal
	SeparateTax           decimal.Decimal

	CombinedTaxableIncome decimal.Decimal
	CombinedTax           decimal.Decimal
	// IncrementalTax is CombinedTax minus the salary-only tax.
	IncrementalTax decimal.Decimal

	Recommendation BonusMethod
	Difference     decimal.Decimal
}

// TaxUnder returns the bonus's share of tax under method m.
func (b *BonusComparison) TaxUnder(m BonusMethod) decimal.Decimal {
	if m == BonusCombined {
		return b.IncrementalTax
	}
	return b.SeparateTax
}

// DeductionsView is the wire form of DeductionBreakdown.
type DeductionsView struct {
	Standard            MonetaryAmount `json:"standard"`
	Pension             MonetaryAmount `json:"pension"`
	Medical             MonetaryAmount `json:"medical"`
	Unemployment        MonetaryAmount `json:"unemployment"`
	HousingFund         MonetaryAmount `json:"housing_fund"`
	ChildrenEducation   MonetaryAmount `json:"children_education"`
	ContinuingEducation MonetaryAmount `json:"continuing_education"`
	HousingLoan         MonetaryAmount `json:"housing_loan"`
	HousingRent         MonetaryAmount `json:"housing_rent"`
	ElderlyCare         MonetaryAmount `json:"elderly_care"`
	Clamped             bool           `json:"clamped"`
}

// BonusView is the wire form of a BonusComparison. Its fields are inlined
// into CalculationResult.
type BonusView struct {
	SeparateTaxableIncome MonetaryAmount `json:"bonus_separate_taxable_income"`
	SeparateTax           MonetaryAmount `json:"bonus_separate_tax"`
	CombinedTaxableIncome MonetaryAmount `json:"bonus_combined_taxable_income"`
	CombinedTax           MonetaryAmount `json:"bonus_combined_tax"`
	IncrementalTax        MonetaryAmount `json:"bonus_combined_incremental_tax"`
	Difference            MonetaryAmount `json:"bonus_tax_difference"`
	Recommendation        BonusMethod    `json:"bonus_recommendation"`
	RecommendationText    string         `json:"bonus_recommendation_text"`
	Method                BonusMethod    `json:"bonus_method"`
}

// CalculationResult is the response contract of /calculate.
type CalculationResult struct {
	SalaryIncome        MonetaryAmount `json:"salary_income"`
	SalaryTaxableIncome MonetaryAmount `json:"salary_taxable_income"`
	SalaryTax           MonetaryAmount `json:"salary_tax"`

	LaborIncome        MonetaryAmount `json:"labor_income"`
	LaborTaxableIncome MonetaryAmount `json:"labor_taxable_income"`
	LaborTax           MonetaryAmount `json:"labor_tax"`

	ManuscriptIncome        MonetaryAmount `json:"manuscript_income"`
	ManuscriptTaxableIncome MonetaryAmount `json:"manuscript_taxable_income"`
	ManuscriptTax           MonetaryAmount `json:"manuscript_tax"`

	LicenseIncome        MonetaryAmount `json:"license_income"`
	LicenseTaxableIncome MonetaryAmount `json:"license_taxable_income"`
	LicenseTax           MonetaryAmount `json:"license_tax"`

	Bonus MonetaryAmount `json:"bonus"`
	*BonusView

	Deductions      DeductionsView `json:"deductions"`
	TotalDeductions MonetaryAmount `json:"total_deductions"`
	TotalIncome     MonetaryAmount `json:"total_income"`
	TotalTax        MonetaryAmount `json:"total_tax"`
	NetIncome       MonetaryAmount `json:"net_income"`
}

// HasBonus reports whether bonus fields are populated.
func (r *CalculationResult) HasBonus() bool {
	return r.BonusView != nil
}

// CalculationResponse is the JSON envelope returned by /calculate.
type CalculationResponse struct {
	Success bool               `json:"success"`
	Result  *CalculationResult `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
}
