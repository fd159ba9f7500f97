package calculation

import (
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Computation is the unrounded outcome of one request, before assembly.
type Computation struct {
	Input      domain.NormalizedInput
	Deductions domain.DeductionBreakdown
	Categories map[domain.IncomeCategory]domain.CategoryResult

	// Bonus is nil when no bonus was paid.
	Bonus *domain.BonusComparison
	// BonusMethod is the method used for the totals: the elected one if the
	// request named one, otherwise the recommendation.
	BonusMethod domain.BonusMethod
}

// Category returns the result for c, zero-valued if c was not computed.
func (c *Computation) Category(cat domain.IncomeCategory) domain.CategoryResult {
	if r, ok := c.Categories[cat]; ok {
		return r
	}
	return domain.CategoryResult{Category: cat, Income: decimal.Zero, TaxableIncome: decimal.Zero, Tax: decimal.Zero}
}

// BonusTax is the tax attributed to the bonus under BonusMethod.
func (c *Computation) BonusTax() decimal.Decimal {
	if c.Bonus == nil {
		return decimal.Zero
	}
	return c.Bonus.TaxUnder(c.BonusMethod)
}

// TotalIncome sums every category's annual income.
func (c *Computation) TotalIncome() decimal.Decimal {
	total := c.Input.Income(domain.CategoryBonus)
	for _, cat := range reportedCategories {
		total = total.Add(c.Category(cat).Income)
	}
	return total
}

// TotalTax sums every category's tax, the bonus under BonusMethod.
func (c *Computation) TotalTax() decimal.Decimal {
	total := c.BonusTax()
	for _, cat := range reportedCategories {
		total = total.Add(c.Category(cat).Tax)
	}
	return total
}

// NetIncome is income after tax and employee contributions, floored at 0.
func (c *Computation) NetIncome() decimal.Decimal {
	net := c.TotalIncome().Sub(c.TotalTax()).Sub(c.Deductions.Contributions())
	return decimal.Max(net, decimal.Zero)
}

var reportedCategories = []domain.IncomeCategory{
	domain.CategorySalary,
	domain.CategoryLabor,
	domain.CategoryManuscript,
	domain.CategoryLicense,
}

// Assemble rounds a computation into the response contract. Rounding
// happens here and nowhere else.
func Assemble(c *Computation) *domain.CalculationResult {
	m := domain.NewMonetaryAmount
	salary := c.Category(domain.CategorySalary)
	labor := c.Category(domain.CategoryLabor)
	manuscript := c.Category(domain.CategoryManuscript)
	license := c.Category(domain.CategoryLicense)
	d := c.Deductions

	res := &domain.CalculationResult{
		SalaryIncome:        m(salary.Income),
		SalaryTaxableIncome: m(salary.TaxableIncome),
		SalaryTax:           m(salary.Tax),

		LaborIncome:        m(labor.Income),
		LaborTaxableIncome: m(labor.TaxableIncome),
		LaborTax:           m(labor.Tax),

		ManuscriptIncome:        m(manuscript.Income),
		ManuscriptTaxableIncome: m(manuscript.TaxableIncome),
		ManuscriptTax:           m(manuscript.Tax),

		LicenseIncome:        m(license.Income),
		LicenseTaxableIncome: m(license.TaxableIncome),
		LicenseTax:           m(license.Tax),

		Bonus: m(c.Input.Income(domain.CategoryBonus)),

		Deductions: domain.DeductionsView{
			Standard:            m(d.Standard),
			Pension:             m(d.Pension),
			Medical:             m(d.Medical),
			Unemployment:        m(d.Unemployment),
			HousingFund:         m(d.HousingFund),
			ChildrenEducation:   m(d.ChildrenEducation),
			ContinuingEducation: m(d.ContinuingEducation),
			HousingLoan:         m(d.HousingLoan),
			HousingRent:         m(d.HousingRent),
			ElderlyCare:         m(d.ElderlyCare),
			Clamped:             d.Clamped,
		},
		TotalDeductions: m(d.Total),
		TotalIncome:     m(c.TotalIncome()),
		TotalTax:        m(c.TotalTax()),
		NetIncome:       m(c.NetIncome()),
	}

	if b := c.Bonus; b != nil {
		res.BonusView = &domain.BonusView{
			SeparateTaxableIncome: m(b.SeparateTaxableIncome),
			SeparateTax:           m(b.SeparateTax),
			CombinedTaxableIncome: m(b.CombinedTaxableIncome),
			CombinedTax:           m(b.CombinedTax),
			IncrementalTax:        m(b.IncrementalTax),
			Difference:            m(b.Difference),
			Recommendation:        b.Recommendation,
			RecommendationText:    RecommendationText(b),
			Method:                c.BonusMethod,
		}
	}
	return res
}
