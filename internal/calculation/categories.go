package calculation

import (
	"fmt"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CATEGORY TAX RULES:
//
// 1. Salary: annual salary less the deduction aggregate, progressive over the
//    comprehensive table.
// 2. Labor: at or below the flat reduction limit the larger of the percentage
//    reduction and the flat reduction applies; above it only the percentage.
//    Progressive over the labor table.
// 3. Manuscript: income reduced twice, then a single flat rate.
// 4. License: income reduced once, then a single flat rate.
//
// Bonus income is not in the registry; it is handled by CompareBonus since it
// depends on the salary result.

// CategoryInput is what a calculator needs for one category.
// Deductions is only read by the salary calculator.
type CategoryInput struct {
	Income     decimal.Decimal
	Deductions decimal.Decimal
}

// CategoryCalculator computes taxable income and tax for one category.
type CategoryCalculator interface {
	Category() domain.IncomeCategory
	Calculate(in CategoryInput) domain.CategoryResult
}

// SalaryCalculator handles wages and salaries.
type SalaryCalculator struct {
	Table *BracketTable
}

func (c *SalaryCalculator) Category() domain.IncomeCategory { return domain.CategorySalary }

func (c *SalaryCalculator) Calculate(in CategoryInput) domain.CategoryResult {
	taxable := decimal.Max(in.Income.Sub(in.Deductions), decimal.Zero)
	return domain.CategoryResult{
		Category:      domain.CategorySalary,
		Income:        in.Income,
		TaxableIncome: taxable,
		Tax:           c.Table.Progressive(taxable),
	}
}

// LaborCalculator handles labor service remuneration.
type LaborCalculator struct {
	Table *BracketTable
	Rules domain.LaborRules
}

func (c *LaborCalculator) Category() domain.IncomeCategory { return domain.CategoryLabor }

func (c *LaborCalculator) Calculate(in CategoryInput) domain.CategoryResult {
	income := in.Income
	var taxable decimal.Decimal
	if income.LessThanOrEqual(c.Rules.FlatReductionLimit) {
		reduction := decimal.Max(income.Mul(c.Rules.ReductionRate), c.Rules.FlatReduction)
		taxable = decimal.Max(income.Sub(reduction), decimal.Zero)
	} else {
		taxable = income.Mul(decimal.NewFromInt(1).Sub(c.Rules.ReductionRate))
	}
	return domain.CategoryResult{
		Category:      domain.CategoryLabor,
		Income:        income,
		TaxableIncome: taxable,
		Tax:           c.Table.Progressive(taxable),
	}
}

// FlatRateCalculator handles manuscript and license income.
type FlatRateCalculator struct {
	Kind  domain.IncomeCategory
	Rules domain.FlatRateRules
}

func (c *FlatRateCalculator) Category() domain.IncomeCategory { return c.Kind }

func (c *FlatRateCalculator) Calculate(in CategoryInput) domain.CategoryResult {
	one := decimal.NewFromInt(1)
	taxable := in.Income.Mul(one.Sub(c.Rules.ReductionRate))
	if c.Rules.FurtherReduction.IsPositive() {
		taxable = taxable.Mul(one.Sub(c.Rules.FurtherReduction))
	}
	taxable = decimal.Max(taxable, decimal.Zero)
	return domain.CategoryResult{
		Category:      c.Kind,
		Income:        in.Income,
		TaxableIncome: taxable,
		Tax:           taxable.Mul(c.Rules.Rate),
	}
}

// CategoryRegistry maps each separately reported category to its calculator.
type CategoryRegistry map[domain.IncomeCategory]CategoryCalculator

// NewCategoryRegistry builds the calculators for salary, labor, manuscript
// and license from validated tables and rules.
func NewCategoryRegistry(tables *Tables, rules domain.CategoryRules) CategoryRegistry {
	return CategoryRegistry{
		domain.CategorySalary: &SalaryCalculator{Table: tables.Comprehensive},
		domain.CategoryLabor:  &LaborCalculator{Table: tables.Labor, Rules: rules.Labor},
		domain.CategoryManuscript: &FlatRateCalculator{
			Kind:  domain.CategoryManuscript,
			Rules: rules.Manuscript,
		},
		domain.CategoryLicense: &FlatRateCalculator{
			Kind:  domain.CategoryLicense,
			Rules: rules.License,
		},
	}
}

// Calculate dispatches to the calculator for c.
func (r CategoryRegistry) Calculate(c domain.IncomeCategory, in CategoryInput) (domain.CategoryResult, error) {
	calc, ok := r[c]
	if !ok {
		return domain.CategoryResult{}, fmt.Errorf("no calculator registered for category %q", c)
	}
	return calc.Calculate(in), nil
}
