package calculation

import (
	"fmt"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareBonus taxes an annual bonus both ways and recommends the cheaper
// one. salaryTaxable and salaryTax are the salary results the bonus would
// be stacked on under the combined method. Returns nil for a zero bonus.
func CompareBonus(bonus, salaryTaxable, salaryTax decimal.Decimal, tables *Tables, monthsPerYear int) *domain.BonusComparison {
	if !bonus.IsPositive() {
		return nil
	}

	monthly := bonus.Div(decimal.NewFromInt(int64(monthsPerYear)))
	bracket := tables.BonusMonthly.Lookup(monthly)
	separate := ApplyBracket(bonus, bracket)

	combinedTaxable := salaryTaxable.Add(bonus)
	combinedTax := tables.Comprehensive.Progressive(combinedTaxable)
	incremental := decimal.Max(combinedTax.Sub(salaryTax), decimal.Zero)

	cmp := &domain.BonusComparison{
		Bonus:                 bonus,
		MonthlyEquivalent:     monthly,
		SeparateTaxableIncome: bonus,
		SeparateRate:          bracket.Rate,
		SeparateTax:           separate,
		CombinedTaxableIncome: combinedTaxable,
		CombinedTax:           combinedTax,
		IncrementalTax:        incremental,
		Recommendation:        domain.BonusSeparate,
		Difference:            separate.Sub(incremental).Abs(),
	}
	if incremental.LessThan(separate) {
		cmp.Recommendation = domain.BonusCombined
	}
	return cmp
}

// RecommendationText renders the recommendation for display.
func RecommendationText(cmp *domain.BonusComparison) string {
	if cmp == nil {
		return ""
	}
	saving := cmp.Difference.StringFixed(domain.MoneyPlaces)
	switch {
	case cmp.Difference.IsZero():
		return "Both methods give the same tax; taxing the bonus separately is recommended."
	case cmp.Recommendation == domain.BonusCombined:
		return fmt.Sprintf("Combining the bonus with comprehensive income saves %s in tax.", saving)
	default:
		return fmt.Sprintf("Taxing the bonus separately saves %s in tax.", saving)
	}
}
