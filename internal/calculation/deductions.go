package calculation

import (
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// AggregateDeductions combines the standard allowance, employee
// contributions and capped itemized deductions into the amount subtracted
// from comprehensive income. The total never exceeds comprehensiveIncome.
func AggregateDeductions(d domain.Deductions, comprehensiveIncome decimal.Decimal, rules domain.DeductionRules) (domain.DeductionBreakdown, error) {
	months := decimal.NewFromInt(int64(rules.MonthsPerYear))
	annualBase := d.SocialInsuranceBase.Mul(months)

	loan, rent, err := resolveHousing(d, rules)
	if err != nil {
		return domain.DeductionBreakdown{}, err
	}

	b := domain.DeductionBreakdown{
		Standard:            rules.StandardAnnual,
		Pension:             annualBase.Mul(rules.SocialInsurance.Pension),
		Medical:             annualBase.Mul(rules.SocialInsurance.Medical),
		Unemployment:        annualBase.Mul(rules.SocialInsurance.Unemployment),
		HousingFund:         annualBase.Mul(d.HousingFundRate),
		ChildrenEducation:   capAt(d.ChildrenEducation, rules.Caps.ChildrenEducation),
		ContinuingEducation: capAt(d.ContinuingEducation, rules.Caps.ContinuingEducation),
		HousingLoan:         loan,
		HousingRent:         rent,
		ElderlyCare:         capAt(d.ElderlyCare, rules.Caps.ElderlyCare),
	}

	b.Uncapped = decimal.Sum(b.Standard,
		b.Pension, b.Medical, b.Unemployment, b.HousingFund,
		b.ChildrenEducation, b.ContinuingEducation,
		b.HousingLoan, b.HousingRent, b.ElderlyCare)

	income := decimal.Max(comprehensiveIncome, decimal.Zero)
	b.Total = b.Uncapped
	if b.Total.GreaterThan(income) {
		b.Total = income
		b.Clamped = true
	}
	return b, nil
}

// resolveHousing applies the configured exclusivity policy between housing
// loan interest and housing rent. At most one of the results is non-zero.
func resolveHousing(d domain.Deductions, rules domain.DeductionRules) (loan, rent decimal.Decimal, err error) {
	loan = capAt(d.HousingLoan, rules.Caps.HousingLoan)
	rent = capAt(d.HousingRent, rules.Caps.HousingRent)
	if loan.IsZero() || rent.IsZero() {
		return loan, rent, nil
	}

	switch rules.HousingPolicy {
	case domain.HousingPreferLoan:
		return loan, decimal.Zero, nil
	case domain.HousingPreferRent:
		return decimal.Zero, rent, nil
	case domain.HousingPreferLarger:
		// ties go to the loan
		if rent.GreaterThan(loan) {
			return decimal.Zero, rent, nil
		}
		return loan, decimal.Zero, nil
	default:
		return decimal.Zero, decimal.Zero, domain.NewInvalidInput("housing_loan",
			"housing loan interest and housing rent cannot both be claimed")
	}
}

// capAt clamps v into [0, limit]. A zero limit means no cap.
func capAt(v, limit decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if limit.IsPositive() && v.GreaterThan(limit) {
		return limit
	}
	return v
}
