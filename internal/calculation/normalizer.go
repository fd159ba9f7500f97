package calculation

import (
	"strings"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Normalize validates a raw request and converts every figure to an annual
// decimal. All fields are checked before anything is returned, so a request
// either normalizes completely or is rejected.
func Normalize(req domain.CalculationRequest, rules *domain.TaxRules) (domain.NormalizedInput, error) {
	months := decimal.NewFromInt(int64(rules.Deductions.MonthsPerYear))
	p := &fieldParser{limits: rules.Limits}

	salary := p.amount("salary", req.Salary)
	bonus := p.amount("bonus", req.Bonus)
	labor := p.amount("labor_income", req.LaborIncome)
	manuscript := p.amount("manuscript_income", req.ManuscriptIncome)
	license := p.amount("license_income", req.LicenseIncome)

	base := p.amount("social_security_base", req.SocialSecurityBase)
	fundPct := p.amount("housing_fund_rate", req.HousingFundRate)
	children := p.amount("children_education", req.ChildrenEducation)
	continuing := p.amount("continuing_education", req.ContinuingEducation)
	loan := p.amount("housing_loan", req.HousingLoan)
	rent := p.amount("housing_rent", req.HousingRent)
	elderly := p.amount("elderly_care", req.ElderlyCare)

	if p.err != nil {
		return domain.NormalizedInput{}, p.err
	}

	salaryPeriod, err := parseSalaryType(req.SalaryType)
	if err != nil {
		return domain.NormalizedInput{}, err
	}
	bonusPeriod, elected, err := parseBonusType(req.BonusType)
	if err != nil {
		return domain.NormalizedInput{}, err
	}

	if fundPct.GreaterThan(hundred) {
		return domain.NormalizedInput{}, domain.NewInvalidInput("housing_fund_rate", "%s%% is not a percentage", fundPct)
	}
	fundRate := fundPct.Div(hundred)
	if max := rules.Deductions.HousingFundMaxRate; max.IsPositive() && fundRate.GreaterThan(max) {
		fundRate = max
	}

	if salaryPeriod == domain.PeriodMonthly {
		salary = salary.Mul(months)
	}
	if bonusPeriod == domain.PeriodMonthly {
		bonus = bonus.Mul(months)
	}

	return domain.NormalizedInput{
		Incomes: map[domain.IncomeCategory]decimal.Decimal{
			domain.CategorySalary:     salary,
			domain.CategoryBonus:      bonus,
			domain.CategoryLabor:      labor,
			domain.CategoryManuscript: manuscript,
			domain.CategoryLicense:    license,
		},
		ElectedBonusMethod: elected,
		Deductions: domain.Deductions{
			SocialInsuranceBase: base,
			HousingFundRate:     fundRate,
			ChildrenEducation:   children.Mul(months),
			ContinuingEducation: continuing.Mul(months),
			HousingLoan:         loan.Mul(months),
			HousingRent:         rent.Mul(months),
			ElderlyCare:         elderly.Mul(months),
		},
	}, nil
}

// fieldParser records the first failure and keeps returning zero after it.
type fieldParser struct {
	limits domain.InputLimits
	err    error
}

func (p *fieldParser) amount(field string, raw domain.RawAmount) decimal.Decimal {
	if p.err != nil || raw.IsBlank() {
		return decimal.Zero
	}
	d, err := raw.Parse(field)
	if err != nil {
		p.err = err
		return decimal.Zero
	}
	switch {
	case d.IsNegative():
		p.err = domain.NewInvalidInput(field, "must not be negative, got %s", d)
	case d.GreaterThan(p.limits.MaxAmount):
		p.err = domain.NewInvalidInput(field, "%s exceeds the maximum of %s", d, p.limits.MaxAmount)
	case !d.Equal(d.Truncate(p.limits.MaxFractionDigits)):
		p.err = domain.NewInvalidInput(field, "more than %d fractional digits: %s", p.limits.MaxFractionDigits, d)
	default:
		return d
	}
	return decimal.Zero
}

func parseSalaryType(s string) (domain.Period, error) {
	switch domain.Period(strings.ToLower(strings.TrimSpace(s))) {
	case "", domain.PeriodMonthly:
		return domain.PeriodMonthly, nil
	case domain.PeriodAnnual:
		return domain.PeriodAnnual, nil
	}
	return "", domain.NewInvalidInput("salary_type", "unknown value %q (want monthly or annual)", s)
}

// parseBonusType accepts the period values and the method values the web
// form posts. A method value implies an annual amount.
func parseBonusType(s string) (domain.Period, domain.BonusMethod, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", string(domain.PeriodAnnual):
		return domain.PeriodAnnual, "", nil
	case string(domain.PeriodMonthly):
		return domain.PeriodMonthly, "", nil
	case string(domain.BonusSeparate), string(domain.BonusCombined):
		return domain.PeriodAnnual, domain.BonusMethod(v), nil
	}
	return "", "", domain.NewInvalidInput("bonus_type", "unknown value %q (want monthly, annual, separate or combined)", s)
}
