package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// monthsPerYear annualizes form amounts entered per month.
var monthsPerYear = decimal.NewFromInt(12)

// deductionFields maps the itemized form fields a SetDeduction may change.
var deductionFields = map[string]func(*domain.CalculationRequest) *domain.RawAmount{
	"social_security_base": func(r *domain.CalculationRequest) *domain.RawAmount { return &r.SocialSecurityBase },
	"children_education":   func(r *domain.CalculationRequest) *domain.RawAmount { return &r.ChildrenEducation },
	"continuing_education": func(r *domain.CalculationRequest) *domain.RawAmount { return &r.ContinuingEducation },
	"housing_loan":         func(r *domain.CalculationRequest) *domain.RawAmount { return &r.HousingLoan },
	"housing_rent":         func(r *domain.CalculationRequest) *domain.RawAmount { return &r.HousingRent },
	"elderly_care":         func(r *domain.CalculationRequest) *domain.RawAmount { return &r.ElderlyCare },
}

func parseAmount(field string, raw domain.RawAmount) (decimal.Decimal, error) {
	return raw.Parse(field)
}

func isMonthly(periodType string) bool {
	return strings.EqualFold(strings.TrimSpace(periodType), string(domain.PeriodMonthly))
}

func annualSalary(r *domain.CalculationRequest) (decimal.Decimal, error) {
	salary, err := parseAmount("salary", r.Salary)
	if err != nil {
		return decimal.Zero, err
	}
	// A blank salary_type means monthly on the form.
	if strings.TrimSpace(r.SalaryType) == "" || isMonthly(r.SalaryType) {
		salary = salary.Mul(monthsPerYear)
	}
	return salary, nil
}

func annualBonus(r *domain.CalculationRequest) (decimal.Decimal, error) {
	bonus, err := parseAmount("bonus", r.Bonus)
	if err != nil {
		return decimal.Zero, err
	}
	if isMonthly(r.BonusType) {
		bonus = bonus.Mul(monthsPerYear)
	}
	return bonus, nil
}

// electedMethod returns the method named by bonus_type, or "".
func electedMethod(r *domain.CalculationRequest) domain.BonusMethod {
	switch m := domain.BonusMethod(strings.ToLower(strings.TrimSpace(r.BonusType))); m {
	case domain.BonusSeparate, domain.BonusCombined:
		return m
	}
	return ""
}

// ElectBonusMethod fixes the bonus treatment instead of taking the recommendation.
type ElectBonusMethod struct {
	Method domain.BonusMethod
}

func (t *ElectBonusMethod) Name() string { return "elect_bonus_method" }

func (t *ElectBonusMethod) Description() string {
	return fmt.Sprintf("Tax the annual bonus with the %s method", t.Method)
}

func (t *ElectBonusMethod) Validate(base *domain.CalculationRequest) error {
	if t.Method != domain.BonusSeparate && t.Method != domain.BonusCombined {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown method %q (want separate or combined)", t.Method), nil)
	}
	if _, err := annualBonus(base); err != nil {
		return NewTransformError(t.Name(), "validate", "bonus is not usable", err)
	}
	return nil
}

func (t *ElectBonusMethod) Apply(base *domain.CalculationRequest) (*domain.CalculationRequest, error) {
	bonus, err := annualBonus(base)
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "bonus is not usable", err)
	}
	next := copyRequest(base)
	// Method values imply an annual amount.
	if isMonthly(base.BonusType) {
		next.Bonus = domain.AmountOf(bonus)
	}
	next.BonusType = string(t.Method)
	return next, nil
}

// ShiftBonusToSalary moves part of the annual bonus into regular salary.
// Both amounts are rewritten as annual figures.
type ShiftBonusToSalary struct {
	Amount decimal.Decimal
}

func (t *ShiftBonusToSalary) Name() string { return "shift_bonus_to_salary" }

func (t *ShiftBonusToSalary) Description() string {
	return fmt.Sprintf("Pay %s of the annual bonus as salary", t.Amount.StringFixed(2))
}

func (t *ShiftBonusToSalary) Validate(base *domain.CalculationRequest) error {
	if !t.Amount.IsPositive() {
		return NewTransformError(t.Name(), "validate", "amount must be positive", nil)
	}
	bonus, err := annualBonus(base)
	if err != nil {
		return NewTransformError(t.Name(), "validate", "bonus is not usable", err)
	}
	if _, err := annualSalary(base); err != nil {
		return NewTransformError(t.Name(), "validate", "salary is not usable", err)
	}
	if t.Amount.GreaterThan(bonus) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("amount %s exceeds annual bonus %s", t.Amount.StringFixed(2), bonus.StringFixed(2)), nil)
	}
	return nil
}

func (t *ShiftBonusToSalary) Apply(base *domain.CalculationRequest) (*domain.CalculationRequest, error) {
	salary, err := annualSalary(base)
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "salary is not usable", err)
	}
	bonus, err := annualBonus(base)
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "bonus is not usable", err)
	}

	next := copyRequest(base)
	next.Salary = domain.AmountOf(salary.Add(t.Amount))
	next.SalaryType = string(domain.PeriodAnnual)
	next.Bonus = domain.AmountOf(bonus.Sub(t.Amount))
	if m := electedMethod(base); m != "" {
		next.BonusType = string(m)
	} else {
		next.BonusType = string(domain.PeriodAnnual)
	}
	return next, nil
}

// SetHousingFundRate replaces the housing fund contribution percentage.
type SetHousingFundRate struct {
	Percent decimal.Decimal
}

func (t *SetHousingFundRate) Name() string { return "set_housing_fund_rate" }

func (t *SetHousingFundRate) Description() string {
	return fmt.Sprintf("Contribute %s%% to the housing fund", t.Percent.String())
}

func (t *SetHousingFundRate) Validate(base *domain.CalculationRequest) error {
	if t.Percent.IsNegative() || t.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("rate %s is not a percentage", t.Percent), nil)
	}
	return nil
}

func (t *SetHousingFundRate) Apply(base *domain.CalculationRequest) (*domain.CalculationRequest, error) {
	next := copyRequest(base)
	next.HousingFundRate = domain.AmountOf(t.Percent)
	return next, nil
}

// SetDeduction replaces one monthly itemized deduction field.
type SetDeduction struct {
	Field   string
	Monthly decimal.Decimal
}

func (t *SetDeduction) Name() string { return "set_deduction" }

func (t *SetDeduction) Description() string {
	return fmt.Sprintf("Set %s to %s per month", t.Field, t.Monthly.StringFixed(2))
}

func (t *SetDeduction) Validate(base *domain.CalculationRequest) error {
	if _, ok := deductionFields[t.Field]; !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown deduction field %q", t.Field), nil)
	}
	if t.Monthly.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount must not be negative", nil)
	}
	return nil
}

func (t *SetDeduction) Apply(base *domain.CalculationRequest) (*domain.CalculationRequest, error) {
	field, ok := deductionFields[t.Field]
	if !ok {
		return nil, NewTransformError(t.Name(), "apply", fmt.Sprintf("unknown deduction field %q", t.Field), nil)
	}
	next := copyRequest(base)
	*field(next) = domain.AmountOf(t.Monthly)
	return next, nil
}

// Housing deduction kinds for ClaimHousing.
const (
	HousingLoan = "loan"
	HousingRent = "rent"
)

// ClaimHousing keeps one of the two housing deductions and clears the other,
// so a request that lists both can be computed under either claim.
type ClaimHousing struct {
	Kind string
}

func (t *ClaimHousing) Name() string { return "claim_housing" }

func (t *ClaimHousing) Description() string {
	return fmt.Sprintf("Claim the housing %s deduction only", t.Kind)
}

func (t *ClaimHousing) Validate(base *domain.CalculationRequest) error {
	var raw domain.RawAmount
	switch t.Kind {
	case HousingLoan:
		raw = base.HousingLoan
	case HousingRent:
		raw = base.HousingRent
	default:
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown housing kind %q (want loan or rent)", t.Kind), nil)
	}
	amount, err := parseAmount("housing_"+t.Kind, raw)
	if err != nil {
		return NewTransformError(t.Name(), "validate", "amount is not usable", err)
	}
	if !amount.IsPositive() {
		return NewTransformError(t.Name(), "validate", "no housing_"+t.Kind+" amount to claim", nil)
	}
	return nil
}

func (t *ClaimHousing) Apply(base *domain.CalculationRequest) (*domain.CalculationRequest, error) {
	next := copyRequest(base)
	switch t.Kind {
	case HousingLoan:
		next.HousingRent = ""
	case HousingRent:
		next.HousingLoan = ""
	default:
		return nil, NewTransformError(t.Name(), "apply", fmt.Sprintf("unknown housing kind %q", t.Kind), nil)
	}
	return next, nil
}
