package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Validate checks the whole rule set. The first problem found is returned
// as a *ConfigurationError.
func (r *TaxRules) Validate() error {
	for _, t := range r.Tables.All() {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if err := r.Deductions.Validate(); err != nil {
		return err
	}
	if err := r.Categories.Validate(); err != nil {
		return err
	}
	return r.Limits.Validate()
}

// Validate checks that the limits are usable and stay within what
// RawAmount.Parse can represent.
func (l InputLimits) Validate() error {
	fail := func(format string, args ...any) error {
		return &ConfigurationError{Table: "limits", Message: fmt.Sprintf(format, args...)}
	}
	if !l.MaxAmount.IsPositive() {
		return fail("max_amount must be positive")
	}
	if l.MaxAmount.Exponent() > MaxAmountExponent || len(l.MaxAmount.String()) > MaxAmountLength {
		return fail("max_amount %s is too large", l.MaxAmount)
	}
	if l.MaxFractionDigits < 0 || l.MaxFractionDigits > MaxAmountExponent {
		return fail("max_fraction_digits must be between 0 and %d, got %d", MaxAmountExponent, l.MaxFractionDigits)
	}
	return nil
}

// Validate checks that t partitions [0, inf) into a continuous,
// non-decreasing progressive schedule.
func (t BracketTable) Validate() error {
	fail := func(format string, args ...any) error {
		return &ConfigurationError{Table: t.Name, Message: fmt.Sprintf(format, args...)}
	}
	if t.Name == "" {
		return &ConfigurationError{Message: "bracket table has no name"}
	}
	if len(t.Brackets) == 0 {
		return fail("no brackets")
	}
	if !t.Brackets[0].LowerBound.IsZero() {
		return fail("first bracket must start at 0, got %s", t.Brackets[0].LowerBound)
	}
	for i, b := range t.Brackets {
		if !isFraction(b.Rate) {
			return fail("bracket %d: rate %s outside [0,1]", i, b.Rate)
		}
		if b.QuickDeduction.IsNegative() {
			return fail("bracket %d: negative quick deduction %s", i, b.QuickDeduction)
		}
		if i == 0 {
			if !b.QuickDeduction.IsZero() {
				return fail("bracket 0: quick deduction must be 0, got %s", b.QuickDeduction)
			}
			continue
		}
		prev := t.Brackets[i-1]
		if !b.LowerBound.GreaterThan(prev.LowerBound) {
			return fail("bracket %d: lower bound %s not above %s", i, b.LowerBound, prev.LowerBound)
		}
		if b.Rate.LessThan(prev.Rate) {
			return fail("bracket %d: rate %s below previous %s", i, b.Rate, prev.Rate)
		}
		// continuity at lower[i]
		want := prev.QuickDeduction.Add(b.LowerBound.Mul(b.Rate.Sub(prev.Rate)))
		if !b.QuickDeduction.Equal(want) {
			return fail("bracket %d: quick deduction %s breaks continuity, expected %s", i, b.QuickDeduction, want)
		}
	}
	return nil
}

// Validate checks deduction amounts and rates.
func (d DeductionRules) Validate() error {
	fail := func(format string, args ...any) error {
		return &ConfigurationError{Table: "deductions", Message: fmt.Sprintf(format, args...)}
	}
	if d.MonthsPerYear <= 0 {
		return fail("months_per_year must be positive, got %d", d.MonthsPerYear)
	}
	if d.StandardAnnual.IsNegative() {
		return fail("standard_annual must not be negative")
	}
	for _, r := range []namedValue{
		{"social_insurance.pension", d.SocialInsurance.Pension},
		{"social_insurance.medical", d.SocialInsurance.Medical},
		{"social_insurance.unemployment", d.SocialInsurance.Unemployment},
		{"housing_fund_max_rate", d.HousingFundMaxRate},
	} {
		if !isFraction(r.v) {
			return fail("%s %s outside [0,1]", r.name, r.v)
		}
	}
	for _, c := range []namedValue{
		{"children_education", d.Caps.ChildrenEducation},
		{"continuing_education", d.Caps.ContinuingEducation},
		{"housing_loan", d.Caps.HousingLoan},
		{"housing_rent", d.Caps.HousingRent},
		{"elderly_care", d.Caps.ElderlyCare},
	} {
		if c.v.IsNegative() {
			return fail("annual_caps.%s must not be negative", c.name)
		}
	}
	if !d.HousingPolicy.Valid() {
		return fail("unknown housing_policy %q", d.HousingPolicy)
	}
	return nil
}

// Validate checks the reduction and flat rates.
func (c CategoryRules) Validate() error {
	rates := []namedValue{
		{"labor.reduction_rate", c.Labor.ReductionRate},
		{"manuscript.reduction_rate", c.Manuscript.ReductionRate},
		{"manuscript.further_reduction", c.Manuscript.FurtherReduction},
		{"manuscript.rate", c.Manuscript.Rate},
		{"license.reduction_rate", c.License.ReductionRate},
		{"license.further_reduction", c.License.FurtherReduction},
		{"license.rate", c.License.Rate},
	}
	for _, r := range rates {
		if !isFraction(r.v) {
			return &ConfigurationError{Table: "categories", Message: fmt.Sprintf("%s %s outside [0,1]", r.name, r.v)}
		}
	}
	if c.Labor.FlatReduction.IsNegative() || c.Labor.FlatReductionLimit.IsNegative() {
		return &ConfigurationError{Table: "categories", Message: "labor flat reduction values must not be negative"}
	}
	return nil
}

type namedValue struct {
	name string
	v    decimal.Decimal
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(one)
}
