package calculation

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := testEngine(t)

	assert.NotNil(t, engine.Rules())
	assert.NotNil(t, engine.Tables())
	assert.Len(t, engine.categories, 4)
	assert.IsType(t, NopLogger{}, engine.logger)
}

func TestNewEngine_RejectsBadRules(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)

	rules := testRules(t)
	rules.Tables.Labor.Brackets[1].QuickDeduction = dec("1999")
	_, err = NewEngine(rules)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "labor", cfgErr.Table)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := testEngine(t)

	logger := &TestLogger{}
	engine.SetLogger(logger)
	assert.Equal(t, logger, engine.logger)

	_, err := engine.Compute(domain.CalculationRequest{Salary: amt(20000), Bonus: amt(36000)})
	require.NoError(t, err)
	assert.NotEmpty(t, logger.Messages)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.logger)
}

func TestEngine_Compute_SalaryOnly(t *testing.T) {
	engine := testEngine(t)

	res, err := engine.Compute(domain.CalculationRequest{Salary: amt(300000), SalaryType: "annual"})
	require.NoError(t, err)

	assertMoney(t, "300000.00", res.SalaryIncome, "salary_income")
	assertMoney(t, "240000.00", res.SalaryTaxableIncome, "salary_taxable_income")
	assertMoney(t, "31080.00", res.SalaryTax, "salary_tax")
	assertMoney(t, "0.00", res.Bonus, "bonus")
	assert.False(t, res.HasBonus())
	assertMoney(t, "60000.00", res.TotalDeductions, "total_deductions")
	assertMoney(t, "31080.00", res.TotalTax, "total_tax")
	assertMoney(t, "268920.00", res.NetIncome, "net_income")
}

func TestEngine_Compute_FullForm(t *testing.T) {
	engine := testEngine(t)

	res, err := engine.Compute(domain.CalculationRequest{
		Salary:             amt(20000),
		SalaryType:         "monthly",
		Bonus:              amt(36000),
		BonusType:          "annual",
		SocialSecurityBase: amt(10000),
		HousingFundRate:    amt(12),
		ChildrenEducation:  amt(2000),
		ElderlyCare:        amt(3000),
		HousingRent:        amt(1500),
	})
	require.NoError(t, err)

	assertMoney(t, "240000.00", res.SalaryIncome, "salary_income")
	assertMoney(t, "165000.00", res.TotalDeductions, "total_deductions")
	assertMoney(t, "75000.00", res.SalaryTaxableIncome, "salary_taxable_income")
	assertMoney(t, "4980.00", res.SalaryTax, "salary_tax")

	require.True(t, res.HasBonus())
	assertMoney(t, "36000.00", res.Bonus, "bonus")
	assertMoney(t, "1080.00", res.BonusView.SeparateTax, "bonus_separate_tax")
	assertMoney(t, "111000.00", res.BonusView.CombinedTaxableIncome, "bonus_combined_taxable_income")
	assertMoney(t, "8580.00", res.BonusView.CombinedTax, "bonus_combined_tax")
	assertMoney(t, "3600.00", res.BonusView.IncrementalTax, "bonus_combined_incremental_tax")
	assertMoney(t, "2520.00", res.BonusView.Difference, "bonus_tax_difference")
	assert.Equal(t, domain.BonusSeparate, res.BonusView.Recommendation)
	assert.Equal(t, domain.BonusSeparate, res.BonusView.Method)
	assert.NotEmpty(t, res.BonusView.RecommendationText)

	assertMoney(t, "9600.00", res.Deductions.Pension, "pension")
	assertMoney(t, "14400.00", res.Deductions.HousingFund, "housing_fund")
	assertMoney(t, "18000.00", res.Deductions.HousingRent, "housing_rent")

	assertMoney(t, "276000.00", res.TotalIncome, "total_income")
	assertMoney(t, "6060.00", res.TotalTax, "total_tax")
	assertMoney(t, "242940.00", res.NetIncome, "net_income")
}

func TestEngine_Compute_ElectedBonusMethod(t *testing.T) {
	engine := testEngine(t)

	res, err := engine.Compute(domain.CalculationRequest{
		Salary: amt(300000), SalaryType: "annual",
		Bonus: amt(36000), BonusType: "combined",
	})
	require.NoError(t, err)
	require.True(t, res.HasBonus())

	assert.Equal(t, domain.BonusSeparate, res.BonusView.Recommendation)
	assert.Equal(t, domain.BonusCombined, res.BonusView.Method)
	assertMoney(t, "38280.00", res.TotalTax, "total_tax under elected combined")
}

func TestEngine_Compute_OtherCategories(t *testing.T) {
	engine := testEngine(t)

	res, err := engine.Compute(domain.CalculationRequest{
		LaborIncome:      amt(3000),
		ManuscriptIncome: amt(10000),
		LicenseIncome:    amt(10000),
	})
	require.NoError(t, err)

	assertMoney(t, "2200.00", res.LaborTaxableIncome, "labor_taxable_income")
	assertMoney(t, "440.00", res.LaborTax, "labor_tax")
	assertMoney(t, "5600.00", res.ManuscriptTaxableIncome, "manuscript_taxable_income")
	assertMoney(t, "1120.00", res.ManuscriptTax, "manuscript_tax")
	assertMoney(t, "8000.00", res.LicenseTaxableIncome, "license_taxable_income")
	assertMoney(t, "1600.00", res.LicenseTax, "license_tax")

	assertMoney(t, "0.00", res.SalaryTax, "salary_tax")
	assertMoney(t, "0.00", res.TotalDeductions, "deductions clamped to zero salary")
	assert.True(t, res.Deductions.Clamped)

	assertMoney(t, "23000.00", res.TotalIncome, "total_income")
	assertMoney(t, "3160.00", res.TotalTax, "total_tax")
	assertMoney(t, "19840.00", res.NetIncome, "net_income")
}

func TestEngine_Compute_ZeroIncome(t *testing.T) {
	engine := testEngine(t)

	res, err := engine.Compute(domain.CalculationRequest{})
	require.NoError(t, err)

	for name, v := range map[string]domain.MonetaryAmount{
		"salary_tax": res.SalaryTax, "labor_tax": res.LaborTax,
		"manuscript_tax": res.ManuscriptTax, "license_tax": res.LicenseTax,
		"total_tax": res.TotalTax, "net_income": res.NetIncome,
	} {
		assert.True(t, v.IsZero(), name)
	}
	assert.False(t, res.HasBonus())
}

func TestEngine_Compute_RejectsInvalidInput(t *testing.T) {
	engine := testEngine(t)

	tests := []struct {
		name  string
		req   domain.CalculationRequest
		field string
	}{
		{"garbage", domain.CalculationRequest{Salary: "12k"}, "salary"},
		{"negative", domain.CalculationRequest{Bonus: "-1"}, "bonus"},
		{"both housing items", domain.CalculationRequest{Salary: amt(20000), HousingLoan: amt(1000), HousingRent: amt(1500)}, "housing_loan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Compute(tt.req)
			assert.Nil(t, res)

			var inv *domain.InvalidInputError
			require.True(t, errors.As(err, &inv), "got %v", err)
			assert.Equal(t, tt.field, inv.Field)
		})
	}
}

func TestEngine_Compute_Idempotent(t *testing.T) {
	engine := testEngine(t)
	req := domain.CalculationRequest{Salary: amt(18000), Bonus: amt(50000), LaborIncome: amt(3500)}

	first, err := engine.Compute(req)
	require.NoError(t, err)
	a, err := json.Marshal(first)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := engine.Compute(req)
			if !assert.NoError(t, err) {
				return
			}
			b, err := json.Marshal(again)
			if assert.NoError(t, err) {
				assert.JSONEq(t, string(a), string(b))
			}
		}()
	}
	wg.Wait()
}

func TestEngine_Compute_JSONContract(t *testing.T) {
	engine := testEngine(t)

	res, err := engine.Compute(domain.CalculationRequest{Salary: amt(300000), SalaryType: "annual"})
	require.NoError(t, err)
	data, err := json.Marshal(domain.CalculationResponse{Success: true, Result: res})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	var result map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["result"], &result))

	assert.Equal(t, "31080.00", string(result["salary_tax"]))
	assert.Equal(t, "0.00", string(result["labor_tax"]))
	assert.Contains(t, result, "manuscript_taxable_income")
	assert.NotContains(t, result, "bonus_separate_tax", "bonus fields only when bonus > 0")
	assert.NotContains(t, raw, "error")

	res, err = engine.Compute(domain.CalculationRequest{Salary: amt(300000), SalaryType: "annual", Bonus: amt(36000)})
	require.NoError(t, err)
	data, err = json.Marshal(res)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "1080.00", string(result["bonus_separate_tax"]))
	assert.Equal(t, "7200.00", string(result["bonus_combined_incremental_tax"]))
	assert.Equal(t, `"separate"`, string(result["bonus_recommendation"]))
}

func TestEngine_ComputeNormalized_Unrounded(t *testing.T) {
	engine := testEngine(t)

	in := domain.NormalizedInput{
		Incomes: map[domain.IncomeCategory]decimal.Decimal{
			domain.CategoryLabor: dec("4000.01"),
		},
	}
	c, err := engine.ComputeNormalized(in)
	require.NoError(t, err)
	assertDecimal(t, "640.0016", c.Category(domain.CategoryLabor).Tax, "unrounded labor tax")
	assert.Equal(t, "640.00", Assemble(c).LaborTax.StringFixed(2))
	assert.Nil(t, c.Bonus)
	assert.True(t, c.BonusTax().IsZero())
}
