package calculation

import (
	"testing"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRegistry_Covers(t *testing.T) {
	reg := NewCategoryRegistry(testTables(t), testRules(t).Categories)
	for _, c := range []domain.IncomeCategory{
		domain.CategorySalary, domain.CategoryLabor, domain.CategoryManuscript, domain.CategoryLicense,
	} {
		calc, ok := reg[c]
		require.True(t, ok, "missing %s", c)
		assert.Equal(t, c, calc.Category())
	}

	_, err := reg.Calculate(domain.CategoryBonus, CategoryInput{Income: dec("1")})
	assert.Error(t, err, "bonus is compared, not registered")
}

func TestSalaryCalculator(t *testing.T) {
	calc := &SalaryCalculator{Table: testTables(t).Comprehensive}

	tests := []struct {
		income, deductions string
		taxable, tax       string
	}{
		{"300000", "60000", "240000", "31080"},
		{"240000", "165000", "75000", "4980"},
		{"50000", "60000", "0", "0"},
		{"0", "0", "0", "0"},
	}
	for _, tt := range tests {
		r := calc.Calculate(CategoryInput{Income: dec(tt.income), Deductions: dec(tt.deductions)})
		assert.Equal(t, domain.CategorySalary, r.Category)
		assertDecimal(t, tt.taxable, r.TaxableIncome, "taxable for "+tt.income)
		assertDecimal(t, tt.tax, r.Tax, "tax for "+tt.income)
	}
}

func TestLaborCalculator(t *testing.T) {
	rules := testRules(t)
	calc := &LaborCalculator{Table: testTables(t).Labor, Rules: rules.Categories.Labor}

	tests := []struct {
		income, taxable, tax string
	}{
		{"0", "0", "0"},
		{"500", "0", "0"},
		{"800", "0", "0"},
		{"3000", "2200", "440"},
		{"4000", "3200", "640"},
		{"4000.01", "3200.008", "640.0016"},
		{"30000", "24000", "5200"},
		{"100000", "80000", "25000"},
	}
	for _, tt := range tests {
		r := calc.Calculate(CategoryInput{Income: dec(tt.income)})
		assertDecimal(t, tt.taxable, r.TaxableIncome, "labor taxable "+tt.income)
		assertDecimal(t, tt.tax, r.Tax, "labor tax "+tt.income)
	}
}

func TestFlatRateCalculators(t *testing.T) {
	rules := testRules(t).Categories
	manuscript := &FlatRateCalculator{Kind: domain.CategoryManuscript, Rules: rules.Manuscript}
	license := &FlatRateCalculator{Kind: domain.CategoryLicense, Rules: rules.License}

	r := manuscript.Calculate(CategoryInput{Income: dec("10000")})
	assert.Equal(t, domain.CategoryManuscript, r.Category)
	assertDecimal(t, "5600", r.TaxableIncome, "manuscript taxable")
	assertDecimal(t, "1120", r.Tax, "manuscript tax")

	r = license.Calculate(CategoryInput{Income: dec("10000")})
	assert.Equal(t, domain.CategoryLicense, r.Category)
	assertDecimal(t, "8000", r.TaxableIncome, "license taxable")
	assertDecimal(t, "1600", r.Tax, "license tax")

	for _, calc := range []CategoryCalculator{manuscript, license} {
		r := calc.Calculate(CategoryInput{})
		assert.True(t, r.TaxableIncome.IsZero())
		assert.True(t, r.Tax.IsZero())
	}
}

func TestCategoriesIgnoreDeductions(t *testing.T) {
	reg := NewCategoryRegistry(testTables(t), testRules(t).Categories)
	for _, c := range []domain.IncomeCategory{domain.CategoryLabor, domain.CategoryManuscript, domain.CategoryLicense} {
		plain, err := reg.Calculate(c, CategoryInput{Income: dec("10000")})
		require.NoError(t, err)
		withDed, err := reg.Calculate(c, CategoryInput{Income: dec("10000"), Deductions: dec("9999")})
		require.NoError(t, err)
		assert.True(t, plain.Tax.Equal(withDed.Tax), "%s should not read Deductions", c)
	}
}
