package calculation

import (
	"testing"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateDeductions_Example(t *testing.T) {
	rules := testRules(t)

	b, err := AggregateDeductions(domain.Deductions{
		SocialInsuranceBase: dec("10000"),
		HousingFundRate:     dec("0.12"),
		ChildrenEducation:   dec("24000"),
		ElderlyCare:         dec("36000"),
		HousingRent:         dec("18000"),
	}, dec("240000"), rules.Deductions)
	require.NoError(t, err)

	assertDecimal(t, "60000", b.Standard, "standard")
	assertDecimal(t, "9600", b.Pension, "pension")
	assertDecimal(t, "2400", b.Medical, "medical")
	assertDecimal(t, "600", b.Unemployment, "unemployment")
	assertDecimal(t, "12600", b.SocialInsurance(), "social insurance")
	assertDecimal(t, "14400", b.HousingFund, "housing fund")
	assertDecimal(t, "27000", b.Contributions(), "contributions")
	assertDecimal(t, "165000", b.Uncapped, "uncapped")
	assertDecimal(t, "165000", b.Total, "total")
	assert.False(t, b.Clamped)
}

func TestAggregateDeductions_Caps(t *testing.T) {
	rules := testRules(t)

	b, err := AggregateDeductions(domain.Deductions{
		ChildrenEducation:   dec("60000"),
		ContinuingEducation: dec("12000"),
		HousingLoan:         dec("24000"),
		ElderlyCare:         dec("60000"),
	}, dec("1000000"), rules.Deductions)
	require.NoError(t, err)

	assertDecimal(t, "24000", b.ChildrenEducation, "children cap")
	assertDecimal(t, "4800", b.ContinuingEducation, "continuing cap")
	assertDecimal(t, "12000", b.HousingLoan, "loan cap")
	assertDecimal(t, "36000", b.ElderlyCare, "elderly cap")
	assertDecimal(t, "136800", b.Total, "total")
}

func TestAggregateDeductions_ClampedToSalary(t *testing.T) {
	rules := testRules(t)

	tests := []struct {
		salary  string
		total   string
		clamped bool
	}{
		{"0", "0", true},
		{"30000", "30000", true},
		{"60000", "60000", false},
		{"100000", "60000", false},
	}
	for _, tt := range tests {
		b, err := AggregateDeductions(domain.Deductions{}, dec(tt.salary), rules.Deductions)
		require.NoError(t, err)
		assertDecimal(t, tt.total, b.Total, "salary "+tt.salary)
		assertDecimal(t, "60000", b.Uncapped, "uncapped")
		assert.Equal(t, tt.clamped, b.Clamped, "salary %s", tt.salary)
		assert.False(t, b.Total.IsNegative())
	}
}

func TestAggregateDeductions_HousingPolicy(t *testing.T) {
	both := domain.Deductions{HousingLoan: dec("12000"), HousingRent: dec("18000")}

	tests := []struct {
		policy  domain.HousingPolicy
		loan    string
		rent    string
		wantErr bool
	}{
		{domain.HousingReject, "", "", true},
		{domain.HousingPreferLoan, "12000", "0", false},
		{domain.HousingPreferRent, "0", "18000", false},
		{domain.HousingPreferLarger, "0", "18000", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			rules := testRules(t).Deductions
			rules.HousingPolicy = tt.policy

			b, err := AggregateDeductions(both, dec("500000"), rules)
			if tt.wantErr {
				var inv *domain.InvalidInputError
				require.ErrorAs(t, err, &inv)
				assert.Equal(t, "housing_loan", inv.Field)
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.loan, b.HousingLoan, "loan")
			assertDecimal(t, tt.rent, b.HousingRent, "rent")
		})
	}
}

func TestAggregateDeductions_PreferLargerTieGoesToLoan(t *testing.T) {
	rules := testRules(t).Deductions
	rules.HousingPolicy = domain.HousingPreferLarger

	b, err := AggregateDeductions(domain.Deductions{HousingLoan: dec("12000"), HousingRent: dec("12000")}, dec("500000"), rules)
	require.NoError(t, err)
	assertDecimal(t, "12000", b.HousingLoan, "loan")
	assert.True(t, b.HousingRent.IsZero())
}

func TestAggregateDeductions_OnlyOneHousingItemIsFine(t *testing.T) {
	rules := testRules(t).Deductions
	b, err := AggregateDeductions(domain.Deductions{HousingLoan: dec("6000")}, dec("500000"), rules)
	require.NoError(t, err)
	assertDecimal(t, "6000", b.HousingLoan, "loan")
}

func TestCapAt(t *testing.T) {
	assert.True(t, capAt(dec("-1"), dec("10")).IsZero())
	assert.True(t, capAt(dec("50"), decimal.Zero).Equal(dec("50")), "zero limit means uncapped")
	assert.True(t, capAt(dec("50"), dec("10")).Equal(dec("10")))
}
