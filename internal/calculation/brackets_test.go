package calculation

import (
	"testing"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketTable_Lookup(t *testing.T) {
	tables := testTables(t)

	tests := []struct {
		name  string
		table *BracketTable
		x     string
		rate  string
	}{
		{"zero", tables.Comprehensive, "0", "0.03"},
		{"at first boundary", tables.Comprehensive, "36000", "0.03"},
		{"just above first boundary", tables.Comprehensive, "36000.01", "0.10"},
		{"middle", tables.Comprehensive, "240000", "0.20"},
		{"top", tables.Comprehensive, "5000000", "0.45"},
		{"bonus at 3000", tables.BonusMonthly, "3000", "0.03"},
		{"bonus above 3000", tables.BonusMonthly, "3000.01", "0.10"},
		{"bonus at 80000", tables.BonusMonthly, "80000", "0.35"},
		{"labor at 20000", tables.Labor, "20000", "0.20"},
		{"labor above 50000", tables.Labor, "50001", "0.40"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.rate, tt.table.Lookup(dec(tt.x)).Rate, "rate")
		})
	}
}

func TestBracketTable_Progressive(t *testing.T) {
	tables := testTables(t)

	tests := []struct {
		x    string
		want string
	}{
		{"0", "0"},
		{"-100", "0"},
		{"36000", "1080"},
		{"75000", "4980"},
		{"240000", "31080"},
		{"276000", "38280"},
		{"1000000", "268080"},
	}
	for _, tt := range tests {
		assertDecimal(t, tt.want, tables.Comprehensive.Progressive(dec(tt.x)), "progressive("+tt.x+")")
	}
}

func TestBracketTables_ContinuousAtBoundaries(t *testing.T) {
	tables := testTables(t)
	for _, table := range []*BracketTable{tables.Comprehensive, tables.BonusMonthly, tables.Labor} {
		for i := 1; i < len(table.Brackets); i++ {
			boundary := table.Brackets[i].LowerBound
			below := ApplyBracket(boundary, table.Brackets[i-1])
			above := ApplyBracket(boundary, table.Brackets[i])
			assert.True(t, below.Equal(above), "%s: discontinuity at %s: %s vs %s", table.Name, boundary, below, above)

			// one cent either side moves tax by at most a cent times the rate
			step := decimal.NewFromFloat(0.01)
			diff := table.Progressive(boundary.Add(step)).Sub(table.Progressive(boundary))
			assert.True(t, diff.LessThanOrEqual(step), "%s: jump at %s", table.Name, boundary)
		}
	}
}

func TestBracketTables_Monotonic(t *testing.T) {
	tables := testTables(t)
	step := decimal.NewFromInt(777)
	limit := decimal.NewFromInt(1_500_000)

	for _, table := range []*BracketTable{tables.Comprehensive, tables.BonusMonthly, tables.Labor} {
		prev := decimal.Zero
		for x := decimal.Zero; x.LessThan(limit); x = x.Add(step) {
			tax := table.Progressive(x)
			require.False(t, tax.IsNegative())
			require.True(t, tax.GreaterThanOrEqual(prev), "%s: tax fell at %s", table.Name, x)
			prev = tax
		}
	}
}

func TestNewBracketTable_CopiesBrackets(t *testing.T) {
	src := domain.BracketTable{
		Name: "flat",
		Brackets: []domain.TaxBracket{
			{LowerBound: decimal.Zero, Rate: dec("0.1"), QuickDeduction: decimal.Zero},
		},
	}
	table, err := NewBracketTable(src)
	require.NoError(t, err)

	src.Brackets[0].Rate = dec("0.9")
	assertDecimal(t, "0.1", table.Brackets[0].Rate, "rate")
	assertDecimal(t, "100", table.Progressive(dec("1000")), "tax")
}

func TestNewBracketTable_Invalid(t *testing.T) {
	_, err := NewBracketTable(domain.BracketTable{Name: "empty"})
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "empty", cfgErr.Table)
}

func TestApplyBracket_FloorsAtZero(t *testing.T) {
	b := domain.TaxBracket{LowerBound: dec("3000"), Rate: dec("0.10"), QuickDeduction: dec("210")}
	assertDecimal(t, "0", ApplyBracket(dec("100"), b), "floored")
	assertDecimal(t, "3790", ApplyBracket(dec("40000"), b), "40000 at 10%")
}
