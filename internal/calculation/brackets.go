package calculation

import (
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// BRACKET TABLE CONVENTIONS:
//
// 1. A value x falls in bracket i when lower[i] < x <= lower[i+1]; bracket 0
//    also takes x = 0. This is the statutory "exceeding A up to B" reading.
// 2. Tax on x is x*rate - quick_deduction of the matched bracket, floored at 0.
// 3. Quick deductions must make the table continuous at every boundary, so the
//    matching convention only matters when a bracket rate is applied to an
//    amount other than the one that selected it (the separate bonus method).

// BracketTable wraps a validated domain table with lookup helpers.
type BracketTable struct {
	Name     string
	Brackets []domain.TaxBracket
}

// NewBracketTable validates t and returns a lookup table.
func NewBracketTable(t domain.BracketTable) (*BracketTable, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	brackets := make([]domain.TaxBracket, len(t.Brackets))
	copy(brackets, t.Brackets)
	return &BracketTable{Name: t.Name, Brackets: brackets}, nil
}

// Lookup returns the bracket that x falls in.
func (t *BracketTable) Lookup(x decimal.Decimal) domain.TaxBracket {
	idx := 0
	for i := 1; i < len(t.Brackets); i++ {
		if x.GreaterThan(t.Brackets[i].LowerBound) {
			idx = i
			continue
		}
		break
	}
	return t.Brackets[idx]
}

// Progressive returns the tax on x under the table.
func (t *BracketTable) Progressive(x decimal.Decimal) decimal.Decimal {
	if !x.IsPositive() {
		return decimal.Zero
	}
	return ApplyBracket(x, t.Lookup(x))
}

// ApplyBracket computes amount*rate - quick_deduction, floored at zero.
func ApplyBracket(amount decimal.Decimal, b domain.TaxBracket) decimal.Decimal {
	tax := amount.Mul(b.Rate).Sub(b.QuickDeduction)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// Tables holds the three lookup tables the engine uses.
type Tables struct {
	Comprehensive *BracketTable
	BonusMonthly  *BracketTable
	Labor         *BracketTable
}

// NewTables validates and builds all tables from rules.
func NewTables(rules domain.BracketTables) (*Tables, error) {
	comprehensive, err := NewBracketTable(rules.Comprehensive)
	if err != nil {
		return nil, err
	}
	bonus, err := NewBracketTable(rules.BonusMonthly)
	if err != nil {
		return nil, err
	}
	labor, err := NewBracketTable(rules.Labor)
	if err != nil {
		return nil, err
	}
	return &Tables{Comprehensive: comprehensive, BonusMonthly: bonus, Labor: labor}, nil
}
