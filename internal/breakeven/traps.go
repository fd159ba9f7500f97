package breakeven

import (
	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/shopspring/decimal"
)

// BonusTraps lists, for every threshold of the monthly bonus table, the
// annual bonus range in which the separate method leaves less after tax
// than a bonus exactly at the threshold.
//
// At the threshold b0 = months*T the lower bracket applies and the after-tax
// bonus is b0*(1-r_lo) + qd_lo. Above it the whole bonus moves to the upper
// bracket, and the after-tax bonus b*(1-r_hi) + qd_hi only catches up at
//
//	B = (b0*(1-r_lo) + qd_lo - qd_hi) / (1-r_hi)
func BonusTraps(table *calculation.BracketTable, monthsPerYear int) []BonusTrap {
	months := decimal.NewFromInt(int64(monthsPerYear))
	one := decimal.NewFromInt(1)

	var traps []BonusTrap
	for i := 1; i < len(table.Brackets); i++ {
		lo, hi := table.Brackets[i-1], table.Brackets[i]
		keepHi := one.Sub(hi.Rate)
		if !keepHi.IsPositive() {
			// a 100% bracket never recovers
			continue
		}

		b0 := hi.LowerBound.Mul(months)
		afterTaxAtB0 := b0.Mul(one.Sub(lo.Rate)).Add(lo.QuickDeduction)
		upper := afterTaxAtB0.Sub(hi.QuickDeduction).Div(keepHi)
		if !upper.GreaterThan(b0) {
			continue
		}

		jump := calculation.ApplyBracket(b0, hi).Sub(calculation.ApplyBracket(b0, lo))
		traps = append(traps, BonusTrap{
			MonthlyThreshold: hi.LowerBound,
			From:             b0,
			To:               upper,
			RateBelow:        lo.Rate,
			RateAbove:        hi.Rate,
			TaxJump:          jump,
		})
	}
	return traps
}

// BonusTraps returns the traps of the engine's monthly bonus table.
func (s *Solver) BonusTraps() []BonusTrap {
	return BonusTraps(s.Engine.Tables().BonusMonthly, s.Engine.Rules().Deductions.MonthsPerYear)
}

// TrapFor returns the trap containing bonus, if any.
func TrapFor(traps []BonusTrap, bonus decimal.Decimal) (BonusTrap, bool) {
	for _, t := range traps {
		if t.Contains(bonus) {
			return t, true
		}
	}
	return BonusTrap{}, false
}
