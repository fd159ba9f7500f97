package breakeven

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// SweepSalaries runs FindCrossovers for each salary taxable income over the
// same bonus range and collects the results in input order.
func (s *Solver) SweepSalaries(ctx context.Context, salaries []decimal.Decimal, base CrossoverRequest) (*SweepResult, error) {
	if len(salaries) == 0 {
		return nil, &BreakEvenError{
			Operation: "sweep_salaries",
			Message:   "no salary levels given",
		}
	}

	sweep := &SweepResult{}
	for _, salary := range salaries {
		req := base
		req.SalaryTaxableIncome = salary

		result, err := s.FindCrossovers(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// Keep going with the other levels
			if sweep.Skipped == nil {
				sweep.Skipped = make(map[string]string)
			}
			sweep.Skipped[salary.StringFixed(2)] = err.Error()
			continue
		}
		sweep.Results = append(sweep.Results, *result)
	}

	if len(sweep.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "sweep_salaries",
			Message:   "no salary level could be scanned",
		}
	}
	return sweep, nil
}
