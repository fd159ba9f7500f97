package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds where the bonus recommendation changes
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new crossover solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// FindCrossovers scans bonus amounts in [MinBonus, MaxBonus] and bisects
// every change of recommendation down to Options.Tolerance.
func (s *Solver) FindCrossovers(ctx context.Context, req CrossoverRequest) (*CrossoverResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Step.IsZero() {
		req.Step = s.Options.Step
	}
	tol := s.Options.Tolerance
	if !tol.IsPositive() {
		tol = decimal.NewFromFloat(0.01)
	}

	samples := req.MaxBonus.Sub(req.MinBonus).Div(req.Step).Ceil().IntPart() + 1
	if s.Options.MaxSamples > 0 && samples > int64(s.Options.MaxSamples) {
		return nil, &BreakEvenError{
			Operation: "find_crossovers",
			Message:   fmt.Sprintf("scan needs %d samples, limit is %d; raise step", samples, s.Options.MaxSamples),
		}
	}

	tables := s.Engine.Tables()
	months := s.Engine.Rules().Deductions.MonthsPerYear
	salaryTax := tables.Comprehensive.Progressive(req.SalaryTaxableIncome)
	compare := func(bonus decimal.Decimal) *domain.BonusComparison {
		return calculation.CompareBonus(bonus, req.SalaryTaxableIncome, salaryTax, tables, months)
	}

	// A zero bonus has no comparison; start one tolerance above it.
	start := req.MinBonus
	if !start.IsPositive() {
		start = tol
	}

	result := &CrossoverResult{Request: req, SalaryTax: salaryTax}
	prevBonus := start
	prev := compare(prevBonus).Recommendation
	result.Samples = 1

	for next := start.Add(req.Step); ; next = next.Add(req.Step) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if next.GreaterThan(req.MaxBonus) {
			next = req.MaxBonus
		}
		cur := compare(next).Recommendation
		result.Samples++

		if cur != prev {
			c, err := s.bisect(ctx, compare, prevBonus, next, prev, tol)
			if err != nil {
				return nil, err
			}
			result.Crossovers = append(result.Crossovers, *c)
			prev = cur
		}
		prevBonus = next

		if !next.LessThan(req.MaxBonus) {
			break
		}
	}

	s.log().Debugf("crossover scan over salary taxable %s: %d samples, %d crossovers",
		req.SalaryTaxableIncome.StringFixed(2), result.Samples, len(result.Crossovers))
	return result, nil
}

// bisect narrows [lo, hi] where lo recommends from and hi does not. The
// returned Bonus is the upper end, the first cent with the new method.
func (s *Solver) bisect(ctx context.Context, compare func(decimal.Decimal) *domain.BonusComparison,
	lo, hi decimal.Decimal, from domain.BonusMethod, tol decimal.Decimal) (*Crossover, error) {

	two := decimal.NewFromInt(2)
	iterations := 0
	for hi.Sub(lo).GreaterThan(tol) && iterations < s.Options.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).RoundFloor(2)
		if !mid.GreaterThan(lo) || !mid.LessThan(hi) {
			break
		}
		if compare(mid).Recommendation == from {
			lo = mid
		} else {
			hi = mid
		}
	}

	at := compare(hi)
	return &Crossover{
		Bonus:          hi,
		From:           from,
		To:             at.Recommendation,
		SeparateTax:    at.SeparateTax,
		IncrementalTax: at.IncrementalTax,
		Iterations:     iterations,
	}, nil
}

func (s *Solver) log() calculation.Logger {
	if s.Engine == nil {
		return calculation.NopLogger{}
	}
	return s.Engine.Logger()
}
