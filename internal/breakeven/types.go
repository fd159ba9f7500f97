package breakeven

import (
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CrossoverRequest defines one scan of bonus amounts over a fixed salary
type CrossoverRequest struct {
	// SalaryTaxableIncome is the annual salary taxable income the bonus
	// would be stacked on under the combined method.
	SalaryTaxableIncome decimal.Decimal `json:"salary_taxable_income"`

	MinBonus decimal.Decimal `json:"min_bonus"`
	MaxBonus decimal.Decimal `json:"max_bonus"`

	// Step is the scan resolution. Recommendation flips closer together
	// than Step may be missed.
	Step decimal.Decimal `json:"step"`
}

// Crossover is a bonus amount at which the recommended method changes
type Crossover struct {
	// Bonus is the smallest amount, to Tolerance, with the new recommendation.
	Bonus          decimal.Decimal    `json:"bonus"`
	From           domain.BonusMethod `json:"from"`
	To             domain.BonusMethod `json:"to"`
	SeparateTax    decimal.Decimal    `json:"separate_tax"`
	IncrementalTax decimal.Decimal    `json:"incremental_tax"`
	Iterations     int                `json:"iterations"`
}

// CrossoverResult contains the results of one scan
type CrossoverResult struct {
	Request    CrossoverRequest `json:"request"`
	SalaryTax  decimal.Decimal  `json:"salary_tax"`
	Samples    int              `json:"samples"`
	Crossovers []Crossover      `json:"crossovers"`
}

// SweepResult contains scans across several salary levels
type SweepResult struct {
	Results []CrossoverResult `json:"results"`
	// Skipped lists salary levels whose scan failed, with the reason.
	Skipped map[string]string `json:"skipped,omitempty"`
}

// BonusTrap is an annual bonus range, under the separate method, where
// paying more leaves the employee with less after tax. It opens just above
// From, where the monthly equivalent crosses a bracket threshold, and
// closes at To, where the after-tax bonus recovers its value at From.
type BonusTrap struct {
	MonthlyThreshold decimal.Decimal `json:"monthly_threshold"`
	From             decimal.Decimal `json:"from"`
	To               decimal.Decimal `json:"to"`
	RateBelow        decimal.Decimal `json:"rate_below"`
	RateAbove        decimal.Decimal `json:"rate_above"`
	// TaxJump is the extra tax owed one step above From.
	TaxJump decimal.Decimal `json:"tax_jump"`
}

// Width is the size of the range.
func (t BonusTrap) Width() decimal.Decimal {
	return t.To.Sub(t.From)
}

// Contains reports whether bonus falls strictly inside the trap.
func (t BonusTrap) Contains(bonus decimal.Decimal) bool {
	return bonus.GreaterThan(t.From) && bonus.LessThan(t.To)
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Step          decimal.Decimal // Default scan resolution
	Tolerance     decimal.Decimal // Bisection stops when the bracket is this narrow
	MaxIterations int             // Bisection iteration cap per crossover
	MaxSamples    int             // Scan points allowed per request
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Step:          decimal.NewFromInt(100),
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 64,
		MaxSamples:    200_000,
	}
}

// Validate checks if the request is internally consistent
func (r *CrossoverRequest) Validate() error {
	if r.SalaryTaxableIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "salary_taxable_income must not be negative",
		}
	}
	if r.MinBonus.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min_bonus must not be negative",
		}
	}
	if !r.MaxBonus.GreaterThan(r.MinBonus) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max_bonus must be greater than min_bonus",
		}
	}
	if r.Step.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "step must not be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from the crossover solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
