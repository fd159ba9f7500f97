package calculation

import (
	"github.com/rgehrsitz/iitgo/internal/domain"
)

// Logger is the logging surface the engine needs. *zap.SugaredLogger
// satisfies it.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Engine computes tax for a request. It holds only validated, read-only
// rules and may be shared between goroutines.
type Engine struct {
	rules      *domain.TaxRules
	tables     *Tables
	categories CategoryRegistry
	logger     Logger
}

// NewEngine validates rules and builds an engine over them.
func NewEngine(rules *domain.TaxRules) (*Engine, error) {
	if rules == nil {
		return nil, &domain.ConfigurationError{Message: "no tax rules"}
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	tables, err := NewTables(rules.Tables)
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:      rules,
		tables:     tables,
		categories: NewCategoryRegistry(tables, rules.Categories),
		logger:     NopLogger{},
	}, nil
}

// SetLogger replaces the engine's logger. Call before sharing the engine.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.logger = l
}

// Logger returns the engine's logger, never nil.
func (e *Engine) Logger() Logger {
	return e.logger
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() *domain.TaxRules {
	return e.rules
}

// Tables returns the validated lookup tables.
func (e *Engine) Tables() *Tables {
	return e.tables
}

// Compute validates req and returns the rounded result.
func (e *Engine) Compute(req domain.CalculationRequest) (*domain.CalculationResult, error) {
	in, err := Normalize(req, e.rules)
	if err != nil {
		e.logger.Debugf("rejected request: %v", err)
		return nil, err
	}
	c, err := e.ComputeNormalized(in)
	if err != nil {
		return nil, err
	}
	return Assemble(c), nil
}

// ComputeNormalized runs the pipeline on already normalized input and
// returns unrounded figures.
func (e *Engine) ComputeNormalized(in domain.NormalizedInput) (*Computation, error) {
	salaryIncome := in.Income(domain.CategorySalary)
	ded, err := AggregateDeductions(in.Deductions, salaryIncome, e.rules.Deductions)
	if err != nil {
		return nil, err
	}
	if ded.Clamped {
		e.logger.Debugf("deductions %s clamped to salary %s", ded.Uncapped.StringFixed(2), salaryIncome.StringFixed(2))
	}

	c := &Computation{
		Input:      in,
		Deductions: ded,
		Categories: make(map[domain.IncomeCategory]domain.CategoryResult, len(reportedCategories)),
	}
	for _, cat := range reportedCategories {
		ci := CategoryInput{Income: in.Income(cat)}
		if cat == domain.CategorySalary {
			ci.Deductions = ded.Total
		}
		r, err := e.categories.Calculate(cat, ci)
		if err != nil {
			return nil, err
		}
		c.Categories[cat] = r
	}

	salary := c.Categories[domain.CategorySalary]
	c.Bonus = CompareBonus(in.Income(domain.CategoryBonus), salary.TaxableIncome, salary.Tax, e.tables, e.rules.Deductions.MonthsPerYear)
	if c.Bonus != nil {
		c.BonusMethod = c.Bonus.Recommendation
		if in.ElectedBonusMethod != "" {
			c.BonusMethod = in.ElectedBonusMethod
		}
		e.logger.Debugf("bonus %s: separate %s, incremental %s, recommend %s",
			c.Bonus.Bonus.StringFixed(2), c.Bonus.SeparateTax.StringFixed(2),
			c.Bonus.IncrementalTax.StringFixed(2), c.Bonus.Recommendation)
	}
	return c, nil
}
