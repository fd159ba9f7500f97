package compare

import (
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one computed what-if scenario with its headline metrics.
type ComparisonResult struct {
	ScenarioName string                     `json:"scenario_name"`
	Description  string                     `json:"description,omitempty"`
	Request      *domain.CalculationRequest `json:"request"`
	Result       *domain.CalculationResult  `json:"result"`

	TotalIncome     decimal.Decimal    `json:"total_income"`
	TotalDeductions decimal.Decimal    `json:"total_deductions"`
	TotalTax        decimal.Decimal    `json:"total_tax"`
	NetIncome       decimal.Decimal    `json:"net_income"`
	BonusMethod     domain.BonusMethod `json:"bonus_method,omitempty"`

	// Differences against the base scenario; zero for the base itself.
	TaxDiffFromBase decimal.Decimal `json:"tax_diff_from_base"`
	NetDiffFromBase decimal.Decimal `json:"net_diff_from_base"`
	NetPctFromBase  decimal.Decimal `json:"net_pct_from_base"`
}

// ComparisonSet is a base scenario plus its alternatives.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	RulesVersion       string             `json:"rules_version,omitempty"`
}

// NamedRequest is a request to be compared under a display name.
type NamedRequest struct {
	Name        string
	Description string
	Request     domain.CalculationRequest
}

// MetricsCalculator extracts comparison metrics from calculation results.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds the comparison row for one computed scenario.
func (mc *MetricsCalculator) CalculateMetrics(named NamedRequest, result *domain.CalculationResult) ComparisonResult {
	req := named.Request
	cr := ComparisonResult{
		ScenarioName:    named.Name,
		Description:     named.Description,
		Request:         &req,
		Result:          result,
		TotalIncome:     result.TotalIncome.Decimal,
		TotalDeductions: result.TotalDeductions.Decimal,
		TotalTax:        result.TotalTax.Decimal,
		NetIncome:       result.NetIncome.Decimal,
	}
	if result.HasBonus() {
		cr.BonusMethod = result.Method
	}
	return cr
}

// CalculateComparison fills in the differences of scenario against base.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)
	scenario.NetDiffFromBase = scenario.NetIncome.Sub(base.NetIncome)
	if !base.NetIncome.IsZero() {
		scenario.NetPctFromBase = scenario.NetDiffFromBase.
			Div(base.NetIncome).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return scenario
}

// GenerateRecommendations names the alternatives that beat the base.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.TotalTax.Sub(lowestTax.TotalTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ScenarioName+" saves ¥"+savings.StringFixed(2)+" in tax")
	}

	bestNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetIncome.GreaterThan(bestNet.NetIncome) {
			bestNet = alt
		}
	}
	if bestNet != compSet.BaseResult {
		gain := bestNet.NetIncome.Sub(compSet.BaseResult.NetIncome)
		recommendations = append(recommendations,
			"Highest Take-Home: "+bestNet.ScenarioName+" adds ¥"+gain.StringFixed(2)+" of net income")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"No alternative improves on "+compSet.BaseScenarioName)
	}

	return recommendations
}
