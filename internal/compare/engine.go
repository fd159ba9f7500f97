package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/rgehrsitz/iitgo/internal/transform"
	"github.com/shopspring/decimal"
)

// DefaultBaseName labels the unmodified request.
const DefaultBaseName = "base"

// CompareEngine orchestrates what-if comparisons of one request.
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a comparison engine whose built-in templates
// follow the engine's rules.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	maxFund := calcEngine.Rules().Deductions.HousingFundMaxRate.Mul(decimal.NewFromInt(100))
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(maxFund),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the unmodified request
	Templates        []string // Template names, one scenario each
	Transforms       []string // Transform specs, one scenario each
}

// Compare computes base and one alternative per template or transform spec.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.CalculationRequest,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = DefaultBaseName
	}

	alternatives := make([]NamedRequest, 0, len(options.Templates)+len(options.Transforms))

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		modified, err := transform.ApplyTemplate(&base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		alternatives = append(alternatives, NamedRequest{
			Name:        template.Name,
			Description: template.Description,
			Request:     *modified,
		})
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(&base, []transform.RequestTransform{t})
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, NamedRequest{
			Name:        spec,
			Description: t.Description(),
			Request:     *modified,
		})
	}

	return ce.CompareRequests(ctx, NamedRequest{Name: baseName, Request: base}, alternatives)
}

// CompareRequests compares explicit requests (not using templates).
func (ce *CompareEngine) CompareRequests(
	ctx context.Context,
	base NamedRequest,
	alternatives []NamedRequest,
) (*ComparisonSet, error) {
	logger := ce.CalcEngine.Logger()

	baseCalc, err := ce.CalcEngine.Compute(base.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base, baseCalc)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		altCalc, err := ce.CalcEngine.Compute(alt.Request)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(alt, altCalc)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		logger.Debugf("scenario %s: tax %s (%s vs %s)", alt.Name,
			altResult.TotalTax.StringFixed(2), altResult.TaxDiffFromBase.StringFixed(2), base.Name)

		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		RulesVersion:       ce.CalcEngine.Rules().Metadata.Version,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
