package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages named what-if scenarios.
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms.
type Template struct {
	Name        string
	Description string
	Transforms  []RequestTransform
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry.
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive).
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in sorted order.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with the common payroll what-ifs.
// maxHousingFundPercent is the statutory cap taken from the tax rules.
func CreateBuiltInTemplates(maxHousingFundPercent decimal.Decimal) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "bonus_separate",
		Description: "Tax the annual bonus separately",
		Transforms:  []RequestTransform{&ElectBonusMethod{Method: domain.BonusSeparate}},
	})
	registry.Register(Template{
		Name:        "bonus_combined",
		Description: "Fold the annual bonus into comprehensive income",
		Transforms:  []RequestTransform{&ElectBonusMethod{Method: domain.BonusCombined}},
	})
	registry.Register(Template{
		Name:        "max_housing_fund",
		Description: fmt.Sprintf("Contribute the maximum %s%% to the housing fund", maxHousingFundPercent.String()),
		Transforms:  []RequestTransform{&SetHousingFundRate{Percent: maxHousingFundPercent}},
	})
	registry.Register(Template{
		Name:        "no_housing_fund",
		Description: "Stop housing fund contributions",
		Transforms:  []RequestTransform{&SetHousingFundRate{Percent: decimal.Zero}},
	})
	registry.Register(Template{
		Name:        "claim_loan",
		Description: "Claim the housing loan interest deduction instead of rent",
		Transforms:  []RequestTransform{&ClaimHousing{Kind: HousingLoan}},
	})
	registry.Register(Template{
		Name:        "claim_rent",
		Description: "Claim the housing rent deduction instead of loan interest",
		Transforms:  []RequestTransform{&ClaimHousing{Kind: HousingRent}},
	})
	registry.Register(Template{
		Name:        "continuing_education",
		Description: "Claim the 400 per month continuing education deduction",
		Transforms: []RequestTransform{
			&SetDeduction{Field: "continuing_education", Monthly: decimal.NewFromInt(400)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base request.
func ApplyTemplate(base *domain.CalculationRequest, template Template) (*domain.CalculationRequest, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names.
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates.
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	categories := map[string][]Template{}
	order := []string{"Bonus", "Housing", "Deductions"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "bonus_"):
			categories["Bonus"] = append(categories["Bonus"], t)
		case strings.Contains(name, "housing") || strings.HasPrefix(name, "claim_"):
			categories["Housing"] = append(categories["Housing"], t)
		default:
			categories["Deductions"] = append(categories["Deductions"], t)
		}
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  iitgo compare request.yaml --with bonus_combined,max_housing_fund\n")
	sb.WriteString("  iitgo compare request.yaml --transform shift_bonus_to_salary:amount=6000\n")

	return sb.String()
}
