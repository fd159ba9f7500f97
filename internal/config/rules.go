package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/tax_rules.yaml
var defaultRulesYAML []byte

// DefaultRulesYAML returns the embedded rule file, e.g. for `iitgo rules`.
func DefaultRulesYAML() []byte {
	out := make([]byte, len(defaultRulesYAML))
	copy(out, defaultRulesYAML)
	return out
}

// DefaultRules parses and validates the embedded rules.
func DefaultRules() (*domain.TaxRules, error) {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded rules: %w", err)
	}
	return rules, nil
}

// LoadRules reads rules from path, or the embedded defaults when path is
// empty.
func LoadRules(path string) (*domain.TaxRules, error) {
	if path == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes YAML (or JSON) rules and validates them.
func ParseRules(data []byte) (*domain.TaxRules, error) {
	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, &domain.ConfigurationError{Message: "failed to parse YAML", Cause: err}
	}
	if rules.Deductions.HousingPolicy == "" {
		rules.Deductions.HousingPolicy = domain.HousingReject
	}
	if rules.Limits.MaxAmount.IsZero() && rules.Limits.MaxFractionDigits == 0 {
		rules.Limits = domain.DefaultInputLimits()
	}
	if err := ValidateRules(&rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// ValidateRules checks metadata and delegates table and rate checks to the
// rule set itself.
func ValidateRules(rules *domain.TaxRules) error {
	if rules.Metadata.Version == "" {
		return &domain.ConfigurationError{Table: "metadata", Message: "version is required"}
	}
	if rules.Metadata.TaxYear <= 0 {
		return &domain.ConfigurationError{Table: "metadata", Message: "tax_year is required"}
	}
	return rules.Validate()
}
