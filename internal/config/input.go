package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	req, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return req, nil
}

// Parse decodes a request. JSON is valid YAML, so one decoder serves both.
func (ip *InputParser) Parse(data []byte) (*domain.CalculationRequest, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("request is empty")
	}
	var req domain.CalculationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if err := ip.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	return &req, nil
}

// ValidateRequest performs the structural checks that do not need rules.
// Amount checks happen in the normalizer.
func (ip *InputParser) ValidateRequest(req *domain.CalculationRequest) error {
	switch strings.ToLower(req.SalaryType) {
	case "", string(domain.PeriodMonthly), string(domain.PeriodAnnual):
	default:
		return domain.NewInvalidInput("salary_type", "unknown value %q", req.SalaryType)
	}
	switch strings.ToLower(req.BonusType) {
	case "", string(domain.PeriodMonthly), string(domain.PeriodAnnual),
		string(domain.BonusSeparate), string(domain.BonusCombined):
	default:
		return domain.NewInvalidInput("bonus_type", "unknown value %q", req.BonusType)
	}
	return nil
}

// LoadRequest is a convenience wrapper around InputParser.LoadFromFile.
func LoadRequest(filename string) (*domain.CalculationRequest, error) {
	return NewInputParser().LoadFromFile(filename)
}
