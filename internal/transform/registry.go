package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for the CLI.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RequestTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("elect_bonus_method", createElectBonusMethod)
	registry.Register("shift_bonus_to_salary", createShiftBonusToSalary)
	registry.Register("set_housing_fund_rate", createSetHousingFundRate)
	registry.Register("set_deduction", createSetDeduction)
	registry.Register("claim_housing", createClaimHousing)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RequestTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:param1=value1,param2=value2",
// e.g. "set_deduction:field=housing_rent,amount=1500".
func (r *TransformRegistry) ParseTransformSpec(spec string) (RequestTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := domain.RawAmount(s).Parse(key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createElectBonusMethod(params map[string]string) (RequestTransform, error) {
	method, ok := params["method"]
	if !ok {
		return nil, fmt.Errorf("elect_bonus_method requires 'method' parameter")
	}
	return &ElectBonusMethod{Method: domain.BonusMethod(strings.ToLower(method))}, nil
}

func createShiftBonusToSalary(params map[string]string) (RequestTransform, error) {
	amount, err := requireDecimal("shift_bonus_to_salary", "amount", params)
	if err != nil {
		return nil, err
	}
	return &ShiftBonusToSalary{Amount: amount}, nil
}

func createSetHousingFundRate(params map[string]string) (RequestTransform, error) {
	rate, err := requireDecimal("set_housing_fund_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetHousingFundRate{Percent: rate}, nil
}

func createSetDeduction(params map[string]string) (RequestTransform, error) {
	field, ok := params["field"]
	if !ok {
		return nil, fmt.Errorf("set_deduction requires 'field' parameter")
	}
	amount, err := requireDecimal("set_deduction", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetDeduction{Field: field, Monthly: amount}, nil
}

func createClaimHousing(params map[string]string) (RequestTransform, error) {
	kind, ok := params["kind"]
	if !ok {
		return nil, fmt.Errorf("claim_housing requires 'kind' parameter")
	}
	return &ClaimHousing{Kind: strings.ToLower(kind)}, nil
}
