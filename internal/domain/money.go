package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MoneyPlaces is the number of fractional digits reported for every amount.
const MoneyPlaces = 2

// MonetaryAmount is a non-negative CNY amount as reported to callers.
// It encodes to JSON as a bare number with two fractional digits so the
// form can call toFixed on it directly.
type MonetaryAmount struct {
	decimal.Decimal
}

// NewMonetaryAmount rounds d to MoneyPlaces and wraps it.
func NewMonetaryAmount(d decimal.Decimal) MonetaryAmount {
	return MonetaryAmount{Decimal: d.Round(MoneyPlaces)}
}

// MarshalJSON writes the amount as a JSON number, e.g. 31080.00.
func (m MonetaryAmount) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(MoneyPlaces)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal.
func (m *MonetaryAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid monetary amount %q: %w", s, err)
	}
	m.Decimal = d
	return nil
}

// MarshalYAML writes the amount as a fixed two-place string.
func (m MonetaryAmount) MarshalYAML() (interface{}, error) {
	return m.StringFixed(MoneyPlaces), nil
}

// RawAmount is a numeric form field exactly as the caller sent it.
// Parsing and range checks happen in the normalizer so that every
// problem is reported as an InvalidInputError naming the field.
type RawAmount string

// UnmarshalJSON keeps the textual form of numbers and strings; null is blank.
func (r *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawAmount(strings.TrimSpace(s))
		return nil
	}
	*r = RawAmount(data)
	return nil
}

// UnmarshalYAML keeps the scalar text.
func (r *RawAmount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar amount", node.Line)
	}
	if node.Tag == "!!null" {
		*r = ""
		return nil
	}
	*r = RawAmount(strings.TrimSpace(node.Value))
	return nil
}

// IsBlank reports whether the field was absent or empty.
func (r RawAmount) IsBlank() bool {
	return strings.TrimSpace(string(r)) == ""
}

// Bounds on the textual form of an amount. They keep the coefficient and
// exponent small so that no later arithmetic works on huge integers.
const (
	MaxAmountLength   = 40
	MaxAmountExponent = 32
)

// Parse converts r to a decimal, reporting problems against field. Blank is
// zero. Only the shape of the number is checked here; range and precision
// limits belong to the tax rules.
func (r RawAmount) Parse(field string) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return decimal.Zero, nil
	}
	if len(s) > MaxAmountLength {
		return decimal.Zero, NewInvalidInput(field, "more than %d characters", MaxAmountLength)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidInputError{Field: field, Message: "not a finite number: " + s}
	}
	if exp := d.Exponent(); exp > MaxAmountExponent || exp < -MaxAmountExponent {
		return decimal.Zero, NewInvalidInput(field, "%s is out of range", s)
	}
	return d, nil
}

// AmountOf is a small helper for building requests in code.
func AmountOf(d decimal.Decimal) RawAmount {
	return RawAmount(d.String())
}
