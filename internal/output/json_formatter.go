package output

import (
	"encoding/json"

	"github.com/rgehrsitz/iitgo/internal/domain"
)

// JSONFormatter writes the result in the /calculate wire form, indented.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
