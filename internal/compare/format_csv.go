package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/iitgo/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Income",
		"Total Deductions",
		"Total Tax",
		"Net Income",
		"Bonus Method",
		"Tax Diff from Base",
		"Net Diff from Base",
		"Net % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalIncome.StringFixed(domain.MoneyPlaces),
		result.TotalDeductions.StringFixed(domain.MoneyPlaces),
		result.TotalTax.StringFixed(domain.MoneyPlaces),
		result.NetIncome.StringFixed(domain.MoneyPlaces),
		string(result.BonusMethod),
		result.TaxDiffFromBase.StringFixed(domain.MoneyPlaces),
		result.NetDiffFromBase.StringFixed(domain.MoneyPlaces),
		result.NetPctFromBase.StringFixed(2),
	}
}
