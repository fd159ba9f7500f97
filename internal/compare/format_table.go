package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/iitgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

const (
	tableWidth = 84
	nameWidth  = 26
	numWidth   = 14
)

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.RulesVersion != "" {
		sb.WriteString(fmt.Sprintf("Tax Rules: %s\n", compSet.RulesVersion))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %10s\n",
		nameWidth, "Scenario",
		numWidth, "Deductions",
		numWidth, "Total Tax",
		numWidth, "Net Income",
		"Bonus"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], false))
		}
	}

	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Tax:         %s¥%s\n",
				tf.deltaSymbol(alt.TaxDiffFromBase),
				output.FormatMoney(alt.TaxDiffFromBase.Abs())))
			sb.WriteString(fmt.Sprintf("  Net Income:  %s¥%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				output.FormatMoney(alt.NetDiffFromBase.Abs()),
				alt.NetPctFromBase.StringFixed(2)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}
	method := string(result.BonusMethod)
	if method == "" {
		method = "-"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %10s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatMoney(result.TotalDeductions),
		numWidth, output.FormatMoney(result.TotalTax),
		numWidth, output.FormatMoney(result.NetIncome),
		method)
}

// deltaSymbol returns the sign prefix for a difference.
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+"
	case delta.IsNegative():
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of tax changes.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s ¥%s", compSet.BaseScenarioName,
		output.FormatMoney(compSet.BaseResult.TotalTax)))

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.TaxDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.TaxDiffFromBase) + "¥" + output.FormatMoney(alt.TaxDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
