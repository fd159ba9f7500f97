package breakeven

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as plain console tables
type TableFormatter struct{}

// FormatCrossovers generates a table for one crossover scan
func (tf *TableFormatter) FormatCrossovers(result *CrossoverResult) string {
	var sb strings.Builder

	sb.WriteString("BONUS METHOD CROSSOVERS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Salary Taxable Income: %s\n", tf.formatCurrency(result.Request.SalaryTaxableIncome)))
	sb.WriteString(fmt.Sprintf("Salary Tax:            %s\n", tf.formatCurrency(result.SalaryTax)))
	sb.WriteString(fmt.Sprintf("Bonus Range:           %s - %s (step %s)\n",
		tf.formatCurrency(result.Request.MinBonus), tf.formatCurrency(result.Request.MaxBonus),
		result.Request.Step.String()))
	sb.WriteString(fmt.Sprintf("Samples:               %d\n\n", result.Samples))

	if len(result.Crossovers) == 0 {
		sb.WriteString("The recommendation does not change in this range.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%16s  %-9s  %-9s  %14s  %14s\n", "Bonus", "From", "To", "Separate Tax", "Combined Tax"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, c := range result.Crossovers {
		sb.WriteString(fmt.Sprintf("%16s  %-9s  %-9s  %14s  %14s\n",
			tf.formatCurrency(c.Bonus), c.From, c.To,
			tf.formatCurrency(c.SeparateTax), tf.formatCurrency(c.IncrementalTax)))
	}
	return sb.String()
}

// FormatSweep formats results from several salary levels
func (tf *TableFormatter) FormatSweep(result *SweepResult) string {
	var sb strings.Builder
	for i := range result.Results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(tf.FormatCrossovers(&result.Results[i]))
	}
	if len(result.Skipped) > 0 {
		sb.WriteString("\nSKIPPED\n")
		salaries := make([]string, 0, len(result.Skipped))
		for salary := range result.Skipped {
			salaries = append(salaries, salary)
		}
		sort.Strings(salaries)
		for _, salary := range salaries {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", salary, result.Skipped[salary]))
		}
	}
	return sb.String()
}

// FormatTraps generates a table of bonus traps
func (tf *TableFormatter) FormatTraps(traps []BonusTrap) string {
	var sb strings.Builder

	sb.WriteString("ANNUAL BONUS TRAPS (separate method)\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%14s  %16s  %16s  %11s  %12s\n", "Monthly Limit", "From (excl.)", "To (excl.)", "Rate", "Tax Jump"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, t := range traps {
		sb.WriteString(fmt.Sprintf("%14s  %16s  %16s  %11s  %12s\n",
			tf.formatCurrency(t.MonthlyThreshold),
			tf.formatCurrency(t.From),
			tf.formatCurrency(t.To),
			tf.formatPercent(t.RateBelow)+"→"+tf.formatPercent(t.RateAbove),
			tf.formatCurrency(t.TaxJump)))
	}
	sb.WriteString("\nA bonus inside a range nets less than a bonus at its lower end.\n")
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for any solver result
func (jf *JSONFormatter) Format(result interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}
