package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/iitgo/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle   = lipgloss.NewStyle().Width(28)
	amountStyle  = lipgloss.NewStyle().Width(16).Align(lipgloss.Right)
	totalStyle   = lipgloss.NewStyle().Bold(true)
	noteStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5A5A5A")).
			Padding(0, 1)
)

// ConsoleVerboseFormatter renders the detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, headingStyle.Render("INDIVIDUAL INCOME TAX CALCULATION"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, boxStyle.Render(categoryTable(result)))
	fmt.Fprintln(&buf)

	if result.HasBonus() {
		fmt.Fprintln(&buf, headingStyle.Render("ANNUAL BONUS"))
		fmt.Fprintln(&buf, boxStyle.Render(itemTable(BonusItems(result), "")))
		fmt.Fprintf(&buf, "Recommended: %s (applied: %s)\n", result.Recommendation, result.Method)
		if result.RecommendationText != "" {
			fmt.Fprintln(&buf, noteStyle.Render(result.RecommendationText))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, headingStyle.Render("DEDUCTIONS"))
	fmt.Fprintln(&buf, boxStyle.Render(itemTable(DeductionItems(result), "total_deductions")))
	if result.Deductions.Clamped {
		fmt.Fprintln(&buf, noteStyle.Render("Deductions were limited to the salary income."))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headingStyle.Render("TOTALS"))
	fmt.Fprintln(&buf, boxStyle.Render(itemTable(TotalItems(result), "net_income")))
	return buf.Bytes(), nil
}

func categoryTable(r *domain.CalculationResult) string {
	cell := func(s string) string { return amountStyle.Render(s) }
	lines := []string{
		totalStyle.Render(labelStyle.Render("Category") + cell("Income") + cell("Taxable") + cell("Tax")),
	}
	for _, row := range CategoryRows(r) {
		lines = append(lines, labelStyle.Render(row.Label)+
			cell(FormatMoney(row.Income.Decimal))+
			cell(FormatMoney(row.TaxableIncome.Decimal))+
			cell(FormatMoney(row.Tax.Decimal)))
	}
	return strings.Join(lines, "\n")
}

func itemTable(items []LineItem, emphasize string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := labelStyle.Render(item.Label) + amountStyle.Render(FormatMoney(item.Amount.Decimal))
		if item.Key == emphasize {
			line = totalStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ConsoleFormatter renders a short plain-text summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INCOME TAX SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	for _, row := range CategoryRows(result) {
		if row.Income.IsZero() {
			continue
		}
		fmt.Fprintf(&buf, "%-22s %s\n", row.Label+" tax:", FormatCurrency(row.Tax.Decimal))
	}
	if result.HasBonus() {
		fmt.Fprintf(&buf, "%-22s %s (%s)\n", "Annual bonus tax:", FormatCurrency(bonusTax(result).Decimal), result.Method)
		fmt.Fprintf(&buf, "Recommended: %s, saves %s\n", result.Recommendation, FormatCurrency(result.Difference.Decimal))
	}
	fmt.Fprintf(&buf, "%-22s %s\n", "Total income:", FormatCurrency(result.TotalIncome.Decimal))
	fmt.Fprintf(&buf, "%-22s %s\n", "Total tax:", FormatCurrency(result.TotalTax.Decimal))
	fmt.Fprintf(&buf, "%-22s %s\n", "Net income:", FormatCurrency(result.NetIncome.Decimal))
	return buf.Bytes(), nil
}
