package output

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// CategoryRow is one income category line of a report.
type CategoryRow struct {
	Category      domain.IncomeCategory
	Label         string
	Income        domain.MonetaryAmount
	TaxableIncome domain.MonetaryAmount
	Tax           domain.MonetaryAmount
}

// LineItem is a labelled amount.
type LineItem struct {
	Key    string
	Label  string
	Amount domain.MonetaryAmount
}

var categoryLabels = map[domain.IncomeCategory]string{
	domain.CategorySalary:     "Salary",
	domain.CategoryBonus:      "Annual bonus",
	domain.CategoryLabor:      "Labor remuneration",
	domain.CategoryManuscript: "Manuscript fees",
	domain.CategoryLicense:    "Royalties",
}

// CategoryLabel returns a display name for c.
func CategoryLabel(c domain.IncomeCategory) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// CategoryRows lists salary, labor, manuscript and license results in that order.
func CategoryRows(r *domain.CalculationResult) []CategoryRow {
	row := func(c domain.IncomeCategory, income, taxable, tax domain.MonetaryAmount) CategoryRow {
		return CategoryRow{Category: c, Label: CategoryLabel(c), Income: income, TaxableIncome: taxable, Tax: tax}
	}
	return []CategoryRow{
		row(domain.CategorySalary, r.SalaryIncome, r.SalaryTaxableIncome, r.SalaryTax),
		row(domain.CategoryLabor, r.LaborIncome, r.LaborTaxableIncome, r.LaborTax),
		row(domain.CategoryManuscript, r.ManuscriptIncome, r.ManuscriptTaxableIncome, r.ManuscriptTax),
		row(domain.CategoryLicense, r.LicenseIncome, r.LicenseTaxableIncome, r.LicenseTax),
	}
}

// DeductionItems lists every deduction component followed by the total.
func DeductionItems(r *domain.CalculationResult) []LineItem {
	d := r.Deductions
	return []LineItem{
		{"standard", "Standard deduction", d.Standard},
		{"pension", "Pension insurance", d.Pension},
		{"medical", "Medical insurance", d.Medical},
		{"unemployment", "Unemployment insurance", d.Unemployment},
		{"housing_fund", "Housing provident fund", d.HousingFund},
		{"children_education", "Children's education", d.ChildrenEducation},
		{"continuing_education", "Continuing education", d.ContinuingEducation},
		{"housing_loan", "Housing loan interest", d.HousingLoan},
		{"housing_rent", "Housing rent", d.HousingRent},
		{"elderly_care", "Elderly care", d.ElderlyCare},
		{"total_deductions", "Total deductions", r.TotalDeductions},
	}
}

// BonusItems lists the bonus comparison amounts, or nil without a bonus.
func BonusItems(r *domain.CalculationResult) []LineItem {
	if !r.HasBonus() {
		return nil
	}
	b := r.BonusView
	return []LineItem{
		{"bonus", "Annual bonus", r.Bonus},
		{"bonus_separate_taxable_income", "Separate taxable income", b.SeparateTaxableIncome},
		{"bonus_separate_tax", "Separate tax", b.SeparateTax},
		{"bonus_combined_taxable_income", "Combined taxable income", b.CombinedTaxableIncome},
		{"bonus_combined_tax", "Combined tax", b.CombinedTax},
		{"bonus_combined_incremental_tax", "Combined incremental tax", b.IncrementalTax},
		{"bonus_tax_difference", "Difference", b.Difference},
	}
}

// TotalItems lists the overall totals.
func TotalItems(r *domain.CalculationResult) []LineItem {
	return []LineItem{
		{"total_income", "Total income", r.TotalIncome},
		{"total_tax", "Total tax", r.TotalTax},
		{"net_income", "Net income", r.NetIncome},
	}
}

// GenerateReport writes result to w in the named format.
func GenerateReport(w io.Writer, result *domain.CalculationResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// FormatCurrency formats an amount with the yuan sign and two decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return "¥" + amount.StringFixed(domain.MoneyPlaces)
}

// FormatMoney formats an amount with thousands separators, e.g. 31,080.00.
// Only the integer part goes through the printer, so cents stay exact.
func FormatMoney(amount decimal.Decimal) string {
	r := amount.Round(domain.MoneyPlaces)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	fixed := r.StringFixed(domain.MoneyPlaces)
	return sign + moneyPrinter.Sprintf("%d", r.IntPart()) + fixed[len(fixed)-domain.MoneyPlaces-1:]
}

// FormatPercentage formats a fractional rate as a percentage.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}
