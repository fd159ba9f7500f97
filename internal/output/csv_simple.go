package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/iitgo/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per income category).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Category", "Income", "TaxableIncome", "Tax"}); err != nil {
		return nil, err
	}
	for _, row := range CategoryRows(result) {
		if err := w.Write([]string{
			string(row.Category),
			row.Income.StringFixed(domain.MoneyPlaces),
			row.TaxableIncome.StringFixed(domain.MoneyPlaces),
			row.Tax.StringFixed(domain.MoneyPlaces),
		}); err != nil {
			return nil, err
		}
	}
	if result.HasBonus() {
		if err := w.Write([]string{
			string(domain.CategoryBonus),
			result.Bonus.StringFixed(domain.MoneyPlaces),
			bonusTaxable(result).StringFixed(domain.MoneyPlaces),
			bonusTax(result).StringFixed(domain.MoneyPlaces),
		}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{
		"total",
		result.TotalIncome.StringFixed(domain.MoneyPlaces),
		"",
		result.TotalTax.StringFixed(domain.MoneyPlaces),
	}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes every reported field as a key,value row.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{{"Field", "Value"}}
	for _, row := range CategoryRows(result) {
		c := string(row.Category)
		rows = append(rows,
			[]string{c + "_income", row.Income.StringFixed(domain.MoneyPlaces)},
			[]string{c + "_taxable_income", row.TaxableIncome.StringFixed(domain.MoneyPlaces)},
			[]string{c + "_tax", row.Tax.StringFixed(domain.MoneyPlaces)},
		)
	}
	for _, item := range BonusItems(result) {
		rows = append(rows, []string{item.Key, item.Amount.StringFixed(domain.MoneyPlaces)})
	}
	if result.HasBonus() {
		rows = append(rows,
			[]string{"bonus_recommendation", string(result.Recommendation)},
			[]string{"bonus_method", string(result.Method)},
		)
	}
	for _, item := range DeductionItems(result) {
		rows = append(rows, []string{item.Key, item.Amount.StringFixed(domain.MoneyPlaces)})
	}
	for _, item := range TotalItems(result) {
		rows = append(rows, []string{item.Key, item.Amount.StringFixed(domain.MoneyPlaces)})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bonusTaxable is the bonus taxable income under the method actually used.
func bonusTaxable(r *domain.CalculationResult) domain.MonetaryAmount {
	if r.Method == domain.BonusCombined {
		return r.CombinedTaxableIncome
	}
	return r.SeparateTaxableIncome
}

func bonusTax(r *domain.CalculationResult) domain.MonetaryAmount {
	if r.Method == domain.BonusCombined {
		return r.IncrementalTax
	}
	return r.SeparateTax
}
