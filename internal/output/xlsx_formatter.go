package output

import (
	"fmt"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	deductionSheet = "Deductions"
	bonusSheet     = "Bonus"

	// builtin number format #,##0.00
	moneyNumFmt = 4
)

// XLSXFormatter writes the result as an Excel workbook with one sheet per section.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	sw := &sheetWriter{f: f, money: money, bold: bold}

	sw.sheet = summarySheet
	sw.header("Category", "Income", "Taxable income", "Tax")
	for _, row := range CategoryRows(result) {
		sw.row(row.Label, row.Income, row.TaxableIncome, row.Tax)
	}
	for _, item := range TotalItems(result) {
		sw.row(item.Label, item.Amount)
	}

	if _, err := f.NewSheet(deductionSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	sw.sheet, sw.next = deductionSheet, 0
	sw.header("Deduction", "Amount")
	for _, item := range DeductionItems(result) {
		sw.row(item.Label, item.Amount)
	}

	if result.HasBonus() {
		if _, err := f.NewSheet(bonusSheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		sw.sheet, sw.next = bonusSheet, 0
		sw.header("Item", "Amount")
		for _, item := range BonusItems(result) {
			sw.row(item.Label, item.Amount)
		}
		sw.text("Recommendation", string(result.Recommendation))
		sw.text("Method applied", string(result.Method))
	}

	if sw.err != nil {
		return nil, sw.err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
	money int
	bold  int
	err   error
}

func (w *sheetWriter) cell(col int) string {
	name, err := excelize.CoordinatesToCellName(col, w.next)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col int, value interface{}, style int) {
	w.put(col, style, func(name string) error { return w.f.SetCellValue(w.sheet, name, value) })
}

// amount writes the exact decimal digits as a numeric cell.
func (w *sheetWriter) amount(col int, a domain.MonetaryAmount) {
	w.put(col, w.money, func(name string) error { return w.f.SetCellDefault(w.sheet, name, a.String()) })
}

func (w *sheetWriter) put(col, style int, write func(name string) error) {
	if w.err != nil {
		return
	}
	name := w.cell(col)
	if w.err != nil {
		return
	}
	if err := write(name); err != nil {
		w.err = fmt.Errorf("failed to set %s!%s: %w", w.sheet, name, err)
		return
	}
	if style != 0 {
		if err := w.f.SetCellStyle(w.sheet, name, name, style); err != nil {
			w.err = fmt.Errorf("failed to style %s!%s: %w", w.sheet, name, err)
		}
	}
}

func (w *sheetWriter) header(titles ...string) {
	w.next++
	for i, title := range titles {
		w.set(i+1, title, w.bold)
	}
}

func (w *sheetWriter) row(label string, amounts ...domain.MonetaryAmount) {
	w.next++
	w.set(1, label, 0)
	for i, a := range amounts {
		w.amount(i+2, a)
	}
}

func (w *sheetWriter) text(label, value string) {
	w.next++
	w.set(1, label, 0)
	w.set(2, value, 0)
}
