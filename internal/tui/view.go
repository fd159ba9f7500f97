package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/rgehrsitz/iitgo/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneResult:
		content = m.renderResult()
	case SceneTraps:
		content = m.renderTraps()
	default:
		content = "Unknown scene"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Individual Income Tax")
	if m.engine != nil {
		meta := m.engine.Rules().Metadata
		title += HelpStyle.Render(fmt.Sprintf("  rules %s (%d)", meta.Version, meta.TaxYear))
	}
	return title + "\n"
}

func (m Model) renderStatusBar() string {
	var help string
	switch m.currentScene {
	case SceneForm:
		help = "tab/shift+tab move • enter calculate • ctrl+t bonus traps • esc quit"
	default:
		help = "esc back to form • ctrl+t bonus traps • ctrl+c quit"
	}
	if m.loading {
		help = "working… " + help
	}
	return "\n" + HelpStyle.Render(help)
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, f := range formFields {
		label := LabelStyle.Render(f.label)
		if i == m.focus {
			label = FocusedLabelStyle.Render(f.label)
		}
		b.WriteString(label + m.inputs[i].View() + "\n")
	}
	if m.formErr != nil {
		b.WriteString("\n" + ErrorStyle.Render(m.formErr.Error()))
	}
	return PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderResult() string {
	r := m.result
	if r == nil {
		return "No result yet."
	}

	line := func(label string, amount domain.MonetaryAmount) string {
		return LabelStyle.Render(label) + ValueStyle.Render(output.FormatMoney(amount.Decimal))
	}

	var income []string
	income = append(income, SubtitleStyle.Render("Tax by category"))
	for _, row := range output.CategoryRows(r) {
		income = append(income, line(row.Label, row.Tax))
	}
	income = append(income, "", SubtitleStyle.Render("Totals"))
	for _, item := range output.TotalItems(r) {
		income = append(income, line(item.Label, item.Amount))
	}

	deductions := []string{SubtitleStyle.Render("Deductions")}
	for _, item := range output.DeductionItems(r) {
		deductions = append(deductions, line(item.Label, item.Amount))
	}
	if r.Deductions.Clamped {
		deductions = append(deductions, HelpStyle.Render("limited to salary income"))
	}

	panels := []string{
		PanelStyle.Render(strings.Join(income, "\n")),
		PanelStyle.Render(strings.Join(deductions, "\n")),
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	if r.HasBonus() {
		bonus := []string{SubtitleStyle.Render("Annual bonus")}
		for _, item := range output.BonusItems(r) {
			bonus = append(bonus, line(item.Label, item.Amount))
		}
		bonus = append(bonus, "", HighlightStyle.Render(r.RecommendationText))
		view = lipgloss.JoinVertical(lipgloss.Left, view, PanelStyle.Render(strings.Join(bonus, "\n")))
	}
	return view
}

func (m Model) renderTraps() string {
	if len(m.traps) == 0 {
		return PanelStyle.Render("No bonus traps in the loaded table.")
	}
	lines := []string{
		SubtitleStyle.Render("Bonus ranges that net less than their lower end (separate method)"),
	}
	for _, t := range m.traps {
		lines = append(lines, fmt.Sprintf("%14s to %-14s  %s→%s  tax jump %s",
			output.FormatMoney(t.From), output.FormatMoney(t.To),
			output.FormatPercentage(t.RateBelow), output.FormatPercentage(t.RateAbove),
			output.FormatMoney(t.TaxJump)))
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderError() string {
	return ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + HelpStyle.Render("ctrl+c quit")
}
