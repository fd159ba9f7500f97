package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/iitgo/internal/breakeven"
	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/config"
	"github.com/rgehrsitz/iitgo/internal/domain"
)

// field is one form input and the request attribute it fills
type field struct {
	label       string
	placeholder string
	set         func(req *domain.CalculationRequest, value string)
}

var formFields = []field{
	{"Salary", "monthly amount", func(r *domain.CalculationRequest, v string) { r.Salary = domain.RawAmount(v) }},
	{"Salary type", "monthly | annual", func(r *domain.CalculationRequest, v string) { r.SalaryType = v }},
	{"Annual bonus", "0", func(r *domain.CalculationRequest, v string) { r.Bonus = domain.RawAmount(v) }},
	{"Bonus type", "annual | separate | combined", func(r *domain.CalculationRequest, v string) { r.BonusType = v }},
	{"Labor income", "0", func(r *domain.CalculationRequest, v string) { r.LaborIncome = domain.RawAmount(v) }},
	{"Manuscript income", "0", func(r *domain.CalculationRequest, v string) { r.ManuscriptIncome = domain.RawAmount(v) }},
	{"License income", "0", func(r *domain.CalculationRequest, v string) { r.LicenseIncome = domain.RawAmount(v) }},
	{"Social insurance base", "monthly base", func(r *domain.CalculationRequest, v string) { r.SocialSecurityBase = domain.RawAmount(v) }},
	{"Housing fund rate %", "5 - 12", func(r *domain.CalculationRequest, v string) { r.HousingFundRate = domain.RawAmount(v) }},
	{"Children education", "per month", func(r *domain.CalculationRequest, v string) { r.ChildrenEducation = domain.RawAmount(v) }},
	{"Continuing education", "per month", func(r *domain.CalculationRequest, v string) { r.ContinuingEducation = domain.RawAmount(v) }},
	{"Housing loan interest", "per month", func(r *domain.CalculationRequest, v string) { r.HousingLoan = domain.RawAmount(v) }},
	{"Housing rent", "per month", func(r *domain.CalculationRequest, v string) { r.HousingRent = domain.RawAmount(v) }},
	{"Elderly care", "per month", func(r *domain.CalculationRequest, v string) { r.ElderlyCare = domain.RawAmount(v) }},
}

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	rulesPath string
	engine    *calculation.Engine
	traps     []breakeven.BonusTrap

	inputs []textinput.Model
	focus  int

	result *domain.CalculationResult

	// err is a load failure; formErr is the last rejected submission
	err     error
	formErr error

	loading bool
}

// NewModel creates a new application model. An empty rulesPath uses the
// built-in tax rules.
func NewModel(rulesPath string) Model {
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.Width = 28
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		currentScene: SceneForm,
		rulesPath:    rulesPath,
		inputs:       inputs,
		width:        80,
		height:       24,
		loading:      true,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadEngineCmd(m.rulesPath))
}

// loadEngineCmd returns a command that loads the rules and builds the engine
func loadEngineCmd(path string) tea.Cmd {
	return func() tea.Msg {
		rules, err := config.LoadRules(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		engine, err := calculation.NewEngine(rules)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return EngineReadyMsg{
			Engine: engine,
			Traps:  breakeven.NewDefaultSolver(engine).BonusTraps(),
		}
	}
}

// calculateCmd returns a command that runs the engine on a request
func calculateCmd(engine *calculation.Engine, req domain.CalculationRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Compute(req)
		return CalculationCompleteMsg{Result: result, Err: err}
	}
}

// Request builds the calculation request from the current form values
func (m Model) Request() domain.CalculationRequest {
	var req domain.CalculationRequest
	for i, f := range formFields {
		f.set(&req, m.inputs[i].Value())
	}
	return req
}

// Result returns the last successful calculation, if any
func (m Model) Result() *domain.CalculationResult {
	return m.result
}

// Scene returns the scene currently shown
func (m Model) Scene() Scene {
	return m.currentScene
}
