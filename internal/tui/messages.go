package tui

import (
	"github.com/rgehrsitz/iitgo/internal/breakeven"
	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResult
	SceneTraps
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Form"
	case SceneResult:
		return "Result"
	case SceneTraps:
		return "Bonus traps"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// EngineReadyMsg signals the rules are loaded and the engine is built
type EngineReadyMsg struct {
	Engine *calculation.Engine
	Traps  []breakeven.BonusTrap
}

// CalculationCompleteMsg carries the outcome of one form submission
type CalculationCompleteMsg struct {
	Result *domain.CalculationResult
	Err    error
}
