package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case EngineReadyMsg:
		m.loading = false
		m.engine = msg.Engine
		m.traps = msg.Traps
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.formErr = msg.Err
			m.currentScene = SceneForm
			return m, nil
		}
		m.formErr = nil
		m.result = msg.Result
		m.currentScene = SceneResult
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.currentScene == SceneForm {
			return m, tea.Quit
		}
		m.currentScene = SceneForm
		return m, nil

	case "ctrl+t":
		m.currentScene = SceneTraps
		return m, nil
	}

	if m.currentScene != SceneForm {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1)

	case "shift+tab", "up":
		return m.moveFocus(-1)

	case "enter":
		if m.engine == nil {
			return m, nil
		}
		m.loading = true
		return m, calculateCmd(m.engine, m.Request())
	}

	return m.updateFocusedInput(msg)
}

// moveFocus moves the cursor by delta fields, wrapping around
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	return m, m.inputs[m.focus].Focus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
