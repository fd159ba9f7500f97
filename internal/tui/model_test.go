package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("")
	msg := loadEngineCmd("")()
	ready, ok := msg.(EngineReadyMsg)
	require.True(t, ok, "got %T", msg)
	updated, _ := m.Update(ready)
	return updated.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNewModel(t *testing.T) {
	m := NewModel("")
	assert.Equal(t, SceneForm, m.Scene())
	assert.True(t, m.loading)
	assert.Len(t, m.inputs, len(formFields))
	assert.True(t, m.inputs[0].Focused())
	assert.NotNil(t, m.Init())
}

func TestLoadEngine(t *testing.T) {
	m := readyModel(t)
	require.NotNil(t, m.engine)
	assert.False(t, m.loading)
	assert.Len(t, m.traps, 6)

	msg := loadEngineCmd("does-not-exist.yaml")()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)
	m, _ = send(t, NewModel("does-not-exist.yaml"), errMsg)
	assert.Contains(t, m.View(), "Error:")
}

func TestFocusNavigation(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, key(tea.KeyTab))
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m, _ = send(t, m, key(tea.KeyShiftTab))
	m, _ = send(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, len(formFields)-1, m.focus)
}

func TestRequestFromForm(t *testing.T) {
	m := readyModel(t)
	m.inputs[0].SetValue("20000")
	m.inputs[2].SetValue("36000")
	m.inputs[3].SetValue("combined")
	m.inputs[8].SetValue("12")
	m.inputs[13].SetValue("3000")

	req := m.Request()
	assert.Equal(t, domain.RawAmount("20000"), req.Salary)
	assert.Equal(t, domain.RawAmount("36000"), req.Bonus)
	assert.Equal(t, "combined", req.BonusType)
	assert.Equal(t, domain.RawAmount("12"), req.HousingFundRate)
	assert.Equal(t, domain.RawAmount("3000"), req.ElderlyCare)
	assert.True(t, req.LaborIncome.IsBlank())
}

func TestSubmit(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("300000")})
	m, _ = send(t, m, key(tea.KeyTab))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("annual")})
	assert.Equal(t, domain.RawAmount("300000"), m.Request().Salary)

	m, cmd := send(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	m, _ = send(t, m, cmd())
	assert.Equal(t, SceneResult, m.Scene())
	require.NotNil(t, m.Result())
	assert.Equal(t, "31080.00", m.Result().TotalTax.StringFixed(2))

	view := m.View()
	assert.Contains(t, view, "31,080.00")
	assert.Contains(t, view, "268,920.00")
	assert.NotContains(t, view, "Annual bonus")

	m, _ = send(t, m, key(tea.KeyEsc))
	assert.Equal(t, SceneForm, m.Scene())
}

func TestSubmit_InvalidInput(t *testing.T) {
	m := readyModel(t)
	m.inputs[0].SetValue("-5")

	m, cmd := send(t, m, key(tea.KeyEnter))
	m, _ = send(t, m, cmd())
	assert.Equal(t, SceneForm, m.Scene())
	require.Error(t, m.formErr)
	assert.Contains(t, m.View(), "salary")
	assert.Nil(t, m.Result())
}

func TestSubmit_BeforeEngineReady(t *testing.T) {
	m := NewModel("")
	_, cmd := send(t, m, key(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestTrapsScene(t *testing.T) {
	m := readyModel(t)

	m, _ = send(t, m, key(tea.KeyCtrlT))
	assert.Equal(t, SceneTraps, m.Scene())
	assert.Contains(t, m.View(), "38,566.67")
	assert.Contains(t, m.View(), "3%→10%")

	m, _ = send(t, m, key(tea.KeyEsc))
	assert.Equal(t, SceneForm, m.Scene())

	_, cmd := send(t, m, key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
