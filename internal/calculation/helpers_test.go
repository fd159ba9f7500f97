package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/iitgo/internal/config"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules(t *testing.T) *domain.TaxRules {
	t.Helper()
	rules, err := config.DefaultRules()
	require.NoError(t, err)
	return rules
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testRules(t))
	require.NoError(t, err)
	return engine
}

func testTables(t *testing.T) *Tables {
	t.Helper()
	tables, err := NewTables(testRules(t).Tables)
	require.NoError(t, err)
	return tables
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amt(v any) domain.RawAmount {
	return domain.RawAmount(fmt.Sprint(v))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, what string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", what, want, got.String())
}

func assertMoney(t *testing.T, want string, got domain.MonetaryAmount, field string) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), field)
}

// TestLogger records messages for assertions.
type TestLogger struct {
	Messages []string
}

func (l *TestLogger) Debugf(format string, args ...interface{}) {
	l.Messages = append(l.Messages, "DEBUG: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...interface{}) {
	l.Messages = append(l.Messages, "INFO: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...interface{}) {
	l.Messages = append(l.Messages, "WARN: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...interface{}) {
	l.Messages = append(l.Messages, "ERROR: "+fmt.Sprintf(format, args...))
}
