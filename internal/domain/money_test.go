package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawAmount_Parse(t *testing.T) {
	tests := []struct {
		name string
		raw  RawAmount
		want string
	}{
		{"blank", "  ", "0"},
		{"plain", "12000", "12000"},
		{"padded", " 3000.50 ", "3000.5"},
		{"exponent", "1.5e4", "15000"},
		{"largest exponent", "1e32", "1e32"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.raw.Parse("salary")
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestRawAmount_ParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawAmount
		message string
	}{
		{"garbage", "abc", "not a finite number"},
		{"huge exponent", "1e5000000", "out of range"},
		{"tiny exponent", "1e-5000000", "out of range"},
		{"just past exponent", "1e33", "out of range"},
		{"too long", RawAmount(strings.Repeat("9", MaxAmountLength+1)), "characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.raw.Parse("bonus")
			var inv *InvalidInputError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, "bonus", inv.Field)
			assert.Contains(t, inv.Message, tt.message)
		})
	}
}

func TestInputLimits_Validate(t *testing.T) {
	require.NoError(t, DefaultInputLimits().Validate())

	tests := []struct {
		name   string
		limits InputLimits
	}{
		{"zero max", InputLimits{MaxFractionDigits: 2}},
		{"max beyond parse range", InputLimits{MaxAmount: decimal.New(1, 40), MaxFractionDigits: 2}},
		{"negative digits", InputLimits{MaxAmount: decimal.NewFromInt(100), MaxFractionDigits: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfgErr *ConfigurationError
			require.ErrorAs(t, tt.limits.Validate(), &cfgErr)
			assert.Equal(t, "limits", cfgErr.Table)
		})
	}
}
