package transform

import (
	"testing"

	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "Test_Template", Description: "A test template"})

	got, ok := registry.Get("test_template")
	require.True(t, ok)
	assert.Equal(t, "Test_Template", got.Name)

	_, ok = registry.Get(" TEST_TEMPLATE ")
	assert.True(t, ok)

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates(decimal.NewFromInt(12))

	assert.Equal(t, []string{
		"bonus_combined",
		"bonus_separate",
		"claim_loan",
		"claim_rent",
		"continuing_education",
		"max_housing_fund",
		"no_housing_fund",
	}, registry.List())

	for _, name := range registry.List() {
		tmpl, ok := registry.Get(name)
		require.True(t, ok)
		assert.NotEmpty(t, tmpl.Transforms, name)
		assert.NotEmpty(t, tmpl.Description, name)
	}

	tmpl, _ := registry.Get("max_housing_fund")
	assert.Equal(t, "Contribute the maximum 12% to the housing fund", tmpl.Description)
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates(decimal.NewFromInt(12))

	tmpl, _ := registry.Get("no_housing_fund")
	out, err := ApplyTemplate(baseRequest(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, domain.RawAmount("0"), out.HousingFundRate)

	tmpl, _ = registry.Get("claim_loan")
	_, err = ApplyTemplate(baseRequest(), tmpl)
	assert.ErrorContains(t, err, "no housing_loan amount")

	out, err = ApplyTemplate(baseRequest(), Template{Name: "empty"})
	require.NoError(t, err)
	assert.Equal(t, *baseRequest(), *out)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"bonus_combined", "claim_rent"}, ParseTemplateList(" bonus_combined, ,claim_rent "))
}

func TestGetTemplateHelp(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))

	help := GetTemplateHelp(CreateBuiltInTemplates(decimal.NewFromInt(12)))
	assert.Contains(t, help, "Bonus:\n  bonus_combined")
	assert.Contains(t, help, "Housing:\n  claim_loan")
	assert.Contains(t, help, "Deductions:\n  continuing_education")
	assert.Contains(t, help, "iitgo compare")
}
