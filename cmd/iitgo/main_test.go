package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "iitgo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"calculate", "validate", "rules", "traps", "crossover", "compare", "serve", "version"} {
		assert.Contains(t, names, want)
	}

	out, err := run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "iitgo dev")
}

func TestCalculateCommand(t *testing.T) {
	request := writeFile(t, "request.yaml", "salary: 300000\nsalary_type: annual\n")

	out, err := run(t, "", "calculate", request, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"salary_tax": 31080.00`)
	assert.Contains(t, out, `"net_income": 268920.00`)

	out, err = run(t, "", "calculate", request, "-f", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "¥31080.00")
}

func TestCalculateCommand_Stdin(t *testing.T) {
	out, err := run(t, `{"labor_income": "3000", "manuscript_income": 10000}`, "calculate", "-", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "labor,3000.00,2200.00,440.00")
	assert.Contains(t, out, "manuscript,10000.00,5600.00,1120.00")
}

func TestCalculateCommand_Errors(t *testing.T) {
	request := writeFile(t, "request.yaml", "salary: 1000\n")

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"negative amount", `{"salary": "-1"}`, []string{"calculate", "-"}, "salary"},
		{"unknown bonus type", `{"bonus_type": "weekly"}`, []string{"calculate", "-"}, "bonus_type"},
		{"missing file", "", []string{"calculate", "nope.yaml"}, "failed to read request"},
		{"unknown format", "", []string{"calculate", request, "-f", "pdf"}, "unsupported format"},
		{"xlsx to stdout", "", []string{"calculate", request, "-f", "xlsx"}, "needs --out"},
		{"bad rules", "", []string{"calculate", request, "--rules", "missing-rules.yaml"}, "missing-rules.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCalculateCommand_OutFile(t *testing.T) {
	request := writeFile(t, "request.yaml", "salary: 20000\nbonus: 36000\n")
	outPath := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := run(t, "", "calculate", request, "-f", "xlsx", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip archive")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Tax rules 2019.1 (tax year 2019) are valid")

	request := writeFile(t, "request.json", `{"salary": "20000", "housing_loan": "1000", "housing_rent": "1500"}`)
	_, err = run(t, "", "validate", request)
	require.Error(t, err, "loan and rent together are rejected by default")

	request = writeFile(t, "ok.json", `{"salary": "20000"}`)
	out, err = run(t, "", "validate", request)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "bonus_monthly:")
	assert.Contains(t, out, "version: \"2019.1\"")
}

func TestTrapsCommand(t *testing.T) {
	out, err := run(t, "", "traps")
	require.NoError(t, err)
	assert.Contains(t, out, "ANNUAL BONUS TRAPS")
	assert.Contains(t, out, "38566.67")

	out, err = run(t, "", "traps", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"monthly_threshold": "3000"`)

	_, err = run(t, "", "traps", "-f", "xml")
	assert.Error(t, err)
}

func TestCrossoverCommand(t *testing.T) {
	out, err := run(t, "", "crossover", "--max", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, "36000.01")

	out, err = run(t, "", "crossover", "--max", "400000", "--step", "1000", "--sweep", "0, 240000")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "BONUS METHOD CROSSOVERS"))

	_, err = run(t, "", "crossover", "--max", "abc")
	assert.ErrorContains(t, err, "--max")

	_, err = run(t, "", "crossover", "--max", "1e5000000")
	assert.ErrorContains(t, err, "out of range")

	_, err = run(t, "", "crossover", "--sweep", "0,1e-5000000")
	assert.ErrorContains(t, err, "out of range")

	_, err = run(t, "", "crossover", "--min", "100", "--max", "50")
	assert.ErrorContains(t, err, "max_bonus")
}

func TestCompareCommand(t *testing.T) {
	request := writeFile(t, "request.yaml", `salary: 20000
salary_type: monthly
bonus: 36000
bonus_type: annual
social_security_base: 10000
housing_fund_rate: 12
children_education: 2000
elderly_care: 3000
housing_rent: 1500
`)

	out, err := run(t, "", "compare", request, "--with", "bonus_combined,continuing_education")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX SCENARIO COMPARISON")
	assert.Contains(t, out, "Lowest Tax: continuing_education saves ¥480.00 in tax")

	out, err = run(t, "", "compare", request, "--transform", "shift_bonus_to_salary:amount=6000", "-f", "compact")
	require.NoError(t, err)
	assert.Equal(t, "Base: base ¥6,060.00 | shift_bonus_to_salary:amount=6000: +¥420.00\n", out)

	out, err = run(t, "", "compare", request, "--with", "bonus_combined", "-f", "csv", "--base-name", "payroll")
	require.NoError(t, err)
	assert.Contains(t, out, "payroll,base,276000.00")

	out, err = run(t, "", "compare", request, "--with", "bonus_combined", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"scenario_name": "bonus_combined"`)
}

func TestCompareCommand_Templates(t *testing.T) {
	out, err := run(t, "", "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates:")
	assert.Contains(t, out, "max_housing_fund")
	assert.Contains(t, out, "Contribute the maximum 12% to the housing fund")
}

func TestCompareCommand_Errors(t *testing.T) {
	request := writeFile(t, "request.yaml", "salary: 20000\nbonus: 36000\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no file", []string{"compare"}, "needs a request file"},
		{"nothing to compare", []string{"compare", request}, "nothing to compare"},
		{"unknown template", []string{"compare", request, "--with", "retire_early"}, "template retire_early not found"},
		{"bad format", []string{"compare", request, "--with", "bonus_combined", "-f", "xml"}, "unsupported format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
