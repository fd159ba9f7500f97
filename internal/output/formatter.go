package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/iitgo/internal/domain"
)

// Formatter renders a calculation result into a byte slice.
type Formatter interface {
	Name() string
	Format(result *domain.CalculationResult) ([]byte, error)
}

// FormatterFunc adapts a plain function into a Formatter.
type FormatterFunc struct {
	ID string
	F  func(result *domain.CalculationResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.CalculationResult) ([]byte, error) {
	return f.F(result)
}

var registry = map[string]Formatter{}

// aliases map alternate names onto registered formatters.
var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"table":           "console",
	"text":            "console-lite",
	"excel":           "xlsx",
}

func register(f Formatter) {
	registry[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVSummarizer{})
	register(DetailedCSVFormatter{})
	register(JSONFormatter{})
	register(XLSXFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames lists registered formatter names in sorted order.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileExtension returns the conventional extension for a formatter's output.
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "csv", "detailed-csv":
		return "csv"
	case "json":
		return "json"
	case "xlsx":
		return "xlsx"
	default:
		return "txt"
	}
}

// WriteFormatted formats result and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, result *domain.CalculationResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
