package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/config"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/rgehrsitz/iitgo/internal/logging"
	"github.com/rgehrsitz/iitgo/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iitgo",
		Short: "Individual income tax calculator",
		Long: "Computes annual individual income tax on salary, annual bonus, labor,\n" +
			"manuscript and license income, and compares the two bonus methods.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("rules", "", "Path to a tax rules YAML file (default: built-in rules)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging on stderr")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		rulesCmd(),
		trapsCmd(),
		crossoverCmd(),
		compareCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iitgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// cliLogger builds the stderr logger from the --verbose flag
func cliLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.NewCLI(verbose)
}

// loadEngine builds an engine from the --rules flag
func loadEngine(cmd *cobra.Command, logger *zap.Logger) (*calculation.Engine, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewEngine(rules)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logger.Sugar())
	logger.Debug("Tax rules loaded",
		zap.String("path", rulesPath),
		zap.String("version", rules.Metadata.Version),
		zap.Int("tax_year", rules.Metadata.TaxYear))
	return engine, nil
}

// readRequest parses a request file, or stdin when path is "-"
func readRequest(cmd *cobra.Command, path string) (*domain.CalculationRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	return config.NewInputParser().Parse(data)
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [request-file]",
		Short: "Calculate tax for a request file (YAML or JSON, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer logger.Sync()

			req, err := readRequest(cmd, args[0])
			if err != nil {
				return err
			}

			engine, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}
			result, err := engine.Compute(*req)
			if err != nil {
				return err
			}

			formatName, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(formatName)
			if f == nil {
				return fmt.Errorf("unsupported format %q (available: %v)", formatName, output.AvailableFormatterNames())
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			switch {
			case outPath == "auto":
				filename, err := output.WriteFormatted(f, result, output.FileExtension(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			case outPath != "":
				if err := os.WriteFile(outPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
			case f.Name() == "xlsx":
				return fmt.Errorf("xlsx output needs --out")
			default:
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, detailed-csv, xlsx)")
	cmd.Flags().StringP("out", "o", "", "Write the report to this file (auto: timestamped name)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request-file]",
		Short: "Validate the tax rules and, if given, a request file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer logger.Sync()

			engine, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}
			meta := engine.Rules().Metadata
			fmt.Fprintf(cmd.OutOrStdout(), "Tax rules %s (tax year %d) are valid\n", meta.Version, meta.TaxYear)

			if len(args) == 0 {
				return nil
			}
			req, err := config.LoadRequest(args[0])
			if err != nil {
				return err
			}
			if _, err := engine.Compute(*req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %s is valid\n", args[0])
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active tax rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesPath, _ := cmd.Flags().GetString("rules")
			data := config.DefaultRulesYAML()
			if rulesPath != "" {
				if _, err := config.LoadRules(rulesPath); err != nil {
					return err
				}
				var err error
				if data, err = os.ReadFile(rulesPath); err != nil {
					return err
				}
			}
			_, err := cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
