package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rgehrsitz/iitgo/internal/breakeven"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func trapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traps",
		Short: "List annual bonus ranges where a larger bonus nets less",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer logger.Sync()

			engine, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}
			traps := breakeven.NewDefaultSolver(engine).BonusTraps()
			return writeSolverOutput(cmd, traps, func(tf *breakeven.TableFormatter) string {
				return tf.FormatTraps(traps)
			})
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func crossoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crossover",
		Short: "Find bonus amounts where the recommended bonus method changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer logger.Sync()

			req, err := crossoverRequestFromFlags(cmd)
			if err != nil {
				return err
			}
			engine, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			solver := breakeven.NewDefaultSolver(engine)

			sweepFlag, _ := cmd.Flags().GetString("sweep")
			if sweepFlag != "" {
				salaries, err := parseDecimalList(sweepFlag)
				if err != nil {
					return fmt.Errorf("--sweep: %w", err)
				}
				sweep, err := solver.SweepSalaries(ctx, salaries, req)
				if err != nil {
					return err
				}
				return writeSolverOutput(cmd, sweep, func(tf *breakeven.TableFormatter) string {
					return tf.FormatSweep(sweep)
				})
			}

			result, err := solver.FindCrossovers(ctx, req)
			if err != nil {
				return err
			}
			return writeSolverOutput(cmd, result, func(tf *breakeven.TableFormatter) string {
				return tf.FormatCrossovers(result)
			})
		},
	}
	cmd.Flags().String("salary-taxable", "0", "Annual salary taxable income the bonus is combined with")
	cmd.Flags().String("min", "0", "Smallest bonus to scan")
	cmd.Flags().String("max", "1000000", "Largest bonus to scan")
	cmd.Flags().String("step", "", "Scan step (default 100); switches closer together than one step can be missed")
	cmd.Flags().String("sweep", "", "Comma-separated salary taxable incomes to scan instead of --salary-taxable")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func crossoverRequestFromFlags(cmd *cobra.Command) (breakeven.CrossoverRequest, error) {
	var req breakeven.CrossoverRequest
	for _, f := range []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"salary-taxable", &req.SalaryTaxableIncome},
		{"min", &req.MinBonus},
		{"max", &req.MaxBonus},
		{"step", &req.Step},
	} {
		raw, _ := cmd.Flags().GetString(f.flag)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		d, err := domain.RawAmount(raw).Parse(f.flag)
		if err != nil {
			return req, fmt.Errorf("--%s: %w", f.flag, err)
		}
		*f.dst = d
	}
	return req, nil
}

func parseDecimalList(s string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := domain.RawAmount(part).Parse("amount")
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func writeSolverOutput(cmd *cobra.Command, v interface{}, table func(*breakeven.TableFormatter) string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		fmt.Fprint(cmd.OutOrStdout(), table(&breakeven.TableFormatter{}))
		return nil
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (table, json)", format)
	}
}
