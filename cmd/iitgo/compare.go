package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/iitgo/internal/compare"
	"github.com/rgehrsitz/iitgo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [request-file]",
		Short: "Compare a request against what-if scenarios",
		Long: "Computes the request as given and once per template or transform,\n" +
			"then reports the tax and net income difference of each scenario.",
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer logger.Sync()

			engine, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(ce.TemplateRegistry))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("compare needs a request file (or --list-templates)")
			}

			req, err := readRequest(cmd, args[0])
			if err != nil {
				return err
			}

			with, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			baseName, _ := cmd.Flags().GetString("base-name")
			options := compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        transform.ParseTemplateList(with),
				Transforms:       transforms,
			}
			if len(options.Templates) == 0 && len(options.Transforms) == 0 {
				return fmt.Errorf("nothing to compare: pass --with or --transform")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			set, err := ce.Compare(ctx, *req, options)
			if err != nil {
				return err
			}

			var out string
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "table":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			default:
				return fmt.Errorf("unsupported format %q (want table, compact, csv or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("with", "", "Comma-separated template names (see --list-templates)")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().String("base-name", compare.DefaultBaseName, "Display name of the unmodified request")
	cmd.Flags().Bool("list-templates", false, "List the built-in templates and exit")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}
