package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ndsreport/internal/config"
	"ndsreport/internal/logging"
	"ndsreport/internal/reportrun"
)

type generateSummary struct {
	RunID       string           `json:"run_id"`
	OutputPath  string           `json:"output_path,omitempty"`
	DryRun      bool             `json:"dry_run"`
	Periods     []string         `json:"periods"`
	Views       []viewJSON       `json:"views"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
	ElapsedMS   int64            `json:"elapsed_ms"`
	RunLog      string           `json:"run_log,omitempty"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var datasets datasetFlags
	var output string
	var dryRun bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Reconcile the datasets and write the report workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			inputs, err := datasets.resolve(cfg)
			if err != nil {
				return err
			}
			if datasets.overridden() {
				logger.Debug("datasets overridden from flags",
					logging.String("master", inputs.Master.Path),
					logging.Int(logging.FieldPeriods, len(inputs.Periods)),
				)
			}

			outputPath := strings.TrimSpace(output)
			if outputPath != "" {
				if outputPath, err = config.ExpandPath(outputPath); err != nil {
					return fmt.Errorf("resolve --output: %w", err)
				}
			}

			result, err := reportrun.Run(cmd.Context(), cfg, reportrun.Options{
				Inputs:     &inputs,
				OutputPath: outputPath,
				DryRun:     dryRun,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, summarizeRun(result))
			}
			printRun(cmd, result)
			return nil
		},
	}

	datasets.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the workbook here instead of paths.output_dir/report.file_name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile without writing the workbook")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run summary as JSON")
	return cmd
}

func summarizeRun(result *reportrun.Result) generateSummary {
	summary := generateSummary{
		RunID:       result.RunID,
		OutputPath:  result.OutputPath,
		DryRun:      result.DryRun,
		Periods:     result.Report.Periods,
		Diagnostics: diagnosticsJSON(result.Report.Diagnostics),
		ElapsedMS:   result.Elapsed.Milliseconds(),
		RunLog:      result.RunLogPath,
	}
	for _, v := range result.Report.Views {
		summary.Views = append(summary.Views, viewJSON{Name: v.Name, Total: len(v.Rows)})
	}
	return summary
}

func printRun(cmd *cobra.Command, result *reportrun.Result) {
	out := cmd.OutOrStdout()
	if result.DryRun {
		fmt.Fprintln(out, "Dry run: report not written")
	} else {
		fmt.Fprintf(out, "Report written to %s\n", result.OutputPath)
	}
	fmt.Fprintf(out, "Run: %s\n", result.RunID)
	fmt.Fprintf(out, "Periods: %s\n", strings.Join(result.Report.Periods, ", "))
	for _, v := range result.Report.Views {
		fmt.Fprintf(out, "  %-32s %d row(s)\n", v.Name, len(v.Rows))
	}
	if n := len(result.Report.Diagnostics); n > 0 {
		fmt.Fprintf(out, "Warnings: %d (see log for details)\n", n)
	}
}
