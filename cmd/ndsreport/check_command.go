package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ndsreport/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var datasets datasetFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify inputs, columns and output locations before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			inputs, err := datasets.resolve(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			if err := inputs.Validate(); err != nil {
				fmt.Fprintln(out, renderStatusLine("Inputs", statusError, err.Error(), colorize))
				return fmt.Errorf("preflight failed: %w", err)
			}
			fmt.Fprintln(out, renderStatusLine("Periods", statusInfo, fmt.Sprintf("%d", len(inputs.Periods)), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cfg, inputs)
			failed := 0
			for _, r := range results {
				kind := preflightStatus(r)
				if kind == statusError {
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if failed > 0 {
				return fmt.Errorf("preflight failed: %d check(s) did not pass", failed)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}

	datasets.register(cmd)
	return cmd
}
