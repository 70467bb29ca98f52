package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ndsreport/internal/reconcile"
	"ndsreport/internal/reportrun"
)

const defaultPreviewLimit = 5

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var datasets datasetFlags
	var viewName string
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Reconcile the datasets and print the report views without writing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be zero or positive, got %d", limit)
			}
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

			report, err := reportrun.Reconcile(cmd.Context(), cfg, inputs, logger)
			if err != nil {
				return err
			}
			views, err := selectViews(report, viewName)
			if err != nil {
				return err
			}

			if jsonOut {
				payload := make([]viewJSON, 0, len(views))
				for _, v := range views {
					payload = append(payload, viewJSON{
						Name:    v.Name,
						Columns: v.Columns,
						Total:   len(v.Rows),
						Rows:    viewRows(v, limit),
					})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			for i, v := range views {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, renderView(v, limit))
			}
			return nil
		},
	}

	datasets.register(cmd)
	cmd.Flags().StringVar(&viewName, "view", "", "Show only this view (for example Summary)")
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultPreviewLimit, "Rows per view; 0 shows all")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the views as JSON")
	return cmd
}

// selectViews returns every view, or the one whose name matches name
// case-insensitively.
func selectViews(report *reconcile.Report, name string) ([]reconcile.View, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return report.Views, nil
	}
	names := make([]string, 0, len(report.Views))
	for _, v := range report.Views {
		if strings.EqualFold(v.Name, name) {
			return []reconcile.View{v}, nil
		}
		names = append(names, fmt.Sprintf("%q", v.Name))
	}
	return nil, fmt.Errorf("unknown view %q (available: %s)", name, strings.Join(names, ", "))
}
