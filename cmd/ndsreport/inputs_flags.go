package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ndsreport/internal/config"
)

// datasetFlags lets a command replace the datasets named in the config file.
type datasetFlags struct {
	master  string
	periods []string
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.master, "master", "", "Master roster dataset (path or path#sheet)")
	cmd.Flags().StringArrayVar(&f.periods, "period", nil, "Period dataset as Label=path[#sheet], or Label= when not supplied; repeat in chronological order")
}

// resolve returns the config's inputs with any flag overrides applied. Any
// --period replaces the whole configured period list.
func (f *datasetFlags) resolve(cfg *config.Config) (config.Inputs, error) {
	inputs := cfg.Inputs()
	if ref := strings.TrimSpace(f.master); ref != "" {
		in, err := config.ParseInputRef(ref, 0)
		if err != nil {
			return config.Inputs{}, fmt.Errorf("--master: %w", err)
		}
		in.Label = "master"
		inputs.Master = in
	}
	if len(f.periods) > 0 {
		periods := make([]config.Input, 0, len(f.periods))
		for i, ref := range f.periods {
			in, err := config.ParseInputRef(ref, i)
			if err != nil {
				return config.Inputs{}, fmt.Errorf("--period %q: %w", ref, err)
			}
			periods = append(periods, in)
		}
		inputs.Periods = periods
	}
	return inputs, nil
}

func (f *datasetFlags) overridden() bool {
	return strings.TrimSpace(f.master) != "" || len(f.periods) > 0
}
