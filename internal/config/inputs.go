package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const pathSeparators = "/" + string(os.PathSeparator)

// Inputs is the resolved set of datasets for one run. Periods are ordered
// oldest first; their count is the window length.
type Inputs struct {
	Master  Input
	Periods []Input
}

// Inputs returns the datasets named in the configuration file.
func (c *Config) Inputs() Inputs {
	return Inputs{
		Master:  c.Master,
		Periods: append([]Input(nil), c.Periods...),
	}
}

// ParseInputRef parses a command-line dataset reference of the form
// "path", "label=path" or "label=path#sheet". index selects the fallback
// label when none is given. Text before the first "=" is a label only when it
// holds no path separator, so "./data/a=b.xlsx" is a bare path. "label=" with
// nothing after it names a period whose dataset was not supplied.
func ParseInputRef(ref string, index int) (Input, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Input{}, errors.New("empty dataset reference")
	}
	original := ref
	var in Input
	if label, rest, ok := strings.Cut(ref, "="); ok && !strings.ContainsAny(label, pathSeparators) {
		in.Label = strings.TrimSpace(label)
		ref = strings.TrimSpace(rest)
		if ref == "" && in.Label != "" {
			return in, nil
		}
	}
	if path, sheet, ok := strings.Cut(ref, "#"); ok {
		ref = strings.TrimSpace(path)
		in.Sheet = strings.TrimSpace(sheet)
	}
	if ref == "" {
		return Input{}, fmt.Errorf("dataset reference %q has no path", original)
	}
	path, err := expandPath(ref)
	if err != nil {
		return Input{}, err
	}
	in.Path = path
	if in.Label == "" {
		in.Label = DefaultPeriodLabel(index, path)
	}
	return in, nil
}

// Validate checks that a master is named, at least one period exists and
// period labels are unique. A period with an empty path is allowed; it means
// the dataset was not supplied.
func (in Inputs) Validate() error {
	if strings.TrimSpace(in.Master.Path) == "" {
		return errors.New("master dataset path is required (set master.path or pass --master)")
	}
	if len(in.Periods) == 0 {
		return errors.New("at least one period is required (add [[periods]] or pass --period)")
	}
	seen := make(map[string]struct{}, len(in.Periods))
	for i, period := range in.Periods {
		label := strings.TrimSpace(period.Label)
		if label == "" {
			return fmt.Errorf("period %d has no label", i+1)
		}
		if _, ok := seen[label]; ok {
			return fmt.Errorf("duplicate period label %q", label)
		}
		seen[label] = struct{}{}
	}
	return nil
}
