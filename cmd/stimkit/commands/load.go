package commands

import (
	"github.com/spf13/cobra"

	"github.com/perceptlab/stimkit/pkg/cli"
	"github.com/perceptlab/stimkit/pkg/loader"
	"github.com/perceptlab/stimkit/pkg/stim"
)

var (
	loadType     string
	loadFailFast bool
	loadOutput   string
)

// stimSummary is the loadable view of one stimulus for output rendering.
type stimSummary struct {
	Name     string   `json:"name" yaml:"name"`
	Class    string   `json:"class" yaml:"class"`
	Filename string   `json:"filename" yaml:"filename"`
	Onset    *float64 `json:"onset,omitempty" yaml:"onset,omitempty"`
	Duration *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

var loadCmd = &cobra.Command{
	Use:   "load <path>...",
	Short: "Load stimuli from files or directories",
	Long: `Load stimuli from the given paths.

Directories are expanded one level; each file is classified by content
type and instantiated as the matching stimulus type. Unrecognized files
and missing paths are skipped unless --fail-fast is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stims, err := loader.Load(cmd.Context(), args, &loader.Options{
			Type:     loadType,
			FailFast: loadFailFast,
		})
		if err != nil {
			return err
		}

		summaries := make([]stimSummary, 0, len(stims))
		for _, s := range stims {
			summaries = append(summaries, summarize(s))
		}
		return cli.Output(summaries, cli.OutputOptions{
			Format: outputFormat(loadOutput),
			Writer: cmd.OutOrStdout(),
		})
	},
}

func summarize(s stim.Stim) stimSummary {
	sum := stimSummary{
		Name:     s.Name(),
		Class:    s.Class(),
		Filename: s.Filename(),
	}
	if v, ok := s.Onset(); ok {
		sum.Onset = &v
	}
	if v, ok := s.Duration(); ok {
		sum.Duration = &v
	}
	return sum
}

// outputFormat resolves the effective output format from the flag and the
// config default.
func outputFormat(flag string) cli.OutputFormat {
	if flag != "" {
		return cli.OutputFormat(flag)
	}
	if cfg, err := GetConfig(); err == nil && cfg.Output != "" {
		return cli.OutputFormat(cfg.Output)
	}
	return cli.FormatYAML
}

func init() {
	loadCmd.Flags().StringVarP(&loadType, "type", "t", "", "force a stimulus type instead of sniffing (e.g. text, image)")
	loadCmd.Flags().BoolVar(&loadFailFast, "fail-fast", false, "fail on missing paths and unsupported content types")
	loadCmd.Flags().StringVarP(&loadOutput, "output", "o", "", "output format (yaml, json)")
	rootCmd.AddCommand(loadCmd)
}
