package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perceptlab/stimkit/pkg/sniff"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff <file>...",
	Short: "Classify file content types",
	Long:  `Classify files by magic-byte content sniffing, ignoring extensions.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var d sniff.Detector
		for _, path := range args {
			ct, err := d.ClassifyFile(path)
			if err != nil {
				return fmt.Errorf("classify %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, ct)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sniffCmd)
}
