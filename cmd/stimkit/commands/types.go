package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perceptlab/stimkit/pkg/stim"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered stimulus types",
	Long: `List the canonical names of all registered stimulus types.

Any of these names (case-insensitive, with or without underscores or the
"stim" suffix) can be passed to 'load --type'.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range stim.Types() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
