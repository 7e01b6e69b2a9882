package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perceptlab/stimkit/pkg/cli"
	"github.com/perceptlab/stimkit/pkg/provstore"
	"github.com/perceptlab/stimkit/pkg/stim"
)

var historyOutput string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded provenance chains",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored provenance chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		for entry, err := range store.List(cmd.Context()) {
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.ID(), entry.String())
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one provenance chain as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		tbl, err := stim.Flatten(entry)
		if err != nil {
			return err
		}

		if format := outputFormat(historyOutput); format != cli.FormatTable {
			snaps := make([]stim.Snapshot, 0, tbl.Len())
			for cur := entry; cur != nil; cur = cur.Parent() {
				snaps = append(snaps, cur.Snapshot())
			}
			return cli.Output(snaps, cli.OutputOptions{Format: format, Writer: cmd.OutOrStdout()})
		}
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(tbl, cli.NewStyles(cli.DefaultTheme)))
		return nil
	},
}

// openStore opens the configured BadgerDB provenance store.
func openStore() (provstore.Store, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return provstore.NewBadger(provstore.BadgerOptions{Dir: cfg.ProvStoreDir()})
}

func init() {
	historyShowCmd.Flags().StringVarP(&historyOutput, "output", "o", "table", "output format (table, yaml, json)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
