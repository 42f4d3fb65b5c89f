// list-db command: enumerate database files in the data directory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magitools/mpm/internal/catalog"
)

var listDBCmd = &cobra.Command{
	Use:   "list-db",
	Short: "List available databases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		names, err := catalog.List(dataDir)
		if err != nil {
			return fmt.Errorf("list databases: %w", err)
		}

		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(),
				"No database files found. You can use the 'create-db' subcommand to create a database.")
			return nil
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
