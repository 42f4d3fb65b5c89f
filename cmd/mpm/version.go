// version command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magitools/mpm/pkg/mpm"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mpm version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mpm", mpm.Version)
	},
}
