// generate command: print one random password without touching any
// database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magitools/mpm/pkg/password"
)

var generateLength int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := password.Generate(generateLength)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pw)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "password-length", "l", 10, "length of the random password")
}
