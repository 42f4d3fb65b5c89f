// delete-db command: remove a database file.
package main

import (
	"github.com/spf13/cobra"
)

var deleteDatabase string

var deleteDBCmd = &cobra.Command{
	Use:   "delete-db",
	Short: "Delete a database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vault, err := newVault()
		if err != nil {
			return err
		}
		if err := vault.Delete(deleteDatabase); err != nil {
			return err
		}

		successColor.Fprintln(cmd.OutOrStdout(), "Database deleted successfully.")
		return nil
	},
}

func init() {
	deleteDBCmd.Flags().StringVarP(&deleteDatabase, "database", "d", "", "database name (without file extension)")
	deleteDBCmd.MarkFlagRequired("database")
}
