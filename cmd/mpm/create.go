// create-db command: create a new, empty database.
package main

import (
	"github.com/spf13/cobra"
)

var createDatabase string

var createDBCmd = &cobra.Command{
	Use:   "create-db",
	Short: "Create an empty database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := readNewPassphrase()
		if err != nil {
			return err
		}

		vault, err := newVault()
		if err != nil {
			return err
		}
		if err := vault.Create(createDatabase, passphrase); err != nil {
			return err
		}

		successColor.Fprintln(cmd.OutOrStdout(), "Database created successfully.")
		return nil
	},
}

func init() {
	createDBCmd.Flags().StringVarP(&createDatabase, "database", "d", "", "database name (without file extension)")
	createDBCmd.MarkFlagRequired("database")
}
