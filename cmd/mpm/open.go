// open-db command: decode a database and render it as a table.
package main

import (
	"github.com/spf13/cobra"
)

var openDatabase string

var openDBCmd = &cobra.Command{
	Use:   "open-db",
	Short: "Open and display a database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := readPassphrase(promptMasterPwd)
		if err != nil {
			return err
		}

		vault, err := newVault()
		if err != nil {
			return err
		}
		db, err := vault.Load(openDatabase, passphrase)
		if err != nil {
			return err
		}

		return renderDatabase(cmd.OutOrStdout(), db)
	},
}

func init() {
	openDBCmd.Flags().StringVarP(&openDatabase, "database", "d", "", "database name (without file extension)")
	openDBCmd.MarkFlagRequired("database")
}
