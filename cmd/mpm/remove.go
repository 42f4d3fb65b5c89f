// remove command: delete one entry by its index.
package main

import (
	"github.com/spf13/cobra"
)

var (
	removeDatabase string
	removeIndex    int
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an entry from a database",
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
		db, err := vault.Load(removeDatabase, passphrase)
		if err != nil {
			return err
		}

		if err := db.RemoveEntry(removeIndex); err != nil {
			return err
		}
		if err := vault.Save(db); err != nil {
			return err
		}

		return renderDatabase(cmd.OutOrStdout(), db)
	},
}

func init() {
	removeCmd.Flags().StringVarP(&removeDatabase, "database", "d", "", "database name (without file extension)")
	removeCmd.Flags().IntVarP(&removeIndex, "index", "i", 0, "index of the entry to remove")
	removeCmd.MarkFlagRequired("database")
	removeCmd.MarkFlagRequired("index")
}
