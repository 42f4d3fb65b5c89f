// add command: generate a password and append a new entry.
package main

import (
	"github.com/spf13/cobra"

	"github.com/magitools/mpm/pkg/password"
)

var (
	addDatabase string
	addTitle    string
	addUsername string
	addLength   int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry with a freshly generated password",
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
		db, err := vault.Load(addDatabase, passphrase)
		if err != nil {
			return err
		}

		pw, err := password.Generate(addLength)
		if err != nil {
			return err
		}
		if _, err := db.AddEntry(addTitle, addUsername, pw); err != nil {
			return err
		}
		if err := vault.Save(db); err != nil {
			return err
		}

		return renderDatabase(cmd.OutOrStdout(), db)
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDatabase, "database", "d", "", "database name (without file extension)")
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "title for the password entry")
	addCmd.Flags().StringVarP(&addUsername, "username", "u", "", "username used with the password")
	addCmd.Flags().IntVarP(&addLength, "password-length", "l", 10, "length of the random password")
	addCmd.MarkFlagRequired("database")
	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("username")
}
