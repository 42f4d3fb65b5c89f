// Package main provides the mpm CLI: a local credential store kept in
// per-database files whose cells are individually encrypted under a
// master passphrase.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/magitools/mpm/pkg/cipher"
	"github.com/magitools/mpm/pkg/password"
	"github.com/magitools/mpm/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// userErrors are the deterministic input errors a user can fix by
// changing what they typed; everything else is treated as a system
// failure.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrAlreadyExists,
	types.ErrInvalidPassphrase,
	types.ErrCorruptFile,
	types.ErrIndexNotFound,
	types.ErrInvalidField,
	types.ErrInvalidName,
	password.ErrInvalidLength,
	cipher.ErrEmptyPassphrase,
	errPassphraseMismatch,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	for _, userErr := range userErrors {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}
