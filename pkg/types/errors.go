package types

import "errors"

// Vault operation errors.
var (
	ErrNotFound          = errors.New("database not found")
	ErrAlreadyExists     = errors.New("database already exists")
	ErrInvalidPassphrase = errors.New("master passphrase incorrect")
	ErrCorruptFile       = errors.New("database file is corrupt")
)

// Entry operation errors.
var (
	ErrIndexNotFound = errors.New("no entry with that index")
	ErrInvalidField  = errors.New("title and username must not be empty")
)

// ErrInvalidName is returned for database names that cannot form a safe
// file name.
var ErrInvalidName = errors.New("invalid database name")
