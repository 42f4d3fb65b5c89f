// Package types defines the Database and Entry model, the Vault backend
// interface, the backend configuration, and the standard error values for
// the mpm credential store.
package types
