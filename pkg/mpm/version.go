// Package mpm exposes build-level metadata for the mpm tool.
package mpm

// Version is the current release version. Overridable at build time via
// -ldflags "-X github.com/magitools/mpm/pkg/mpm.Version=...".
var Version = "0.1.0"
