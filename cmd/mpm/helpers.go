// Shared helpers for mpm CLI commands.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/magitools/mpm/internal/flatfile"
	"github.com/magitools/mpm/internal/sqlite"
	"github.com/magitools/mpm/pkg/types"
)

// Passphrase prompts.
const (
	promptMasterPwd       = "Please enter master password: "
	promptMasterPwdNew    = "Please enter a master password for the new database: "
	promptMasterPwdRepeat = "Please repeat the master password: "
)

var errPassphraseMismatch = errors.New("the passphrases did not match")

// successColor marks confirmation messages; errors go uncolored to
// stderr via main.
var successColor = color.New(color.FgGreen)

// stdinReader is shared across prompts so buffered input is not lost
// between consecutive reads when stdin is a pipe.
var stdinReader = bufio.NewReader(os.Stdin)

// newVault constructs the vault backend selected by configuration,
// rooted at the resolved data directory.
func newVault() (types.Vault, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{Backend: configBackend, DataDir: dataDir}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.New(cfg.DataDir), nil
	default:
		return flatfile.New(cfg.DataDir), nil
	}
}

// readPassphrase prompts for the master passphrase without echoing.
// When stdin is not a terminal (pipes, scripts) it falls back to reading
// one line.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(raw), nil
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readNewPassphrase prompts twice for a new master passphrase and
// requires both entries to match.
func readNewPassphrase() (string, error) {
	first, err := readPassphrase(promptMasterPwdNew)
	if err != nil {
		return "", err
	}
	second, err := readPassphrase(promptMasterPwdRepeat)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPassphraseMismatch
	}
	return first, nil
}

// renderDatabase prints the decoded database as an aligned table,
// header first.
func renderDatabase(out io.Writer, db *types.Database) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, row := range db.Rows() {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return w.Flush()
}
