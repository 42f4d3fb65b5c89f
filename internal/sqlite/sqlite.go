// Package sqlite implements the SQLite vault backend. It stores the
// same individually encrypted cells as the flat-file backend, laid out
// as (row, column, ciphertext) tuples in a per-database SQLite file,
// plus a small meta table (schema version, creation time, vault ID).
// Selected with "backend: sqlite" in config.yaml.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/magitools/mpm/pkg/cipher"
	"github.com/magitools/mpm/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Meta keys written at create time.
const (
	metaSchemaVersion = "schema_version"
	metaVaultID       = "vault_id"
	metaCreatedAt     = "created_at"

	schemaVersion = "1"
)

// Vault stores databases as per-name SQLite files inside one data directory.
type Vault struct {
	dataDir string
}

// New returns a SQLite vault rooted at dataDir. The directory is
// created lazily on the first Create.
func New(dataDir string) *Vault {
	return &Vault{dataDir: dataDir}
}

// path returns the file path for a database name. The suffix matches
// the flat-file backend so the catalog lists both alike.
func (v *Vault) path(name string) string {
	return filepath.Join(v.dataDir, name+types.FileSuffix)
}

// Create writes a new database containing only the encrypted header row
// and stamps the meta table with a fresh vault ID.
func (v *Vault) Create(name, passphrase string) error {
	if err := types.ValidateName(name); err != nil {
		return err
	}
	key, err := cipher.NewKey(passphrase)
	if err != nil {
		return err
	}

	path := v.path(name)
	if _, err := os.Stat(path); err == nil {
		return types.ErrAlreadyExists
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(v.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	meta := map[string]string{
		metaSchemaVersion: schemaVersion,
		metaVaultID:       uuid.Must(uuid.NewV7()).String(),
		metaCreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	for k, val := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, val); err != nil {
			return fmt.Errorf("writing meta: %w", err)
		}
	}

	if err := insertRows(tx, key, [][]string{types.Header}); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads and decrypts the named database.
func (v *Vault) Load(name, passphrase string) (*types.Database, error) {
	if err := types.ValidateName(name); err != nil {
		return nil, err
	}
	key, err := cipher.NewKey(passphrase)
	if err != nil {
		return nil, err
	}

	path := v.path(name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	encRows, err := readCells(db)
	if err != nil {
		// A file that does not answer SQL is not a table of ours.
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptFile, err)
	}
	if len(encRows) == 0 || len(encRows[0]) == 0 {
		return nil, types.ErrCorruptFile
	}

	// Wrong-passphrase probe on the first header cell, same contract as
	// the flat-file backend.
	probe, err := key.Decode(encRows[0][0])
	if err != nil || probe != types.HeaderProbe {
		return nil, types.ErrInvalidPassphrase
	}

	rows := make([][]string, len(encRows))
	for i, encRow := range encRows {
		rows[i] = make([]string, len(encRow))
		for j, cell := range encRow {
			pt, err := key.Decode(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d cell %d: %v", types.ErrCorruptFile, i, j, err)
			}
			rows[i][j] = pt
		}
	}

	return types.DatabaseFromRows(name, passphrase, rows)
}

// Save re-encrypts the database and replaces all cells in one
// transaction, which gives the same no-partial-write guarantee the
// flat-file backend gets from its temp-and-rename.
func (v *Vault) Save(db *types.Database) error {
	key, err := cipher.NewKey(db.Passphrase())
	if err != nil {
		return err
	}

	conn, err := sql.Open("sqlite", v.path(db.Name()))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cells`); err != nil {
		return fmt.Errorf("clearing cells: %w", err)
	}
	if err := insertRows(tx, key, db.Rows()); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes the database file.
func (v *Vault) Delete(name string) error {
	if err := types.ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(v.path(name)); err != nil {
		if os.IsNotExist(err) {
			return types.ErrNotFound
		}
		return fmt.Errorf("removing database: %w", err)
	}
	return nil
}

// insertRows encrypts every cell and writes it at its (row, column)
// position.
func insertRows(tx *sql.Tx, key *cipher.Key, rows [][]string) error {
	stmt, err := tx.Prepare(`INSERT INTO cells (row_idx, col_idx, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		for j, cell := range row {
			if _, err := stmt.Exec(i, j, key.Encode(cell)); err != nil {
				return fmt.Errorf("inserting cell (%d,%d): %w", i, j, err)
			}
		}
	}
	return nil
}

// readCells loads all ciphertext cells and reassembles them into ordered
// rows. Gaps or ragged widths mean the table was tampered with.
func readCells(db *sql.DB) ([][]string, error) {
	res, err := db.Query(`SELECT row_idx, col_idx, value FROM cells ORDER BY row_idx, col_idx`)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	cellsByRow := make(map[int]map[int]string)
	maxRow := -1
	for res.Next() {
		var rowIdx, colIdx int
		var value string
		if err := res.Scan(&rowIdx, &colIdx, &value); err != nil {
			return nil, err
		}
		if rowIdx < 0 || colIdx < 0 {
			return nil, fmt.Errorf("negative cell position (%d,%d)", rowIdx, colIdx)
		}
		if cellsByRow[rowIdx] == nil {
			cellsByRow[rowIdx] = make(map[int]string)
		}
		cellsByRow[rowIdx][colIdx] = value
		if rowIdx > maxRow {
			maxRow = rowIdx
		}
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	if maxRow < 0 {
		return nil, nil
	}

	width := len(cellsByRow[0])
	rows := make([][]string, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		cols := cellsByRow[i]
		if len(cols) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(cols), width)
		}
		rows[i] = make([]string, width)
		for j := 0; j < width; j++ {
			value, ok := cols[j]
			if !ok {
				return nil, fmt.Errorf("row %d is missing cell %d", i, j)
			}
			rows[i][j] = value
		}
	}
	return rows, nil
}
