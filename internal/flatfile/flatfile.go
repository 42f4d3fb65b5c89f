// Package flatfile implements the CSV vault backend. This is the
// on-disk format of record: one RFC 4180 CSV file per database, header
// row first, every cell individually encrypted. CSV quoting covers
// arbitrary cell content, so the format survives any ciphertext the
// cipher emits.
package flatfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magitools/mpm/pkg/cipher"
	"github.com/magitools/mpm/pkg/types"
)

// Vault stores databases as encrypted CSV files inside one data directory.
type Vault struct {
	dataDir string
}

// New returns a flat-file vault rooted at dataDir. The directory is
// created lazily on the first Create.
func New(dataDir string) *Vault {
	return &Vault{dataDir: dataDir}
}

// path returns the file path for a database name.
func (v *Vault) path(name string) string {
	return filepath.Join(v.dataDir, name+types.FileSuffix)
}

// Create writes a new database containing only the encrypted header row.
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

	return writeTable(path, encryptRows(key, [][]string{types.Header}))
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

	f, err := os.Open(v.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer f.Close()

	// The csv reader enforces uniform row width itself; any parse
	// failure means the file is not a table.
	encRows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptFile, err)
	}
	if len(encRows) == 0 || len(encRows[0]) == 0 {
		return nil, types.ErrCorruptFile
	}

	// Wrong-passphrase probe: the first header cell must decode to the
	// literal column name. A decode failure here is treated as a wrong
	// passphrase, not a corrupt file; the check is probabilistic.
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
				// The header already validated the passphrase, so a
				// failing cell means damaged content.
				return nil, fmt.Errorf("%w: row %d cell %d: %v", types.ErrCorruptFile, i, j, err)
			}
			rows[i][j] = pt
		}
	}

	return types.DatabaseFromRows(name, passphrase, rows)
}

// Save re-encrypts the database with the passphrase carried by the
// handle and atomically replaces the file.
func (v *Vault) Save(db *types.Database) error {
	key, err := cipher.NewKey(db.Passphrase())
	if err != nil {
		return err
	}
	return writeTable(v.path(db.Name()), encryptRows(key, db.Rows()))
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

// encryptRows encodes every cell of every row with the given key.
func encryptRows(key *cipher.Key, rows [][]string) [][]string {
	enc := make([][]string, len(rows))
	for i, row := range rows {
		enc[i] = make([]string, len(row))
		for j, cell := range row {
			enc[i][j] = key.Encode(cell)
		}
	}
	return enc
}

// writeTable writes rows as CSV using the temp-file, fsync, rename
// pattern so a mid-write failure never truncates the existing file.
func writeTable(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mpmdb-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
