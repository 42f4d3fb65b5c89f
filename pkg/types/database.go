package types

import (
	"strconv"
)

// Entry is one stored credential. Index values are assigned monotonically
// and stay stable for the life of the entry; removals leave gaps.
type Entry struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Database is a fully decoded database: the header row followed by zero
// or more entries. The handle carries the name it was loaded under and
// the master passphrase used to decode it, so a later Save re-encrypts
// with the same key. The passphrase never leaves the process.
type Database struct {
	name       string
	header     []string
	entries    []Entry
	passphrase string
}

// NewDatabase returns an empty database (header only) bound to the given
// name and passphrase.
func NewDatabase(name, passphrase string) *Database {
	return &Database{
		name:       name,
		header:     append([]string(nil), Header...),
		passphrase: passphrase,
	}
}

// Name returns the database name (base name, without the file suffix).
func (d *Database) Name() string { return d.name }

// Passphrase returns the master passphrase the handle was loaded with.
// It exists so vault backends can re-encrypt on Save; it must never be
// persisted or printed.
func (d *Database) Passphrase() string { return d.passphrase }

// HeaderRow returns the decoded header cells.
func (d *Database) HeaderRow() []string {
	return append([]string(nil), d.header...)
}

// Entries returns the decoded entries in storage order.
func (d *Database) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Len returns the number of entries, excluding the header.
func (d *Database) Len() int { return len(d.entries) }

// NextIndex returns the index the next added entry will receive: 0 for
// an empty database, otherwise one past the largest existing index.
// Removed indices are not reused unless the removed entry held the
// maximum.
func (d *Database) NextIndex() int {
	next := 0
	for _, e := range d.entries {
		if e.Index >= next {
			next = e.Index + 1
		}
	}
	return next
}

// AddEntry appends a new entry under NextIndex and returns it.
// Returns ErrInvalidField if title or username is empty.
func (d *Database) AddEntry(title, username, password string) (Entry, error) {
	if title == "" || username == "" {
		return Entry{}, ErrInvalidField
	}
	e := Entry{
		Index:    d.NextIndex(),
		Title:    title,
		Username: username,
		Password: password,
	}
	d.entries = append(d.entries, e)
	return e, nil
}

// RemoveEntry removes the entry whose index equals idx. Surviving
// entries keep their indices; nothing is renumbered.
// Returns ErrIndexNotFound if no entry has that index.
func (d *Database) RemoveEntry(idx int) error {
	for i, e := range d.entries {
		if e.Index == idx {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return nil
		}
	}
	return ErrIndexNotFound
}

// Rows materializes the database as plaintext cell rows, header first.
// This is the shape vault backends encrypt cell-by-cell and the CLI
// renders as a table.
func (d *Database) Rows() [][]string {
	rows := make([][]string, 0, len(d.entries)+1)
	rows = append(rows, d.HeaderRow())
	for _, e := range d.entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Index), e.Title, e.Username, e.Password,
		})
	}
	return rows
}

// DatabaseFromRows rebuilds a Database from decoded cell rows (header
// first), binding it to name and passphrase. Returns ErrCorruptFile if
// any row's width differs from the header's or an index cell is not a
// non-negative integer. Wrong-passphrase detection happens before this
// point, on the encrypted header.
func DatabaseFromRows(name, passphrase string, rows [][]string) (*Database, error) {
	if len(rows) == 0 || len(rows[0]) != len(Header) {
		return nil, ErrCorruptFile
	}
	header := rows[0]
	db := &Database{
		name:       name,
		header:     append([]string(nil), header...),
		passphrase: passphrase,
	}
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, ErrCorruptFile
		}
		idx, err := strconv.Atoi(row[0])
		if err != nil || idx < 0 {
			return nil, ErrCorruptFile
		}
		db.entries = append(db.entries, Entry{
			Index:    idx,
			Title:    row[1],
			Username: row[2],
			Password: row[3],
		})
	}
	return db, nil
}
