package types

// FileSuffix identifies database files belonging to mpm. Both vault
// backends store one database per <name>.mpmdb file in the data
// directory, and the catalog discovers databases by this suffix.
const FileSuffix = ".mpmdb"

// Header is the fixed column schema of every database. The first column
// name doubles as the wrong-passphrase probe: Load decrypts the header
// and rejects the passphrase unless the first cell reads back as "index".
var Header = []string{"index", "title", "username", "password"}

// HeaderProbe is the plaintext the first header cell must decode to.
const HeaderProbe = "index"

// ValidateName rejects names that are empty or would escape the data
// directory when joined into a file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	for _, c := range name {
		if c == '/' || c == '\\' {
			return ErrInvalidName
		}
	}
	return nil
}

// Vault provides whole-database storage for one data directory. Every
// cell is encrypted before it reaches the backend's medium and decrypted
// on the way out; backends never see plaintext on disk.
//
// There is no partial access: Load materializes the full database in
// memory and Save rewrites it completely.
type Vault interface {
	// Create writes a new database containing only the header row.
	// Returns ErrAlreadyExists if a database with that name exists.
	Create(name, passphrase string) error

	// Load reads and decrypts the named database. Returns ErrNotFound
	// if it does not exist, ErrInvalidPassphrase if the decrypted
	// header fails the probe, and ErrCorruptFile for content that does
	// not parse as a uniform table.
	Load(name, passphrase string) (*Database, error)

	// Save re-encrypts and rewrites the database using the passphrase
	// carried by the handle, atomically replacing the previous content.
	Save(db *Database) error

	// Delete removes the named database.
	// Returns ErrNotFound if it does not exist.
	Delete(name string) error
}
