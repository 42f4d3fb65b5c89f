package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/magitools/mpm/pkg/types"
)

func TestCreateAndLoad(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := v.Load("magicpwds", "master")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("fresh database should have no entries, got %d", db.Len())
	}
	header := db.HeaderRow()
	for i, want := range types.Header {
		if header[i] != want {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want)
		}
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := v.Create("magicpwds", "other"); !errors.Is(err, types.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_WritesMeta(t *testing.T) {
	dir := t.TempDir()
	v := New(dir)

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(dir, "magicpwds"+types.FileSuffix))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	var version, vaultID string
	if err := conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaSchemaVersion).Scan(&version); err != nil {
		t.Fatalf("read schema_version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("schema_version = %q, want %q", version, schemaVersion)
	}
	if err := conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaVaultID).Scan(&vaultID); err != nil {
		t.Fatalf("read vault_id: %v", err)
	}
	if _, err := uuid.Parse(vaultID); err != nil {
		t.Errorf("vault_id %q is not a UUID: %v", vaultID, err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	v := New(t.TempDir())

	_, err := v.Load("missing", "master")
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_WrongPassphrase(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := v.Load("magicpwds", "not-the-master")
	if !errors.Is(err, types.ErrInvalidPassphrase) {
		t.Errorf("expected ErrInvalidPassphrase, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := v.Load("magicpwds", "master")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := db.AddEntry("Hogwarts Students Magic Web", "ron1980ash", "s3cret!"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := db.AddEntry("Ministry", "percy", "0rd3r?"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if err := v.Save(db); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := v.Load("magicpwds", "master")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Index != 0 || entries[0].Title != "Hogwarts Students Magic Web" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Index != 1 || entries[1].Username != "percy" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}

	// Remove and save again; the survivor keeps its index.
	if err := reloaded.RemoveEntry(0); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if err := v.Save(reloaded); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	final, err := v.Load("magicpwds", "master")
	if err != nil {
		t.Fatalf("final reload failed: %v", err)
	}
	entries = final.Entries()
	if len(entries) != 1 || entries[0].Index != 1 {
		t.Errorf("expected single entry with index 1, got %+v", entries)
	}
}

func TestDelete(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := v.Delete("magicpwds"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := v.Delete("magicpwds"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	v := New(dir)

	// A flat CSV file is not a SQLite database.
	path := filepath.Join(dir, "csv"+types.FileSuffix)
	if err := os.WriteFile(path, []byte("a,b,c\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := v.Load("csv", "master")
	if !errors.Is(err, types.ErrCorruptFile) {
		t.Errorf("expected ErrCorruptFile, got %v", err)
	}
}

func TestLoad_RaggedCells(t *testing.T) {
	dir := t.TempDir()
	v := New(dir)

	if err := v.Create("magicpwds", "master"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Knock one header cell out from under the table.
	conn, err := sql.Open("sqlite", filepath.Join(dir, "magicpwds"+types.FileSuffix))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := conn.Exec(`DELETE FROM cells WHERE row_idx = 0 AND col_idx = 3`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	conn.Close()

	_, err = v.Load("magicpwds", "master")
	if !errors.Is(err, types.ErrCorruptFile) {
		t.Errorf("expected ErrCorruptFile, got %v", err)
	}
}
