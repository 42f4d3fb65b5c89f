package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIndexMonotonic(t *testing.T) {
	db := NewDatabase("vault", "pw")
	assert.Equal(t, 0, db.NextIndex(), "empty database starts at 0")

	for i := 0; i < 3; i++ {
		e, err := db.AddEntry("site", "user", "secret")
		require.NoError(t, err)
		assert.Equal(t, i, e.Index)
	}

	// Removing a middle index must not make it reusable.
	require.NoError(t, db.RemoveEntry(1))
	assert.Equal(t, 3, db.NextIndex())

	e, err := db.AddEntry("another", "user", "secret")
	require.NoError(t, err)
	assert.Equal(t, 3, e.Index)
}

func TestNextIndexReusesMaxAfterRemoval(t *testing.T) {
	db := NewDatabase("vault", "pw")
	for i := 0; i < 3; i++ {
		_, err := db.AddEntry("site", "user", "secret")
		require.NoError(t, err)
	}

	// Removing the maximum shrinks the next index back to it.
	require.NoError(t, db.RemoveEntry(2))
	assert.Equal(t, 2, db.NextIndex())
}

func TestAddEntry(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		username string
		wantErr  error
	}{
		{name: "valid entry", title: "Hogwarts", username: "ron1980ash"},
		{name: "empty title rejected", title: "", username: "user", wantErr: ErrInvalidField},
		{name: "empty username rejected", title: "site", username: "", wantErr: ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := NewDatabase("vault", "pw")
			e, err := db.AddEntry(tt.title, tt.username, "secret")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, db.Len(), "failed add must not append")
			} else {
				require.NoError(t, err)
				assert.Equal(t, 0, e.Index)
				assert.Equal(t, tt.title, e.Title)
				assert.Equal(t, tt.username, e.Username)
				assert.Equal(t, "secret", e.Password)
				assert.Equal(t, 1, db.Len())
			}
		})
	}
}

func TestRemoveEntry(t *testing.T) {
	db := NewDatabase("vault", "pw")
	for _, title := range []string{"a", "b", "c"} {
		_, err := db.AddEntry(title, "user", "secret")
		require.NoError(t, err)
	}

	require.NoError(t, db.RemoveEntry(1))

	// Exactly the targeted row is gone; the others keep their indices.
	entries := db.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, "a", entries[0].Title)
	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, "c", entries[1].Title)

	assert.ErrorIs(t, db.RemoveEntry(1), ErrIndexNotFound)
	assert.ErrorIs(t, db.RemoveEntry(99), ErrIndexNotFound)
}

func TestRowsRoundTrip(t *testing.T) {
	db := NewDatabase("vault", "pw")
	_, err := db.AddEntry("Hogwarts", "ron1980ash", "s3cret!")
	require.NoError(t, err)
	_, err = db.AddEntry("Ministry", "percy", "0rd3r?")
	require.NoError(t, err)

	rows := db.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"0", "Hogwarts", "ron1980ash", "s3cret!"}, rows[1])

	rebuilt, err := DatabaseFromRows("vault", "pw", rows)
	require.NoError(t, err)
	assert.Equal(t, db.Entries(), rebuilt.Entries())
	assert.Equal(t, db.HeaderRow(), rebuilt.HeaderRow())
	assert.Equal(t, "pw", rebuilt.Passphrase())
}

func TestDatabaseFromRowsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{name: "no rows", rows: nil},
		{name: "short header", rows: [][]string{{"index", "title"}}},
		{
			name: "ragged entry row",
			rows: [][]string{Header, {"0", "title", "user"}},
		},
		{
			name: "non-integer index",
			rows: [][]string{Header, {"seven", "title", "user", "pw"}},
		},
		{
			name: "negative index",
			rows: [][]string{Header, {"-1", "title", "user", "pw"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DatabaseFromRows("vault", "pw", tt.rows)
			assert.ErrorIs(t, err, ErrCorruptFile)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "file backend", config: Config{Backend: BackendFile}},
		{name: "sqlite backend", config: Config{Backend: BackendSQLite}},
		{name: "empty backend", config: Config{}, wantErr: ErrBackendEmpty},
		{name: "unknown backend", config: Config{Backend: "postgres"}, wantErr: ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
