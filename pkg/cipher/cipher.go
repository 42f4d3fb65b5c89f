// Package cipher implements the keyed, reversible transform applied to
// every database cell. Encoding is deliberately deterministic: the same
// (plaintext, passphrase) pair always yields the same ciphertext, so a
// cell encrypted twice compares equal on disk. The threat model is a
// passive reader of the database file, not traffic analysis, and the
// wrong-passphrase check in the vault layer depends on decoding being
// repeatable.
package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for deriving the cell key from the passphrase.
	kdfIterations = 4096
	kdfKeyLength  = 32 // AES-256

	// kdfSalt is fixed so that key derivation stays a pure function of
	// the passphrase. A per-cell salt would break determinism.
	kdfSalt = "mpm.cell.v1"

	// ivLabel feeds the IV derivation so the keystream is not a direct
	// function of the raw key bytes.
	ivLabel = "mpm.cell.iv.v1"

	// cellVersion is prefixed to every plaintext before encryption. It
	// keeps empty cells non-empty on disk and trips on 255 of 256 wrong
	// keys before the vault's header probe even runs.
	cellVersion = 0x01
)

var (
	// ErrEmptyPassphrase is returned when the passphrase is empty.
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")

	// ErrDecode is returned when a cell cannot be decoded, either
	// because the passphrase is wrong or the ciphertext is damaged.
	// The two cases are indistinguishable by construction.
	ErrDecode = errors.New("cannot decode cell")
)

// cellEncoding is the text armor for ciphertext cells. URL-safe base64
// keeps cells free of the table delimiter and of quoting-sensitive
// characters.
var cellEncoding = base64.RawURLEncoding

// Key is a cell cipher keyed by one master passphrase. Deriving a Key
// runs the KDF once; encode and decode are then cheap per cell, which
// matters because every load and save touches every cell of the file.
type Key struct {
	block cipher.Block
	iv    [aes.BlockSize]byte
}

// NewKey derives a cell cipher key from the master passphrase.
func NewKey(passphrase string) (*Key, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	raw := pbkdf2.Key([]byte(passphrase), []byte(kdfSalt), kdfIterations, kdfKeyLength, sha256.New)

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	k := &Key{block: block}
	iv := sha256.Sum256(append([]byte(ivLabel), raw...))
	copy(k.iv[:], iv[:aes.BlockSize])
	return k, nil
}

// Encode encrypts one plaintext cell. The result is non-empty for every
// input, including the empty string.
func (k *Key) Encode(plaintext string) string {
	buf := make([]byte, len(plaintext)+1)
	buf[0] = cellVersion
	copy(buf[1:], plaintext)
	k.stream().XORKeyStream(buf, buf)
	return cellEncoding.EncodeToString(buf)
}

// Decode reverses Encode. It returns ErrDecode when the ciphertext is
// not valid armor or the version prefix does not survive decryption;
// with a wrong passphrase that covers 255 of 256 cells, and the
// remainder decode to noise the vault's header probe rejects.
func (k *Key) Decode(ciphertext string) (string, error) {
	buf, err := cellEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(buf) == 0 {
		return "", ErrDecode
	}
	k.stream().XORKeyStream(buf, buf)
	if buf[0] != cellVersion {
		return "", ErrDecode
	}
	return string(buf[1:]), nil
}

// stream returns a fresh CTR keystream positioned at the start. Each
// cell restarts the stream, which is what makes encoding deterministic
// and cells independently decodable.
func (k *Key) stream() cipher.Stream {
	return cipher.NewCTR(k.block, k.iv[:])
}

// Encode encrypts one cell with a key derived from passphrase. Prefer
// NewKey when encoding many cells under the same passphrase.
func Encode(plaintext, passphrase string) (string, error) {
	k, err := NewKey(passphrase)
	if err != nil {
		return "", err
	}
	return k.Encode(plaintext), nil
}

// Decode decrypts one cell with a key derived from passphrase.
func Decode(ciphertext, passphrase string) (string, error) {
	k, err := NewKey(passphrase)
	if err != nil {
		return "", err
	}
	return k.Decode(ciphertext)
}
