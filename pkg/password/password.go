// Package password generates random credentials with guaranteed
// representation from four character classes.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// The four fixed alphabets. Punctuation is the 32-character ASCII
// punctuation set; changing it would change the class-membership
// contract, so treat it as frozen.
const (
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits      = "0123456789"
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// MinLength is the shortest password that can carry one character from
// each class.
const MinLength = 4

// ErrInvalidLength is returned when the requested length cannot satisfy
// the four-class minimum.
var ErrInvalidLength = errors.New("password length must be at least 4")

// Generate returns a random password of the given total length with
// exactly length/4 uppercase letters, length/4 digits, length/4
// punctuation characters, and length/4 + length%4 lowercase letters
// (the remainder always lands in the lowercase class). Characters are
// drawn independently and uniformly per class from crypto/rand, then
// shuffled so class membership is not positionally predictable.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", ErrInvalidLength
	}

	perClass := length / 4
	rest := length % 4

	buf := make([]byte, 0, length)
	for _, class := range []struct {
		alphabet string
		count    int
	}{
		{Lowercase, perClass + rest},
		{Uppercase, perClass},
		{Digits, perClass},
		{Punctuation, perClass},
	} {
		for i := 0; i < class.count; i++ {
			c, err := randomChar(class.alphabet)
			if err != nil {
				return "", err
			}
			buf = append(buf, c)
		}
	}

	if err := shuffle(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// randomChar draws one character uniformly from alphabet.
func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("reading randomness: %w", err)
	}
	return alphabet[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("reading randomness: %w", err)
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
