// Package docid generates document identities: 20 random alphanumeric
// characters read from crypto/rand, the same shape hosted document stores
// hand out for auto ids.
package docid

import (
	"crypto/rand"
)

const (
	// Len is the length of a generated identity (~119 bits of entropy).
	Len = 20

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// bytes above this value are rejected to avoid modulo bias.
	maxUnbiased = 255 - (256 % len(alphabet))
)

// New returns a fresh identity.
func New() string {
	return NewLen(Len)
}

// NewLen returns a random identity of the given length.
func NewLen(n int) string {
	if n <= 0 {
		return ""
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n+n/2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic("docid: reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) > maxUnbiased {
				continue
			}

			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out)
}
