package hooks

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Token is an opaque identity for one callback or value instance.
// The zero Token identifies nothing.
type Token uint64

// Identified is implemented by values that carry an identity token.
type Identified interface {
	Identity() Token
}

// NewToken returns a token distinct from every token created before.
func NewToken() Token {
	return Token(nextID())
}

// Identity implements Identified.
func (t Token) Identity() Token {
	return t
}

// IsZero reports whether t is the zero token.
func (t Token) IsZero() bool {
	return t == 0
}

// Fingerprint returns a short stable hex digest of the token for display.
func (t Token) Fingerprint() string {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(t))
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64(b[:])))
}

// String renders the token as fn#<fingerprint>.
func (t Token) String() string {
	if t.IsZero() {
		return "fn#none"
	}
	return "fn#" + t.Fingerprint()
}

// IdentityEquals reports whether a and b come from the same creation.
// Zero tokens are never equal to anything.
func IdentityEquals(a, b Token) bool {
	return a != 0 && a == b
}
