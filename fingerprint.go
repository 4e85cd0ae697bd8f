package tokenize

import (
	"github.com/cespare/xxhash/v2"
)

// Fingerprint is a 64-bit content hash of a byte range. Equal strings
// yield equal fingerprints; the value is stable across runs, so cached
// tokenizations and dumped lexicons remain compatible between
// processes. Collisions are assumed not to occur (no resolution
// logic anywhere in the package).
type Fingerprint uint64

// Hash fingerprints s.
func Hash(s string) Fingerprint {
	return Fingerprint(xxhash.Sum64String(s))
}

// HashBytes fingerprints a raw byte slice. Equivalent to Hash on the
// corresponding string.
func HashBytes(b []byte) Fingerprint {
	return Fingerprint(xxhash.Sum64(b))
}

// StringView couples a string slice with its precomputed fingerprint.
// Views are transient: they borrow the backing text and are never
// persisted.
type StringView struct {
	Text string
	Fp   Fingerprint
}

// View builds a StringView over s, computing the fingerprint.
func View(s string) StringView {
	return StringView{Text: s, Fp: Hash(s)}
}

// Len returns the length of the viewed text in bytes.
func (v StringView) Len() int {
	return len(v.Text)
}
