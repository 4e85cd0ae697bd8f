/*
Package strtab is an append-only string store. Surface forms are
interned once and addressed by a dense 32-bit ID; ID 0 is reserved for
the empty string. Lookups by content go through the same 64-bit
fingerprint the tokenizer core uses, so a store and a lexicon dumped
from the same process agree on keys.

The store additionally maintains a prefix index over all interned
strings, which makes vocabulary inspection ("every surface starting
with pre") cheap without scanning the whole table.
*/
package strtab

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/derekparker/trie"
	"github.com/pkg/errors"
)

// ID addresses one interned string. IDs are dense and assigned in
// insertion order; 0 is the empty string.
type ID uint32

// Table interns strings. The zero value is not usable; call New.
type Table struct {
	byHash  map[uint64]ID
	strings []string
	index   *trie.Trie
}

// New creates an empty table with ID 0 preassigned to "".
func New() *Table {
	t := &Table{
		byHash:  make(map[uint64]ID),
		strings: make([]string, 1, 64),
		index:   trie.New(),
	}
	t.byHash[xxhash.Sum64String("")] = 0
	return t
}

// Intern returns the ID for s, assigning the next free ID if s has not
// been seen before.
func (t *Table) Intern(s string) ID {
	h := xxhash.Sum64String(s)
	if id, ok := t.byHash[h]; ok {
		return id
	}
	id := ID(len(t.strings))
	t.strings = append(t.strings, s)
	t.byHash[h] = id
	t.index.Add(s, id)
	return id
}

// Find returns the ID for s without interning it.
func (t *Table) Find(s string) (ID, bool) {
	id, ok := t.byHash[xxhash.Sum64String(s)]
	return id, ok
}

// Get resolves an ID back to its string.
func (t *Table) Get(id ID) (string, bool) {
	if int(id) >= len(t.strings) {
		return "", false
	}
	return t.strings[id], true
}

// MustGet resolves an ID and panics on an out-of-range value. Intended
// for IDs previously handed out by this table.
func (t *Table) MustGet(id ID) string {
	s, ok := t.Get(id)
	if !ok {
		panic(errors.Errorf("strtab: unknown string id %d", id))
	}
	return s
}

// Len returns the number of interned strings, the reserved empty
// string included.
func (t *Table) Len() int {
	return len(t.strings)
}

// WithPrefix enumerates all interned strings starting with pre, in
// lexicographic order.
func (t *Table) WithPrefix(pre string) []string {
	keys := t.index.PrefixSearch(pre)
	sort.Strings(keys)
	return keys
}

// Dump writes all strings except the reserved empty one to path, in
// insertion order, each as a uvarint byte length followed by the
// UTF-8 bytes.
func (t *Table) Dump(path string) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return errors.Errorf("strtab: %s is a directory", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "strtab: dump")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	var lbuf [binary.MaxVarintLen64]byte
	for _, s := range t.strings[1:] {
		n := binary.PutUvarint(lbuf[:], uint64(len(s)))
		if _, err := w.Write(lbuf[:n]); err != nil {
			return errors.Wrap(err, "strtab: dump")
		}
		if _, err := w.WriteString(s); err != nil {
			return errors.Wrap(err, "strtab: dump")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "strtab: dump")
	}
	return f.Close()
}

// Load reads strings dumped by Dump and interns them in file order.
// The table must be empty (freshly constructed) so that IDs come out
// identical to the dumping table's.
func (t *Table) Load(path string) error {
	if len(t.strings) > 1 {
		return errors.New("strtab: load into non-empty table")
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "strtab: load")
	}
	defer f.Close()
	r := bufio.NewReader(f)
	buf := make([]byte, 0, 64)
	for {
		n, err := binary.ReadUvarint(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "strtab: load")
		}
		if uint64(cap(buf)) < n {
			buf = make([]byte, n)
		}
		buf = buf[:n]
		if _, err := io.ReadFull(r, buf); err != nil {
			return errors.Wrap(err, "strtab: load: short record")
		}
		t.Intern(string(buf))
	}
}
