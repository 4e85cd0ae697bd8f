package tokenize

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/textkit/tokenize/strtab"
)

// PayloadSize is the fixed width of a lexeme's feature payload. The
// core never interprets the bytes; see features.go for the default
// producer.
const PayloadSize = 16

// Payload is the opaque per-lexeme feature block.
type Payload [PayloadSize]byte

// Lexeme is the unique record for one surface form. Records are
// allocated inside the lexicon's arena and never move, so a *Lexeme
// stays valid for the lexicon's whole lifetime. Ordinal and
// fingerprint are immutable after insertion; only the payload may be
// replaced, through Lexicon.Set.
type Lexeme struct {
	Ordinal uint32      // dense, 1-based insertion index; 0 is reserved
	Fp      Fingerprint // content hash of the surface form
	Surface strtab.ID   // surface form in the string store
	Length  uint32      // surface length in bytes
	Payload Payload
}

const lexemeSlabSize = 256

// Lexicon is an append-only interner from fingerprint to lexeme.
// Records live in slab-allocated arrays owned by the lexicon; slabs
// are never reallocated, which keeps handed-out pointers stable.
// Not safe for concurrent use.
type Lexicon struct {
	strings   *strtab.Table
	byFp      map[Fingerprint]*Lexeme
	byOrdinal []*Lexeme // [0] reserved, always nil
	slabs     [][]Lexeme
}

// NewLexicon creates an empty lexicon backed by the given string
// store. A nil store gets replaced by a fresh one.
func NewLexicon(strings *strtab.Table) *Lexicon {
	if strings == nil {
		strings = strtab.New()
	}
	return &Lexicon{
		strings:   strings,
		byFp:      make(map[Fingerprint]*Lexeme),
		byOrdinal: make([]*Lexeme, 1, 1+lexemeSlabSize),
	}
}

// Strings exposes the backing string store.
func (lx *Lexicon) Strings() *strtab.Table {
	return lx.strings
}

func (lx *Lexicon) alloc() *Lexeme {
	if len(lx.slabs) == 0 || len(lx.slabs[len(lx.slabs)-1]) == lexemeSlabSize {
		lx.slabs = append(lx.slabs, make([]Lexeme, 0, lexemeSlabSize))
	}
	slab := &lx.slabs[len(lx.slabs)-1]
	*slab = append(*slab, Lexeme{})
	return &(*slab)[len(*slab)-1]
}

func (lx *Lexicon) insert(v StringView, payload Payload) *Lexeme {
	lex := lx.alloc()
	lex.Ordinal = uint32(len(lx.byOrdinal))
	lex.Fp = v.Fp
	lex.Surface = lx.strings.Intern(v.Text)
	lex.Length = uint32(len(v.Text))
	lex.Payload = payload
	lx.byOrdinal = append(lx.byOrdinal, lex)
	lx.byFp[v.Fp] = lex
	return lex
}

// Get returns the record for the view's fingerprint, interning a new
// one (with the default feature payload) on first sight.
func (lx *Lexicon) Get(v StringView) *Lexeme {
	if lex, ok := lx.byFp[v.Fp]; ok {
		return lex
	}
	return lx.insert(v, ComputeFeatures(v.Text))
}

// GetString is Get over a plain string.
func (lx *Lexicon) GetString(s string) *Lexeme {
	return lx.Get(View(s))
}

// Set forces the payload of the record for surface, creating the
// record first if absent. The ordinal is preserved.
func (lx *Lexicon) Set(surface string, payload Payload) *Lexeme {
	v := View(surface)
	if lex, ok := lx.byFp[v.Fp]; ok {
		lex.Payload = payload
		return lex
	}
	return lx.insert(v, payload)
}

// Lookup returns a by-value copy of the record for surface.
func (lx *Lexicon) Lookup(surface string) (Lexeme, bool) {
	if lex, ok := lx.byFp[Hash(surface)]; ok {
		return *lex, true
	}
	return Lexeme{}, false
}

// Contains reports whether a record exists for fp.
func (lx *Lexicon) Contains(fp Fingerprint) bool {
	_, ok := lx.byFp[fp]
	return ok
}

// ByOrdinal returns the record with the given 1-based ordinal.
func (lx *Lexicon) ByOrdinal(ord uint32) (*Lexeme, bool) {
	if ord == 0 || int(ord) >= len(lx.byOrdinal) {
		return nil, false
	}
	return lx.byOrdinal[ord], true
}

// Len returns the number of records, the reserved 0-th excluded.
func (lx *Lexicon) Len() int {
	return len(lx.byOrdinal) - 1
}

// SurfaceOf resolves a lexeme's surface form through the string store.
func (lx *Lexicon) SurfaceOf(lex *Lexeme) string {
	return lx.strings.MustGet(lex.Surface)
}

// lexemeRecord is the on-disk layout: fixed-size little-endian fields,
// no framing. Field order and widths must not change, or dumped
// lexicons stop loading.
type lexemeRecord struct {
	Ordinal uint32
	Surface uint32
	Length  uint32
	Fp      uint64
	Payload Payload
}

// Dump writes every record except the reserved 0-th to path, in
// ordinal order. End of data is implicit; there is no header or
// trailer.
func (lx *Lexicon) Dump(path string) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return errors.Errorf("lexicon: %s is a directory", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "lexicon: dump")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, lex := range lx.byOrdinal[1:] {
		rec := lexemeRecord{
			Ordinal: lex.Ordinal,
			Surface: uint32(lex.Surface),
			Length:  lex.Length,
			Fp:      uint64(lex.Fp),
			Payload: lex.Payload,
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return errors.Wrap(err, "lexicon: dump")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "lexicon: dump")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "lexicon: dump")
	}
	tracer().Infof("lexicon dump: %d records to %s", lx.Len(), path)
	return nil
}

// Load reads records dumped by Dump until a short read ends the
// stream, appending each to the arena and indexing it by its stored
// fingerprint. The lexicon must be empty; ordinals come out dense from
// 1 in file order, which matches the dumping lexicon's.
func (lx *Lexicon) Load(path string) error {
	if lx.Len() > 0 {
		return errors.New("lexicon: load into non-empty lexicon")
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "lexicon: load")
	}
	defer f.Close()
	r := bufio.NewReader(f)
	n := 0
	for {
		var rec lexemeRecord
		err := binary.Read(r, binary.LittleEndian, &rec)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break // short read: end of stream
		}
		if err != nil {
			return errors.Wrap(err, "lexicon: load")
		}
		lex := lx.alloc()
		lex.Ordinal = uint32(len(lx.byOrdinal))
		lex.Fp = Fingerprint(rec.Fp)
		lex.Surface = strtab.ID(rec.Surface)
		lex.Length = rec.Length
		lex.Payload = rec.Payload
		if rec.Ordinal != lex.Ordinal {
			tracer().Errorf("lexicon load: record %d carries ordinal %d", lex.Ordinal, rec.Ordinal)
		}
		lx.byOrdinal = append(lx.byOrdinal, lex)
		lx.byFp[lex.Fp] = lex
		n++
	}
	tracer().Infof("lexicon load: %d records from %s", n, path)
	return nil
}
