package tokenize

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// Options configures a tokenizer. The three matcher fields hold regex
// sources as delivered by the language data (see subpackage langdata);
// an empty source disables that matcher. Specials are applied in
// order. Seeds force feature payloads for the given surface forms
// before any special is interned.
type Options struct {
	Prefix   string
	Suffix   string
	Infix    string
	Specials []SpecialRule
	Seeds    map[string]Payload
}

// Tokenizer converts text into a token sequence. One instance serves
// one call at a time; lexicon insertions and cache writes are not
// synchronized internally.
type Tokenizer struct {
	lexicon *Lexicon
	rules   *Rules
	cache   map[Fingerprint][]*Lexeme
}

// New compiles the rule set and preseeds the special table and the
// cache. A nil lexicon gets a fresh one. Rule compilation errors fail
// construction; a tokenizer is never observed half-initialized.
func New(lexicon *Lexicon, opts Options) (*Tokenizer, error) {
	if lexicon == nil {
		lexicon = NewLexicon(nil)
	}
	rules, err := CompileRules(opts.Prefix, opts.Suffix, opts.Infix)
	if err != nil {
		return nil, err
	}
	t := &Tokenizer{
		lexicon: lexicon,
		rules:   rules,
		cache:   make(map[Fingerprint][]*Lexeme),
	}
	// Seed payloads in sorted order so ordinals are reproducible
	// across runs with the same data.
	surfaces := make([]string, 0, len(opts.Seeds))
	for surface := range opts.Seeds {
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)
	for _, surface := range surfaces {
		lexicon.Set(surface, opts.Seeds[surface])
	}
	for _, rule := range opts.Specials {
		t.AddSpecial(rule.Chunk, rule.Tokens)
	}
	tracer().Infof("tokenizer ready: %d specials, %d lexemes",
		len(opts.Specials), lexicon.Len())
	return t, nil
}

// Lexicon returns the lexicon this tokenizer interns into.
func (t *Tokenizer) Lexicon() *Lexicon {
	return t.lexicon
}

// AddSpecial pins the tokenization of chunk to the given expansion,
// interning every expansion string. The rule lands in both the special
// table and the cache, so it wins over any affix/infix tokenization.
func (t *Tokenizer) AddSpecial(chunk string, expansion []string) {
	vec := make([]*Lexeme, 0, len(expansion)+1)
	for _, s := range expansion {
		vec = append(vec, t.lexicon.GetString(s))
	}
	vec = append(vec, nil)
	fp := Hash(chunk)
	t.rules.setSpecial(fp, vec)
	t.cache[fp] = vec
}

// CachedChunks returns the number of distinct chunks resolved so far,
// preseeded specials included.
func (t *Tokenizer) CachedChunks() int {
	return len(t.cache)
}

// Tokenize converts text into tokens. Empty input yields an empty
// sequence. The error return is reserved for resource exhaustion; no
// input is rejected.
func (t *Tokenizer) Tokenize(text string) (*Tokens, error) {
	tokens := NewTokens(len(text)/4 + 1)
	if text == "" {
		return tokens, nil
	}
	first, _ := utf8.DecodeRuneInString(text)
	inWS := unicode.IsSpace(first)
	start := 0
	for i, r := range text {
		isWS := unicode.IsSpace(r)
		if isWS == inWS {
			continue
		}
		if i > start {
			t.tokenizeChunk(tokens, text[start:i], start)
		}
		start = i
		if r == ' ' {
			// A single literal space separates chunks; it becomes a
			// trailing-space flag instead of a token of its own.
			start = i + 1
			tokens.markTrailingSpace()
		}
		inWS = isWS
	}
	if start < len(text) {
		t.tokenizeChunk(tokens, text[start:], start)
	}
	return tokens, nil
}

// tokenizeChunk resolves one whitespace-delimited chunk: cache hit
// (specials are preseeded there) or full affix tokenization plus
// cache write-back.
func (t *Tokenizer) tokenizeChunk(tokens *Tokens, chunk string, offset int) {
	fp := Hash(chunk)
	if vec, ok := t.cache[fp]; ok {
		tokens.Extend(offset, vec, 0)
		return
	}
	mark := tokens.Len()
	s, prefixes, suffixes := t.splitAffixes(chunk)
	t.attachTokens(tokens, s, offset, prefixes, suffixes)
	t.saveCached(tokens, mark, fp)
}

// splitAffixes peels regex-matched prefixes and suffixes off chunk
// until the remainder stops shrinking. When stripping one affix
// exposes a known special case, peeling stops immediately so the
// special expansion applies to the remainder. Every stripped affix is
// interned; prefixes come back in emission order, suffixes in reverse
// emission order.
func (t *Tokenizer) splitAffixes(chunk string) (s string, prefixes, suffixes []*Lexeme) {
	s = chunk
	for s != "" {
		preLen := t.rules.PrefixLen(s)
		if preLen > 0 {
			minusPre := s[preLen:]
			if minusPre != "" && t.rules.isSpecial(Hash(minusPre)) {
				prefixes = append(prefixes, t.lexicon.GetString(s[:preLen]))
				s = minusPre
				break
			}
		}
		sufLen := t.rules.SuffixLen(s)
		if sufLen > 0 {
			minusSuf := s[:len(s)-sufLen]
			if minusSuf != "" && t.rules.isSpecial(Hash(minusSuf)) {
				suffixes = append(suffixes, t.lexicon.GetString(s[len(s)-sufLen:]))
				s = minusSuf
				break
			}
		}
		before := len(s)
		switch {
		case preLen > 0 && sufLen > 0 && preLen+sufLen <= len(s):
			prefixes = append(prefixes, t.lexicon.GetString(s[:preLen]))
			suffixes = append(suffixes, t.lexicon.GetString(s[len(s)-sufLen:]))
			s = s[preLen : len(s)-sufLen]
		case preLen > 0:
			prefixes = append(prefixes, t.lexicon.GetString(s[:preLen]))
			s = s[preLen:]
		case sufLen > 0:
			suffixes = append(suffixes, t.lexicon.GetString(s[len(s)-sufLen:]))
			s = s[:len(s)-sufLen]
		}
		if len(s) == before {
			break // fixed point: neither matcher made progress
		}
		if s != "" && t.rules.isSpecial(Hash(s)) {
			break
		}
	}
	return s, prefixes, suffixes
}

// attachTokens emits prefixes, the residual (cached, whole, or split
// once at the first infix match), then the suffixes last-in-first-out.
func (t *Tokenizer) attachTokens(tokens *Tokens, s string, offset int, prefixes, suffixes []*Lexeme) int {
	for _, lex := range prefixes {
		offset = tokens.PushBack(offset, lex)
	}
	if s != "" {
		if vec, ok := t.cache[Hash(s)]; ok {
			offset = tokens.Extend(offset, vec, 0)
		} else if cut := t.rules.InfixIndex(s); cut > 0 {
			// One split only; the right half is not revisited.
			_, w := utf8.DecodeRuneInString(s[cut:])
			offset = tokens.PushBack(offset, t.lexicon.GetString(s[:cut]))
			offset = tokens.PushBack(offset, t.lexicon.GetString(s[cut:cut+w]))
			if cut+w < len(s) {
				offset = tokens.PushBack(offset, t.lexicon.GetString(s[cut+w:]))
			}
		} else {
			offset = tokens.PushBack(offset, t.lexicon.GetString(s))
		}
	}
	for i := len(suffixes) - 1; i >= 0; i-- {
		offset = tokens.PushBack(offset, suffixes[i])
	}
	return offset
}

// saveCached records the tokens emitted since mark under the chunk's
// original fingerprint, as a nil-terminated vector with the terminator
// at position n.
func (t *Tokenizer) saveCached(tokens *Tokens, mark int, fp Fingerprint) {
	n := tokens.Len() - mark
	assertInvariant(n >= 0, "token sink shrank during chunk tokenization")
	if n == 0 {
		return
	}
	vec := make([]*Lexeme, n+1)
	for i := 0; i < n; i++ {
		vec[i] = tokens.At(mark + i).Lex
	}
	vec[n] = nil
	t.cache[fp] = vec
	tracer().Debugf("cached %d tokens for chunk %#x", n, uint64(fp))
}
