package tokenize

import "strings"

// Token is one occurrence of a lexeme in the output sequence. Start is
// the byte offset of the surface form in the input; for the tokens of a
// special-case expansion it is the chunk's offset plus the lengths of
// the preceding expansion surfaces, which need not occur in the input
// at that position. Space records that
// a single literal space followed the token and was consumed by the
// segmenter.
type Token struct {
	Lex   *Lexeme
	Start int
	Space bool
}

// Tokens is the output sink of a tokenize call. It borrows the lexeme
// references it holds; they stay valid as long as the lexicon lives.
type Tokens struct {
	toks []Token
}

// NewTokens creates an empty sink with room for capHint tokens.
func NewTokens(capHint int) *Tokens {
	return &Tokens{toks: make([]Token, 0, capHint)}
}

// Extend appends a contiguous run of lexemes starting at byte offset
// start. n gives the run length; n == 0 means the vector is
// nil-terminated, count it. Returns the offset following the run.
func (ts *Tokens) Extend(start int, vec []*Lexeme, n int) int {
	if n == 0 {
		for _, lex := range vec {
			if lex == nil {
				break
			}
			n++
		}
	}
	next := start
	for _, lex := range vec[:n] {
		ts.toks = append(ts.toks, Token{Lex: lex, Start: next})
		next += int(lex.Length)
	}
	return next
}

// PushBack appends a single lexeme at byte offset start and returns
// the offset following it.
func (ts *Tokens) PushBack(start int, lex *Lexeme) int {
	ts.toks = append(ts.toks, Token{Lex: lex, Start: start})
	return start + int(lex.Length)
}

// Len returns the number of emitted tokens.
func (ts *Tokens) Len() int {
	return len(ts.toks)
}

// At returns token i.
func (ts *Tokens) At(i int) Token {
	return ts.toks[i]
}

// markTrailingSpace flags the most recent token as followed by a
// literal space. No-op on an empty sink.
func (ts *Tokens) markTrailingSpace() {
	if len(ts.toks) > 0 {
		ts.toks[len(ts.toks)-1].Space = true
	}
}

// Surfaces resolves all token surface forms through lx, in emission
// order.
func (ts *Tokens) Surfaces(lx *Lexicon) []string {
	out := make([]string, len(ts.toks))
	for i, tok := range ts.toks {
		out[i] = lx.SurfaceOf(tok.Lex)
	}
	return out
}

// Text concatenates every surface form in order, with a space after
// each token whose Space flag is set. This reproduces the tokenized
// input, except where a special-case expansion's surfaces differ from
// its chunk: such a chunk comes back as the expansion ("ain't" as
// "arenot"), not as the original text.
func (ts *Tokens) Text(lx *Lexicon) string {
	var sb strings.Builder
	for _, tok := range ts.toks {
		sb.WriteString(lx.SurfaceOf(tok.Lex))
		if tok.Space {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
