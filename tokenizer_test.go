package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New(nil, Options{
		Suffix: `\.|,`,
		Infix:  `-`,
		Specials: []SpecialRule{
			{Chunk: "ain't", Tokens: []string{"are", "not"}},
			{Chunk: "U.S.", Tokens: []string{"U.S."}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func surfaces(t *testing.T, tok *Tokenizer, input string) []string {
	t.Helper()
	tokens, err := tok.Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}
	return tokens.Surfaces(tok.Lexicon())
}

func TestTokenizeScenarios(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"hello", []string{"hello"}},
		{"hello, world.", []string{"hello", ",", "world", "."}},
		{"ain't", []string{"are", "not"}},
		{"U.S.", []string{"U.S."}},
		{"state-of-the-art.", []string{"state", "-", "of-the-art", "."}},
	}
	tok := newTestTokenizer(t)
	for _, c := range cases {
		got := surfaces(t, tok, c.input)
		if len(got) != len(c.want) {
			t.Fatalf("%q: got %v, want %v", c.input, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q: got %v, want %v", c.input, got, c.want)
			}
		}
	}
}

func TestTokenizePrefix(t *testing.T) {
	tok, err := New(nil, Options{
		Prefix: `"|\(`,
		Suffix: `"|\)|\.`,
		Specials: []SpecialRule{
			{Chunk: "ain't", Tokens: []string{"are", "not"}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		input string
		want  []string
	}{
		{`(hello)`, []string{"(", "hello", ")"}},
		// Peeling one affix exposes the special case and escapes the
		// loop so the expansion applies to the remainder.
		{`"ain't`, []string{`"`, "are", "not"}},
		{`ain't"`, []string{"are", "not", `"`}},
	}
	for _, c := range cases {
		got := surfaces(t, tok, c.input)
		if len(got) != len(c.want) {
			t.Fatalf("%q: got %v, want %v", c.input, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q: got %v, want %v", c.input, got, c.want)
			}
		}
	}
}

func TestOffsetsMonotonic(t *testing.T) {
	tok := newTestTokenizer(t)
	for _, input := range []string{
		"hello, world.", "ain't  it grand.", "a\tb   c", "state-of-the-art.",
	} {
		tokens, err := tok.Tokenize(input)
		require.NoError(t, err)
		prev := 0
		for i := 0; i < tokens.Len(); i++ {
			assert.GreaterOrEqual(t, tokens.At(i).Start, prev, "input %q token %d", input, i)
			prev = tokens.At(i).Start
		}
	}
}

func TestWhitespacePreserved(t *testing.T) {
	tok := newTestTokenizer(t)
	for _, input := range []string{
		"", "hello", "hello world", "hello  world", " lead", "trail ",
		"a\tb", "tabs\t\tand  spaces", "ain't it, grand.", "\n\nx\n",
	} {
		tokens, err := tok.Tokenize(input)
		require.NoError(t, err)
		assert.Equal(t, input, tokens.Text(tok.Lexicon()), "input %q", input)
	}
}

func TestWhitespaceChunksBecomeTokens(t *testing.T) {
	tok := newTestTokenizer(t)
	got := surfaces(t, tok, "a  b\tc")
	require.Equal(t, []string{"a", " ", "b", "\t", "c"}, got)
	// The single separating space is a flag, not a token.
	got = surfaces(t, tok, "a b")
	require.Equal(t, []string{"a", "b"}, got)
}

func TestCacheIdempotent(t *testing.T) {
	tok := newTestTokenizer(t)
	input := "hello, world. ain't state-of-the-art."
	first, err := tok.Tokenize(input)
	require.NoError(t, err)
	interned := tok.Lexicon().Len()
	cached := tok.CachedChunks()

	second, err := tok.Tokenize(input)
	require.NoError(t, err)
	require.Equal(t, first.Len(), second.Len())
	for i := 0; i < first.Len(); i++ {
		assert.Same(t, first.At(i).Lex, second.At(i).Lex, "token %d", i)
		assert.Equal(t, first.At(i).Start, second.At(i).Start, "token %d", i)
	}
	assert.Equal(t, interned, tok.Lexicon().Len(), "second pass must not intern")
	assert.Equal(t, cached, tok.CachedChunks(), "second pass must not cache")
}

func TestSpecialPriority(t *testing.T) {
	// Without the special, the suffix rule strips the trailing period.
	tok := newTestTokenizer(t)
	require.Equal(t, []string{"U.S."}, surfaces(t, tok, "U.S."))
	require.Equal(t, []string{"U.S.", "U.S."}, surfaces(t, tok, "U.S. U.S."))

	plain, err := New(nil, Options{Suffix: `\.|,`})
	require.NoError(t, err)
	require.Equal(t, []string{"U.S", "."}, surfaces(t, plain, "U.S."))
}

func TestInfixSplitsOnce(t *testing.T) {
	tok := newTestTokenizer(t)
	got := surfaces(t, tok, "one-two-three")
	require.Equal(t, []string{"one", "-", "two-three"}, got)
	// An infix match at offset 0 is treated as no usable split.
	got = surfaces(t, tok, "-abc")
	require.Equal(t, []string{"-abc"}, got)
}

func TestSeedsForcePayloads(t *testing.T) {
	var p Payload
	p[0] = 0x7f
	tok, err := New(nil, Options{Seeds: map[string]Payload{"hello": p}})
	require.NoError(t, err)
	lex, ok := tok.Lexicon().Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, p, lex.Payload)
	// Tokenizing the surface later reuses the seeded record.
	_, err = tok.Tokenize("hello")
	require.NoError(t, err)
	again, _ := tok.Lexicon().Lookup("hello")
	assert.Equal(t, lex.Ordinal, again.Ordinal)
	assert.Equal(t, p, again.Payload)
}

func TestBadRuleFailsConstruction(t *testing.T) {
	_, err := New(nil, Options{Prefix: `(`})
	require.Error(t, err)
	_, err = New(nil, Options{Suffix: `[z-a]`})
	require.Error(t, err)
	_, err = New(nil, Options{Infix: `*`})
	require.Error(t, err)
}
