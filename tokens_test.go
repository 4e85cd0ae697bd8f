package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensExtendCountsNilTerminated(t *testing.T) {
	lx := NewLexicon(nil)
	vec := []*Lexeme{lx.GetString("are"), lx.GetString("not"), nil}
	ts := NewTokens(4)
	next := ts.Extend(10, vec, 0)
	require.Equal(t, 2, ts.Len())
	assert.Equal(t, 10, ts.At(0).Start)
	assert.Equal(t, 13, ts.At(1).Start)
	assert.Equal(t, 16, next)
}

func TestTokensExtendExplicitLength(t *testing.T) {
	lx := NewLexicon(nil)
	vec := []*Lexeme{lx.GetString("ab"), lx.GetString("cde"), lx.GetString("f")}
	ts := NewTokens(4)
	next := ts.Extend(0, vec, 2)
	require.Equal(t, 2, ts.Len())
	assert.Equal(t, 5, next)
}

func TestTokensPushBackReturnsNextOffset(t *testing.T) {
	lx := NewLexicon(nil)
	ts := NewTokens(2)
	next := ts.PushBack(3, lx.GetString("für"))
	assert.Equal(t, 3+len("für"), next)
	assert.Equal(t, 1, ts.Len())
}

func TestTokensTextWithSpaces(t *testing.T) {
	lx := NewLexicon(nil)
	ts := NewTokens(3)
	ts.PushBack(0, lx.GetString("hello"))
	ts.markTrailingSpace()
	ts.PushBack(6, lx.GetString("world"))
	assert.Equal(t, "hello world", ts.Text(lx))
	assert.Equal(t, []string{"hello", "world"}, ts.Surfaces(lx))
}

func TestMarkTrailingSpaceOnEmptySink(t *testing.T) {
	ts := NewTokens(0)
	ts.markTrailingSpace() // must not panic
	assert.Equal(t, 0, ts.Len())
}
