/*
Package tokenize implements a rule-based tokenizer for natural-language
text, together with an interned lexicon of lexical types.

Input text is segmented at whitespace transitions into chunks. Each
chunk is resolved through a memoization cache keyed by a 64-bit content
fingerprint; on a miss the chunk goes through affix peeling (iterative
removal of regex-matched prefixes and suffixes, with an early escape
when the remainder is a known special case), a single infix split of
the residual, and token assembly. A table of special-case expansions
(e.g. "ain't" => "are", "not") is preseeded into the cache and takes
priority over the generic rules.

Every distinct surface form is interned once into the Lexicon, an
append-only arena of lexeme records with dense 1-based ordinals. The
lexicon persists to a flat file of fixed-size records and loads back
with ordinals intact.

One tokenizer instance processes one input at a time; lexicon
insertion and cache population are not internally synchronized. Wrap
calls in an external lock or hold one tokenizer per goroutine if you
need parallelism.

Per-language rule data (regex sources, special cases, lexeme seeds)
lives outside this package; see subpackage langdata for the on-disk
layout and loader, and subpackage strtab for the string store that
resolves lexeme surface forms.
*/
package tokenize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tokenize'
func tracer() tracing.Trace {
	return tracing.Select("tokenize")
}

func assertInvariant(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
