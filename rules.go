package tokenize

import (
	"fmt"
	"regexp"
)

// SpecialRule pins the tokenization of one exact chunk, e.g.
// {"ain't", ["are", "not"]}. Specials override affix and infix rules.
type SpecialRule struct {
	Chunk  string
	Tokens []string
}

// Rules bundles the compiled affix matchers with the special-case
// table. The three matchers are pure; the special table is populated
// once at tokenizer construction and never evicted.
type Rules struct {
	prefix   *regexp.Regexp
	suffix   *regexp.Regexp
	infix    *regexp.Regexp
	specials map[Fingerprint][]*Lexeme
}

// CompileRules compiles the three matcher sources. An empty source
// disables the corresponding matcher. A malformed source fails the
// whole compilation; there is no partially usable rule set.
func CompileRules(prefix, suffix, infix string) (*Rules, error) {
	r := &Rules{specials: make(map[Fingerprint][]*Lexeme)}
	if prefix != "" {
		re, err := regexp.Compile("^(?:" + prefix + ")")
		if err != nil {
			return nil, fmt.Errorf("tokenize: prefix rule: %w", err)
		}
		r.prefix = re
	}
	if suffix != "" {
		re, err := regexp.Compile("(?:" + suffix + ")$")
		if err != nil {
			return nil, fmt.Errorf("tokenize: suffix rule: %w", err)
		}
		r.suffix = re
	}
	if infix != "" {
		re, err := regexp.Compile(infix)
		if err != nil {
			return nil, fmt.Errorf("tokenize: infix rule: %w", err)
		}
		r.infix = re
	}
	return r, nil
}

// PrefixLen returns the length of the prefix match anchored at the
// start of s, or 0.
func (r *Rules) PrefixLen(s string) int {
	if r.prefix == nil {
		return 0
	}
	m := r.prefix.FindStringIndex(s)
	if m == nil {
		return 0
	}
	return m[1]
}

// SuffixLen returns the length of the suffix match anchored at the
// end of s, or 0.
func (r *Rules) SuffixLen(s string) int {
	if r.suffix == nil {
		return 0
	}
	m := r.suffix.FindStringIndex(s)
	if m == nil {
		return 0
	}
	return m[1] - m[0]
}

// InfixIndex returns the start offset of the first infix match inside
// s, or 0 if there is none. Callers treat offset 0 as "no usable
// split".
func (r *Rules) InfixIndex(s string) int {
	if r.infix == nil {
		return 0
	}
	m := r.infix.FindStringIndex(s)
	if m == nil {
		return 0
	}
	return m[0]
}

// Special returns the expansion vector for fp, nil-terminated.
func (r *Rules) Special(fp Fingerprint) ([]*Lexeme, bool) {
	vec, ok := r.specials[fp]
	return vec, ok
}

// isSpecial is the lookup used inside the peeling loop, where only
// membership matters.
func (r *Rules) isSpecial(fp Fingerprint) bool {
	_, ok := r.specials[fp]
	return ok
}

func (r *Rules) setSpecial(fp Fingerprint, vec []*Lexeme) {
	r.specials[fp] = vec
}
