package tokenize

import (
	"encoding/binary"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Orthographic flag bits in payload byte 0.
const (
	FlagAlpha = 1 << iota
	FlagDigit
	FlagLower
	FlagUpper
	FlagTitle
	FlagPunct
	FlagSpace
	FlagASCII
)

// ComputeFeatures builds the default feature payload for a surface
// form. Layout:
//
//	[0]     orthographic flags
//	[1:5]   first rune, little-endian
//	[5:9]   last rune, little-endian
//	[9:13]  low 32 bits of the lowercase form's fingerprint
//	[13:16] unused, zero
//
// The tokenizer core treats the result as opaque bytes; callers that
// need a different feature set supply their own payloads via
// Lexicon.Set.
func ComputeFeatures(surface string) Payload {
	var p Payload
	if surface == "" {
		return p
	}
	var flags byte = FlagAlpha | FlagASCII
	lower, upper, title := true, true, true
	digit, punct, space := true, true, true
	for i, r := range surface {
		if !unicode.IsLetter(r) {
			flags &^= FlagAlpha
		}
		if r >= utf8.RuneSelf {
			flags &^= FlagASCII
		}
		if !unicode.IsDigit(r) {
			digit = false
		}
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			punct = false
		}
		if !unicode.IsSpace(r) {
			space = false
		}
		if unicode.IsLetter(r) {
			if !unicode.IsLower(r) {
				lower = false
			}
			if !unicode.IsUpper(r) {
				upper = false
			}
			if i == 0 && !unicode.IsUpper(r) {
				title = false
			}
			if i > 0 && !unicode.IsLower(r) {
				title = false
			}
		}
	}
	if flags&FlagAlpha != 0 {
		if lower {
			flags |= FlagLower
		}
		if upper {
			flags |= FlagUpper
		}
		if title {
			flags |= FlagTitle
		}
	}
	if digit {
		flags |= FlagDigit
	}
	if punct {
		flags |= FlagPunct
	}
	if space {
		flags |= FlagSpace
	}
	p[0] = flags
	first, _ := utf8.DecodeRuneInString(surface)
	last, _ := utf8.DecodeLastRuneInString(surface)
	binary.LittleEndian.PutUint32(p[1:5], uint32(first))
	binary.LittleEndian.PutUint32(p[5:9], uint32(last))
	binary.LittleEndian.PutUint32(p[9:13], uint32(Hash(strings.ToLower(surface))))
	return p
}
