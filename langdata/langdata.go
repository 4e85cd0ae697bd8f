/*
Package langdata loads per-language tokenizer data from a conventional
directory layout:

	<root>/<lang>/tokenization   special-case rules (YAML)
	<root>/<lang>/prefix         prefix regex source (plain text)
	<root>/<lang>/suffix         suffix regex source (plain text)
	<root>/<lang>/infix          infix regex source (plain text)
	<root>/<lang>/lexemes        lexeme seeds (YAML)
	<root>/<lang>/strings        string store dump (see package strtab)

The tokenization file is a YAML list:

	- chunk: "ain't"
	  tokens: ["are", "not"]
	- chunk: "U.S."
	  tokens: ["U.S."]

The lexemes file maps surface forms to an attribute block; an empty
block seeds the default feature payload, an explicit payload overrides
it byte for byte:

	are: {}
	not: {payload: "0b6e6f74..."}

All files are optional; a missing file simply contributes nothing.
Parsing and I/O failures propagate wrapped with file context.
*/
package langdata

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/textkit/tokenize"
	"github.com/textkit/tokenize/strtab"
)

// Data is the loaded rule set for one language, ready to turn into
// tokenize.Options.
type Data struct {
	Lang     string
	Prefix   string
	Suffix   string
	Infix    string
	Specials []tokenize.SpecialRule
	Seeds    map[string]tokenize.Payload
}

// Option adjusts loading behavior.
type Option func(*loader)

type loader struct {
	nfc bool
}

// WithNFC normalizes every loaded surface form, chunk and expansion
// string to NFC. Off by default: normalization changes fingerprints,
// so it must match what the inputs will look like at runtime.
func WithNFC() Option {
	return func(l *loader) { l.nfc = true }
}

type specialEntry struct {
	Chunk  string   `yaml:"chunk"`
	Tokens []string `yaml:"tokens"`
}

type seedEntry struct {
	Payload string `yaml:"payload,omitempty"`
}

// Load reads the data directory for lang under root.
func Load(root, lang string, opts ...Option) (*Data, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}
	dir := filepath.Join(root, lang)
	if fi, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, "langdata: no data for %q", lang)
	} else if !fi.IsDir() {
		return nil, errors.Errorf("langdata: %s is not a directory", dir)
	}
	d := &Data{Lang: lang, Seeds: make(map[string]tokenize.Payload)}
	var err error
	if d.Prefix, err = l.readRegex(filepath.Join(dir, "prefix")); err != nil {
		return nil, err
	}
	if d.Suffix, err = l.readRegex(filepath.Join(dir, "suffix")); err != nil {
		return nil, err
	}
	if d.Infix, err = l.readRegex(filepath.Join(dir, "infix")); err != nil {
		return nil, err
	}
	if err = l.readSpecials(filepath.Join(dir, "tokenization"), d); err != nil {
		return nil, err
	}
	if err = l.readSeeds(filepath.Join(dir, "lexemes"), d); err != nil {
		return nil, err
	}
	return d, nil
}

func (l *loader) readRegex(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "langdata: %s", path)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (l *loader) readSpecials(path string, d *Data) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "langdata: %s", path)
	}
	var entries []specialEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return errors.Wrapf(err, "langdata: %s", path)
	}
	for _, e := range entries {
		rule := tokenize.SpecialRule{Chunk: l.clean(e.Chunk)}
		for _, tok := range e.Tokens {
			rule.Tokens = append(rule.Tokens, l.clean(tok))
		}
		d.Specials = append(d.Specials, rule)
	}
	return nil
}

func (l *loader) readSeeds(path string, d *Data) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "langdata: %s", path)
	}
	var entries map[string]seedEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return errors.Wrapf(err, "langdata: %s", path)
	}
	for surface, e := range entries {
		surface = l.clean(surface)
		if e.Payload == "" {
			d.Seeds[surface] = tokenize.ComputeFeatures(surface)
			continue
		}
		decoded, err := hex.DecodeString(e.Payload)
		if err != nil || len(decoded) > tokenize.PayloadSize {
			return errors.Errorf("langdata: %s: bad payload for %q", path, surface)
		}
		var p tokenize.Payload
		copy(p[:], decoded)
		d.Seeds[surface] = p
	}
	return nil
}

func (l *loader) clean(s string) string {
	if l.nfc {
		return norm.NFC.String(s)
	}
	return s
}

// Options converts the loaded data into tokenizer options.
func (d *Data) Options() tokenize.Options {
	return tokenize.Options{
		Prefix:   d.Prefix,
		Suffix:   d.Suffix,
		Infix:    d.Infix,
		Specials: d.Specials,
		Seeds:    d.Seeds,
	}
}

// NewTokenizer loads lang from root and builds a tokenizer over a
// fresh lexicon. When the data directory carries a strings dump, it is
// loaded into the string store first so interned IDs line up with a
// previously dumped lexicon.
func NewTokenizer(root, lang string, opts ...Option) (*tokenize.Tokenizer, error) {
	d, err := Load(root, lang, opts...)
	if err != nil {
		return nil, err
	}
	table := strtab.New()
	stringsPath := filepath.Join(root, lang, "strings")
	if _, err := os.Stat(stringsPath); err == nil {
		if err := table.Load(stringsPath); err != nil {
			return nil, err
		}
	}
	return tokenize.New(tokenize.NewLexicon(table), d.Options())
}

// Languages lists the languages available under root, sorted.
func Languages(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, "langdata")
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs, nil
}
