// Package terms applies the static correction dictionary for Brazilian
// Portuguese philosophy transcriptions. It fixes recurring transcription
// misspellings of philosophical terms, philosopher names, and Latin/Greek
// expressions via exact whole-word matching, with an optional phonetic
// fuzzy pass for words the exact table does not cover.
//
// The dictionary is immutable after Load and safe for concurrent use.
package terms

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind distinguishes how a dictionary entry participates in matching.
type Kind int

const (
	// Exact entries map a literal misspelling to its canonical form and
	// are applied by whole-word/phrase replacement.
	Exact Kind = iota
	// Phonetic entries name a canonical term that the fuzzy matcher may
	// map close misspellings onto; Pattern and Replacement are identical.
	Phonetic
)

// Entry is a single correction rule. Entries are defined statically in
// data.go and never mutated at runtime.
type Entry struct {
	Pattern     string
	Replacement string
	Kind        Kind
}

// Applied records one correction made by Correct, in application order.
type Applied struct {
	Pattern     string
	Replacement string
	Position    int
}

// Dictionary holds the compiled correction table. Exact entries are kept
// in a fixed priority order: longer patterns first, then lexicographic,
// so a multi-word entry always wins over a shorter one it contains.
type Dictionary struct {
	exact     []Entry
	canonical []string
	upper     cases.Caser
}

// Load compiles the static correction table. It validates the corpus
// invariant that no replacement itself matches another pattern, which is
// what makes Correct idempotent; a violation is a programming error in
// data.go and fails loudly here rather than corrupting text later.
func Load() (*Dictionary, error) {
	return newDictionary(defaultEntries)
}

func newDictionary(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{
		upper: cases.Upper(language.BrazilianPortuguese),
	}
	for _, e := range entries {
		switch e.Kind {
		case Exact:
			if strings.TrimSpace(e.Pattern) == "" || strings.TrimSpace(e.Replacement) == "" {
				return nil, fmt.Errorf("terms: empty pattern or replacement in entry %+v", e)
			}
			d.exact = append(d.exact, e)
		case Phonetic:
			d.canonical = append(d.canonical, e.Replacement)
		default:
			return nil, fmt.Errorf("terms: unknown entry kind %d", e.Kind)
		}
	}

	sort.SliceStable(d.exact, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(d.exact[i].Pattern), utf8.RuneCountInString(d.exact[j].Pattern)
		if li != lj {
			return li > lj
		}
		return d.exact[i].Pattern < d.exact[j].Pattern
	})

	if err := d.checkIdempotence(); err != nil {
		return nil, err
	}
	return d, nil
}

// checkIdempotence verifies that no produced replacement contains a span
// that another pattern would match, so correct(correct(t)) == correct(t).
func (d *Dictionary) checkIdempotence() error {
	for _, e := range d.exact {
		for _, other := range d.exact {
			if pos := findWholeWord(e.Replacement, other.Pattern, 0); pos >= 0 {
				if strings.EqualFold(other.Pattern, other.Replacement) {
					continue
				}
				return fmt.Errorf("terms: replacement %q for %q re-matches pattern %q; dictionary is not idempotent",
					e.Replacement, e.Pattern, other.Pattern)
			}
		}
	}
	return nil
}

// Correct applies every exact entry to text in priority order and returns
// the corrected text together with the ordered list of corrections made.
// Matching is case-insensitive and whole-word/phrase boundary aware;
// unmatched text passes through unchanged. Correct is pure and idempotent.
func (d *Dictionary) Correct(text string) (string, []Applied) {
	if text == "" {
		return text, nil
	}
	var applied []Applied
	for _, e := range d.exact {
		text, applied = d.applyEntry(text, e, applied)
	}
	return text, applied
}

// applyEntry replaces every boundary-delimited occurrence of e.Pattern in
// text, preserving the capitalization pattern of each matched span.
func (d *Dictionary) applyEntry(text string, e Entry, applied []Applied) (string, []Applied) {
	var b strings.Builder
	from := 0
	for {
		pos := findWholeWord(text, e.Pattern, from)
		if pos < 0 {
			break
		}
		end := pos + matchedLen(text[pos:], e.Pattern)
		span := text[pos:end]
		repl := d.matchCase(span, e.Replacement)

		b.WriteString(text[from:pos])
		b.WriteString(repl)
		applied = append(applied, Applied{Pattern: e.Pattern, Replacement: repl, Position: pos})
		from = end
	}
	if from == 0 {
		return text, applied
	}
	b.WriteString(text[from:])
	return b.String(), applied
}

// matchCase transfers the capitalization of the matched span onto the
// canonical replacement: fully uppercase spans produce an uppercase
// replacement, spans with a capitalized first letter capitalize the
// replacement's first letter, anything else keeps the canonical form.
func (d *Dictionary) matchCase(span, replacement string) string {
	if isUpper(span) {
		return d.upper.String(replacement)
	}
	first, _ := utf8.DecodeRuneInString(span)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(replacement)
		return string(unicode.ToUpper(r)) + replacement[size:]
	}
	return replacement
}

// isUpper reports whether s contains at least one letter and no lowercase
// letters.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// findWholeWord returns the byte offset of the first case-insensitive,
// boundary-delimited occurrence of pattern in text at or after from, or
// -1. A boundary is any position not flanked by a letter or digit, so the
// pattern never fires inside a larger word.
func findWholeWord(text, pattern string, from int) int {
	patRunes := utf8.RuneCountInString(pattern)
	if patRunes == 0 {
		return -1
	}
	for i := from; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		if boundaryBefore(text, i) {
			if n := matchedLen(text[i:], pattern); n > 0 && boundaryAfter(text, i+n) {
				return i
			}
		}
		i += size
	}
	return -1
}

// matchedLen returns the byte length of the prefix of s that matches
// pattern case-insensitively rune by rune, or 0 when there is no match.
func matchedLen(s, pattern string) int {
	i := 0
	for _, pr := range pattern {
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr == utf8.RuneError && size <= 1 {
			return 0
		}
		if unicode.ToLower(sr) != unicode.ToLower(pr) {
			return 0
		}
		i += size
	}
	return i
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Len returns the number of exact entries, used by the CLI summary.
func (d *Dictionary) Len() int {
	return len(d.exact)
}
