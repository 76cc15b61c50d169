package terms

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/unicode/norm"
)

const (
	// phoneticThreshold is the minimum Jaro-Winkler score for a candidate
	// that already overlaps phonetically (Double Metaphone) with the input.
	phoneticThreshold = 0.70
	// fuzzyThreshold is the stricter score required when there is no
	// phonetic overlap and only string similarity supports the match.
	fuzzyThreshold = 0.85
	// minFuzzyRunes guards short common words from fuzzy correction;
	// only longer words are plausibly garbled philosophical terms.
	minFuzzyRunes = 6
)

// FuzzyMatch attempts to map word onto a canonical term from the
// dictionary's Phonetic entries. Candidates are first filtered by Double
// Metaphone code overlap and then ranked by Jaro-Winkler similarity on
// the accent-stripped strings. When matched is false, corrected equals
// word unchanged and confidence is 0.
func (d *Dictionary) FuzzyMatch(word string) (corrected string, confidence float64, matched bool) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < minFuzzyRunes || len(d.canonical) == 0 {
		return word, 0, false
	}

	input := normalize(trimmed)
	inputTokens := strings.Fields(input)
	inputCodes := codesFor(inputTokens)

	type candidate struct {
		term     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, term := range d.canonical {
		termNorm := normalize(term)
		termTokens := strings.Fields(termNorm)

		phonetic := codesOverlap(inputCodes, codesFor(termTokens))
		score := bestSimilarity(inputTokens, termTokens, input, termNorm)

		if phonetic {
			if score >= phoneticThreshold && (!best.phonetic || score > best.score) {
				best = candidate{term: term, score: score, phonetic: true}
			}
		} else if !best.phonetic && score >= fuzzyThreshold && score > best.score {
			best = candidate{term: term, score: score, phonetic: false}
		}
	}

	if best.term == "" || normalize(best.term) == input {
		return word, 0, false
	}
	return best.term, best.score, true
}

// CorrectFuzzy applies FuzzyMatch to every word of text that the exact
// table left untouched, preserving the capitalization of each span the
// same way Correct does. Punctuation attached to a word is kept in place.
func (d *Dictionary) CorrectFuzzy(text string) (string, []Applied) {
	if text == "" {
		return text, nil
	}
	var applied []Applied
	var b strings.Builder
	pos := 0

	for _, field := range strings.Fields(text) {
		start := strings.Index(text[pos:], field) + pos
		b.WriteString(text[pos:start])

		core, lead, trail := stripPunct(field)
		if repl, _, ok := d.FuzzyMatch(core); ok {
			cased := d.matchCase(core, repl)
			b.WriteString(lead)
			b.WriteString(cased)
			b.WriteString(trail)
			applied = append(applied, Applied{Pattern: core, Replacement: cased, Position: start})
		} else {
			b.WriteString(field)
		}
		pos = start + len(field)
	}
	b.WriteString(text[pos:])
	return b.String(), applied
}

// stripPunct splits leading and trailing non-letter runes off a token.
func stripPunct(token string) (core, lead, trail string) {
	start := 0
	for start < len(token) {
		r, size := utf8.DecodeRuneInString(token[start:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		start += size
	}
	end := len(token)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(token[:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end -= size
	}
	return token[start:end], token[:start], token[end:]
}

// normalize lowercases and strips combining marks so accents never decide
// a fuzzy match ("metafisica" and "metafísica" normalize identically).
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// codesFor returns the union of Double Metaphone codes for the tokens.
func codesFor(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestSimilarity computes the highest Jaro-Winkler score between input
// and term across three strategies: full strings, space-stripped strings,
// and best pairwise token score.
func bestSimilarity(inputTokens, termTokens []string, inputFull, termFull string) float64 {
	score := matchr.JaroWinkler(inputFull, termFull, false)

	if len(inputTokens) > 1 || len(termTokens) > 1 {
		if s := matchr.JaroWinkler(strings.Join(inputTokens, ""), strings.Join(termTokens, ""), false); s > score {
			score = s
		}
	}

	for _, it := range inputTokens {
		for _, tt := range termTokens {
			if s := matchr.JaroWinkler(it, tt, false); s > score {
				score = s
			}
		}
	}
	return score
}
