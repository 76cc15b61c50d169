// Package chunker splits transcription text into ordered, bounded chunks
// for per-chunk model refinement. Splitting respects paragraph and
// sentence boundaries so that a chunk never cuts an argument mid-thought,
// and every chunk records its byte span in the source so the original
// document order is recoverable.
package chunker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects the splitting strategy.
type Mode int

const (
	// ParagraphAware splits on blank-line boundaries and merges small
	// consecutive paragraphs up to the word budget. A single paragraph
	// longer than the budget is kept whole, never force-split.
	ParagraphAware Mode = iota
	// WordCount greedily accumulates words up to the budget and breaks
	// at the nearest following sentence terminator.
	WordCount
)

const (
	// DefaultTargetWords is the default chunk size budget.
	DefaultTargetWords = 800
	// sentenceLookahead bounds how many words past the budget the
	// word-count splitter searches for a sentence terminator before
	// giving up and breaking at a word boundary.
	sentenceLookahead = 50
)

// Chunk is one bounded segment of the source text. Chunks are produced in
// document order; Index is the reassembly position and Start/End are byte
// offsets into the text passed to Split.
type Chunk struct {
	Index     int
	Text      string
	WordCount int
	Start     int
	End       int
}

var paragraphSep = regexp.MustCompile(`\n[ \t]*\n+`)

// Split divides text into chunks of roughly targetWords words using the
// given mode. Empty or whitespace-only input yields nil; input shorter
// than the budget yields exactly one chunk. Every non-whitespace
// character of text appears in exactly one chunk, so concatenating chunk
// texts (normalizing boundary whitespace) reconstructs the input.
func Split(text string, targetWords int, mode Mode) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}

	var chunks []Chunk
	switch mode {
	case ParagraphAware:
		chunks = splitParagraphs(text, targetWords)
	default:
		chunks = splitWords(text, targetWords)
	}

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// span is a half-open byte range within the source text.
type span struct {
	start, end int
}

// splitParagraphs groups blank-line-delimited paragraphs into chunks.
// Paragraphs are merged while the running word count stays within the
// budget; a paragraph that alone exceeds the budget becomes its own
// chunk. Text without any paragraph break falls back to word-count mode.
func splitParagraphs(text string, targetWords int) []Chunk {
	paras := paragraphSpans(text)
	if len(paras) < 2 {
		return splitWords(text, targetWords)
	}

	var chunks []Chunk
	var cur span
	curWords := 0
	flush := func() {
		if curWords == 0 {
			return
		}
		chunks = append(chunks, makeChunk(text, cur))
		curWords = 0
	}

	for _, p := range paras {
		pWords := countWords(text[p.start:p.end])
		if pWords == 0 {
			continue
		}
		if curWords > 0 && curWords+pWords > targetWords {
			flush()
		}
		if curWords == 0 {
			cur = p
		} else {
			cur.end = p.end
		}
		curWords += pWords
		if curWords >= targetWords {
			flush()
		}
	}
	flush()
	return chunks
}

// splitWords accumulates whitespace-delimited words up to the budget and
// then breaks at the first sentence terminator within the look-ahead
// window, or at the word boundary when none is found. The search is
// bounded so splitting never blocks on terminator-free text.
func splitWords(text string, targetWords int) []Chunk {
	words := wordSpans(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []Chunk
	i := 0
	for i < len(words) {
		end := i + targetWords
		if end >= len(words) {
			end = len(words)
		} else {
			cut := end - 1
			found := false
			for j := cut; j < len(words) && j < cut+sentenceLookahead; j++ {
				if endsSentence(text[words[j].start:words[j].end]) {
					cut = j
					found = true
					break
				}
			}
			if found {
				end = cut + 1
			}
		}
		chunks = append(chunks, makeChunk(text, span{words[i].start, words[end-1].end}))
		i = end
	}
	return chunks
}

// paragraphSpans returns the byte spans of blank-line-delimited
// paragraphs, trimmed of surrounding whitespace.
func paragraphSpans(text string) []span {
	var spans []span
	pos := 0
	seps := paragraphSep.FindAllStringIndex(text, -1)
	for _, sep := range seps {
		if s, ok := trimSpan(text, pos, sep[0]); ok {
			spans = append(spans, s)
		}
		pos = sep[1]
	}
	if s, ok := trimSpan(text, pos, len(text)); ok {
		spans = append(spans, s)
	}
	return spans
}

// wordSpans returns the byte spans of whitespace-delimited words.
func wordSpans(text string) []span {
	var spans []span
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}

func trimSpan(text string, start, end int) (span, bool) {
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start >= end {
		return span{}, false
	}
	return span{start, end}, true
}

func makeChunk(text string, s span) Chunk {
	t := text[s.start:s.end]
	return Chunk{
		Text:      t,
		WordCount: countWords(t),
		Start:     s.start,
		End:       s.end,
	}
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// endsSentence reports whether a word closes a sentence, allowing for
// trailing quotes or brackets after the terminator.
func endsSentence(word string) bool {
	for len(word) > 0 {
		r, size := utf8.DecodeLastRuneInString(word)
		switch r {
		case '.', '!', '?':
			return true
		case '"', '\'', ')', ']', '”', '’', '»':
			word = word[:len(word)-size]
		default:
			return false
		}
	}
	return false
}

// HalveAtSentence splits text into two near-equal halves, preferring the
// sentence boundary closest to the midpoint and falling back to the word
// boundary there. The refiner uses it when a chunk exceeds the model's
// context window. Both halves are non-empty whenever the text contains at
// least two words.
func HalveAtSentence(text string) (string, string) {
	words := wordSpans(text)
	if len(words) < 2 {
		return text, ""
	}
	mid := len(words) / 2

	best := -1
	for d := 0; d < len(words) && best < 0; d++ {
		for _, j := range []int{mid - 1 + d, mid - 1 - d} {
			if j >= 0 && j < len(words)-1 && endsSentence(text[words[j].start:words[j].end]) {
				best = j
				break
			}
		}
	}
	if best < 0 {
		best = mid - 1
	}
	left := strings.TrimSpace(text[:words[best].end])
	right := strings.TrimSpace(text[words[best+1].start:])
	return left, right
}
