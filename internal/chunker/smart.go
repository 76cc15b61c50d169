package chunker

import "sort"

// SplitAtWords splits text at the given word indices (a break at index n
// starts a new chunk at the n-th word, zero-based). Indices are
// deduplicated, sorted, and clamped to the valid range; out-of-range or
// empty break lists yield a single chunk. The model-assisted chunking
// mode feeds break points proposed by the LLM through here so the
// resulting chunks still satisfy the lossless-reconstruction guarantee.
func SplitAtWords(text string, breaks []int) []Chunk {
	words := wordSpans(text)
	if len(words) == 0 {
		return nil
	}

	valid := make([]int, 0, len(breaks))
	seen := map[int]struct{}{}
	for _, b := range breaks {
		if b <= 0 || b >= len(words) {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		valid = append(valid, b)
	}
	sort.Ints(valid)

	var chunks []Chunk
	start := 0
	for _, b := range valid {
		chunks = append(chunks, makeChunk(text, span{words[start].start, words[b-1].end}))
		start = b
	}
	chunks = append(chunks, makeChunk(text, span{words[start].start, words[len(words)-1].end}))

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}
