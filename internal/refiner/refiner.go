// Package refiner wraps the per-chunk call to the local generative model.
// It owns the retry discipline, the content-loss guard, and the fallback
// to the original chunk text; model failures never escape as errors, only
// as fallback results.
package refiner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/valpere/refino/internal/chunker"
	"github.com/valpere/refino/internal/classify"
)

// Outcome is the terminal state of a chunk refinement, so callers and
// tests can assert exactly how a chunk ended up instead of scraping logs.
type Outcome int

const (
	// Succeeded means the model response was accepted on a regular
	// attempt.
	Succeeded Outcome = iota
	// Degraded means the response was accepted only after the
	// content-loss or language guard forced the emphasized retry.
	Degraded
	// FellBack means refinement could not be trusted and the original
	// chunk text was returned unchanged.
	FellBack
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Degraded:
		return "degraded"
	default:
		return "fell-back"
	}
}

// Result is the outcome of refining one chunk. RefinedText is never
// empty for a non-empty chunk: the worst case is the original text with
// UsedFallback set.
type Result struct {
	ChunkIndex   int
	RefinedText  string
	UsedFallback bool
	Attempts     int
	ContentRatio float64
	Outcome      Outcome
	FromCache    bool
}

// Refiner refines a single chunk. Implementations must resolve every
// model-related failure into a Result; an error return is reserved for
// contract violations such as an empty chunk.
type Refiner interface {
	Refine(ctx context.Context, chunk chunker.Chunk, style classify.Style, chunkNum, totalChunks int) (Result, error)
}

// Cache stores already-seen chunk refinements keyed by source hash and
// model. Implementations may be nil-safe no-ops; the sqlite store
// satisfies this interface.
type Cache interface {
	GetChunk(ctx context.Context, sourceHash, model string) (string, bool, error)
	SaveChunk(ctx context.Context, sourceHash, model, refinedText string) error
}

// LanguageValidator reports whether refined text is acceptable output
// language-wise. The lingua-backed validator satisfies this.
type LanguageValidator interface {
	IsValid(text string) bool
}

// HashText returns the cache key for a chunk's source text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// contentRatio relates refined length to original length in runes; values
// well below 1.0 signal the model summarized instead of refining.
func contentRatio(original, refined string) float64 {
	origLen := len([]rune(original))
	if origLen == 0 {
		return 0
	}
	return float64(len([]rune(refined))) / float64(origLen)
}
