// Package orchestrator sequences the refinement pipeline for one
// transcript: dictionary correction, chunking, per-chunk model
// refinement, a second correction pass over the refined text, and
// in-order reassembly with aggregate statistics.
package orchestrator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/valpere/refino/internal/chunker"
	"github.com/valpere/refino/internal/classify"
	"github.com/valpere/refino/internal/refiner"
	"github.com/valpere/refino/internal/terms"
)

// ChunkMode selects how the transcript is segmented.
type ChunkMode string

const (
	// ModeParagraph is the default paragraph-aware deterministic split.
	ModeParagraph ChunkMode = "paragraph"
	// ModeWords is the plain word-count split.
	ModeWords ChunkMode = "words"
	// ModeSmart asks the model for break points and falls back to
	// ModeParagraph on any failure.
	ModeSmart ChunkMode = "smart"
)

const (
	// DefaultGlobalLossThreshold flags the whole run as degraded when
	// the output shrinks below this fraction of the input.
	DefaultGlobalLossThreshold = 0.50
	// chunkSeparator joins refined chunks on reassembly, restoring
	// paragraph-style separation.
	chunkSeparator = "\n\n"
)

// Options is the fully-resolved configuration for one pipeline run. The
// orchestrator never reads configuration sources itself.
type Options struct {
	TargetWords         int
	Mode                ChunkMode
	Fuzzy               bool
	GlobalLossThreshold float64

	// OnChunk, when set, is called after each chunk resolves; it serves
	// progress rendering in the CLI.
	OnChunk func(done, total int, res refiner.Result)
}

// Stats aggregates what happened during a run. It is owned by the
// pipeline, mutated only during Process, and read-only afterwards.
type Stats struct {
	Chunks      int
	Corrections int
	Fallbacks   int
	CacheHits   int
	InputChars  int
	OutputChars int
	Elapsed     time.Duration
	Style       classify.Style
	Degraded    bool
	Incomplete  bool
	Results     []refiner.Result
}

// breakProposer is the optional model-assisted chunking capability of a
// refiner; the Ollama implementation provides it.
type breakProposer interface {
	ProposeBreakpoints(ctx context.Context, text string, targetWords int) ([]int, error)
}

// Pipeline runs the correction-chunking-refinement sequence. A Pipeline
// is stateless across runs; the dictionary it holds is read-only, so one
// Pipeline per file may run in parallel with others.
type Pipeline struct {
	dict *terms.Dictionary
	ref  refiner.Refiner
	opts Options
}

func New(dict *terms.Dictionary, ref refiner.Refiner, opts Options) *Pipeline {
	if opts.TargetWords <= 0 {
		opts.TargetWords = chunker.DefaultTargetWords
	}
	if opts.Mode == "" {
		opts.Mode = ModeParagraph
	}
	if opts.GlobalLossThreshold <= 0 {
		opts.GlobalLossThreshold = DefaultGlobalLossThreshold
	}
	return &Pipeline{dict: dict, ref: ref, opts: opts}
}

// Process refines rawText end to end. Chunks are refined sequentially in
// document order; given identical input and model responses, the output
// is identical.
//
// On cancellation between chunks, the text reassembled so far and the
// partial stats are returned together with the context error; Stats.
// Incomplete marks the run as partial. A non-context error indicates a
// contract violation and carries no usable result.
func (p *Pipeline) Process(ctx context.Context, rawText string) (string, *Stats, error) {
	start := time.Now()
	stats := &Stats{}

	// Input length is measured after line-ending normalization so the
	// global loss ratio compares the same whitespace conventions on both
	// sides; CRLF input would otherwise inflate the apparent loss.
	cleaned := cleanText(rawText)
	stats.InputChars = len([]rune(cleaned))
	if cleaned == "" {
		stats.Elapsed = time.Since(start)
		return "", stats, nil
	}

	// Pass 1: dictionary corrections on the raw transcript.
	corrected, applied := p.dict.Correct(cleaned)
	stats.Corrections += len(applied)
	if p.opts.Fuzzy {
		var fuzzy []terms.Applied
		corrected, fuzzy = p.dict.CorrectFuzzy(corrected)
		stats.Corrections += len(fuzzy)
	}

	stats.Style = classify.Detect(corrected)

	chunks := p.chunk(ctx, corrected)
	stats.Chunks = len(chunks)

	refined := make([]string, 0, len(chunks))
	for i, c := range chunks {
		// Cancellation is honored between chunks only; a model call in
		// flight runs to completion or times out on its own.
		if err := ctx.Err(); err != nil {
			stats.Incomplete = true
			return p.finish(refined, stats, start), stats, err
		}

		res, err := p.ref.Refine(ctx, c, stats.Style, i+1, len(chunks))
		if err != nil {
			return "", stats, fmt.Errorf("refining chunk %d: %w", i, err)
		}

		// Pass 2: the model may itself introduce known misspellings.
		text, applied2 := p.dict.Correct(res.RefinedText)
		stats.Corrections += len(applied2)

		res.RefinedText = text
		stats.Results = append(stats.Results, res)
		if res.UsedFallback {
			stats.Fallbacks++
		}
		if res.FromCache {
			stats.CacheHits++
		}
		refined = append(refined, text)

		if p.opts.OnChunk != nil {
			p.opts.OnChunk(i+1, len(chunks), res)
		}
	}

	return p.finish(refined, stats, start), stats, nil
}

// finish reassembles refined chunks in order and settles the aggregate
// counters, including the global content-loss flag.
func (p *Pipeline) finish(refined []string, stats *Stats, start time.Time) string {
	final := strings.Join(refined, chunkSeparator)
	stats.OutputChars = len([]rune(final))
	stats.Elapsed = time.Since(start)

	if stats.InputChars > 0 && !stats.Incomplete {
		ratio := float64(stats.OutputChars) / float64(stats.InputChars)
		if ratio < p.opts.GlobalLossThreshold {
			stats.Degraded = true
		}
	}
	return final
}

// chunk segments the corrected text according to the configured mode.
// Smart mode degrades to the deterministic paragraph-aware split on any
// model failure or malformed proposal.
func (p *Pipeline) chunk(ctx context.Context, text string) []chunker.Chunk {
	switch p.opts.Mode {
	case ModeWords:
		return chunker.Split(text, p.opts.TargetWords, chunker.WordCount)
	case ModeSmart:
		if proposer, ok := p.ref.(breakProposer); ok {
			if breaks, err := proposer.ProposeBreakpoints(ctx, text, p.opts.TargetWords); err == nil {
				if chunks := chunker.SplitAtWords(text, breaks); len(chunks) > 0 {
					return chunks
				}
			}
		}
		return chunker.Split(text, p.opts.TargetWords, chunker.ParagraphAware)
	default:
		return chunker.Split(text, p.opts.TargetWords, chunker.ParagraphAware)
	}
}

var (
	crlfRe      = regexp.MustCompile(`\r\n?`)
	manyBlankRe = regexp.MustCompile(`\n{3,}`)
	trailingWS  = regexp.MustCompile(`[ \t]+\n`)
)

// cleanText normalizes line endings and excess blank lines without
// touching paragraph structure, which the paragraph-aware chunker needs
// intact.
func cleanText(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = trailingWS.ReplaceAllString(text, "\n")
	text = manyBlankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
