package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/valpere/refino/internal/chunker"
	"github.com/valpere/refino/internal/classify"
	"github.com/valpere/refino/internal/orchestrator"
	"github.com/valpere/refino/internal/refiner"
	"github.com/valpere/refino/internal/terms"
)

// mockRefiner delegates every chunk to fn; nil fn echoes the chunk back
// unchanged, modeling an ideal transparent model.
type mockRefiner struct {
	fn    func(chunk chunker.Chunk, chunkNum, totalChunks int) (refiner.Result, error)
	calls int
}

func (m *mockRefiner) Refine(_ context.Context, chunk chunker.Chunk, _ classify.Style, chunkNum, totalChunks int) (refiner.Result, error) {
	m.calls++
	if m.fn == nil {
		return refiner.Result{
			ChunkIndex:   chunk.Index,
			RefinedText:  chunk.Text,
			Attempts:     1,
			ContentRatio: 1.0,
			Outcome:      refiner.Succeeded,
		}, nil
	}
	return m.fn(chunk, chunkNum, totalChunks)
}

func loadDict(t *testing.T) *terms.Dictionary {
	t.Helper()
	dict, err := terms.Load()
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	return dict
}

func TestProcess_EndToEnd(t *testing.T) {
	dict := loadDict(t)
	pipe := orchestrator.New(dict, &mockRefiner{}, orchestrator.Options{})

	in := "O hamartianeamente ptechne factusr ofereciram uma filizofia metafizica ontolojia."
	want := "O hamartiano techne actus ofereceram uma filosofia metafísica ontologia."

	got, stats, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
	if stats.Chunks != 1 {
		t.Errorf("expected 1 chunk, got %d", stats.Chunks)
	}
	if stats.Corrections != 7 {
		t.Errorf("expected 7 corrections, got %d", stats.Corrections)
	}
	if stats.Style != classify.Philosophy {
		t.Errorf("expected philosophy style, got %v", stats.Style)
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	dict := loadDict(t)
	ref := &mockRefiner{}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{})

	got, stats, err := pipe.Process(context.Background(), "  \n\n  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	if stats.Chunks != 0 || ref.calls != 0 {
		t.Errorf("expected no chunks and no model calls")
	}
}

func TestProcess_FallbackEqualsCorrectedInput(t *testing.T) {
	dict := loadDict(t)
	ref := &mockRefiner{fn: func(chunk chunker.Chunk, _, _ int) (refiner.Result, error) {
		return refiner.Result{
			ChunkIndex:   chunk.Index,
			RefinedText:  chunk.Text,
			UsedFallback: true,
			ContentRatio: 1.0,
			Outcome:      refiner.FellBack,
		}, nil
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{})

	in := "Segundo socratez, a filizofia começa pela admiração.\n\nA metafizica vem depois."
	got, stats, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// When every chunk falls back, the result is exactly the corrected
	// input: never worse than skipping the model entirely.
	corrected, _ := dict.Correct(strings.TrimSpace(in))
	if got != corrected {
		t.Errorf("got  %q\nwant %q", got, corrected)
	}
	if stats.Fallbacks != stats.Chunks {
		t.Errorf("expected every chunk counted as fallback: %d of %d", stats.Fallbacks, stats.Chunks)
	}
}

func TestProcess_ReassemblyOrder(t *testing.T) {
	dict := loadDict(t)
	ref := &mockRefiner{fn: func(chunk chunker.Chunk, chunkNum, totalChunks int) (refiner.Result, error) {
		return refiner.Result{
			ChunkIndex:   chunk.Index,
			RefinedText:  chunk.Text,
			ContentRatio: 1.0,
			Outcome:      refiner.Succeeded,
		}, nil
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{TargetWords: 5})

	paras := []string{
		"Primeiro parágrafo com cinco palavras.",
		"Segundo parágrafo com cinco palavras.",
		"Terceiro parágrafo com cinco palavras.",
	}
	in := strings.Join(paras, "\n\n")

	got, stats, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Chunks != 3 {
		t.Fatalf("expected 3 chunks, got %d", stats.Chunks)
	}
	if got != in {
		t.Errorf("reassembly must preserve document order:\ngot  %q\nwant %q", got, in)
	}
}

func TestProcess_SecondCorrectionPass(t *testing.T) {
	dict := loadDict(t)
	// The model introduces a known misspelling; the second pass fixes it.
	ref := &mockRefiner{fn: func(chunk chunker.Chunk, _, _ int) (refiner.Result, error) {
		return refiner.Result{
			RefinedText:  "O pensamento de socratez permanece.",
			ContentRatio: 1.0,
			Outcome:      refiner.Succeeded,
		}, nil
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{})

	got, _, err := pipe.Process(context.Background(), "O pensamento dele permanece.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "O pensamento de sócrates permanece." {
		t.Errorf("got %q", got)
	}
}

func TestProcess_CancellationBetweenChunks(t *testing.T) {
	dict := loadDict(t)
	ctx, cancel := context.WithCancel(context.Background())

	ref := &mockRefiner{fn: func(chunk chunker.Chunk, chunkNum, _ int) (refiner.Result, error) {
		if chunkNum == 1 {
			cancel()
		}
		return refiner.Result{
			ChunkIndex:   chunk.Index,
			RefinedText:  chunk.Text,
			ContentRatio: 1.0,
			Outcome:      refiner.Succeeded,
		}, nil
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{TargetWords: 5})

	in := "Primeiro parágrafo com cinco palavras.\n\nSegundo parágrafo com cinco palavras."
	got, stats, err := pipe.Process(ctx, in)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !stats.Incomplete {
		t.Error("expected Incomplete=true")
	}
	if got != "Primeiro parágrafo com cinco palavras." {
		t.Errorf("expected the partial result, got %q", got)
	}
	if ref.calls != 1 {
		t.Errorf("expected 1 model call before cancellation, got %d", ref.calls)
	}
	if stats.Degraded {
		t.Error("an incomplete run must not also be flagged as degraded")
	}
}

func TestProcess_ContractErrorPropagates(t *testing.T) {
	dict := loadDict(t)
	boom := errors.New("boom")
	ref := &mockRefiner{fn: func(chunker.Chunk, int, int) (refiner.Result, error) {
		return refiner.Result{}, boom
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{})

	_, _, err := pipe.Process(context.Background(), "Algum texto para processar.")
	if !errors.Is(err, boom) {
		t.Fatalf("expected the refiner error, got %v", err)
	}
}

func TestProcess_GlobalLossFlagsDegraded(t *testing.T) {
	dict := loadDict(t)
	ref := &mockRefiner{fn: func(chunk chunker.Chunk, _, _ int) (refiner.Result, error) {
		return refiner.Result{
			RefinedText:  "Curto.",
			ContentRatio: 0.9,
			Outcome:      refiner.Succeeded,
		}, nil
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{})

	in := strings.TrimSpace(strings.Repeat("Uma frase bastante longa da transcrição original. ", 10))
	_, stats, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.Degraded {
		t.Error("expected Degraded=true when output shrinks below half the input")
	}
}

func TestProcess_CountsCacheHits(t *testing.T) {
	dict := loadDict(t)
	ref := &mockRefiner{fn: func(chunk chunker.Chunk, _, _ int) (refiner.Result, error) {
		return refiner.Result{
			RefinedText:  chunk.Text,
			ContentRatio: 1.0,
			Outcome:      refiner.Succeeded,
			FromCache:    true,
		}, nil
	}}
	pipe := orchestrator.New(dict, ref, orchestrator.Options{})

	_, stats, err := pipe.Process(context.Background(), "Texto simples de uma frase.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CacheHits != 1 {
		t.Errorf("expected 1 cache hit, got %d", stats.CacheHits)
	}
}

func TestProcess_Deterministic(t *testing.T) {
	dict := loadDict(t)
	pipe := orchestrator.New(dict, &mockRefiner{}, orchestrator.Options{TargetWords: 10})

	in := "Segundo socratez, a filizofia começa pela admiração.\n\nA metafizica estuda o ser.\n\nA ontolojia vem em seguida."
	first, _, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("identical runs must produce identical output")
	}
}

func TestProcess_OnChunkCallback(t *testing.T) {
	dict := loadDict(t)
	var seen []int
	pipe := orchestrator.New(dict, &mockRefiner{}, orchestrator.Options{
		TargetWords: 5,
		OnChunk: func(done, total int, _ refiner.Result) {
			seen = append(seen, done)
			if total != 2 {
				t.Errorf("expected total=2, got %d", total)
			}
		},
	})

	in := "Primeiro parágrafo com cinco palavras.\n\nSegundo parágrafo com cinco palavras."
	if _, _, err := pipe.Process(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("expected callbacks [1 2], got %v", seen)
	}
}

func TestProcess_InputCharsMeasuredAfterCleanup(t *testing.T) {
	dict := loadDict(t)
	pipe := orchestrator.New(dict, &mockRefiner{}, orchestrator.Options{})

	// CRLF endings and excess blank lines vanish during normalization;
	// counting them as input would overstate the loss ratio.
	in := "Linha um.\r\n\r\n\r\n\r\nLinha dois.\r\n\r\n\r\n\r\nLinha tres.\r\n"
	got, stats, err := pipe.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.InputChars != len([]rune(got)) {
		t.Errorf("echoed output must match input length: in=%d out=%d", stats.InputChars, len([]rune(got)))
	}
	if stats.OutputChars != stats.InputChars {
		t.Errorf("expected equal char counts, got in=%d out=%d", stats.InputChars, stats.OutputChars)
	}
	if stats.Degraded {
		t.Error("whitespace normalization alone must not flag the run as degraded")
	}
}

func TestProcess_NormalizesLineEndings(t *testing.T) {
	dict := loadDict(t)
	pipe := orchestrator.New(dict, &mockRefiner{}, orchestrator.Options{})

	got, _, err := pipe.Process(context.Background(), "Linha um.\r\nLinha dois.\r\n\r\n\r\n\r\nLinha tres.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "\r") {
		t.Error("output must not contain carriage returns")
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("runs of blank lines must be collapsed")
	}
}
