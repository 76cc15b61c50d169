package refiner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/refino/internal/chunker"
	"github.com/valpere/refino/internal/classify"
	"github.com/valpere/refino/internal/postprocess"
)

const (
	// DefaultContentLossThreshold flags a response shorter than this
	// fraction of the original as a likely summary instead of a
	// refinement.
	DefaultContentLossThreshold = 0.70
	// DefaultContextWindow is the assumed model context size in tokens;
	// chunks estimated above it are halved before refinement.
	DefaultContextWindow = 8192
	// DefaultMaxRetries is the total attempts per chunk, the first call
	// included.
	DefaultMaxRetries = 3
	// defaultRetryDelay is the fixed pause between attempts. No backoff
	// growth: the local model either recovers quickly or not at all.
	defaultRetryDelay = 2 * time.Second

	// tokensPerWord approximates the tokenizer's expansion of Portuguese
	// text; used only for the context-window estimate.
	tokensPerWord = 1.4
	// maxHalvingDepth bounds recursive context-window splitting.
	maxHalvingDepth = 4
)

// OllamaConfig configures an Ollama refiner. Zero values fall back to the
// defaults above.
type OllamaConfig struct {
	Model                string
	BaseURL              string
	MaxRetries           int
	RetryDelay           time.Duration
	ContentLossThreshold float64
	ContextWindow        int
	Streaming            bool
	Timeout              time.Duration

	// Validator, when set, rejects responses that drifted out of
	// Portuguese; rejection follows the same path as content loss.
	Validator LanguageValidator
	// Cache, when set, is consulted before any model call.
	Cache Cache
	// OnToken, when set with Streaming, is invoked with each received
	// fragment; it serves progress rendering only and never affects the
	// resolved result.
	OnToken func(fragment string)
}

// Ollama refines chunks against a local Ollama server. Safe for
// sequential use; the pipeline calls it one chunk at a time.
type Ollama struct {
	cfg    OllamaConfig
	client *http.Client
}

type ollamaRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllama creates a refiner backed by a local Ollama model.
func NewOllama(cfg OllamaConfig) *Ollama {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.ContentLossThreshold <= 0 {
		cfg.ContentLossThreshold = DefaultContentLossThreshold
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultContextWindow
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Ollama{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Refine submits one chunk to the model and always resolves to a Result
// for model-related failures; the returned error is reserved for contract
// violations (empty chunk text).
func (o *Ollama) Refine(ctx context.Context, chunk chunker.Chunk, style classify.Style, chunkNum, totalChunks int) (Result, error) {
	if strings.TrimSpace(chunk.Text) == "" {
		return Result{}, fmt.Errorf("refiner: chunk %d has empty text", chunk.Index)
	}

	if o.cfg.Cache != nil {
		if cached, found, err := o.cfg.Cache.GetChunk(ctx, HashText(chunk.Text), o.cfg.Model); err == nil && found {
			return Result{
				ChunkIndex:   chunk.Index,
				RefinedText:  cached,
				ContentRatio: contentRatio(chunk.Text, cached),
				Outcome:      Succeeded,
				FromCache:    true,
			}, nil
		}
	}

	result := o.refineText(ctx, chunk.Text, style, chunkNum, totalChunks, 0)
	result.ChunkIndex = chunk.Index

	if o.cfg.Cache != nil && !result.UsedFallback {
		// Cache writes are best-effort; a failed write never fails the chunk.
		_ = o.cfg.Cache.SaveChunk(ctx, HashText(chunk.Text), o.cfg.Model, result.RefinedText)
	}
	return result, nil
}

// refineText carries the retry/fallback state machine for one piece of
// text. depth tracks context-window halving recursion.
func (o *Ollama) refineText(ctx context.Context, text string, style classify.Style, chunkNum, totalChunks, depth int) Result {
	if o.estimateTokens(text) > o.cfg.ContextWindow && depth < maxHalvingDepth {
		return o.refineHalves(ctx, text, style, chunkNum, totalChunks, depth)
	}

	attempts := 0
	emphasized := false
	degradedSeen := false

	for attempts < o.cfg.MaxRetries {
		if err := ctx.Err(); err != nil {
			break
		}
		attempts++

		raw, err := o.generate(ctx, buildPrompt(text, style, chunkNum, totalChunks, emphasized))
		if err != nil {
			if attempts < o.cfg.MaxRetries {
				o.sleep(ctx)
			}
			continue
		}

		refined := postprocess.Clean(raw)
		ratio := contentRatio(text, refined)

		acceptable := refined != "" && ratio >= o.cfg.ContentLossThreshold
		if acceptable && o.cfg.Validator != nil && !o.cfg.Validator.IsValid(refined) {
			acceptable = false
		}

		if acceptable {
			outcome := Succeeded
			if emphasized {
				outcome = Degraded
			}
			return Result{
				RefinedText:  refined,
				Attempts:     attempts,
				ContentRatio: ratio,
				Outcome:      outcome,
			}
		}

		// Degraded response: one emphasized retry, then give up on this
		// chunk rather than looping on a model that keeps summarizing.
		if !degradedSeen {
			degradedSeen = true
			emphasized = true
			o.sleep(ctx)
			continue
		}
		break
	}

	return Result{
		RefinedText:  text,
		UsedFallback: true,
		Attempts:     attempts,
		ContentRatio: 1.0,
		Outcome:      FellBack,
	}
}

// refineHalves splits oversized text at a sentence boundary, refines each
// half independently, and concatenates the results in order. This is the
// only split performed outside the chunker and it preserves the chunk's
// position in reassembly.
func (o *Ollama) refineHalves(ctx context.Context, text string, style classify.Style, chunkNum, totalChunks, depth int) Result {
	left, right := chunker.HalveAtSentence(text)
	if right == "" {
		// A single unsplittable word run; refine as-is at the next depth.
		return o.refineText(ctx, text, style, chunkNum, totalChunks, depth+1)
	}

	first := o.refineText(ctx, left, style, chunkNum, totalChunks, depth+1)
	second := o.refineText(ctx, right, style, chunkNum, totalChunks, depth+1)

	combined := first.RefinedText + " " + second.RefinedText
	res := Result{
		RefinedText:  combined,
		UsedFallback: first.UsedFallback || second.UsedFallback,
		Attempts:     first.Attempts + second.Attempts,
		ContentRatio: contentRatio(text, combined),
	}
	switch {
	case first.Outcome == FellBack && second.Outcome == FellBack:
		res.Outcome = FellBack
	case first.Outcome == Succeeded && second.Outcome == Succeeded:
		res.Outcome = Succeeded
	default:
		res.Outcome = Degraded
	}
	return res
}

// generate issues one blocking call to the Ollama generate endpoint and
// returns the raw accumulated response text.
func (o *Ollama) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaRequest{
		Model:  o.cfg.Model,
		Prompt: prompt,
		Stream: o.cfg.Streaming,
		Options: map[string]interface{}{
			"temperature": 0.1,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal refinement request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", o.cfg.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create refinement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refinement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	if o.cfg.Streaming {
		return o.readStream(resp)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode refinement response: %w", err)
	}
	return ollamaResp.Response, nil
}

// readStream accumulates the NDJSON fragments of a streaming response.
// Fragments feed the progress callback only; the full text is resolved
// once the final message arrives.
func (o *Ollama) readStream(resp *http.Response) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var frag ollamaResponse
		if err := json.Unmarshal(line, &frag); err != nil {
			return "", fmt.Errorf("failed to decode stream fragment: %w", err)
		}
		b.WriteString(frag.Response)
		if o.cfg.OnToken != nil && frag.Response != "" {
			o.cfg.OnToken(frag.Response)
		}
		if frag.Done {
			return b.String(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("stream read failed: %w", err)
	}
	if b.Len() == 0 {
		return "", errors.New("stream ended without content")
	}
	return b.String(), nil
}

// IsAvailable checks that the Ollama server answers on its tags endpoint.
func (o *Ollama) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/api/tags", o.cfg.BaseURL), nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}

func (o *Ollama) estimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * tokensPerWord)
}

// sleep pauses for the fixed retry delay, returning early on
// cancellation.
func (o *Ollama) sleep(ctx context.Context) {
	t := time.NewTimer(o.cfg.RetryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
