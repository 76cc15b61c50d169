package refiner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// smartChunkPrompt asks the model for topic-shift positions instead of a
// rewritten text, so a hallucinated answer can only produce bad break
// points, never altered content.
const smartChunkPrompt = `Você é um especialista em processamento de transcrições acadêmicas. O texto abaixo é uma transcrição corrida de uma aula, sem divisão em parágrafos.

Identifique os pontos onde o assunto muda ou onde há uma pausa retórica natural, e responda SOMENTE com um array JSON de índices de palavras (base zero) onde cada novo segmento deve começar. Os segmentos devem ter aproximadamente %d palavras cada.

Exemplo de resposta válida: [120, 245, 377]

Texto (%d palavras):

%s

Responda somente com o array JSON:`

// ProposeBreakpoints asks the model where a terminator-free transcript
// should be segmented and returns the proposed word indices. Any
// transport failure or malformed answer is returned as an error; the
// caller falls back to deterministic chunking.
func (o *Ollama) ProposeBreakpoints(ctx context.Context, text string, targetWords int) ([]int, error) {
	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return nil, fmt.Errorf("refiner: empty text for break-point proposal")
	}

	raw, err := o.generate(ctx, fmt.Sprintf(smartChunkPrompt, targetWords, wordCount, text))
	if err != nil {
		return nil, err
	}

	breaks, err := parseBreakpoints(raw, wordCount)
	if err != nil {
		return nil, err
	}
	return breaks, nil
}

// parseBreakpoints extracts a JSON integer array from the model answer,
// tolerating surrounding prose, and validates every index against the
// word count.
func parseBreakpoints(raw string, wordCount int) ([]int, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model answer")
	}

	var breaks []int
	if err := json.Unmarshal([]byte(raw[start:end+1]), &breaks); err != nil {
		return nil, fmt.Errorf("malformed break-point array: %w", err)
	}
	for _, b := range breaks {
		if b <= 0 || b >= wordCount {
			return nil, fmt.Errorf("break point %d outside text of %d words", b, wordCount)
		}
	}
	return breaks, nil
}
