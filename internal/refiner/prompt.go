package refiner

import (
	"fmt"

	"github.com/valpere/refino/internal/classify"
)

// The prompts instruct the model to act as a conservative transcription
// editor: fix spelling, grammar, and garbled philosophical terms, and
// change nothing else. Both are in Portuguese to keep the model anchored
// in the transcript's language.

const philosophyPrompt = `Você é um especialista em filosofia e em língua portuguesa, com profundo conhecimento da tradição escolástica e da filosofia brasileira contemporânea.

Sua tarefa é refinar a seguinte transcrição de uma aula de filosofia, mantendo a fidelidade ABSOLUTA ao conteúdo original e ao estilo do professor, corrigindo APENAS:

1. Erros gramaticais óbvios do português
2. Palavras mal transcritas ou incompletas (ex: "Colássica" → "Escolástica")
3. Frases quebradas ou mal estruturadas
4. Termos filosóficos incorretos

REGRAS ESTRITAS:
- NÃO resuma, condense ou omita conteúdo
- NÃO adicione novas informações ou explicações
- NÃO mude o significado ou a estrutura das frases
- NÃO altere exemplos, citações ou referências
- Preserve TODAS as ideias filosóficas originais
- Mantenha o estilo coloquial e didático do professor
- Corrija APENAS erros óbvios de transcrição

Transcrição a refinar (parte %d de %d):

%s

Refine esta transcrição mantendo a fidelidade ABSOLUTA ao original, corrigindo APENAS erros de transcrição:`

const generalPrompt = `Você é um especialista em língua portuguesa e transcrições.

Sua tarefa é refinar a seguinte transcrição, mantendo a fidelidade absoluta ao conteúdo original, corrigindo:

1. Erros gramaticais óbvios
2. Palavras mal transcritas ou incompletas
3. Frases quebradas ou mal estruturadas
4. Quebras de linha inadequadas

IMPORTANTE:
- NÃO resuma, condense ou omita conteúdo
- Mantenha o estilo e tom original
- Corrija apenas erros óbvios de transcrição
- Preserve a estrutura e fluxo original

Transcrição a refinar (parte %d de %d):

%s

Refine esta transcrição mantendo a fidelidade absoluta ao original:`

// emphasizedSuffix is appended on the content-loss retry: the model
// returned implausibly little text, most likely because it summarized.
const emphasizedSuffix = `

ATENÇÃO CRÍTICA: sua resposta anterior foi muito mais curta que o original. NÃO RESUMA. Retorne o texto COMPLETO, com o mesmo comprimento do original, aplicando apenas correções pontuais de transcrição.`

// buildPrompt assembles the refinement prompt for a chunk. The chunk
// position (n of total) gives the model document context without
// revealing neighboring text.
func buildPrompt(chunkText string, style classify.Style, chunkNum, totalChunks int, emphasized bool) string {
	template := generalPrompt
	if style == classify.Philosophy {
		template = philosophyPrompt
	}
	prompt := fmt.Sprintf(template, chunkNum, totalChunks, chunkText)
	if emphasized {
		prompt += emphasizedSuffix
	}
	return prompt
}
