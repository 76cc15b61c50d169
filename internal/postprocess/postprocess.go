// Package postprocess removes common LLM artifacts from refinement output.
//
// It is applied to the raw text returned by the Ollama model before any
// content-ratio check, so that a preamble or thinking block never counts
// as refined content.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes LLM artifacts from text in three phases and returns the
// trimmed result:
//  1. Thinking / reasoning block removal
//  2. Instruction echo removal (prompt leakage)
//  3. Quote wrapping removal
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeInstructionEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// --- Phase 1: thinking blocks ---

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// --- Phase 2: instruction echoes ---

// echoPatterns match introductory phrases the models prepend even when
// instructed not to. Portuguese variants come first since the prompts are
// in Portuguese; each pattern is anchored to the start of the string and
// requires a colon to reduce false positives on legitimate content.
var echoPatterns = []*regexp.Regexp{
	// "Aqui está a transcrição refinada:" / "Segue o texto corrigido:"
	regexp.MustCompile(`(?i)^aqui est[áa](?: a| o)? (?:transcri[çc][ãa]o|texto) ?(?:refinad[oa]|corrigid[oa])?\s*:`),
	regexp.MustCompile(`(?i)^segue(?: a| o)? (?:transcri[çc][ãa]o|texto) ?(?:refinad[oa]|corrigid[oa])?\s*:`),
	// "Transcrição refinada:" / "Texto corrigido:"
	regexp.MustCompile(`(?i)^(?:a )?(?:transcri[çc][ãa]o|texto) (?:refinad[oa]|corrigid[oa])\s*:`),
	// English fallbacks some models emit regardless of prompt language.
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:refined |corrected )?(?:transcription|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:refined |corrected )?(?:transcription|text)\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// --- Phase 3: quote wrapping ---

// removeQuoteWrapping strips a matching pair of outer quotes when the
// entire text is wrapped in them (a common LLM artifact). Supported
// pairs:
//
//	"…"  '…'  «…»  "…"  '…'
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
