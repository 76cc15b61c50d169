// Package classify detects the content style of a transcript so the
// refiner can pick the matching prompt. Detection is a pure keyword
// heuristic over the lowercased text, decoupled from the model call.
package classify

import "strings"

// Style tags the kind of content a transcript carries.
type Style int

const (
	// General is any Portuguese transcription without a clear
	// philosophical vocabulary.
	General Style = iota
	// Philosophy is lecture content dense in philosophical terminology;
	// it gets the domain-specialized refinement prompt.
	Philosophy
)

func (s Style) String() string {
	if s == Philosophy {
		return "philosophy"
	}
	return "general"
}

// philosophyKeywords are Portuguese markers of philosophical lecture
// content. Two or more distinct hits classify the text as Philosophy.
var philosophyKeywords = []string{
	"filosofia", "filósofo", "metafísica", "ontologia", "epistemologia",
	"escolástica", "silogismo", "substância", "essência", "transcendência",
	"aristóteles", "platão", "sócrates", "tomás de aquino", "agostinho",
	"hermenêutica", "fenomenologia", "dialética", "ética", "lógica",
	"consciência", "ser enquanto ser", "ato e potência", "causa primeira",
}

const philosophyMinHits = 2

// Detect classifies text by counting distinct philosophy keyword hits.
func Detect(text string) Style {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range philosophyKeywords {
		if strings.Contains(lower, kw) {
			hits++
			if hits >= philosophyMinHits {
				return Philosophy
			}
		}
	}
	return General
}
