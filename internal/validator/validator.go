// Package validator checks that refined output is still written in
// Portuguese. A model that answers in English instead of refining is a
// degraded response, handled the same way as content loss.
package validator

import (
	"strings"

	"github.com/valpere/refino/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt
// language detection. Shorter texts produce unreliable results and are
// accepted without validation.
const minValidationLength = 20

// Validator checks that refined text remains Portuguese. The underlying
// language detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// IsValid returns true when text appears to be written in Portuguese.
// Short texts and texts whose language cannot be determined pass without
// validation.
func (v *Validator) IsValid(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if len([]rune(trimmed)) < minValidationLength {
		return true
	}
	isPT, ok := v.det.IsPortuguese(trimmed)
	if !ok {
		// Ambiguous language, cannot validate; pass through.
		return true
	}
	return isPT
}
