package validator

import (
	"testing"
)

func TestIsValid_EmptyText(t *testing.T) {
	v := New()

	if v.IsValid("") {
		t.Error("expected valid=false for empty text")
	}
	if v.IsValid("   \n\t  ") {
		t.Error("expected valid=false for whitespace-only text")
	}
}

func TestIsValid_ShortTextPasses(t *testing.T) {
	v := New()

	// Below minValidationLength, detection is unreliable and skipped.
	if !v.IsValid("Oi") {
		t.Error("expected short text to pass without validation")
	}
	if !v.IsValid("Hello!") {
		t.Error("expected short English text to pass, length guard first")
	}
}

func TestIsValid_PortugueseText(t *testing.T) {
	v := New()

	text := "A filosofia medieval estuda a relação entre a fé e a razão humana."
	if !v.IsValid(text) {
		t.Errorf("expected Portuguese text to be valid: %q", text)
	}
}

func TestIsValid_EnglishTextRejected(t *testing.T) {
	v := New()

	text := "This response is written entirely in English instead of being a refinement."
	if v.IsValid(text) {
		t.Errorf("expected English text to be rejected: %q", text)
	}
}
