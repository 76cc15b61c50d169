// Package detector wraps the lingua-go language detector for validating
// that refined output stayed in Portuguese.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a text. The underlying model is
// expensive to build; construct once and reuse. Safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to the languages a local model is
// likely to drift into when refining Portuguese transcripts. A small
// language set keeps detection fast and more decisive than the full set.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Portuguese,
			lingua.Spanish,
			lingua.English,
			lingua.Italian,
			lingua.French,
		).
		Build()

	return &Detector{detector: detector}
}

// Detect returns the detected language and whether detection succeeded.
func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// IsPortuguese reports whether text is detected as Portuguese. The second
// return value is false when the language could not be determined.
func (d *Detector) IsPortuguese(text string) (bool, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return false, false
	}
	return lang == lingua.Portuguese, true
}
