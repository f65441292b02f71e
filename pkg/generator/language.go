package generator

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// LanguageDetector reports the ISO 639-1 code of a text, if it can.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

// minDetectRunes is the shortest input worth running detection on.
const minDetectRunes = 12

// DefaultLanguages are the languages the lingua detector chooses from.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Japanese,
}

// LinguaDetector detects language with lingua-go.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over languages, or
// DefaultLanguages when none are given.
func NewLinguaDetector(languages ...lingua.Language) *LinguaDetector {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(0.2).
		Build()
	return &LinguaDetector{detector: detector}
}

// Detect returns a lowercase ISO 639-1 code.
func (d *LinguaDetector) Detect(text string) (string, bool) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minDetectRunes {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// LanguageTag returns "lang:<code>" for the user-written text, or "".
func LanguageTag(d LanguageDetector, texts ...string) string {
	if d == nil {
		return ""
	}
	text := strings.TrimSpace(strings.Join(texts, " "))
	if text == "" {
		return ""
	}
	code, ok := d.Detect(text)
	if !ok || code == "" {
		return ""
	}
	return "lang:" + code
}
