package insights

import (
	"strings"
	"sync"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// The IPA dictionary is large; load it only when a Japanese title shows up.
var japaneseTokenizer = sync.OnceValues(func() (*tokenizer.Tokenizer, error) {
	return tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
})

// contentPOS are the IPA parts of speech counted as keywords.
var contentPOS = map[string]bool{
	"名詞":  true, // noun
	"動詞":  true, // verb
	"形容詞": true, // adjective
}

// skippedSubPOS are noun subclasses that carry no topic.
var skippedSubPOS = map[string]bool{
	"非自立": true,
	"代名詞": true,
	"数":   true,
	"接尾":  true,
}

func hasJapanese(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// japaneseWords segments text with kagome and returns the dictionary
// form of each content word. Latin words inside the text are lowercased
// and trimmed like in WordFrequency.
func japaneseWords(text string) []string {
	t, err := japaneseTokenizer()
	if err != nil {
		return nil
	}

	var words []string
	for _, token := range t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		features := token.Features()
		if len(features) == 0 || !contentPOS[features[0]] {
			continue
		}
		if len(features) > 1 && skippedSubPOS[features[1]] {
			continue
		}

		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		if !hasJapanese(base) {
			base = trimWord(strings.ToLower(base))
		}
		if strings.TrimSpace(base) != "" {
			words = append(words, base)
		}
	}
	return words
}
