// Package insights summarises a set of bookmarks: how many of each
// content type, which tags and sites come up most, and the recurring
// words in titles.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"

	"github.com/dtnitsch/mindsync/models"
)

// Facets are counts over a set of items.
type Facets struct {
	Total    int            `json:"total" yaml:"total"`
	Types    map[string]int `json:"types" yaml:"types"`
	Tags     map[string]int `json:"tags" yaml:"tags"`
	AITags   map[string]int `json:"aiTags" yaml:"ai_tags"`
	Sites    map[string]int `json:"sites" yaml:"sites"`
	Keywords map[string]int `json:"keywords" yaml:"keywords"`
}

// Compute counts facets over items. Each item contributes its title
// words once per occurrence, its tags once per tag.
func Compute(items []models.ContentItem) Facets {
	f := Facets{
		Total:  len(items),
		Types:  make(map[string]int),
		Tags:   make(map[string]int),
		AITags: make(map[string]int),
		Sites:  make(map[string]int),
	}

	perItem := make([]map[string]int, 0, len(items))
	for _, item := range items {
		f.Types[string(item.Type)]++
		for _, t := range item.Tags {
			f.Tags[t]++
		}
		for _, t := range item.AITags {
			f.AITags[t]++
		}
		if site := Site(item.Metadata.Domain); site != "" {
			f.Sites[site]++
		}
		perItem = append(perItem, WordFrequency(item.Title))
	}
	f.Keywords = Reduce(perItem)

	return f
}

// Site returns the registrable domain (eTLD+1) of a hostname, so
// "www.amazon.co.uk" and "smile.amazon.co.uk" count as one site.
func Site(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" {
		return ""
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		// Bare suffixes and single labels such as "localhost"
		return domain
	}
	return site
}

// WordFrequency counts the non-stopword words of text. Titles with
// Japanese script are segmented with a morphological tokenizer.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range words(text) {
		if word == "" || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

func words(text string) []string {
	if hasJapanese(text) {
		return japaneseWords(text)
	}
	fields := strings.Fields(strings.ToLower(text))
	for i, word := range fields {
		fields[i] = trimWord(word)
	}
	return fields
}

// trimWord strips punctuation and symbols around a word.
func trimWord(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Reduce merges per-item counts into one map.
func Reduce(intermediate []map[string]int) map[string]int {
	total := make(map[string]int)
	for _, counts := range intermediate {
		for k, n := range counts {
			total[k] += n
		}
	}
	return total
}

// TopN returns the n largest counts formatted as "key:count", ties
// broken by key.
func TopN(counts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, kv{k, v})
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := max(min(n, len(ss)), 0)
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return out
}

// Summary is the top-n view of Facets used for display.
type Summary struct {
	Total    int      `json:"total" yaml:"total"`
	Types    []string `json:"types" yaml:"types"`
	Tags     []string `json:"tags" yaml:"tags"`
	AITags   []string `json:"aiTags" yaml:"ai_tags"`
	Sites    []string `json:"sites" yaml:"sites"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Summarize keeps the top n entries of every facet.
func (f Facets) Summarize(n int) Summary {
	return Summary{
		Total:    f.Total,
		Types:    TopN(f.Types, n),
		Tags:     TopN(f.Tags, n),
		AITags:   TopN(f.AITags, n),
		Sites:    TopN(f.Sites, n),
		Keywords: TopN(f.Keywords, n),
	}
}
