package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtnitsch/mindsync/models"
)

func TestCompute(t *testing.T) {
	items := []models.ContentItem{
		{
			Type:     models.ContentProduct,
			Title:    "Product Name from amazon.co.uk",
			Tags:     []string{"desk"},
			AITags:   []string{"shopping", "amazon"},
			Metadata: models.Metadata{Domain: "www.amazon.co.uk"},
		},
		{
			Type:     models.ContentProduct,
			Title:    "Standing desk review",
			Tags:     []string{"desk", "health"},
			AITags:   []string{"shopping"},
			Metadata: models.Metadata{Domain: "smile.amazon.co.uk"},
		},
		{
			Type:     models.ContentArticle,
			Title:    "Why a standing desk?",
			Metadata: models.Metadata{Domain: "localhost"},
		},
		{
			Type:  models.ContentNote,
			Title: "",
		},
	}

	f := Compute(items)

	assert.Equal(t, 4, f.Total)
	assert.Equal(t, map[string]int{"product": 2, "article": 1, "note": 1}, f.Types)
	assert.Equal(t, map[string]int{"desk": 2, "health": 1}, f.Tags)
	assert.Equal(t, map[string]int{"shopping": 2, "amazon": 1}, f.AITags)
	assert.Equal(t, map[string]int{"amazon.co.uk": 2, "localhost": 1}, f.Sites)
	assert.Equal(t, 2, f.Keywords["desk"])
	assert.Equal(t, 2, f.Keywords["standing"])
	assert.NotContains(t, f.Keywords, "why")
	assert.NotContains(t, f.Keywords, "name")
}

func TestSite(t *testing.T) {
	tests := map[string]string{
		"www.Example.com":   "example.com",
		"blog.example.org.": "example.org",
		"bbc.co.uk":         "bbc.co.uk",
		"":                  "",
		"localhost":         "localhost",
	}
	for in, want := range tests {
		assert.Equal(t, want, Site(in), in)
	}
}

func TestWordFrequency(t *testing.T) {
	got := WordFrequency("The Go Programming Language, and the go tour!")
	assert.Equal(t, map[string]int{"go": 2, "programming": 1, "language": 1, "tour": 1}, got)
}

func TestWordFrequency_Accents(t *testing.T) {
	got := WordFrequency("Café culture: a résumé, «naïve» edition")
	assert.Equal(t, 1, got["café"])
	assert.Equal(t, 1, got["résumé"])
	assert.Equal(t, 1, got["naïve"])
	assert.NotContains(t, got, "caf")
}

func TestWordFrequency_Japanese(t *testing.T) {
	got := WordFrequency("東京の天気")
	assert.Equal(t, 1, got["東京"])
	assert.NotContains(t, got, "の")
}

func TestTopN(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	assert.Equal(t, []string{"c:5", "a:2", "b:2"}, TopN(counts, 3))
	assert.Equal(t, []string{"c:5", "a:2", "b:2", "d:1"}, TopN(counts, 10))
	assert.Empty(t, TopN(counts, 0))
	assert.Empty(t, TopN(counts, -1))
}

func TestSummarize(t *testing.T) {
	s := Compute([]models.ContentItem{{Type: models.ContentBook, Tags: []string{"x"}}}).Summarize(5)
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, []string{"book:1"}, s.Types)
	assert.Equal(t, []string{"x:1"}, s.Tags)
	assert.Empty(t, s.Sites)
}
