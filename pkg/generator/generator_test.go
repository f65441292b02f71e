package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtnitsch/mindsync/models"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		url  string
		ct   models.ContentType
		want string
	}{
		{"https://www.goodreads.com/book/show/1", models.ContentBook, "Book Title from goodreads.com"},
		{"https://www.amazon.com/x/dp/B01", models.ContentProduct, "Product Name from amazon.com"},
		{"https://medium.com/@a/b-1f", models.ContentArticle, "Article Title from medium.com"},
		{"https://www.zillow.com/homedetails/1/", models.ContentProperty, "Property Listing from zillow.com"},
		{"https://www.netflix.com/title/1", models.ContentTVShow, "TV Show from netflix.com"},
		{"https://twitter.com/a/status/1", models.ContentTweet, "Tweet from twitter.com"},
		{"https://example.org/", models.ContentWebsite, "example.org - Website"},
		{"not a url", models.ContentWebsite, "not a url - Website"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.url, tt.ct))
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "A book I want to read...", Preview("https://x.org", models.ContentBook))
	assert.Equal(t, "A website I find useful...", Preview("https://x.org", models.ContentWebsite))
	assert.Equal(t, "Saved from x.org", Preview("https://x.org/a", models.ContentNote))
}

func TestImageURL(t *testing.T) {
	cover := models.Metadata{Details: &models.BookDetails{BookCover: "https://img/cover.jpg"}}
	assert.Equal(t, "https://img/cover.jpg", ImageURL("https://www.amazon.com/x", cover))

	poster := models.Metadata{Details: &models.TVShowDetails{Poster: "https://img/poster.jpg"}}
	assert.Equal(t, "https://img/poster.jpg", ImageURL("https://www.netflix.com/x", poster))

	assert.Equal(t, shoppingImage, ImageURL("https://www.amazon.com/x", models.Metadata{}))
	assert.Equal(t, streamingImage, ImageURL("https://www.netflix.com/x", models.Metadata{}))
	assert.Empty(t, ImageURL("https://example.org", models.Metadata{}))
}

func TestAITags(t *testing.T) {
	tests := []struct {
		name string
		ct   models.ContentType
		url  string
		want []string
	}{
		{"amazon product", models.ContentProduct, "https://www.amazon.com/x/dp/B1", []string{"shopping", "purchase", "amazon"}},
		{"youtube website", models.ContentWebsite, "https://www.youtube.com/watch?v=1", []string{"reference", "resource", "youtube", "video"}},
		{"github website", models.ContentWebsite, "https://github.com/a/b", []string{"reference", "resource", "github", "development"}},
		{"netflix show", models.ContentTVShow, "https://www.netflix.com/title/1", []string{"entertainment", "watching", "netflix"}},
		{"note has no base tags", models.ContentNote, "https://example.org", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AITags(tt.ct, tt.url))
		})
	}
}

func TestDedupeTags(t *testing.T) {
	got := DedupeTags([]string{"go", " go ", "", "books", "go", "reading"})
	assert.Equal(t, []string{"go", "books", "reading"}, got)
}

type stubDetector struct {
	code string
	ok   bool
	seen string
}

func (s *stubDetector) Detect(text string) (string, bool) {
	s.seen = text
	return s.code, s.ok
}

func TestLanguageTag(t *testing.T) {
	d := &stubDetector{code: "fr", ok: true}
	assert.Equal(t, "lang:fr", LanguageTag(d, "Mon titre", "mes notes"))
	assert.Equal(t, "Mon titre mes notes", d.seen)

	assert.Empty(t, LanguageTag(&stubDetector{ok: false}, "anything"))
	assert.Empty(t, LanguageTag(d, " ", ""))
	assert.Empty(t, LanguageTag(nil, "text"))
}

func TestLinguaDetector(t *testing.T) {
	d := NewLinguaDetector()

	code, ok := d.Detect("This is a long English sentence about reading books in the evening.")
	assert.True(t, ok)
	assert.Equal(t, "en", code)

	_, ok = d.Detect("short")
	assert.False(t, ok)
}
