// Package generator builds the display fields of a new bookmark: title,
// body preview, preview image and AI tags. All output is templated from
// the content type and hostname.
package generator

import (
	"strings"

	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/classifier"
)

// Title returns a placeholder title for a bookmark saved without one.
func Title(rawURL string, ct models.ContentType) string {
	domain := strings.Replace(hostname(rawURL), "www.", "", 1)
	if domain == "" {
		domain = strings.TrimSpace(rawURL)
	}

	switch ct {
	case models.ContentBook:
		return "Book Title from " + domain
	case models.ContentProduct:
		return "Product Name from " + domain
	case models.ContentArticle:
		return "Article Title from " + domain
	case models.ContentProperty:
		return "Property Listing from " + domain
	case models.ContentTVShow:
		return "TV Show from " + domain
	case models.ContentTweet:
		return "Tweet from " + domain
	default:
		return domain + " - Website"
	}
}

// Preview returns the placeholder body text for a content type.
func Preview(rawURL string, ct models.ContentType) string {
	switch ct {
	case models.ContentBook:
		return "A book I want to read..."
	case models.ContentProduct:
		return "A product I'm interested in..."
	case models.ContentArticle:
		return "An article I'm reading..."
	case models.ContentProperty:
		return "A property I'm considering..."
	case models.ContentTVShow:
		return "A show I want to watch..."
	case models.ContentTweet:
		return "An interesting tweet..."
	case models.ContentWebsite:
		return "A website I find useful..."
	default:
		return "Saved from " + hostname(rawURL)
	}
}

const (
	shoppingImage  = "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=400&h=300&fit=crop"
	streamingImage = "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=400&h=300&fit=crop"
)

// PreviewImage returns a stock image for a few known domains, or "".
func PreviewImage(rawURL string) string {
	domain := strings.ToLower(hostname(rawURL))
	switch {
	case strings.Contains(domain, "amazon."):
		return shoppingImage
	case strings.Contains(domain, "netflix."):
		return streamingImage
	}
	return ""
}

// ImageURL picks the image for a new item: book cover, then poster,
// then the domain preview image.
func ImageURL(rawURL string, md models.Metadata) string {
	switch d := md.Details.(type) {
	case *models.BookDetails:
		if d.BookCover != "" {
			return d.BookCover
		}
	case *models.TVShowDetails:
		if d.Poster != "" {
			return d.Poster
		}
	}
	return PreviewImage(rawURL)
}

var baseTags = map[models.ContentType][]string{
	models.ContentBook:     {"reading", "literature"},
	models.ContentProduct:  {"shopping", "purchase"},
	models.ContentArticle:  {"reading", "information"},
	models.ContentProperty: {"real-estate", "housing"},
	models.ContentTVShow:   {"entertainment", "watching"},
	models.ContentTweet:    {"social-media", "discussion"},
	models.ContentWebsite:  {"reference", "resource"},
}

var domainTags = []struct {
	keyword string
	tags    []string
}{
	{"amazon", []string{"amazon"}},
	{"netflix", []string{"netflix"}},
	{"youtube", []string{"youtube", "video"}},
	{"github", []string{"github", "development"}},
}

// AITags returns the type tags followed by domain keyword tags.
func AITags(ct models.ContentType, rawURL string) []string {
	tags := append([]string{}, baseTags[ct]...)

	domain := strings.ToLower(hostname(rawURL))
	for _, dt := range domainTags {
		if strings.Contains(domain, dt.keyword) {
			tags = append(tags, dt.tags...)
		}
	}
	return tags
}

// DedupeTags trims and drops empty or repeated tags, keeping first
// occurrences in order.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func hostname(rawURL string) string {
	if u, err := classifier.ParseStrict(rawURL); err == nil {
		return u.Hostname()
	}
	return classifier.LooseHostname(rawURL)
}
