package enricher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/mindsync/models"
)

// profile is one category of mock enrichment.
type profile struct {
	name    string
	matches func(domain string) bool
	build   func(e *Enricher, domain string) models.Details
}

func domainContains(needles ...string) func(string) bool {
	return func(domain string) bool {
		for _, n := range needles {
			if strings.Contains(domain, n) {
				return true
			}
		}
		return false
	}
}

// profiles is checked in order; the first match is the only one applied.
var profiles = []profile{
	{
		name:    "shopping",
		matches: domainContains("amazon."),
		build: func(*Enricher, string) models.Details {
			return &models.ProductDetails{
				Price:        "$29.99",
				Brand:        "Brand Name",
				Availability: "In Stock",
				Category:     "Electronics",
			}
		},
	},
	{
		name:    "catalog",
		matches: domainContains("goodreads."),
		build: func(*Enricher, string) models.Details {
			return &models.BookDetails{
				Author:      "Author Name",
				Publisher:   "Publisher Name",
				Rating:      4.5,
				Genre:       "Fiction",
				PublishDate: "2024",
			}
		},
	},
	{
		name:    "streaming",
		matches: domainContains("netflix.", "imdb."),
		build: func(*Enricher, string) models.Details {
			return &models.TVShowDetails{
				IMDbRating:  8.5,
				ReleaseYear: "2024",
				Genre:       "Drama",
				Duration:    "120 min",
				Summary:     "A compelling story about...",
			}
		},
	},
	{
		name:    "real-estate",
		matches: domainContains("zillow.", "realtor."),
		build: func(*Enricher, string) models.Details {
			return &models.PropertyDetails{
				PropertyPrice: "$450,000",
				Bedrooms:      3,
				Bathrooms:     2,
				SquareFootage: "1,850 sq ft",
				Location:      "City, State",
				PropertyType:  "Single Family Home",
			}
		},
	},
	{
		name:    "social",
		matches: domainContains("twitter.", "x.com"),
		build: func(e *Enricher, _ string) models.Details {
			return &models.TweetDetails{
				TweetAuthor: "User Name",
				TweetHandle: "username",
				TweetDate:   e.timestamp(),
				Likes:       e.intn(1000),
				Retweets:    e.intn(100),
			}
		},
	},
	{
		name:    "blogging",
		matches: isArticleDomain,
		build: func(e *Enricher, domain string) models.Details {
			return &models.ArticleDetails{
				Publication:   PublicationNameFromDomain(domain),
				PublishedDate: e.timestamp(),
				ReadingTime:   e.intn(10) + 1,
				Excerpt:       "This article explores...",
			}
		},
	},
}

func matchProfile(domain string) (profile, bool) {
	for _, p := range profiles {
		if p.matches(domain) {
			return p, true
		}
	}
	return profile{}, false
}

var articleDomains = []string{
	"medium.com", "substack.com", "dev.to", "hashnode.com",
	"blog.", "news.", "article.", "post.",
}

func isArticleDomain(domain string) bool {
	return domainContains(articleDomains...)(domain)
}

var publicationNames = []struct {
	domain string
	name   string
}{
	{"medium.com", "Medium"},
	{"substack.com", "Substack"},
	{"dev.to", "DEV Community"},
	{"hashnode.com", "Hashnode"},
}

// PublicationNameFromDomain returns a display name for a publishing
// domain. Unknown "blog.<name>.<tld>" hosts become "<Name> Blog"; any
// other host is returned with its first letter capitalised.
func PublicationNameFromDomain(domain string) string {
	for _, p := range publicationNames {
		if strings.Contains(domain, p.domain) {
			return p.name
		}
	}

	parts := strings.Split(domain, ".")
	if parts[0] == "blog" && len(parts) > 2 {
		return capitalize(parts[1]) + " Blog"
	}
	return capitalize(domain)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
