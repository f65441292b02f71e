package models

import (
	"encoding/json"
	"fmt"
)

// Details is the type-specific part of Metadata. Exactly one variant
// exists per content type that carries extra fields, and Kind is the
// discriminant used when the metadata is stored.
type Details interface {
	Kind() ContentType
	clone() Details
}

// Metadata describes a saved item. Domain, SourceURL and Author apply to
// every content type; everything else lives in Details.
type Metadata struct {
	Domain    string
	SourceURL string
	Author    string
	Details   Details
}

// Kind returns the content type of the details variant, or "" when the
// metadata carries no details.
func (m Metadata) Kind() ContentType {
	if m.Details == nil {
		return ""
	}
	return m.Details.Kind()
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Details != nil {
		out.Details = m.Details.clone()
	}
	return out
}

// IsZero reports whether no field has been set.
func (m Metadata) IsZero() bool {
	return m.Domain == "" && m.SourceURL == "" && m.Author == "" && m.Details == nil
}

// BookDetails holds fields for book items.
type BookDetails struct {
	ISBN        string  `json:"isbn,omitempty"`
	Author      string  `json:"author,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
	PublishDate string  `json:"publishDate,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	BookCover   string  `json:"bookCover,omitempty"`
}

// ProductDetails holds fields for shopping items.
type ProductDetails struct {
	Price         string `json:"price,omitempty"`
	OriginalPrice string `json:"originalPrice,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Designer      string `json:"designer,omitempty"`
	Category      string `json:"category,omitempty"`
	Availability  string `json:"availability,omitempty"`
}

// ArticleDetails holds fields for articles and blog posts.
type ArticleDetails struct {
	Publication   string `json:"publication,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	ReadingTime   int    `json:"readingTime,omitempty"` // minutes
	Excerpt       string `json:"excerpt,omitempty"`
	WordCount     int    `json:"wordCount,omitempty"`
}

// PropertyDetails holds fields for real-estate listings.
type PropertyDetails struct {
	PropertyPrice string `json:"propertyPrice,omitempty"`
	PropertyType  string `json:"propertyType,omitempty"`
	Bedrooms      int    `json:"bedrooms,omitempty"`
	Bathrooms     int    `json:"bathrooms,omitempty"`
	SquareFootage string `json:"squareFootage,omitempty"`
	Location      string `json:"location,omitempty"`
}

// TVShowDetails holds fields for shows and films.
type TVShowDetails struct {
	Poster      string  `json:"poster,omitempty"`
	IMDbRating  float64 `json:"imdbRating,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	ReleaseYear string  `json:"releaseYear,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Summary     string  `json:"summary,omitempty"`
}

// WebsiteDetails holds fields for generic websites.
type WebsiteDetails struct {
	Favicon     string `json:"favicon,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Description string `json:"description,omitempty"`
}

// TweetDetails holds fields for social posts.
type TweetDetails struct {
	TweetID     string `json:"tweetId,omitempty"`
	TweetAuthor string `json:"tweetAuthor,omitempty"`
	TweetHandle string `json:"tweetHandle,omitempty"`
	TweetDate   string `json:"tweetDate,omitempty"`
	Likes       int    `json:"likes,omitempty"`
	Retweets    int    `json:"retweets,omitempty"`
}

func (*BookDetails) Kind() ContentType     { return ContentBook }
func (*ProductDetails) Kind() ContentType  { return ContentProduct }
func (*ArticleDetails) Kind() ContentType  { return ContentArticle }
func (*PropertyDetails) Kind() ContentType { return ContentProperty }
func (*TVShowDetails) Kind() ContentType   { return ContentTVShow }
func (*WebsiteDetails) Kind() ContentType  { return ContentWebsite }
func (*TweetDetails) Kind() ContentType    { return ContentTweet }

func (d *BookDetails) clone() Details     { c := *d; return &c }
func (d *ProductDetails) clone() Details  { c := *d; return &c }
func (d *ArticleDetails) clone() Details  { c := *d; return &c }
func (d *PropertyDetails) clone() Details { c := *d; return &c }
func (d *TVShowDetails) clone() Details   { c := *d; return &c }
func (d *WebsiteDetails) clone() Details  { c := *d; return &c }
func (d *TweetDetails) clone() Details    { c := *d; return &c }

// NewDetails returns an empty variant for kind, or nil when the content
// type has no type-specific fields (note, link, image, quote, code).
func NewDetails(kind ContentType) Details {
	switch kind {
	case ContentBook:
		return &BookDetails{}
	case ContentProduct:
		return &ProductDetails{}
	case ContentArticle:
		return &ArticleDetails{}
	case ContentProperty:
		return &PropertyDetails{}
	case ContentTVShow:
		return &TVShowDetails{}
	case ContentWebsite:
		return &WebsiteDetails{}
	case ContentTweet:
		return &TweetDetails{}
	}
	return nil
}

type metadataJSON struct {
	Domain    string          `json:"domain,omitempty"`
	SourceURL string          `json:"sourceUrl,omitempty"`
	Author    string          `json:"author,omitempty"`
	Kind      ContentType     `json:"kind,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// MarshalJSON writes the details under "details" with "kind" as the tag.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := metadataJSON{
		Domain:    m.Domain,
		SourceURL: m.SourceURL,
		Author:    m.Author,
	}
	if m.Details != nil {
		raw, err := json.Marshal(m.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s details: %w", m.Details.Kind(), err)
		}
		out.Kind = m.Details.Kind()
		out.Details = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON selects the details variant from "kind".
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var in metadataJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*m = Metadata{
		Domain:    in.Domain,
		SourceURL: in.SourceURL,
		Author:    in.Author,
	}
	if in.Kind == "" {
		return nil
	}

	details := NewDetails(in.Kind)
	if details == nil {
		return fmt.Errorf("metadata kind %q has no details variant", in.Kind)
	}
	if len(in.Details) > 0 {
		if err := json.Unmarshal(in.Details, details); err != nil {
			return fmt.Errorf("failed to unmarshal %s details: %w", in.Kind, err)
		}
	}
	m.Details = details
	return nil
}
