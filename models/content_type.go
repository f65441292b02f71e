package models

import "fmt"

// ContentType is the closed set of content kinds a saved item can have.
// Renderers dispatch on it, so adding a value means updating both the
// classifier tables and every dispatch site.
type ContentType string

const (
	ContentNote     ContentType = "note"
	ContentLink     ContentType = "link"
	ContentImage    ContentType = "image"
	ContentQuote    ContentType = "quote"
	ContentCode     ContentType = "code"
	ContentBook     ContentType = "book"
	ContentProduct  ContentType = "product"
	ContentArticle  ContentType = "article"
	ContentProperty ContentType = "property"
	ContentTVShow   ContentType = "tv_show"
	ContentWebsite  ContentType = "website"
	ContentTweet    ContentType = "tweet"
)

var allContentTypes = []ContentType{
	ContentNote, ContentLink, ContentImage, ContentQuote, ContentCode,
	ContentBook, ContentProduct, ContentArticle, ContentProperty,
	ContentTVShow, ContentWebsite, ContentTweet,
}

type contentTypeInfo struct {
	display string
	icon    string
}

var contentTypeInfos = map[ContentType]contentTypeInfo{
	ContentNote:     {"Note", "IconNote"},
	ContentLink:     {"Link", "IconLink"},
	ContentImage:    {"Image", "IconPhoto"},
	ContentQuote:    {"Quote", "IconQuote"},
	ContentCode:     {"Code", "IconCode"},
	ContentBook:     {"Book", "IconBook"},
	ContentProduct:  {"Product", "IconShoppingCart"},
	ContentArticle:  {"Article", "IconArticle"},
	ContentProperty: {"Property", "IconHome"},
	ContentTVShow:   {"TV Show", "IconDeviceTv"},
	ContentWebsite:  {"Website", "IconWorld"},
	ContentTweet:    {"Tweet", "IconBrandTwitter"},
}

// AllContentTypes returns every content type in declaration order.
func AllContentTypes() []ContentType {
	out := make([]ContentType, len(allContentTypes))
	copy(out, allContentTypes)
	return out
}

// ParseContentType converts a stored string back into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	if !ct.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return ct, nil
}

// Valid reports whether ct is one of the declared content types.
func (ct ContentType) Valid() bool {
	_, ok := contentTypeInfos[ct]
	return ok
}

// DisplayName returns the human label, e.g. "TV Show".
func (ct ContentType) DisplayName() string {
	if info, ok := contentTypeInfos[ct]; ok {
		return info.display
	}
	return "Unknown"
}

// Icon returns the Tabler icon name used by the dashboard.
func (ct ContentType) Icon() string {
	if info, ok := contentTypeInfos[ct]; ok {
		return info.icon
	}
	return "IconFile"
}

func (ct ContentType) String() string {
	return string(ct)
}
