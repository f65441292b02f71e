// Package importer reads bookmark exports from browsers.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/mindsync/models"
)

// ParseNetscape reads a Netscape bookmark file, the HTML format every
// major browser exports. Links without an http(s) URL are skipped.
func ParseNetscape(r io.Reader) ([]models.ImportedBookmark, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark file: %w", err)
	}

	bookmarks := []models.ImportedBookmark{}
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if !isWebURL(href) {
			return
		}

		b := models.ImportedBookmark{
			URL:    href,
			Title:  strings.TrimSpace(s.Text()),
			Folder: folderOf(s),
			Tags:   splitTags(s.AttrOr("tags", "")),
		}
		if added, ok := unixSeconds(s.AttrOr("add_date", "")); ok {
			b.AddedAt = added
		}
		bookmarks = append(bookmarks, b)
	})

	return bookmarks, nil
}

// folderOf returns the heading of the list that contains s. Exports
// nest as <DT><H3>Folder</H3><DL>...</DL>.
func folderOf(s *goquery.Selection) string {
	list := s.Closest("dl")
	if list.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(list.PrevFiltered("h3").First().Text())
}

func isWebURL(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func unixSeconds(raw string) (time.Time, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	return time.Unix(n, 0).UTC(), true
}
