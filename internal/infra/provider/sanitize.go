package provider

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsfox/internal/domain/entity"
)

// maxDescriptionRunes caps descriptions after HTML has been stripped.
const maxDescriptionRunes = 500

// plainText strips markup from s and collapses whitespace. Upstream
// descriptions, RSS in particular, frequently embed HTML fragments.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			doc.Find("script, style").Remove()
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

// optional returns nil for blank strings.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseTime accepts the timestamp layouts seen across providers.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// normalize cleans a decoded article and reports whether it is usable.
// Articles without a title or a valid http(s) URL are dropped.
func normalize(a entity.Article) (entity.Article, bool) {
	a.Title = plainText(a.Title)
	a.URL = strings.TrimSpace(a.URL)
	if a.Title == "" || entity.ValidateArticleURL(a.URL) != nil {
		return a, false
	}
	a.Description = truncateRunes(plainText(a.Description), maxDescriptionRunes)
	if a.ImageURL != nil && entity.ValidateArticleURL(*a.ImageURL) != nil {
		a.ImageURL = nil
	}
	a.SourceName = strings.TrimSpace(a.SourceName)
	if a.SourceName == "" {
		a.SourceName = entity.DefaultFavoriteSource
	}
	return a, true
}
