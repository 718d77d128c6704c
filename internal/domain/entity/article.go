// Package entity defines the core domain entities and validation logic for the application.
// It contains the headline types produced by upstream providers (Article, Page, Category)
// and the persisted user-owned records (User, Favorite), along with their validation
// rules and domain-specific errors.
package entity

import "time"

// PageSize is the fixed number of articles requested from a provider per page.
const PageSize = 12

// Article represents a single headline returned by a provider.
// Articles are transient: they are never persisted and are identified by URL.
type Article struct {
	Title       string
	Description string
	URL         string
	ImageURL    *string
	PublishedAt time.Time
	Author      *string
	SourceName  string
}

// Page is one normalized page of provider results.
type Page struct {
	Articles       []Article
	TotalAvailable int
	PageNumber     int
}

// IsLast reports whether no further pages can be requested after this one,
// given the number of articles accumulated so far.
func (p *Page) IsLast(accumulated int) bool {
	return accumulated >= p.TotalAvailable
}
