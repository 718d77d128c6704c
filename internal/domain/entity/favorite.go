package entity

import "time"

// DefaultFavoriteSource is stored when a favorite is created without a source name.
const DefaultFavoriteSource = "Unknown"

// User is the persisted record for an authenticated identity.
// Email is the natural key handed over by the identity provider.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Favorite is a user-owned saved reference to an article.
// The pair (UserID, URL) is unique. Favorites are immutable once created.
type Favorite struct {
	ID       string
	UserID   string
	Title    string
	URL      string
	ImageURL *string
	Source   string
	AddedAt  time.Time
}
