package favorite

import (
	"time"

	"newsfox/internal/domain/entity"
)

// CreateRequest is the POST /favorites body.
type CreateRequest struct {
	Title    string  `json:"title" example:"Markets rally on rate cut hopes"`
	URL      string  `json:"url" example:"https://news.example.com/markets"`
	ImageURL *string `json:"imageUrl,omitempty" example:"https://news.example.com/markets.jpg"`
	Source   *string `json:"source,omitempty" example:"Example News"`
}

// DTO is the JSON representation of a favorite.
type DTO struct {
	ID       string    `json:"id" example:"2f1c6a7e-8a0b-4d5e-9c3f-1b2a3c4d5e6f"`
	UserID   string    `json:"userId"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	ImageURL *string   `json:"imageUrl"`
	Source   string    `json:"source" example:"Unknown"`
	AddedAt  time.Time `json:"addedAt"`
}

// CreatedResponse wraps a newly created favorite.
type CreatedResponse struct {
	Favorite DTO `json:"favorite"`
}

// ExistingResponse is returned when the URL was already saved.
type ExistingResponse struct {
	Message  string `json:"message" example:"Already in favorites"`
	Favorite DTO    `json:"favorite"`
}

// ListResponse wraps the caller's favorites, newest first.
type ListResponse struct {
	Favorites []DTO `json:"favorites"`
}

func toDTO(f *entity.Favorite) DTO {
	return DTO{
		ID:       f.ID,
		UserID:   f.UserID,
		Title:    f.Title,
		URL:      f.URL,
		ImageURL: f.ImageURL,
		Source:   f.Source,
		AddedAt:  f.AddedAt,
	}
}
