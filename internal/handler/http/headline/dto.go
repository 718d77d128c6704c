package headline

import (
	"time"

	"newsfox/internal/common/pagination"
	"newsfox/internal/domain/entity"
)

// UnknownAuthor is shown for articles without a byline.
const UnknownAuthor = "Unknown"

// ArticleDTO is the JSON representation of a headline.
type ArticleDTO struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    *string   `json:"imageUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author" example:"Unknown"`
	SourceName  string    `json:"sourceName"`
}

// PageDTO is one page of headlines.
type PageDTO struct {
	Category       string       `json:"category" example:"technology"`
	Page           int          `json:"page" example:"1"`
	PageSize       int          `json:"pageSize" example:"12"`
	TotalAvailable int          `json:"totalAvailable" example:"87"`
	TotalPages     int          `json:"totalPages" example:"8"`
	HasMore        bool         `json:"hasMore"`
	Articles       []ArticleDTO `json:"articles"`
}

// CategoriesDTO lists the supported categories.
type CategoriesDTO struct {
	Categories []string `json:"categories"`
	Default    string   `json:"default" example:"general"`
}

func toPageDTO(c entity.Category, p *entity.Page) PageDTO {
	out := PageDTO{
		Category:       c.String(),
		Page:           p.PageNumber,
		PageSize:       entity.PageSize,
		TotalAvailable: p.TotalAvailable,
		TotalPages:     pagination.CalculateTotalPages(int64(p.TotalAvailable), entity.PageSize),
		Articles:       make([]ArticleDTO, 0, len(p.Articles)),
	}
	for _, a := range p.Articles {
		author := UnknownAuthor
		if a.Author != nil && *a.Author != "" {
			author = *a.Author
		}
		out.Articles = append(out.Articles, ArticleDTO{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.ImageURL,
			PublishedAt: a.PublishedAt,
			Author:      author,
			SourceName:  a.SourceName,
		})
	}
	// 直前までのページは満杯とみなす
	seen := pagination.CalculateOffset(p.PageNumber, entity.PageSize) + len(p.Articles)
	out.HasMore = len(p.Articles) > 0 && !p.IsLast(seen)
	return out
}
