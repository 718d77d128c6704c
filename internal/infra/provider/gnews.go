package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"newsfox/internal/config"
	"newsfox/internal/domain/entity"
)

// GNews fetches top headlines from the GNews v4 API.
type GNews struct {
	cfg config.ProviderConfig
	t   *transport
}

// NewGNews creates a GNews adapter. client must not be nil.
func NewGNews(cfg config.ProviderConfig, client *http.Client) *GNews {
	return &GNews{
		cfg: cfg,
		t: &transport{
			name:    config.ProviderGNews,
			client:  client,
			limiter: NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		},
	}
}

// Name returns the provider name.
func (g *GNews) Name() string { return config.ProviderGNews }

type gnewsResponse struct {
	TotalArticles int             `json:"totalArticles"`
	Articles      *[]gnewsArticle `json:"articles"`
	Errors        json.RawMessage `json:"errors"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// FetchPage requests one page of top headlines for category.
func (g *GNews) FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error) {
	if err := validateRequest(g.Name(), category, page, pageSize); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("category", g.cfg.Topic(category))
	q.Set("max", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	if g.cfg.Language != "" {
		q.Set("lang", g.cfg.Language)
	}
	if g.cfg.Country != "" {
		q.Set("country", g.cfg.Country)
	}
	q.Set("apikey", g.cfg.APIKey())
	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + "/top-headlines?" + q.Encode()

	status, body, err := g.t.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp gnewsResponse
	decodeErr := json.Unmarshal(body, &resp)

	// GNews reports failures as {"errors": [...]} or {"errors": {...}}
	if decodeErr == nil && len(resp.Errors) > 0 && string(resp.Errors) != "null" {
		kind := entity.ProviderErrUpstream
		if status < 200 || status > 299 {
			kind = entity.ProviderErrStatus
		}
		return nil, g.t.fail(kind, nonOK(status), gnewsErrorMessage(resp.Errors), nil)
	}
	if status < 200 || status > 299 {
		return nil, g.t.fail(entity.ProviderErrStatus, status, http.StatusText(status), nil)
	}
	if decodeErr != nil {
		return nil, g.t.fail(entity.ProviderErrDecode, 0, "invalid JSON", decodeErr)
	}
	if resp.Articles == nil {
		return nil, g.t.fail(entity.ProviderErrShape, 0, "response has no articles list", nil)
	}

	out := &entity.Page{
		Articles:       make([]entity.Article, 0, len(*resp.Articles)),
		TotalAvailable: resp.TotalArticles,
		PageNumber:     page,
	}
	for _, a := range *resp.Articles {
		image := a.Image
		if image == "" {
			image = a.URLToImage
		}
		art, ok := normalize(entity.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    optional(image),
			PublishedAt: parseTime(a.PublishedAt),
			Author:      optional(a.Author),
			SourceName:  a.Source.Name,
		})
		if ok {
			out.Articles = append(out.Articles, art)
		}
	}
	return out, nil
}

// nonOK returns status when it is not a 2xx code, otherwise 0.
func nonOK(status int) int {
	if status >= 200 && status <= 299 {
		return 0
	}
	return status
}

func gnewsErrorMessage(raw json.RawMessage) string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		parts := make([]string, 0, len(obj))
		for k, v := range obj {
			parts = append(parts, k+": "+v)
		}
		return strings.Join(parts, "; ")
	}
	return string(raw)
}
