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

// removedMarker is the title NewsAPI uses for articles taken down by the source.
const removedMarker = "[Removed]"

// NewsAPI fetches top headlines from newsapi.org.
type NewsAPI struct {
	cfg config.ProviderConfig
	t   *transport
}

// NewNewsAPI creates a NewsAPI adapter. client must not be nil.
func NewNewsAPI(cfg config.ProviderConfig, client *http.Client) *NewsAPI {
	return &NewsAPI{
		cfg: cfg,
		t: &transport{
			name:    config.ProviderNewsAPI,
			client:  client,
			limiter: NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		},
	}
}

// Name returns the provider name.
func (n *NewsAPI) Name() string { return config.ProviderNewsAPI }

type newsAPIResponse struct {
	Status       string            `json:"status"`
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	TotalResults int               `json:"totalResults"`
	Articles     *[]newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// FetchPage requests one page of top headlines for category.
func (n *NewsAPI) FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error) {
	if err := validateRequest(n.Name(), category, page, pageSize); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("category", n.cfg.Topic(category))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	if n.cfg.Country != "" {
		q.Set("country", n.cfg.Country)
	} else if n.cfg.Language != "" {
		q.Set("language", n.cfg.Language)
	}
	endpoint := strings.TrimRight(n.cfg.BaseURL, "/") + "/top-headlines?" + q.Encode()

	header := http.Header{}
	header.Set("X-Api-Key", n.cfg.APIKey())
	status, body, err := n.t.get(ctx, endpoint, header)
	if err != nil {
		return nil, err
	}

	var resp newsAPIResponse
	decodeErr := json.Unmarshal(body, &resp)

	if decodeErr == nil && resp.Status == "error" {
		kind := entity.ProviderErrUpstream
		if nonOK(status) != 0 {
			kind = entity.ProviderErrStatus
		}
		msg := resp.Message
		if resp.Code != "" {
			msg = resp.Code + ": " + msg
		}
		return nil, n.t.fail(kind, nonOK(status), msg, nil)
	}
	if nonOK(status) != 0 {
		return nil, n.t.fail(entity.ProviderErrStatus, status, http.StatusText(status), nil)
	}
	if decodeErr != nil {
		return nil, n.t.fail(entity.ProviderErrDecode, 0, "invalid JSON", decodeErr)
	}
	if resp.Articles == nil {
		return nil, n.t.fail(entity.ProviderErrShape, 0, "response has no articles list", nil)
	}

	out := &entity.Page{
		Articles:       make([]entity.Article, 0, len(*resp.Articles)),
		TotalAvailable: resp.TotalResults,
		PageNumber:     page,
	}
	for _, a := range *resp.Articles {
		if a.Title == removedMarker {
			continue
		}
		art, ok := normalize(entity.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    optional(a.URLToImage),
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
