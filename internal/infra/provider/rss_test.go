package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsfox/internal/config"
	"newsfox/internal/domain/entity"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Sports Daily</title>
    <link>https://sports.example.com</link>
    <item>
      <title>Match report</title>
      <link>https://sports.example.com/match</link>
      <description>&lt;p&gt;Late &lt;b&gt;winner&lt;/b&gt;&lt;/p&gt;</description>
      <author>desk@sports.example.com (Sports Desk)</author>
      <enclosure url="https://sports.example.com/match.jpg" type="image/jpeg" length="1"/>
      <pubDate>Tue, 02 Jan 2024 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Transfer news</title>
      <link>https://shared.example.com/transfer</link>
      <description>Rumours</description>
      <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>League Wire</title>
  <updated>2024-01-03T00:00:00Z</updated>
  <entry>
    <title>Table update</title>
    <link href="https://league.example.com/table"/>
    <id>1</id>
    <updated>2024-01-03T00:00:00Z</updated>
    <summary>Top of the table</summary>
    <author><name>League Staff</name></author>
  </entry>
  <entry>
    <title>Transfer news (wire copy)</title>
    <link href="https://shared.example.com/transfer"/>
    <id>2</id>
    <updated>2023-12-31T00:00:00Z</updated>
  </entry>
</feed>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rss", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, rssFeed)
	})
	mux.HandleFunc("GET /atom", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = fmt.Fprint(w, atomFeed)
	})
	mux.HandleFunc("GET /broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})
	mux.HandleFunc("GET /html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<html><body>not a feed</body></html>")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func rssConfig(srv *httptest.Server, paths ...string) config.ProviderConfig {
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		urls = append(urls, srv.URL+p)
	}
	return config.ProviderConfig{
		Kind:  config.ProviderRSS,
		Feeds: map[string][]string{"sports": urls},
	}
}

/*──────────────────────── 正常系 ────────────────────────*/

func TestRSS_FetchPage_MergesFeeds(t *testing.T) {
	srv := feedServer(t)
	r := NewRSS(rssConfig(srv, "/rss", "/atom"), testClient())

	page, err := r.FetchPage(context.Background(), entity.CategorySports, 1, entity.PageSize)
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalAvailable, "duplicate URL across feeds counted once")
	require.Len(t, page.Articles, 3)

	titles := []string{page.Articles[0].Title, page.Articles[1].Title, page.Articles[2].Title}
	assert.Equal(t, []string{"Table update", "Match report", "Transfer news"}, titles)

	match := page.Articles[1]
	assert.Equal(t, "Late winner", match.Description)
	assert.Equal(t, "Sports Daily", match.SourceName)
	require.NotNil(t, match.ImageURL)
	assert.Equal(t, "https://sports.example.com/match.jpg", *match.ImageURL)
	require.NotNil(t, match.Author)
	assert.Equal(t, "Sports Desk", *match.Author)

	require.NotNil(t, page.Articles[0].Author)
	assert.Equal(t, "League Staff", *page.Articles[0].Author)
}

func TestRSS_FetchPage_PagesLocally(t *testing.T) {
	srv := feedServer(t)
	r := NewRSS(rssConfig(srv, "/rss", "/atom"), testClient())

	p1, err := r.FetchPage(context.Background(), entity.CategorySports, 1, 2)
	require.NoError(t, err)
	p2, err := r.FetchPage(context.Background(), entity.CategorySports, 2, 2)
	require.NoError(t, err)
	p3, err := r.FetchPage(context.Background(), entity.CategorySports, 3, 2)
	require.NoError(t, err)

	assert.Len(t, p1.Articles, 2)
	assert.Len(t, p2.Articles, 1)
	assert.Empty(t, p3.Articles)
	assert.NotNil(t, p3.Articles)
	for _, p := range []*entity.Page{p1, p2, p3} {
		assert.Equal(t, 3, p.TotalAvailable)
	}
	assert.Equal(t, "Transfer news", p2.Articles[0].Title)
}

func TestRSS_FetchPage_PartialFailure(t *testing.T) {
	srv := feedServer(t)
	r := NewRSS(rssConfig(srv, "/rss", "/broken"), testClient())

	page, err := r.FetchPage(context.Background(), entity.CategorySports, 1, entity.PageSize)

	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalAvailable)
}

/*──────────────────────── 異常系 ────────────────────────*/

func TestRSS_FetchPage_Errors(t *testing.T) {
	srv := feedServer(t)

	t.Run("all feeds fail", func(t *testing.T) {
		r := NewRSS(rssConfig(srv, "/broken"), testClient())
		_, err := r.FetchPage(context.Background(), entity.CategorySports, 1, entity.PageSize)
		pe := requireKind(t, err, entity.ProviderErrStatus)
		assert.Equal(t, http.StatusGone, pe.StatusCode)
	})

	t.Run("not a feed", func(t *testing.T) {
		r := NewRSS(rssConfig(srv, "/html"), testClient())
		_, err := r.FetchPage(context.Background(), entity.CategorySports, 1, entity.PageSize)
		requireKind(t, err, entity.ProviderErrShape)
	})

	t.Run("category without feeds", func(t *testing.T) {
		r := NewRSS(rssConfig(srv, "/rss"), testClient())
		_, err := r.FetchPage(context.Background(), entity.CategoryHealth, 1, entity.PageSize)
		requireKind(t, err, entity.ProviderErrInvalidRequest)
	})

	t.Run("cancelled context", func(t *testing.T) {
		r := NewRSS(rssConfig(srv, "/rss"), testClient())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.FetchPage(ctx, entity.CategorySports, 1, entity.PageSize)
		requireKind(t, err, entity.ProviderErrNetwork)
	})
}
