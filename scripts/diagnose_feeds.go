// Command diagnose_feeds checks every RSS/Atom feed listed in the provider
// config and reports whether it is reachable, parseable and fresh.
//
//	go run ./scripts -config configs/newsfox.yaml [-json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/mmcdole/gofeed"

	"newsfox/internal/config"
)

// Feed status values.
const (
	statusOK         = "OK"
	statusHTTPError  = "HTTP_ERROR"
	statusParseError = "PARSE_ERROR"
	statusEmpty      = "EMPTY"
	statusTimeout    = "TIMEOUT"
	statusStale      = "STALE"
)

// staleAfter marks a feed whose newest item is older than this.
const staleAfter = 7 * 24 * time.Hour

// FeedDiagnostic is the result for one feed.
type FeedDiagnostic struct {
	Category     string `json:"category"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	HTTPCode     int    `json:"http_code,omitempty"`
	FeedType     string `json:"feed_type,omitempty"`
	Title        string `json:"title,omitempty"`
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func main() {
	configPath := flag.String("config", "configs/newsfox.yaml", "path to the YAML config file")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	timeout := flag.Duration("timeout", 30*time.Second, "per-feed timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Provider.Feeds) == 0 {
		log.Fatalf("no feeds configured in %s", *configPath)
	}

	client := &http.Client{}
	var diags []FeedDiagnostic
	for _, cat := range sortedKeys(cfg.Provider.Feeds) {
		for _, u := range cfg.Provider.Feeds[cat] {
			log.Printf("diagnosing %s: %s", cat, u)
			d := diagnoseFeed(context.Background(), client, u, *timeout, time.Now())
			d.Category = cat
			diags = append(diags, d)
			// 相手サーバーへの配慮
			time.Sleep(500 * time.Millisecond)
		}
	}

	if *asJSON {
		err = writeJSON(os.Stdout, diags)
	} else {
		err = writeTable(os.Stdout, diags)
	}
	if err != nil {
		log.Fatalf("write report: %v", err)
	}
}

func diagnoseFeed(ctx context.Context, client *http.Client, url string, timeout time.Duration, now time.Time) FeedDiagnostic {
	d := FeedDiagnostic{URL: url}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		d.Status, d.ErrorMessage = statusHTTPError, err.Error()
		return d
	}
	req.Header.Set("User-Agent", "NewsFox-Diagnostic/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := client.Do(req)
	d.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			d.Status, d.ErrorMessage = statusTimeout, fmt.Sprintf("no response within %v", timeout)
		} else {
			d.Status, d.ErrorMessage = statusHTTPError, err.Error()
		}
		return d
	}
	defer func() { _ = resp.Body.Close() }()

	d.HTTPCode = resp.StatusCode
	if final := resp.Request.URL.String(); final != url {
		d.RedirectURL = final
	}
	if resp.StatusCode != http.StatusOK {
		d.Status, d.ErrorMessage = statusHTTPError, resp.Status
		return d
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		d.Status, d.ErrorMessage = statusHTTPError, err.Error()
		return d
	}
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		d.Status, d.ErrorMessage = statusParseError, err.Error()
		return d
	}

	d.FeedType, d.Title, d.ItemCount = feed.FeedType, feed.Title, len(feed.Items)
	if d.ItemCount == 0 {
		d.Status = statusEmpty
		return d
	}

	var latest time.Time
	for _, it := range feed.Items {
		if it.PublishedParsed != nil && it.PublishedParsed.After(latest) {
			latest = *it.PublishedParsed
		} else if it.UpdatedParsed != nil && it.UpdatedParsed.After(latest) {
			latest = *it.UpdatedParsed
		}
	}
	d.Status = statusOK
	if !latest.IsZero() {
		d.LatestDate = latest.UTC().Format(time.RFC3339)
		if now.Sub(latest) > staleAfter {
			d.Status = statusStale
		}
	}
	return d
}

func writeTable(w io.Writer, diags []FeedDiagnostic) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tSTATUS\tITEMS\tLATEST\tMS\tURL")
	ok := 0
	for _, d := range diags {
		if d.Status == statusOK {
			ok++
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n", d.Category, d.Status, d.ItemCount, d.LatestDate, d.ResponseTime, d.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d feeds healthy\n", ok, len(diags))
	return err
}

func writeJSON(w io.Writer, diags []FeedDiagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
