// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv reads category listings from the arXiv API, newest
// submissions first, as a lazily paginated sequence of raw records.
package arxiv

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// apiBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

const (
	defaultPageSize  = 100
	defaultPageDelay = 3 * time.Second
	defaultUserAgent = "arxiv-digest/0.1"
)

// Client queries the arXiv API.
type Client struct {
	httpClient *http.Client
	cfg        types.ListingConfig
	logger     *slog.Logger
}

// NewClient returns a Client using cfg. A zero PageSize, PageDelay or
// UserAgent takes the package default; a negative PageDelay disables the
// pause between pages.
func NewClient(httpClient *http.Client, cfg types.ListingConfig, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.PageDelay == 0 {
		cfg.PageDelay = defaultPageDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, cfg: cfg, logger: logger}
}

// Search yields the results for category sorted by submission date,
// newest first. Pages are requested only as the consumer pulls; breaking
// out of the loop stops pagination. A request or parse failure is yielded
// once as an error and ends the sequence.
func (c *Client) Search(ctx context.Context, category string) iter.Seq2[types.RawRecord, error] {
	return func(yield func(types.RawRecord, error) bool) {
		query := buildQuery(category)
		limiter := c.pageLimiter()
		read := 0
		for start := 0; ; start += c.cfg.PageSize {
			if err := limiter.Wait(ctx); err != nil {
				yield(types.RawRecord{}, err)
				return
			}

			size := c.cfg.PageSize
			if c.cfg.MaxResults > 0 && c.cfg.MaxResults-read < size {
				size = c.cfg.MaxResults - read
			}

			feed, err := c.fetchPage(ctx, query, start, size)
			if err != nil {
				yield(types.RawRecord{}, fmt.Errorf("arXiv query %q at offset %d: %w", query, start, err))
				return
			}
			c.logger.Debug("fetched listing page",
				slog.String("category", category),
				slog.Int("start", start),
				slog.Int("entries", len(feed.Items)))

			for _, item := range feed.Items {
				if !yield(toRawRecord(item), nil) {
					return
				}
				read++
			}

			if len(feed.Items) == 0 || len(feed.Items) < size {
				return
			}
			if c.cfg.MaxResults > 0 && read >= c.cfg.MaxResults {
				return
			}
			if total, ok := totalResults(feed); ok && start+len(feed.Items) >= total {
				return
			}
		}
	}
}

// pageLimiter paces page requests one PageDelay apart. The first request
// goes out immediately.
func (c *Client) pageLimiter() *rate.Limiter {
	if c.cfg.PageDelay < 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(c.cfg.PageDelay), 1)
}

func (c *Client) fetchPage(ctx context.Context, query string, start, size int) (*gofeed.Feed, error) {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(size))

	fp := gofeed.NewParser()
	fp.Client = c.httpClient
	fp.UserAgent = c.cfg.UserAgent
	return fp.ParseURLWithContext(apiBase+"?"+params.Encode(), ctx)
}

// buildQuery turns a category into a search_query value. A value that
// already names a field (e.g. "cat:cs.LG" or "all:llm") is used as is.
func buildQuery(category string) string {
	category = strings.TrimSpace(category)
	if strings.Contains(category, ":") {
		return category
	}
	return "cat:" + category
}

// totalResults reads opensearch:totalResults from the feed, if present.
func totalResults(feed *gofeed.Feed) (int, bool) {
	exts, ok := feed.Extensions["opensearch"]["totalResults"]
	if !ok || len(exts) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(exts[0].Value))
	if err != nil {
		return 0, false
	}
	return n, true
}

func toRawRecord(item *gofeed.Item) types.RawRecord {
	r := types.RawRecord{
		PublishedParsed: item.PublishedParsed,
		Link:            item.Link,
		Title:           item.Title,
		Summary:         item.Description,
		Published:       item.Published,
		ID:              item.GUID,
	}
	for _, a := range item.Authors {
		if a == nil {
			continue
		}
		r.Authors = append(r.Authors, types.Author{Name: a.Name})
	}
	for _, term := range item.Categories {
		r.Tags = append(r.Tags, types.Tag{Term: term})
	}
	return r
}
