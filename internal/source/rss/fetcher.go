package rss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"noteflow/internal/domain"
)

const maxBodyBytes = 10 << 20

// Config holds fetcher configuration.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetcher downloads and parses RSS, Atom and JSON feeds.
type Fetcher struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a new feed fetcher.
func New(cfg Config, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		parser:    gofeed.NewParser(),
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		logger:    logger.With("component", "rss_fetcher"),
	}
}

// Fetch downloads url and parses it. The request is bounded by the configured
// timeout even when ctx has no deadline.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, application/feed+json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	parsed, err := f.parser.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	f.logger.Debug("fetched feed", "url", url, "items", len(parsed.Items))

	return transform(parsed), nil
}

func transform(feed *gofeed.Feed) *domain.ParsedFeed {
	out := &domain.ParsedFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Items:       make([]domain.ParsedItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		out.Items = append(out.Items, domain.ParsedItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Content:     content,
			PubDate:     item.Published,
			PublishedAt: item.PublishedParsed,
		})
	}

	return out
}
