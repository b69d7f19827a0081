package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"noteflow/internal/domain"
)

const IngestJobName = "rss_ingest"

type IngestSettings struct {
	FetchTimeout       time.Duration
	MaxEntriesPerFetch int
	MaxEntriesRetained int
}

// IngestService keeps stored feed entries in sync with enabled feed sources.
// At most one FetchAll cycle runs at a time per service.
type IngestService struct {
	sources  FeedSourceStore
	entries  FeedEntryStore
	fetcher  FeedFetcher
	logger   *slog.Logger
	settings IngestSettings
	now      func() time.Time

	running atomic.Bool
}

func NewIngestService(
	sources FeedSourceStore,
	entries FeedEntryStore,
	fetcher FeedFetcher,
	logger *slog.Logger,
	settings IngestSettings,
) *IngestService {
	return &IngestService{
		sources:  sources,
		entries:  entries,
		fetcher:  fetcher,
		logger:   logger.With("component", IngestJobName),
		settings: settings,
		now:      time.Now,
	}
}

func (s *IngestService) Name() string { return IngestJobName }

func (s *IngestService) Run(ctx context.Context) (any, error) {
	return s.FetchAll(ctx)
}

// Running reports whether a cycle is in progress.
func (s *IngestService) Running() bool {
	return s.running.Load()
}

// FetchAll fetches every enabled source in id order. A cycle requested while
// another is in flight is skipped, not queued. Per-source failures are
// counted; only a failure to list sources is returned as an error.
func (s *IngestService) FetchAll(ctx context.Context) (*domain.FetchSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("fetch already in progress, skipping")
		return &domain.FetchSummary{Skipped: true}, nil
	}
	defer s.running.Store(false)

	startTime := s.now()

	sources, err := s.sources.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled sources: %w", err)
	}

	summary := &domain.FetchSummary{}
	if len(sources) == 0 {
		s.logger.Debug("no enabled feed sources")
		return summary, nil
	}

	s.logger.Info("starting fetch", "sources", len(sources))

	for i := range sources {
		if err := ctx.Err(); err != nil {
			summary.Duration = s.now().Sub(startTime)
			return summary, err
		}

		result := s.FetchOne(ctx, sources[i])
		summary.SourcesProcessed++
		if result.Success {
			summary.SuccessCount++
			summary.NewEntries += result.NewEntryCount
		} else {
			summary.ErrorCount++
		}
	}

	summary.Duration = s.now().Sub(startTime)

	s.logger.Info("fetch completed",
		"sources", summary.SourcesProcessed,
		"new_entries", summary.NewEntries,
		"success", summary.SuccessCount,
		"errors", summary.ErrorCount,
		"duration", summary.Duration,
	)

	return summary, nil
}

// FetchOne fetches a single source, stores entries whose link is not known
// yet and trims the source down to the retention limit.
func (s *IngestService) FetchOne(ctx context.Context, source domain.FeedSource) domain.SourceResult {
	logger := s.logger.With("feed_id", source.ID, "url", source.URL)

	feed, err := s.fetch(ctx, source.URL)
	if err != nil {
		logger.Warn("fetch feed failed", "error", err)
		if uerr := s.sources.UpdateError(ctx, source.ID, err.Error()); uerr != nil {
			logger.Warn("record fetch error failed", "error", uerr)
		}
		return domain.SourceResult{SourceID: source.ID, Err: err, Error: err.Error()}
	}

	fetchedAt := s.now()
	if err := s.sources.UpdateFetched(ctx, source.ID, feed.Title, feed.Description, fetchedAt); err != nil {
		logger.Warn("update source metadata failed", "error", err)
	}

	candidates := s.collect(logger, source.ID, feed.Items, fetchedAt)
	if len(candidates) == 0 {
		return domain.SourceResult{SourceID: source.ID, Success: true}
	}

	links := make([]string, len(candidates))
	for i := range candidates {
		links[i] = candidates[i].Link
	}

	existing, err := s.entries.ExistingLinks(ctx, links)
	if err != nil {
		err = fmt.Errorf("lookup existing links: %w", err)
		logger.Warn("dedup lookup failed", "error", err)
		return domain.SourceResult{SourceID: source.ID, Err: err, Error: err.Error()}
	}

	newCount := 0
	for i := range candidates {
		entry := &candidates[i]
		if _, ok := existing[entry.Link]; ok {
			continue
		}

		if _, err := s.entries.Insert(ctx, entry); err != nil {
			if errors.Is(err, domain.ErrDuplicateEntry) {
				logger.Debug("entry already stored", "link", entry.Link)
			} else {
				logger.Warn("insert entry failed", "link", entry.Link, "error", err)
			}
			continue
		}
		newCount++
	}

	trimmed, err := s.entries.TrimToLimit(ctx, source.ID, s.settings.MaxEntriesRetained)
	if err != nil {
		logger.Warn("trim entries failed", "error", err)
	}

	logger.Info("feed fetched", "new_entries", newCount, "trimmed", trimmed)

	return domain.SourceResult{
		SourceID:      source.ID,
		Success:       true,
		NewEntryCount: newCount,
		Trimmed:       trimmed,
	}
}

func (s *IngestService) fetch(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.settings.FetchTimeout)
	defer cancel()

	feed, err := s.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, errors.New("empty feed")
	}
	return feed, nil
}

// collect turns parsed items into entries, dropping items without title or
// link and repeated links within the same response.
func (s *IngestService) collect(logger *slog.Logger, feedID int64, items []domain.ParsedItem, fetchedAt time.Time) []domain.FeedEntry {
	if limit := s.settings.MaxEntriesPerFetch; limit > 0 && len(items) > limit {
		logger.Debug("capping feed items", "received", len(items), "max", limit)
		items = items[:limit]
	}

	seen := make(map[string]struct{}, len(items))
	entries := make([]domain.FeedEntry, 0, len(items))

	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Link) == "" {
			logger.Debug("skipping malformed item", "title", item.Title, "link", item.Link)
			continue
		}
		if _, dup := seen[item.Link]; dup {
			continue
		}
		seen[item.Link] = struct{}{}

		publishedAt, estimated := publishDate(item, fetchedAt)
		if estimated {
			logger.Debug("publish date missing or unparseable, using fetch time",
				"link", item.Link,
				"pub_date", item.PubDate,
			)
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		entries = append(entries, domain.FeedEntry{
			FeedID:        feedID,
			Title:         item.Title,
			Link:          item.Link,
			Description:   item.Description,
			Content:       content,
			PublishedAt:   publishedAt,
			DateEstimated: estimated,
		})
	}

	return entries
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// publishDate returns the item's publish time. When the source gives none or
// an unparseable one, the fetch time is used and estimated is true.
func publishDate(item domain.ParsedItem, fallback time.Time) (t time.Time, estimated bool) {
	if item.PublishedAt != nil && !item.PublishedAt.IsZero() {
		return *item.PublishedAt, false
	}

	raw := strings.TrimSpace(item.PubDate)
	if raw != "" {
		for _, layout := range pubDateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed, false
			}
		}
	}

	return fallback, true
}
