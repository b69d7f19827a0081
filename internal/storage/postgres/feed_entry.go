package postgres

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"noteflow/internal/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

type FeedEntryStore struct {
	db *sqlx.DB
}

func NewFeedEntryStore(db *sqlx.DB) *FeedEntryStore {
	return &FeedEntryStore{db: db}
}

// ExistingLinks returns the subset of links already stored. Matching is exact
// string equality.
func (s *FeedEntryStore) ExistingLinks(ctx context.Context, links []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	if len(links) == 0 {
		return result, nil
	}

	var found []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &found,
		"SELECT link FROM rss_entries WHERE link = ANY($1)",
		pq.Array(links),
	)
	if err != nil {
		return nil, err
	}

	for _, l := range found {
		result[l] = struct{}{}
	}
	return result, nil
}

func (s *FeedEntryStore) Insert(ctx context.Context, entry *domain.FeedEntry) (int64, error) {
	query := `
		INSERT INTO rss_entries (
			feed_id, title, link, description, content, published_at, date_estimated
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		entry.FeedID,
		entry.Title,
		entry.Link,
		entry.Description,
		entry.Content,
		entry.PublishedAt,
		entry.DateEstimated,
	).Scan(&id)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return 0, domain.ErrDuplicateEntry
	}
	if err != nil {
		return 0, err
	}

	entry.ID = id
	return id, nil
}

// TrimToLimit keeps the newest keep entries of a feed by publish date and
// deletes the rest.
func (s *FeedEntryStore) TrimToLimit(ctx context.Context, feedID int64, keep int) (int64, error) {
	query := `
		DELETE FROM rss_entries
		WHERE feed_id = $1
		  AND id NOT IN (
			SELECT id FROM rss_entries
			WHERE feed_id = $1
			ORDER BY published_at DESC, id DESC
			LIMIT $2
		  )`

	return execAffected(ctx, GetExecutor(ctx, s.db), query, feedID, keep)
}

func (s *FeedEntryStore) CountBySource(ctx context.Context, feedID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &n,
		"SELECT COUNT(*) FROM rss_entries WHERE feed_id = $1", feedID)
	return n, err
}
