package postgres

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"noteflow/internal/domain"
)

const maxErrorLength = 200

type FeedSourceStore struct {
	db *sqlx.DB
}

func NewFeedSourceStore(db *sqlx.DB) *FeedSourceStore {
	return &FeedSourceStore{db: db}
}

// ListEnabled returns enabled sources ordered by id. Ingestion relies on
// this order being stable.
func (s *FeedSourceStore) ListEnabled(ctx context.Context) ([]domain.FeedSource, error) {
	query := `
		SELECT id, url, title, description, enabled, last_fetched_at, last_error
		FROM rss_feeds
		WHERE enabled = TRUE
		ORDER BY id ASC`

	var sources []domain.FeedSource
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &sources, query); err != nil {
		return nil, err
	}
	return sources, nil
}

// UpdateFetched stores the metadata reported by the feed and clears the last
// error. Empty title or description keep the stored value.
func (s *FeedSourceStore) UpdateFetched(ctx context.Context, id int64, title, description string, fetchedAt time.Time) error {
	query := `
		UPDATE rss_feeds SET
			title = COALESCE(NULLIF($2, ''), title),
			description = COALESCE(NULLIF($3, ''), description),
			last_fetched_at = $4,
			last_error = ''
		WHERE id = $1`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, title, description, fetchedAt)
	return err
}

func (s *FeedSourceStore) UpdateError(ctx context.Context, id int64, msg string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE rss_feeds SET last_error = $2 WHERE id = $1",
		id, truncateError(msg),
	)
	return err
}

// truncateError cuts msg to at most maxErrorLength bytes without splitting
// a multi-byte rune.
func truncateError(msg string) string {
	if len(msg) <= maxErrorLength {
		return msg
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

// DeleteDisabled removes disabled sources. Their entries are removed by the
// foreign key cascade.
func (s *FeedSourceStore) DeleteDisabled(ctx context.Context) (int64, error) {
	query, args, err := builder.Delete("rss_feeds").Where("enabled = FALSE").ToSql()
	if err != nil {
		return 0, err
	}
	return execAffected(ctx, GetExecutor(ctx, s.db), query, args...)
}
