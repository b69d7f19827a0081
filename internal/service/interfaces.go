package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"noteflow/internal/domain"
)

type FeedSourceStore interface {
	ListEnabled(ctx context.Context) ([]domain.FeedSource, error)
	UpdateFetched(ctx context.Context, id int64, title, description string, fetchedAt time.Time) error
	UpdateError(ctx context.Context, id int64, msg string) error
	DeleteDisabled(ctx context.Context) (int64, error)
}

type FeedEntryStore interface {
	ExistingLinks(ctx context.Context, links []string) (map[string]struct{}, error)
	Insert(ctx context.Context, entry *domain.FeedEntry) (int64, error)
	TrimToLimit(ctx context.Context, feedID int64, keep int) (int64, error)
}

type RetentionStore interface {
	DeleteCompletedTasks(ctx context.Context, before time.Time) (int64, error)
	DeleteCompletedNoteTodos(ctx context.Context, before time.Time) (int64, error)
	DeleteArchivedNotes(ctx context.Context, before time.Time) (int64, error)
	DeletePastEvents(ctx context.Context, before time.Time) (int64, error)
}

type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
