package domain

import (
	"errors"
	"time"
)

// ErrDuplicateEntry is returned by the entry store when an entry with the
// same link already exists.
var ErrDuplicateEntry = errors.New("duplicate feed entry")

type FeedSource struct {
	ID            int64      `db:"id"`
	URL           string     `db:"url"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	Enabled       bool       `db:"enabled"`
	LastFetchedAt *time.Time `db:"last_fetched_at"`
	LastError     string     `db:"last_error"`
}

type FeedEntry struct {
	ID            int64     `db:"id"`
	FeedID        int64     `db:"feed_id"`
	Title         string    `db:"title"`
	Link          string    `db:"link"`
	Description   string    `db:"description"`
	Content       string    `db:"content"`
	PublishedAt   time.Time `db:"published_at"`
	DateEstimated bool      `db:"date_estimated"`
	CreatedAt     time.Time `db:"created_at"`
}

// ParsedFeed is what the fetcher hands back for one source.
type ParsedFeed struct {
	Title       string
	Description string
	Items       []ParsedItem
}

type ParsedItem struct {
	Title       string
	Link        string
	Description string
	Content     string
	PubDate     string     // raw value as published by the source
	PublishedAt *time.Time // set when the parser already understood PubDate
}
