package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"noteflow/internal/domain"
	"noteflow/internal/service/mocks"
)

type IngestServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	sources *mocks.MockFeedSourceStore
	entries *mocks.MockFeedEntryStore
	fetcher *mocks.MockFeedFetcher

	service  *IngestService
	settings IngestSettings
	now      time.Time
}

func (s *IngestServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.sources = mocks.NewMockFeedSourceStore(s.ctrl)
	s.entries = mocks.NewMockFeedEntryStore(s.ctrl)
	s.fetcher = mocks.NewMockFeedFetcher(s.ctrl)

	s.settings = IngestSettings{
		FetchTimeout:       time.Second,
		MaxEntriesPerFetch: 50,
		MaxEntriesRetained: 100,
	}
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewIngestService(s.sources, s.entries, s.fetcher, logger, s.settings)
	s.service.now = func() time.Time { return s.now }
}

func (s *IngestServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestIngestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestServiceTestSuite))
}

var testSource = domain.FeedSource{ID: 7, URL: "https://example.com/feed.xml", Enabled: true}

func (s *IngestServiceTestSuite) TestFetchOne_InsertsValidItemSkipsMissingLink() {
	ctx := context.Background()

	feed := &domain.ParsedFeed{
		Title: "Example",
		Items: []domain.ParsedItem{
			{Title: "A", Link: "https://x/1", PubDate: "2024-01-01"},
			{Title: "B"},
		},
	}

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).Return(feed, nil)
	s.sources.EXPECT().UpdateFetched(ctx, testSource.ID, "Example", "", s.now).Return(nil)
	s.entries.EXPECT().ExistingLinks(ctx, []string{"https://x/1"}).Return(map[string]struct{}{}, nil)

	var inserted *domain.FeedEntry
	s.entries.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.FeedEntry) (int64, error) {
			inserted = e
			return 1, nil
		},
	)
	s.entries.EXPECT().TrimToLimit(ctx, testSource.ID, 100).Return(int64(0), nil)

	result := s.service.FetchOne(ctx, testSource)

	s.True(result.Success)
	s.Equal(1, result.NewEntryCount)
	s.NoError(result.Err)
	s.Require().NotNil(inserted)
	s.Equal("A", inserted.Title)
	s.Equal(testSource.ID, inserted.FeedID)
	s.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), inserted.PublishedAt)
	s.False(inserted.DateEstimated)
}

func (s *IngestServiceTestSuite) TestFetchOne_SecondRunInsertsNothing() {
	ctx := context.Background()
	feed := &domain.ParsedFeed{Items: []domain.ParsedItem{
		{Title: "A", Link: "https://x/1"},
		{Title: "B", Link: "https://x/2"},
	}}

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).Return(feed, nil).Times(2)
	s.sources.EXPECT().UpdateFetched(ctx, testSource.ID, "", "", s.now).Return(nil).Times(2)

	s.entries.EXPECT().ExistingLinks(ctx, []string{"https://x/1", "https://x/2"}).
		Return(map[string]struct{}{}, nil)
	s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(1), nil).Times(2)

	s.entries.EXPECT().ExistingLinks(ctx, []string{"https://x/1", "https://x/2"}).
		Return(map[string]struct{}{"https://x/1": {}, "https://x/2": {}}, nil)

	s.entries.EXPECT().TrimToLimit(ctx, testSource.ID, 100).Return(int64(0), nil).Times(2)

	first := s.service.FetchOne(ctx, testSource)
	second := s.service.FetchOne(ctx, testSource)

	s.Equal(2, first.NewEntryCount)
	s.True(second.Success)
	s.Equal(0, second.NewEntryCount)
}

func (s *IngestServiceTestSuite) TestFetchOne_FetchErrorRecorded() {
	ctx := context.Background()
	fetchErr := errors.New("context deadline exceeded")

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).Return(nil, fetchErr)
	s.sources.EXPECT().UpdateError(ctx, testSource.ID, fetchErr.Error()).Return(nil)

	result := s.service.FetchOne(ctx, testSource)

	s.False(result.Success)
	s.ErrorIs(result.Err, fetchErr)
	s.Equal(0, result.NewEntryCount)
}

func (s *IngestServiceTestSuite) TestFetchOne_FetchHonoursTimeout() {
	ctx := context.Background()
	s.service.settings.FetchTimeout = 20 * time.Millisecond

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).DoAndReturn(
		func(ctx context.Context, _ string) (*domain.ParsedFeed, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)
	s.sources.EXPECT().UpdateError(ctx, testSource.ID, gomock.Any()).Return(nil)

	result := s.service.FetchOne(ctx, testSource)

	s.False(result.Success)
	s.ErrorIs(result.Err, context.DeadlineExceeded)
}

func (s *IngestServiceTestSuite) TestFetchOne_CapsItemsAndDedupsWithinBatch() {
	ctx := context.Background()
	s.service.settings.MaxEntriesPerFetch = 3

	feed := &domain.ParsedFeed{Items: []domain.ParsedItem{
		{Title: "1", Link: "https://x/1"},
		{Title: "1 again", Link: "https://x/1"},
		{Title: "2", Link: "https://x/2"},
		{Title: "3", Link: "https://x/3"},
		{Title: "4", Link: "https://x/4"},
	}}

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).Return(feed, nil)
	s.sources.EXPECT().UpdateFetched(ctx, testSource.ID, "", "", s.now).Return(nil)
	s.entries.EXPECT().ExistingLinks(ctx, []string{"https://x/1", "https://x/2"}).
		Return(map[string]struct{}{"https://x/1": {}}, nil)
	s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(2), nil)
	s.entries.EXPECT().TrimToLimit(ctx, testSource.ID, 100).Return(int64(0), nil)

	result := s.service.FetchOne(ctx, testSource)

	s.True(result.Success)
	s.Equal(1, result.NewEntryCount)
}

func (s *IngestServiceTestSuite) TestFetchOne_InsertErrorsDoNotAbort() {
	ctx := context.Background()
	feed := &domain.ParsedFeed{Items: []domain.ParsedItem{
		{Title: "1", Link: "https://x/1"},
		{Title: "2", Link: "https://x/2"},
		{Title: "3", Link: "https://x/3"},
	}}

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).Return(feed, nil)
	s.sources.EXPECT().UpdateFetched(ctx, testSource.ID, "", "", s.now).Return(nil)
	s.entries.EXPECT().ExistingLinks(ctx, gomock.Any()).Return(map[string]struct{}{}, nil)
	gomock.InOrder(
		s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(0), domain.ErrDuplicateEntry),
		s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(0), errors.New("connection reset")),
		s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(3), nil),
	)
	s.entries.EXPECT().TrimToLimit(ctx, testSource.ID, 100).Return(int64(0), nil)

	result := s.service.FetchOne(ctx, testSource)

	s.True(result.Success)
	s.Equal(1, result.NewEntryCount)
}

func (s *IngestServiceTestSuite) TestFetchOne_TrimsToRetentionLimit() {
	ctx := context.Background()
	s.service.settings.MaxEntriesRetained = 2

	feed := &domain.ParsedFeed{Items: []domain.ParsedItem{
		{Title: "1", Link: "https://x/1"},
		{Title: "2", Link: "https://x/2"},
		{Title: "3", Link: "https://x/3"},
	}}

	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).Return(feed, nil)
	s.sources.EXPECT().UpdateFetched(ctx, testSource.ID, "", "", s.now).Return(nil)
	s.entries.EXPECT().ExistingLinks(ctx, gomock.Any()).Return(map[string]struct{}{}, nil)
	s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(1), nil).Times(3)
	s.entries.EXPECT().TrimToLimit(ctx, testSource.ID, 2).Return(int64(1), nil)

	result := s.service.FetchOne(ctx, testSource)

	s.Equal(3, result.NewEntryCount)
	s.Equal(int64(1), result.Trimmed)
}

func (s *IngestServiceTestSuite) TestFetchAll_NoSources() {
	ctx := context.Background()
	s.sources.EXPECT().ListEnabled(ctx).Return(nil, nil)

	summary, err := s.service.FetchAll(ctx)

	s.NoError(err)
	s.Equal(&domain.FetchSummary{}, summary)
}

func (s *IngestServiceTestSuite) TestFetchAll_ListError() {
	ctx := context.Background()
	s.sources.EXPECT().ListEnabled(ctx).Return(nil, errors.New("db down"))

	summary, err := s.service.FetchAll(ctx)

	s.Error(err)
	s.Nil(summary)
	s.Contains(err.Error(), "list enabled sources")
	s.False(s.service.Running())
}

func (s *IngestServiceTestSuite) TestFetchAll_SourceFailureDoesNotAbort() {
	ctx := context.Background()
	sources := []domain.FeedSource{
		{ID: 1, URL: "https://a/feed"},
		{ID: 2, URL: "https://b/feed"},
		{ID: 3, URL: "https://c/feed"},
	}
	s.sources.EXPECT().ListEnabled(ctx).Return(sources, nil)

	gomock.InOrder(
		s.fetcher.EXPECT().Fetch(gomock.Any(), "https://a/feed").
			Return(&domain.ParsedFeed{Items: []domain.ParsedItem{{Title: "a", Link: "https://a/1"}}}, nil),
		s.fetcher.EXPECT().Fetch(gomock.Any(), "https://b/feed").Return(nil, errors.New("bad xml")),
		s.fetcher.EXPECT().Fetch(gomock.Any(), "https://c/feed").Return(&domain.ParsedFeed{}, nil),
	)

	s.sources.EXPECT().UpdateFetched(ctx, int64(1), "", "", s.now).Return(nil)
	s.sources.EXPECT().UpdateError(ctx, int64(2), "bad xml").Return(nil)
	s.sources.EXPECT().UpdateFetched(ctx, int64(3), "", "", s.now).Return(nil)
	s.entries.EXPECT().ExistingLinks(ctx, []string{"https://a/1"}).Return(map[string]struct{}{}, nil)
	s.entries.EXPECT().Insert(ctx, gomock.Any()).Return(int64(1), nil)
	s.entries.EXPECT().TrimToLimit(ctx, int64(1), 100).Return(int64(0), nil)

	summary, err := s.service.FetchAll(ctx)

	s.NoError(err)
	s.Equal(3, summary.SourcesProcessed)
	s.Equal(2, summary.SuccessCount)
	s.Equal(1, summary.ErrorCount)
	s.Equal(1, summary.NewEntries)
	s.False(summary.Skipped)
}

func (s *IngestServiceTestSuite) TestFetchAll_SingleFlight() {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})

	s.sources.EXPECT().ListEnabled(ctx).Return([]domain.FeedSource{testSource}, nil).Times(1)
	s.fetcher.EXPECT().Fetch(gomock.Any(), testSource.URL).DoAndReturn(
		func(context.Context, string) (*domain.ParsedFeed, error) {
			close(entered)
			<-release
			return &domain.ParsedFeed{}, nil
		},
	).Times(1)
	s.sources.EXPECT().UpdateFetched(ctx, testSource.ID, "", "", s.now).Return(nil)

	done := make(chan *domain.FetchSummary)
	go func() {
		summary, _ := s.service.FetchAll(ctx)
		done <- summary
	}()
	<-entered

	const concurrent = 8
	var wg sync.WaitGroup
	skipped := make(chan bool, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := s.service.FetchAll(ctx)
			skipped <- err == nil && summary.Skipped
		}()
	}
	wg.Wait()
	close(skipped)
	for sk := range skipped {
		s.True(sk)
	}
	s.True(s.service.Running())

	close(release)
	first := <-done
	s.False(first.Skipped)
	s.Equal(1, first.SuccessCount)
	s.False(s.service.Running())
}

func TestPublishDate(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	parsed := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name          string
		item          domain.ParsedItem
		want          time.Time
		wantEstimated bool
	}{
		{"parser value wins", domain.ParsedItem{PublishedAt: &parsed, PubDate: "garbage"}, parsed, false},
		{"date only", domain.ParsedItem{PubDate: "2024-01-01"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc1123z", domain.ParsedItem{PubDate: "Mon, 02 Jan 2006 15:04:05 +0000"}, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), false},
		{"rfc3339", domain.ParsedItem{PubDate: "2023-03-04T05:06:07Z"}, parsed, false},
		{"missing", domain.ParsedItem{}, fallback, true},
		{"unparseable", domain.ParsedItem{PubDate: "yesterday-ish"}, fallback, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, estimated := publishDate(tt.item, fallback)
			if !got.Equal(tt.want) {
				t.Errorf("publishDate() = %v, want %v", got, tt.want)
			}
			if estimated != tt.wantEstimated {
				t.Errorf("estimated = %v, want %v", estimated, tt.wantEstimated)
			}
		})
	}
}
