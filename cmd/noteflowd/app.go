package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"noteflow/internal/config"
	"noteflow/internal/service"
	"noteflow/internal/source/rss"
	"noteflow/internal/storage/postgres"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sqlx.DB
	ingest  *service.IngestService
	cleanup *service.CleanupService
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	sourceStore := postgres.NewFeedSourceStore(db)
	entryStore := postgres.NewFeedEntryStore(db)
	retentionStore := postgres.NewRetentionStore(db)
	txManager := postgres.NewTransactionManager(db)

	fetcher := rss.New(rss.Config{
		Timeout:   cfg.Ingestion.FetchTimeout,
		UserAgent: cfg.Ingestion.UserAgent,
	}, logger)

	ingest := service.NewIngestService(
		sourceStore,
		entryStore,
		fetcher,
		logger,
		service.IngestSettings{
			FetchTimeout:       cfg.Ingestion.FetchTimeout,
			MaxEntriesPerFetch: cfg.Ingestion.MaxEntriesPerFetch,
			MaxEntriesRetained: cfg.Ingestion.MaxEntriesRetained,
		},
	)

	cleanup := service.NewCleanupService(
		sourceStore,
		retentionStore,
		txManager,
		logger,
		service.CleanupSettings{
			Enabled:            cfg.Cleanup.IsEnabled(),
			IntervalHours:      cfg.Cleanup.IntervalHours,
			CompletedTasksDays: cfg.Cleanup.CompletedTasksDays,
			ArchivedNotesDays:  cfg.Cleanup.ArchivedNotesDays,
			PastEventsDays:     cfg.Cleanup.PastEventsDays,
		},
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		ingest:  ingest,
		cleanup: cleanup,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
