package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"noteflow/internal/domain"
)

const CleanupJobName = "retention_cleanup"

const day = 24 * time.Hour

type CleanupSettings struct {
	Enabled            bool
	IntervalHours      int
	CompletedTasksDays int
	ArchivedNotesDays  int
	PastEventsDays     int
}

// CleanupService purges aged rows across several tables inside one
// transaction. Either every category is purged or none is.
type CleanupService struct {
	sources   FeedSourceStore
	retention RetentionStore
	txManager TransactionManager
	logger    *slog.Logger
	settings  CleanupSettings
	now       func() time.Time

	running   atomic.Bool
	scheduled atomic.Bool
}

func NewCleanupService(
	sources FeedSourceStore,
	retention RetentionStore,
	txManager TransactionManager,
	logger *slog.Logger,
	settings CleanupSettings,
) *CleanupService {
	return &CleanupService{
		sources:   sources,
		retention: retention,
		txManager: txManager,
		logger:    logger.With("component", CleanupJobName),
		settings:  settings,
		now:       time.Now,
	}
}

func (s *CleanupService) Name() string { return CleanupJobName }

func (s *CleanupService) Run(ctx context.Context) (any, error) {
	return s.ExecuteCleanup(ctx)
}

// SetScheduled is called by the scheduler when its timer is armed or stopped.
func (s *CleanupService) SetScheduled(scheduled bool) {
	s.scheduled.Store(scheduled)
}

func (s *CleanupService) Status() domain.CleanupStatus {
	return domain.CleanupStatus{
		Enabled:   s.settings.Enabled,
		Running:   s.running.Load(),
		Scheduled: s.scheduled.Load(),
		Config: domain.CleanupConfig{
			IntervalHours:      s.settings.IntervalHours,
			CompletedTasksDays: s.settings.CompletedTasksDays,
			ArchivedNotesDays:  s.settings.ArchivedNotesDays,
			PastEventsDays:     s.settings.PastEventsDays,
		},
	}
}

func (s *CleanupService) ExecuteCleanup(ctx context.Context) (*domain.CleanupResult, error) {
	if !s.settings.Enabled {
		s.logger.Debug("cleanup disabled by configuration")
		return &domain.CleanupResult{Disabled: true}, nil
	}

	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("cleanup already in progress, skipping")
		return &domain.CleanupResult{Skipped: true}, nil
	}
	defer s.running.Store(false)

	startTime := s.now()
	tasksBefore := startTime.Add(-time.Duration(s.settings.CompletedTasksDays) * day)
	notesBefore := startTime.Add(-time.Duration(s.settings.ArchivedNotesDays) * day)
	eventsBefore := startTime.Add(-time.Duration(s.settings.PastEventsDays) * day)

	result := &domain.CleanupResult{}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		steps := []struct {
			name string
			dst  *int64
			run  func() (int64, error)
		}{
			{"disabled feeds", &result.DisabledFeeds, func() (int64, error) {
				return s.sources.DeleteDisabled(txCtx)
			}},
			{"completed tasks", &result.CompletedTasks, func() (int64, error) {
				return s.retention.DeleteCompletedTasks(txCtx, tasksBefore)
			}},
			{"completed note todos", &result.CompletedNoteTodos, func() (int64, error) {
				return s.retention.DeleteCompletedNoteTodos(txCtx, tasksBefore)
			}},
			{"archived notes", &result.ArchivedNotes, func() (int64, error) {
				return s.retention.DeleteArchivedNotes(txCtx, notesBefore)
			}},
			{"past events", &result.PastEvents, func() (int64, error) {
				return s.retention.DeletePastEvents(txCtx, eventsBefore)
			}},
		}

		for _, step := range steps {
			n, err := step.run()
			if err != nil {
				return fmt.Errorf("delete %s: %w", step.name, err)
			}
			*step.dst = n
		}
		return nil
	})
	if err != nil {
		s.logger.Error("cleanup failed, transaction rolled back", "error", err)
		return nil, fmt.Errorf("cleanup: %w", err)
	}

	result.Total = result.DisabledFeeds + result.CompletedTasks + result.CompletedNoteTodos +
		result.ArchivedNotes + result.PastEvents
	result.Duration = s.now().Sub(startTime)

	attrs := []any{
		"disabled_feeds", result.DisabledFeeds,
		"completed_tasks", result.CompletedTasks,
		"completed_note_todos", result.CompletedNoteTodos,
		"archived_notes", result.ArchivedNotes,
		"past_events", result.PastEvents,
		"total", result.Total,
		"duration", result.Duration,
	}
	if result.Total == 0 {
		s.logger.Debug("cleanup completed, nothing to delete", attrs...)
	} else {
		s.logger.Info("cleanup completed", attrs...)
	}

	return result, nil
}
