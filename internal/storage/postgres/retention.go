package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// RetentionStore deletes aged rows. Each method removes rows whose timestamp
// is strictly before the given cutoff.
type RetentionStore struct {
	db *sqlx.DB
}

func NewRetentionStore(db *sqlx.DB) *RetentionStore {
	return &RetentionStore{db: db}
}

func (s *RetentionStore) DeleteCompletedTasks(ctx context.Context, before time.Time) (int64, error) {
	return s.delete(ctx, builder.Delete("todos").Where(sq.And{
		sq.Eq{"completed": true},
		sq.Lt{"completed_at": before},
	}))
}

func (s *RetentionStore) DeleteCompletedNoteTodos(ctx context.Context, before time.Time) (int64, error) {
	return s.delete(ctx, builder.Delete("note_todos").Where(sq.And{
		sq.Eq{"completed": true},
		sq.Lt{"completed_at": before},
	}))
}

func (s *RetentionStore) DeleteArchivedNotes(ctx context.Context, before time.Time) (int64, error) {
	return s.delete(ctx, builder.Delete("notes").Where(sq.And{
		sq.Eq{"archived": true},
		sq.Lt{"archived_at": before},
	}))
}

func (s *RetentionStore) DeletePastEvents(ctx context.Context, before time.Time) (int64, error) {
	return s.delete(ctx, builder.Delete("calendar_events").Where(sq.Lt{"end_time": before}))
}

func (s *RetentionStore) delete(ctx context.Context, stmt sq.DeleteBuilder) (int64, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return 0, err
	}
	return execAffected(ctx, GetExecutor(ctx, s.db), query, args...)
}

func execAffected(ctx context.Context, ex sqlx.ExecerContext, query string, args ...interface{}) (int64, error) {
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
