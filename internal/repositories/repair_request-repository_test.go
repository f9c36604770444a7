package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "repair-system/pkg/errors"
)

type recordingQuerier struct {
	lastSQL  string
	lastArgs []any
	scanErr  error
}

type stubRow struct{ err error }

func (r stubRow) Scan(dest ...any) error { return r.err }

func (q *recordingQuerier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	return stubRow{err: q.scanErr}
}

func (q *recordingQuerier) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	return nil, pgx.ErrNoRows
}

func TestFindRequestEntityLocksOnlyInsideTransaction(t *testing.T) {
	q := &recordingQuerier{scanErr: pgx.ErrNoRows}

	_, err := findRequestEntity(context.Background(), q, 7, false)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotContains(t, q.lastSQL, "FOR UPDATE")
	assert.Equal(t, []any{uint64(7)}, q.lastArgs)

	_, err = findRequestEntity(context.Background(), q, 7, true)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, q.lastSQL, "FOR UPDATE")
}
