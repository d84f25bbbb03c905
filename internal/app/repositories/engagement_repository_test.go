package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/noteshare/internal/db"
)

type fakeCountRow struct {
	count int64
}

func (r fakeCountRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.count
	return nil
}

// fakeEngagementTx records every statement issued inside the transaction.
// The embedded pgx.Tx covers the rest of the interface.
type fakeEngagementTx struct {
	pgx.Tx
	deletedRows int64
	count       int64
	statements  []string
}

func (t *fakeEngagementTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.statements = append(t.statements, sql)
	if strings.HasPrefix(sql, "DELETE") {
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", t.deletedRows)), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeEngagementTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	t.statements = append(t.statements, sql)
	return fakeCountRow{t.count}
}

type fakeTransactor struct {
	tx    *fakeEngagementTx
	calls int
	err   error
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx, f.tx)
}

func TestToggleLikeInsertsInsideOneTransaction(t *testing.T) {
	tx := &fakeEngagementTx{deletedRows: 0, count: 4}
	runner := &fakeTransactor{tx: tx}
	repo := NewEngagementRepository(runner)

	on, count, err := repo.ToggleLike(context.Background(), 15, 7)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, int64(4), count)

	// Delete, conflict-safe insert and count all ran through the same
	// transaction callback.
	assert.Equal(t, 1, runner.calls)
	require.Len(t, tx.statements, 3)
	assert.Contains(t, tx.statements[0], "DELETE FROM likes")
	assert.Contains(t, tx.statements[1], "INSERT INTO likes")
	assert.Contains(t, tx.statements[1], "ON CONFLICT (note_id, user_id) DO NOTHING")
	assert.Contains(t, tx.statements[2], "SELECT COUNT(*) FROM likes")
}

func TestToggleLikeDeletesExistingRow(t *testing.T) {
	tx := &fakeEngagementTx{deletedRows: 1, count: 3}
	runner := &fakeTransactor{tx: tx}
	repo := NewEngagementRepository(runner)

	on, count, err := repo.ToggleLike(context.Background(), 15, 7)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, int64(3), count)

	// No insert when the delete removed the row
	require.Len(t, tx.statements, 2)
	assert.Contains(t, tx.statements[0], "DELETE FROM likes")
	assert.Contains(t, tx.statements[1], "SELECT COUNT(*) FROM likes")
}

func TestToggleBookmarkUsesBookmarksTable(t *testing.T) {
	tx := &fakeEngagementTx{deletedRows: 0, count: 1}
	runner := &fakeTransactor{tx: tx}
	repo := NewEngagementRepository(runner)

	on, count, err := repo.ToggleBookmark(context.Background(), 15, 7)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, int64(1), count)

	for _, stmt := range tx.statements {
		assert.Contains(t, stmt, "bookmarks")
		assert.NotContains(t, stmt, "likes")
	}
}

func TestToggleSurfacesTransactionError(t *testing.T) {
	runner := &fakeTransactor{err: errors.New("deadlock detected")}
	repo := NewEngagementRepository(runner)

	_, _, err := repo.ToggleLike(context.Background(), 15, 7)
	assert.ErrorContains(t, err, "deadlock detected")
}
