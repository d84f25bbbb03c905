package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tanvir/noteshare/internal/db"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// Transactor runs a function inside a single database transaction.
// *db.PostgresDB satisfies it in production.
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// EngagementRepository handles the likes and bookmarks join tables. Row
// presence is the engagement state; there are no counter columns.
type EngagementRepository struct {
	db Transactor
}

// NewEngagementRepository creates a new instance of EngagementRepository.
func NewEngagementRepository(database Transactor) *EngagementRepository {
	return &EngagementRepository{db: database}
}

// ToggleLike flips the like state for (noteID, userID) and returns the new
// state and the updated count.
func (r *EngagementRepository) ToggleLike(ctx context.Context, noteID, userID int64) (bool, int64, error) {
	return r.toggle(ctx, "likes", noteID, userID)
}

// ToggleBookmark flips the bookmark state for (noteID, userID) and returns
// the new state and the updated count.
func (r *EngagementRepository) ToggleBookmark(ctx context.Context, noteID, userID int64) (bool, int64, error) {
	return r.toggle(ctx, "bookmarks", noteID, userID)
}

// toggle deletes the engagement row if it exists, otherwise inserts it. The
// flip and the count re-read run in one transaction. The insert uses
// ON CONFLICT DO NOTHING so a concurrent double-toggle is decided by the
// (note_id, user_id) unique constraint instead of failing: whichever request
// loses the race still observes the "on" state.
func (r *EngagementRepository) toggle(ctx context.Context, table string, noteID, userID int64) (bool, int64, error) {
	var on bool
	var count int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleted, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE note_id = $1 AND user_id = $2`, table),
			noteID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete engagement row: %w", err)
		}

		if deleted.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx,
				fmt.Sprintf(`INSERT INTO %s (note_id, user_id) VALUES ($1, $2) ON CONFLICT (note_id, user_id) DO NOTHING`, table),
				noteID, userID); err != nil {
				return fmt.Errorf("failed to insert engagement row: %w", err)
			}
			on = true
		}

		return tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE note_id = $1`, table),
			noteID).Scan(&count)
	})
	if err != nil {
		logger.Error().Err(err).Str("table", table).Int64("noteId", noteID).Msg("Engagement toggle failed")
		return false, 0, err
	}

	return on, count, nil
}
