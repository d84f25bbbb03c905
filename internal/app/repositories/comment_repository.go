package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/dberrors"
	"github.com/tanvir/noteshare/internal/pkg/helpers"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// CommentDetails is a comment row joined with the commenter's name.
type CommentDetails struct {
	ID            int64     `db:"id" json:"id"`
	NoteID        int64     `db:"note_id" json:"noteId"`
	UserID        int64     `db:"user_id" json:"userId"`
	UserFirstName string    `db:"user_first_name" json:"userFirstName"`
	UserLastName  string    `db:"user_last_name" json:"userLastName"`
	Text          string    `db:"text" json:"text"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// CommentRepository handles database operations for comments.
type CommentRepository struct {
	DB *pgxpool.Pool
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) selectCommentDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"cm.id", "cm.note_id", "cm.user_id",
		"u.first_name AS user_first_name", "u.last_name AS user_last_name",
		"cm.text", "cm.created_at", "cm.updated_at",
	).From("comments cm").
		Join("users u ON cm.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanCommentDetails(row pgx.Row) (*CommentDetails, error) {
	var comment CommentDetails
	err := row.Scan(
		&comment.ID, &comment.NoteID, &comment.UserID,
		&comment.UserFirstName, &comment.UserLastName,
		&comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning comment details")
		return nil, err
	}
	return &comment, nil
}

// CreateComment inserts a comment. The (note_id, user_id) unique constraint
// backs the one-comment-per-user rule; a violation maps to ErrAlreadyCommented.
func (r *CommentRepository) CreateComment(ctx context.Context, noteID, userID int64, text string) (int64, error) {
	sqlStr, args, err := squirrel.Insert("comments").
		Columns("note_id", "user_id", "text").
		Values(noteID, userID, text).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyCommented
		}
		logger.Error().Err(err).Msg("Error executing create comment query")
		return 0, err
	}

	return id, nil
}

// GetCommentByID retrieves a single comment with the commenter's name.
func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*CommentDetails, error) {
	sqlStr, args, err := r.selectCommentDetailsQuery().Where(squirrel.Eq{"cm.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCommentDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// HasUserCommented reports whether the user already commented on the note.
func (r *CommentRepository) HasUserCommented(ctx context.Context, noteID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE note_id = $1 AND user_id = $2)`,
		noteID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking existing comment")
		return false, err
	}
	return exists, nil
}

// UpdateComment changes the text of a comment.
func (r *CommentRepository) UpdateComment(ctx context.Context, id int64, text string) error {
	cmdTag, err := r.DB.Exec(ctx,
		`UPDATE comments SET text = $1 WHERE id = $2`, text, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update comment query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// DeleteComment removes a comment by its ID.
func (r *CommentRepository) DeleteComment(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete comment query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// GetComments retrieves a paginated list of comments, optionally for one note.
func (r *CommentRepository) GetComments(ctx context.Context, noteID *int64, page, size int) ([]*CommentDetails, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("COUNT(*)").From("comments cm").PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectCommentDetailsQuery()

	if noteID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"cm.note_id": *noteID})
		listBuilder = listBuilder.Where(squirrel.Eq{"cm.note_id": *noteID})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing comment count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*CommentDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := listBuilder.
		OrderBy("cm.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing comment listing query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	comments := make([]*CommentDetails, 0)
	for rows.Next() {
		comment, err := scanCommentDetails(rows)
		if err != nil {
			continue
		}
		comments = append(comments, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return comments, pagination, nil
}
