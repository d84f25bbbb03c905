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

// RatingDetails is a rating row joined with the rater's name.
type RatingDetails struct {
	ID            int64     `db:"id" json:"id"`
	NoteID        int64     `db:"note_id" json:"noteId"`
	UserID        int64     `db:"user_id" json:"userId"`
	UserFirstName string    `db:"user_first_name" json:"userFirstName"`
	UserLastName  string    `db:"user_last_name" json:"userLastName"`
	Stars         int       `db:"stars" json:"stars"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// RatingRepository handles database operations for star ratings.
type RatingRepository struct {
	DB *pgxpool.Pool
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) selectRatingDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"sr.id", "sr.note_id", "sr.user_id",
		"u.first_name AS user_first_name", "u.last_name AS user_last_name",
		"sr.stars", "sr.created_at", "sr.updated_at",
	).From("star_ratings sr").
		Join("users u ON sr.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanRatingDetails(row pgx.Row) (*RatingDetails, error) {
	var rating RatingDetails
	err := row.Scan(
		&rating.ID, &rating.NoteID, &rating.UserID,
		&rating.UserFirstName, &rating.UserLastName,
		&rating.Stars, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRatingNotFound
		}
		logger.Error().Err(err).Msg("Error scanning rating details")
		return nil, err
	}
	return &rating, nil
}

// CreateRating inserts a rating. The (note_id, user_id) unique constraint
// backs the one-rating-per-user rule; a violation maps to ErrAlreadyRated.
func (r *RatingRepository) CreateRating(ctx context.Context, noteID, userID int64, stars int) (int64, error) {
	sqlStr, args, err := squirrel.Insert("star_ratings").
		Columns("note_id", "user_id", "stars").
		Values(noteID, userID, stars).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create rating SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyRated
		}
		logger.Error().Err(err).Msg("Error executing create rating query")
		return 0, err
	}

	return id, nil
}

// GetRatingByID retrieves a single rating with the rater's name.
func (r *RatingRepository) GetRatingByID(ctx context.Context, id int64) (*RatingDetails, error) {
	sqlStr, args, err := r.selectRatingDetailsQuery().Where(squirrel.Eq{"sr.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRatingDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// HasUserRated reports whether the user already rated the note.
func (r *RatingRepository) HasUserRated(ctx context.Context, noteID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM star_ratings WHERE note_id = $1 AND user_id = $2)`,
		noteID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking existing rating")
		return false, err
	}
	return exists, nil
}

// UpdateRating changes the stars of a rating.
func (r *RatingRepository) UpdateRating(ctx context.Context, id int64, stars int) error {
	cmdTag, err := r.DB.Exec(ctx,
		`UPDATE star_ratings SET stars = $1 WHERE id = $2`, stars, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update rating query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRatingNotFound
	}
	return nil
}

// DeleteRating removes a rating by its ID.
func (r *RatingRepository) DeleteRating(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM star_ratings WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete rating query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRatingNotFound
	}
	return nil
}

// GetRatings retrieves a paginated list of ratings, optionally for one note.
func (r *RatingRepository) GetRatings(ctx context.Context, noteID *int64, page, size int) ([]*RatingDetails, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("COUNT(*)").From("star_ratings sr").PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectRatingDetailsQuery()

	if noteID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"sr.note_id": *noteID})
		listBuilder = listBuilder.Where(squirrel.Eq{"sr.note_id": *noteID})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing rating count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*RatingDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := listBuilder.
		OrderBy("sr.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing rating listing query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	ratings := make([]*RatingDetails, 0)
	for rows.Next() {
		rating, err := scanRatingDetails(rows)
		if err != nil {
			continue
		}
		ratings = append(ratings, rating)
	}

	if err = rows.Err(); err != nil {
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return ratings, pagination, nil
}
