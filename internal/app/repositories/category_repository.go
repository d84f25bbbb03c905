package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// CategoryRepository handles database operations for note categories.
type CategoryRepository struct {
	DB *pgxpool.Pool
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// GetAllCategories retrieves all note categories ordered by name.
func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]*models.NoteCategory, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, description FROM note_categories ORDER BY name ASC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all categories query")
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.NoteCategory, 0)
	for rows.Next() {
		var c models.NoteCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			logger.Error().Err(err).Msg("Error scanning category row")
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

// GetCategoryByID retrieves a single note category.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.NoteCategory, error) {
	var c models.NoteCategory
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, description FROM note_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Msg("Error scanning category")
		return nil, err
	}
	return &c, nil
}
