package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// FacultyRepository handles database operations for faculties.
type FacultyRepository struct {
	DB *pgxpool.Pool
}

// NewFacultyRepository creates a new instance of FacultyRepository.
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{DB: db}
}

// GetAllFaculties retrieves all faculties ordered by name.
func (r *FacultyRepository) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM faculties ORDER BY name ASC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all faculties query")
		return nil, err
	}
	defer rows.Close()

	faculties := make([]*models.Faculty, 0)
	for rows.Next() {
		var f models.Faculty
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row")
			return nil, err
		}
		faculties = append(faculties, &f)
	}

	return faculties, rows.Err()
}

// GetFacultyByID retrieves a single faculty.
func (r *FacultyRepository) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	var f models.Faculty
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM faculties WHERE id = $1`, id).
		Scan(&f.ID, &f.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Msg("Error scanning faculty")
		return nil, err
	}
	return &f, nil
}
