package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/dberrors"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// DepartmentRepository handles database operations for departments.
type DepartmentRepository struct {
	DB *pgxpool.Pool
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{DB: db}
}

// GetAllDepartments retrieves all departments ordered by name.
func (r *DepartmentRepository) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	sqlStr, args, err := squirrel.Select("id", "name", "faculty_id").
		From("departments").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all departments query")
		return nil, err
	}
	defer rows.Close()

	departments := make([]*models.Department, 0)
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.FacultyID); err != nil {
			logger.Error().Err(err).Msg("Error scanning department row")
			return nil, err
		}
		departments = append(departments, &d)
	}

	return departments, rows.Err()
}

// GetDepartmentByID retrieves a single department.
func (r *DepartmentRepository) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	var d models.Department
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, faculty_id FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.FacultyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning department")
		return nil, err
	}
	return &d, nil
}

// CreateDepartment inserts a department.
func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department *models.Department) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx,
		`INSERT INTO departments (name, faculty_id) VALUES ($1, $2) RETURNING id`,
		department.Name, department.FacultyID).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("department with this name already exists")
		}
		logger.Error().Err(err).Msg("Error executing create department query")
		return 0, err
	}
	return id, nil
}
