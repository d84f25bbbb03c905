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

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

// GetAllCourses retrieves courses ordered by name, optionally scoped to one
// department.
func (r *CourseRepository) GetAllCourses(ctx context.Context, departmentID *int64) ([]*models.Course, error) {
	qb := squirrel.Select("id", "name", "department_id").
		From("courses").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if departmentID != nil {
		qb = qb.Where(squirrel.Eq{"department_id": *departmentID})
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.DepartmentID); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, err
		}
		courses = append(courses, &c)
	}

	return courses, rows.Err()
}

// GetCourseByID retrieves a single course.
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	var c models.Course
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, department_id FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.DepartmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course")
		return nil, err
	}
	return &c, nil
}

// CreateCourse inserts a course.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx,
		`INSERT INTO courses (name, department_id) VALUES ($1, $2) RETURNING id`,
		course.Name, course.DepartmentID).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("course with this name already exists in the department")
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, err
	}
	return id, nil
}
