package services

import (
	"context"

	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/app/models/dto"
)

// CatalogStores bundle the read-mostly lookup tables notes are organized by.
type FacultyStore interface {
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
}

type DepartmentStore interface {
	GetAllDepartments(ctx context.Context) ([]*models.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	CreateDepartment(ctx context.Context, department *models.Department) (int64, error)
}

type CourseStore interface {
	GetAllCourses(ctx context.Context, departmentID *int64) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
}

type CategoryStore interface {
	GetAllCategories(ctx context.Context) ([]*models.NoteCategory, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.NoteCategory, error)
}

// CatalogService exposes the faculty/department/course/category hierarchy.
type CatalogService interface {
	GetFaculties(ctx context.Context) ([]dto.FacultyResponse, error)
	GetDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	GetCourses(ctx context.Context, departmentID *int64) ([]dto.CourseResponse, error)
	GetCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
}

type catalogServiceImpl struct {
	faculties   FacultyStore
	departments DepartmentStore
	courses     CourseStore
	categories  CategoryStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(faculties FacultyStore, departments DepartmentStore, courses CourseStore, categories CategoryStore) CatalogService {
	return &catalogServiceImpl{
		faculties:   faculties,
		departments: departments,
		courses:     courses,
		categories:  categories,
	}
}

// GetFaculties lists all faculties.
func (s *catalogServiceImpl) GetFaculties(ctx context.Context) ([]dto.FacultyResponse, error) {
	faculties, err := s.faculties.GetAllFaculties(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FacultyResponse, 0, len(faculties))
	for _, f := range faculties {
		responses = append(responses, dto.FacultyResponse{ID: f.ID, Name: f.Name})
	}
	return responses, nil
}

// GetDepartments lists all departments.
func (s *catalogServiceImpl) GetDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.GetAllDepartments(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, dto.DepartmentResponse{ID: d.ID, Name: d.Name, FacultyID: d.FacultyID})
	}
	return responses, nil
}

// GetCourses lists courses, optionally scoped to one department.
func (s *catalogServiceImpl) GetCourses(ctx context.Context, departmentID *int64) ([]dto.CourseResponse, error) {
	courses, err := s.courses.GetAllCourses(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, dto.CourseResponse{ID: c.ID, Name: c.Name, DepartmentID: c.DepartmentID})
	}
	return responses, nil
}

// GetCategories lists all note categories.
func (s *catalogServiceImpl) GetCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return responses, nil
}

// CreateDepartment adds a department, validating the faculty if given.
func (s *catalogServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if req.FacultyID != nil {
		if _, err := s.faculties.GetFacultyByID(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
	}

	department := &models.Department{Name: req.Name, FacultyID: req.FacultyID}
	id, err := s.departments.CreateDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	return &dto.DepartmentResponse{ID: id, Name: req.Name, FacultyID: req.FacultyID}, nil
}

// CreateCourse adds a course after validating its department.
func (s *catalogServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if _, err := s.departments.GetDepartmentByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	course := &models.Course{Name: req.Name, DepartmentID: req.DepartmentID}
	id, err := s.courses.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}

	return &dto.CourseResponse{ID: id, Name: req.Name, DepartmentID: req.DepartmentID}, nil
}
