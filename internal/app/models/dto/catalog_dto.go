package dto

// FacultyResponse is a faculty list item.
type FacultyResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Engineering"`
}

// DepartmentResponse is a department list item.
type DepartmentResponse struct {
	ID        int64  `json:"id" example:"3"`
	Name      string `json:"name" example:"Computer Science"`
	FacultyID *int64 `json:"facultyId,omitempty" example:"1"`
}

// CourseResponse is a course list item.
type CourseResponse struct {
	ID           int64  `json:"id" example:"12"`
	Name         string `json:"name" example:"CSE 3101"`
	DepartmentID int64  `json:"departmentId" example:"3"`
}

// CategoryResponse is a note category list item.
type CategoryResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Lecture Notes"`
	Description string `json:"description" example:"Notes taken during lectures"`
}

// CreateDepartmentRequest creates a department (staff only).
type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=255"`
	FacultyID *int64 `json:"facultyId"`
}

// CreateCourseRequest creates a course (staff only).
type CreateCourseRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
}
