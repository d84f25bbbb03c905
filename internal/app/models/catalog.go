package models

// Faculty groups departments (e.g. Engineering Faculty).
type Faculty struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Department belongs to a faculty and owns courses.
type Department struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	FacultyID *int64 `db:"faculty_id" json:"facultyId,omitempty"`
}

// Course belongs to a department.
type Course struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DepartmentID int64  `db:"department_id" json:"departmentId"`
}

// NoteCategory classifies notes (lecture notes, lab reports, ...).
type NoteCategory struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}
