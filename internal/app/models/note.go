package models

import "time"

// Note represents an uploaded academic note. A note stays hidden from
// non-staff viewers until a staff user flips IsApproved.
type Note struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	FilePath      string    `db:"file_path" json:"-"`
	UploaderID    int64     `db:"uploader_id" json:"uploaderId"`
	CategoryID    *int64    `db:"category_id" json:"categoryId,omitempty"`
	CourseID      *int64    `db:"course_id" json:"courseId,omitempty"`
	DepartmentID  *int64    `db:"department_id" json:"departmentId,omitempty"`
	FacultyID     *int64    `db:"faculty_id" json:"facultyId,omitempty"`
	Semester      string    `db:"semester" json:"semester"`
	DownloadCount int64     `db:"download_count" json:"downloadCount"`
	IsApproved    bool      `db:"is_approved" json:"isApproved"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	Tags []string `json:"tags,omitempty"`
}
