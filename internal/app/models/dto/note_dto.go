package dto

// --- Request DTOs ---

// NoteFilterRequest holds the query parameters accepted by the note listing.
type NoteFilterRequest struct {
	DepartmentID *int64  `form:"departmentId"`
	CourseID     *int64  `form:"courseId"`
	FacultyID    *int64  `form:"facultyId"`
	CategoryID   *int64  `form:"categoryId"`
	UploaderID   *int64  `form:"uploaderId"`
	Semester     *string `form:"semester"`
	Tag          *string `form:"tag"`
	IsApproved   *bool   `form:"isApproved"` // honored for staff viewers only
	Search       string  `form:"search"`
	OrderBy      string  `form:"orderBy"`  // createdAt | downloadCount | averageRating | title
	OrderDir     string  `form:"orderDir"` // asc | desc
	Page         int     `form:"page"`
	PageSize     int     `form:"pageSize"`
}

// CreateNoteRequest represents the multipart form fields for uploading a note.
// The file itself arrives as the "file" form part.
type CreateNoteRequest struct {
	Title        string   `form:"title" binding:"required,min=3,max=255" example:"Operating Systems - Week 5"`
	Description  string   `form:"description" binding:"required,min=10" example:"Scheduling algorithms with solved examples"`
	CategoryID   *int64   `form:"categoryId" example:"1"`
	CourseID     *int64   `form:"courseId" example:"12"`
	DepartmentID *int64   `form:"departmentId" example:"3"`
	FacultyID    *int64   `form:"facultyId" example:"1"`
	Semester     string   `form:"semester" binding:"required,max=50" example:"Fall 2025"`
	Tags         []string `form:"tags" example:"os,scheduling"`
}

// UpdateNoteRequest represents the staff-only note update payload.
type UpdateNoteRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=255"`
	Description  string   `json:"description" binding:"required,min=10"`
	CategoryID   *int64   `json:"categoryId"`
	CourseID     *int64   `json:"courseId"`
	DepartmentID *int64   `json:"departmentId"`
	FacultyID    *int64   `json:"facultyId"`
	Semester     string   `json:"semester" binding:"required,max=50"`
	Tags         []string `json:"tags"`
	IsApproved   *bool    `json:"isApproved"` // approval flag, moderation gate
}

// --- Response DTOs ---

// NoteResponse is a note together with its computed engagement state.
type NoteResponse struct {
	ID             int64    `json:"id" example:"15"`
	Title          string   `json:"title" example:"Operating Systems - Week 5"`
	Description    string   `json:"description" example:"Scheduling algorithms with solved examples"`
	FileURL        string   `json:"fileUrl" example:"http://localhost:8080/uploads/9d3f.pdf"`
	Semester       string   `json:"semester" example:"Fall 2025"`
	Tags           []string `json:"tags"`
	UploaderID     int64    `json:"uploaderId" example:"7"`
	UploaderName   string   `json:"uploaderName" example:"John Doe"`
	CategoryID     *int64   `json:"categoryId,omitempty" example:"1"`
	CategoryName   *string  `json:"categoryName,omitempty" example:"Lecture Notes"`
	CourseID       *int64   `json:"courseId,omitempty" example:"12"`
	CourseName     *string  `json:"courseName,omitempty" example:"CSE 3101"`
	DepartmentID   *int64   `json:"departmentId,omitempty" example:"3"`
	DepartmentName *string  `json:"departmentName,omitempty" example:"Computer Science"`
	FacultyID      *int64   `json:"facultyId,omitempty" example:"1"`
	FacultyName    *string  `json:"facultyName,omitempty" example:"Engineering"`
	DownloadCount  int64    `json:"downloadCount" example:"132"`
	IsApproved     bool     `json:"isApproved" example:"true"`

	// Derived engagement state, never stored on the note row
	AverageRating    float64 `json:"averageRating" example:"4.2"`
	LikesCount       int64   `json:"likesCount" example:"11"`
	BookmarksCount   int64   `json:"bookmarksCount" example:"4"`
	IsLikedByMe      bool    `json:"isLikedByMe" example:"false"`
	IsBookmarkedByMe bool    `json:"isBookmarkedByMe" example:"false"`

	CreatedAt string `json:"createdAt" example:"2025-01-15T10:00:00Z"`
	UpdatedAt string `json:"updatedAt" example:"2025-01-16T11:30:00Z"`
}

// NoteListResponse is a page of notes plus pagination metadata.
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateNoteResponse wraps the created note with the moderation message.
type CreateNoteResponse struct {
	Message string       `json:"message" example:"Note submitted, wait for admin approval."`
	Note    NoteResponse `json:"note"`
}

// DownloadResponse reports the incremented counter and the file location.
type DownloadResponse struct {
	Detail        string `json:"detail" example:"Download initiated (count incremented). Please use the fileUrl to download."`
	FileURL       string `json:"fileUrl" example:"http://localhost:8080/uploads/9d3f.pdf"`
	DownloadCount int64  `json:"downloadCount" example:"133"`
}

// ToggleLikeResponse reports the state after a like toggle.
type ToggleLikeResponse struct {
	Message    string `json:"message" example:"Note liked successfully."`
	Liked      bool   `json:"liked" example:"true"`
	LikesCount int64  `json:"likesCount" example:"12"`
}

// ToggleBookmarkResponse reports the state after a bookmark toggle.
type ToggleBookmarkResponse struct {
	Message        string `json:"message" example:"Note bookmarked successfully."`
	Bookmarked     bool   `json:"bookmarked" example:"true"`
	BookmarksCount int64  `json:"bookmarksCount" example:"5"`
}
