package dto

// --- Ratings ---

// CreateRatingRequest creates a rating for a note. One rating per user per note.
type CreateRatingRequest struct {
	NoteID int64 `json:"noteId" binding:"required,gt=0" example:"15"`
	Stars  int   `json:"stars" binding:"required,min=1,max=5" example:"4"`
}

// UpdateRatingRequest changes the stars of an existing rating.
type UpdateRatingRequest struct {
	Stars int `json:"stars" binding:"required,min=1,max=5" example:"5"`
}

// RatingResponse is a single rating.
type RatingResponse struct {
	ID        int64  `json:"id" example:"3"`
	NoteID    int64  `json:"noteId" example:"15"`
	UserID    int64  `json:"userId" example:"7"`
	UserName  string `json:"userName" example:"John Doe"`
	Stars     int    `json:"stars" example:"4"`
	CreatedAt string `json:"createdAt" example:"2025-01-15T10:00:00Z"`
	UpdatedAt string `json:"updatedAt" example:"2025-01-16T11:30:00Z"`
}

// RatingListResponse is a page of ratings.
type RatingListResponse struct {
	Ratings    []RatingResponse `json:"ratings"`
	Pagination PaginationInfo   `json:"pagination"`
}

// --- Comments ---

// CreateCommentRequest creates a comment on a note. One comment per user per note.
type CreateCommentRequest struct {
	NoteID int64  `json:"noteId" binding:"required,gt=0" example:"15"`
	Text   string `json:"text" binding:"required,min=1,max=2000" example:"Very clear derivations, thanks!"`
}

// UpdateCommentRequest changes the text of an existing comment.
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// CommentResponse is a single comment.
type CommentResponse struct {
	ID        int64  `json:"id" example:"9"`
	NoteID    int64  `json:"noteId" example:"15"`
	UserID    int64  `json:"userId" example:"7"`
	UserName  string `json:"userName" example:"John Doe"`
	Text      string `json:"text" example:"Very clear derivations, thanks!"`
	CreatedAt string `json:"createdAt" example:"2025-01-15T10:00:00Z"`
	UpdatedAt string `json:"updatedAt" example:"2025-01-16T11:30:00Z"`
}

// CommentListResponse is a page of comments.
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination PaginationInfo    `json:"pagination"`
}
