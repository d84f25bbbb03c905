package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/repositories"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/filestorage"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// Viewer identifies the requester of a read operation. A nil UserID means
// anonymous: personalized flags are always false and unapproved notes are
// hidden.
type Viewer struct {
	UserID  *int64
	IsStaff bool
}

// Actor identifies the authenticated requester of a write operation.
type Actor struct {
	UserID  int64
	IsStaff bool
}

// NoteStore is the note persistence surface the service depends on.
type NoteStore interface {
	GetAllNotes(ctx context.Context, params repositories.NoteQueryParams) ([]*repositories.NoteDetails, dto.PaginationInfo, error)
	GetNoteByID(ctx context.Context, id int64, viewerID *int64, approvedOnly bool) (*repositories.NoteDetails, error)
	GetNoteRow(ctx context.Context, id int64) (*models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) (int64, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, id int64) error
	IncrementDownloadCount(ctx context.Context, id int64) (int64, string, error)
}

// NoteService defines the interface for note operations.
type NoteService interface {
	GetAllNotes(ctx context.Context, filter *dto.NoteFilterRequest, viewer Viewer) (*dto.NoteListResponse, error)
	GetNoteByID(ctx context.Context, id int64, viewer Viewer) (*dto.NoteResponse, error)
	GetMyNotes(ctx context.Context, filter *dto.NoteFilterRequest, actor Actor) (*dto.NoteListResponse, error)
	CreateNote(ctx context.Context, req *dto.CreateNoteRequest, file *multipart.FileHeader, actor Actor) (*dto.CreateNoteResponse, error)
	UpdateNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest, actor Actor) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, id int64, actor Actor) error
	Download(ctx context.Context, id int64, actor Actor) (*dto.DownloadResponse, error)
}

// noteServiceImpl implements NoteService.
type noteServiceImpl struct {
	notes   NoteStore
	storage filestorage.Storage
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes NoteStore, storage filestorage.Storage) NoteService {
	return &noteServiceImpl{
		notes:   notes,
		storage: storage,
	}
}

// toNoteResponse converts repository details into the API shape.
func (s *noteServiceImpl) toNoteResponse(note *repositories.NoteDetails) dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.NoteResponse{
		ID:               note.ID,
		Title:            note.Title,
		Description:      note.Description,
		FileURL:          s.storage.FileURL(note.FilePath),
		Semester:         note.Semester,
		Tags:             tags,
		UploaderID:       note.UploaderID,
		UploaderName:     note.UploaderFirstName + " " + note.UploaderLastName,
		CategoryID:       note.CategoryID,
		CategoryName:     note.CategoryName,
		CourseID:         note.CourseID,
		CourseName:       note.CourseName,
		DepartmentID:     note.DepartmentID,
		DepartmentName:   note.DepartmentName,
		FacultyID:        note.FacultyID,
		FacultyName:      note.FacultyName,
		DownloadCount:    note.DownloadCount,
		IsApproved:       note.IsApproved,
		AverageRating:    note.AverageRating,
		LikesCount:       note.LikesCount,
		BookmarksCount:   note.BookmarksCount,
		IsLikedByMe:      note.IsLikedByViewer,
		IsBookmarkedByMe: note.IsBookmarkedByViewer,
		CreatedAt:        note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        note.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *noteServiceImpl) toNoteListResponse(notes []*repositories.NoteDetails, pagination dto.PaginationInfo) *dto.NoteListResponse {
	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, s.toNoteResponse(note))
	}
	return &dto.NoteListResponse{
		Notes:      responses,
		Pagination: pagination,
	}
}

// queryParamsFromFilter maps the API filter onto repository query parameters,
// applying the visibility rule for the viewer.
func queryParamsFromFilter(filter *dto.NoteFilterRequest, viewer Viewer) repositories.NoteQueryParams {
	params := repositories.NoteQueryParams{
		DepartmentID: filter.DepartmentID,
		CourseID:     filter.CourseID,
		FacultyID:    filter.FacultyID,
		CategoryID:   filter.CategoryID,
		UploaderID:   filter.UploaderID,
		Semester:     filter.Semester,
		Tag:          filter.Tag,
		Search:       filter.Search,
		OrderBy:      filter.OrderBy,
		OrderDir:     filter.OrderDir,
		Page:         filter.Page,
		Size:         filter.PageSize,
		ViewerID:     viewer.UserID,
	}

	if viewer.IsStaff {
		// Staff may filter on the approval flag explicitly
		params.IsApproved = filter.IsApproved
	} else {
		params.ApprovedOnly = true
	}

	return params
}

// GetAllNotes retrieves the filtered, annotated, paginated note listing.
func (s *noteServiceImpl) GetAllNotes(ctx context.Context, filter *dto.NoteFilterRequest, viewer Viewer) (*dto.NoteListResponse, error) {
	notes, pagination, err := s.notes.GetAllNotes(ctx, queryParamsFromFilter(filter, viewer))
	if err != nil {
		return nil, fmt.Errorf("error getting notes: %w", err)
	}
	return s.toNoteListResponse(notes, pagination), nil
}

// GetNoteByID retrieves a single annotated note honoring the visibility rule.
func (s *noteServiceImpl) GetNoteByID(ctx context.Context, id int64, viewer Viewer) (*dto.NoteResponse, error) {
	note, err := s.notes.GetNoteByID(ctx, id, viewer.UserID, !viewer.IsStaff)
	if err != nil {
		return nil, err
	}
	response := s.toNoteResponse(note)
	return &response, nil
}

// GetMyNotes lists the caller's own uploads, approved or not.
func (s *noteServiceImpl) GetMyNotes(ctx context.Context, filter *dto.NoteFilterRequest, actor Actor) (*dto.NoteListResponse, error) {
	params := queryParamsFromFilter(filter, Viewer{UserID: &actor.UserID, IsStaff: actor.IsStaff})
	params.UploaderID = &actor.UserID
	// Owners always see their own pending uploads
	params.ApprovedOnly = false
	params.IsApproved = nil

	notes, pagination, err := s.notes.GetAllNotes(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error getting own notes: %w", err)
	}
	return s.toNoteListResponse(notes, pagination), nil
}

// CreateNote stores the uploaded file and inserts the note pending approval.
func (s *noteServiceImpl) CreateNote(ctx context.Context, req *dto.CreateNoteRequest, file *multipart.FileHeader, actor Actor) (*dto.CreateNoteResponse, error) {
	filePath, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("error storing note file: %w", err)
	}

	note := &models.Note{
		Title:        req.Title,
		Description:  req.Description,
		FilePath:     filePath,
		UploaderID:   actor.UserID,
		CategoryID:   req.CategoryID,
		CourseID:     req.CourseID,
		DepartmentID: req.DepartmentID,
		FacultyID:    req.FacultyID,
		Semester:     req.Semester,
		IsApproved:   false, // every upload waits for moderation
		Tags:         req.Tags,
	}

	id, err := s.notes.CreateNote(ctx, note)
	if err != nil {
		// Remove the orphaned file, the note row never made it
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to remove file after create failure")
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	created, err := s.notes.GetNoteByID(ctx, id, &actor.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("error loading created note: %w", err)
	}

	return &dto.CreateNoteResponse{
		Message: "Note submitted, wait for admin approval.",
		Note:    s.toNoteResponse(created),
	}, nil
}

// UpdateNote applies a staff-only edit. Non-staff uploaders are directed to
// delete and re-upload instead.
func (s *noteServiceImpl) UpdateNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest, actor Actor) (*dto.NoteResponse, error) {
	note, err := s.notes.GetNoteRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff {
		if note.UploaderID == actor.UserID {
			return nil, apperrors.NewForbiddenError("You are not allowed to edit this note. Only administrators can edit notes after creation; delete it and upload a new one instead.")
		}
		return nil, apperrors.ErrPermissionDenied
	}

	note.Title = req.Title
	note.Description = req.Description
	note.CategoryID = req.CategoryID
	note.CourseID = req.CourseID
	note.DepartmentID = req.DepartmentID
	note.FacultyID = req.FacultyID
	note.Semester = req.Semester
	note.Tags = req.Tags
	if req.IsApproved != nil {
		note.IsApproved = *req.IsApproved
	}

	if err := s.notes.UpdateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	logger.Info().Int64("noteId", id).Int64("userId", actor.UserID).Msg("Note updated")

	updated, err := s.notes.GetNoteByID(ctx, id, &actor.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("error loading updated note: %w", err)
	}
	response := s.toNoteResponse(updated)
	return &response, nil
}

// DeleteNote removes a note and its stored file. Owner or staff only.
func (s *noteServiceImpl) DeleteNote(ctx context.Context, id int64, actor Actor) error {
	note, err := s.notes.GetNoteRow(ctx, id)
	if err != nil {
		return err
	}

	if note.UploaderID != actor.UserID && !actor.IsStaff {
		return apperrors.ErrPermissionDenied
	}

	if err := s.notes.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	if err := s.storage.DeleteFile(note.FilePath); err != nil {
		logger.Warn().Err(err).Int64("noteId", id).Msg("Failed to delete note file from storage")
	}

	return nil
}

// Download bumps the download counter atomically and returns the file URL.
func (s *noteServiceImpl) Download(ctx context.Context, id int64, actor Actor) (*dto.DownloadResponse, error) {
	count, filePath, err := s.notes.IncrementDownloadCount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DownloadResponse{
		Detail:        "Download initiated (count incremented). Please use the fileUrl to download.",
		FileURL:       s.storage.FileURL(filePath),
		DownloadCount: count,
	}, nil
}
