package services

import (
	"context"
	"time"

	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/app/repositories"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
)

// CommentStore is the comment persistence surface.
type CommentStore interface {
	CreateComment(ctx context.Context, noteID, userID int64, text string) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*repositories.CommentDetails, error)
	HasUserCommented(ctx context.Context, noteID, userID int64) (bool, error)
	UpdateComment(ctx context.Context, id int64, text string) error
	DeleteComment(ctx context.Context, id int64) error
	GetComments(ctx context.Context, noteID *int64, page, size int) ([]*repositories.CommentDetails, dto.PaginationInfo, error)
}

// CommentService defines comment operations.
type CommentService interface {
	CreateComment(ctx context.Context, req *dto.CreateCommentRequest, actor Actor) (*dto.CommentResponse, error)
	GetComment(ctx context.Context, id int64) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, noteID *int64, page, size int) (*dto.CommentListResponse, error)
	UpdateComment(ctx context.Context, id int64, req *dto.UpdateCommentRequest, actor Actor) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, id int64, actor Actor) error
}

type commentServiceImpl struct {
	comments CommentStore
	notes    NoteLookup
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments CommentStore, notes NoteLookup) CommentService {
	return &commentServiceImpl{
		comments: comments,
		notes:    notes,
	}
}

func toCommentResponse(comment *repositories.CommentDetails) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		NoteID:    comment.NoteID,
		UserID:    comment.UserID,
		UserName:  comment.UserFirstName + " " + comment.UserLastName,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateComment records the caller's comment on a note. A user may hold at
// most one comment per note; repeats are rejected with a hint to update.
func (s *commentServiceImpl) CreateComment(ctx context.Context, req *dto.CreateCommentRequest, actor Actor) (*dto.CommentResponse, error) {
	if _, err := s.notes.GetNoteRow(ctx, req.NoteID); err != nil {
		return nil, err
	}

	commented, err := s.comments.HasUserCommented(ctx, req.NoteID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if commented {
		return nil, apperrors.NewValidationError("You have already commented on this note. You can update your existing comment instead.")
	}

	id, err := s.comments.CreateComment(ctx, req.NoteID, actor.UserID, req.Text)
	if err != nil {
		if err == apperrors.ErrAlreadyCommented {
			return nil, apperrors.NewValidationError("You have already commented on this note. You can update your existing comment instead.")
		}
		return nil, err
	}

	created, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toCommentResponse(created)
	return &response, nil
}

// GetComment retrieves a single comment.
func (s *commentServiceImpl) GetComment(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toCommentResponse(comment)
	return &response, nil
}

// GetComments lists comments, optionally scoped to one note.
func (s *commentServiceImpl) GetComments(ctx context.Context, noteID *int64, page, size int) (*dto.CommentListResponse, error) {
	comments, pagination, err := s.comments.GetComments(ctx, noteID, page, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, toCommentResponse(comment))
	}

	return &dto.CommentListResponse{
		Comments:   responses,
		Pagination: pagination,
	}, nil
}

// UpdateComment changes the text of the caller's comment. Owner or staff only.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, id int64, req *dto.UpdateCommentRequest, actor Actor) (*dto.CommentResponse, error) {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.UserID != actor.UserID && !actor.IsStaff {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.comments.UpdateComment(ctx, id, req.Text); err != nil {
		return nil, err
	}

	updated, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toCommentResponse(updated)
	return &response, nil
}

// DeleteComment removes a comment. Owner or staff only.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, id int64, actor Actor) error {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != actor.UserID && !actor.IsStaff {
		return apperrors.ErrPermissionDenied
	}

	return s.comments.DeleteComment(ctx, id)
}
